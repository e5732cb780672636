package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/develop-ac/requisicao-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
)

const invalidCodesMessage = "produtosCodigos must be a non-empty array of product codes"

type RequisicaoHandler struct {
	service *service.RequisicaoService
}

func NewRequisicaoHandler(service *service.RequisicaoService) *RequisicaoHandler {
	return &RequisicaoHandler{service: service}
}

// bindCodes reads the request body. Unreadable or non-JSON bodies are
// server errors; well-formed JSON without a usable code list is a 400.
func (h *RequisicaoHandler) bindCodes(c *gin.Context) ([]string, bool) {
	body, err := c.GetRawData()
	if err != nil {
		internalError(c, "failed to read request body", err)
		return nil, false
	}
	if !json.Valid(body) {
		internalError(c, "failed to process requisicao", fmt.Errorf("request body is not valid JSON"))
		return nil, false
	}

	var req domain.RequisicaoRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		log.Debug().Err(err).Msg("requisicao: invalid request")
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidCodesMessage})
		return nil, false
	}

	return req.Codes(), true
}

// Calculate handles the batch viability request.
func (h *RequisicaoHandler) Calculate(c *gin.Context) {
	codes, ok := h.bindCodes(c)
	if !ok {
		return
	}

	result, err := h.service.Run(c.Request.Context(), codes)
	if err != nil {
		internalError(c, "failed to process requisicao", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export returns the batch as an xlsx workbook.
func (h *RequisicaoHandler) Export(c *gin.Context) {
	codes, ok := h.bindCodes(c)
	if !ok {
		return
	}

	file, err := h.service.Export(c.Request.Context(), codes)
	if err != nil {
		internalError(c, "failed to export requisicao", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	if file.ArchivedKey != "" {
		c.Header("X-Archive-Key", file.ArchivedKey)
	}
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// GetBranches returns the branch table.
func (h *RequisicaoHandler) GetBranches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filiais": h.service.Branches()})
}

// GetWindow returns the sales window giro is currently computed over.
func (h *RequisicaoHandler) GetWindow(c *gin.Context) {
	window := h.service.Window()
	c.JSON(http.StatusOK, gin.H{
		"inicio": window.StartText(),
		"fim":    window.EndText(),
	})
}

func internalError(c *gin.Context, message string, err error) {
	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/develop-ac/requisicao-backend/internal/export"
	"github.com/develop-ac/requisicao-backend/internal/requisicao"
	"github.com/develop-ac/requisicao-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockByCode map[string]int

func (s stockByCode) GetStock(_ context.Context, code string) ([]domain.StockSnapshot, error) {
	if code == "0500" {
		return nil, errors.New("stock table locked")
	}
	qty, ok := s[code]
	if !ok {
		return nil, nil
	}
	return []domain.StockSnapshot{{
		Code:       code,
		Name:       "Produto " + code,
		Quantities: map[string]int{"qtestoque_empresa4": qty},
		UpdatedAt:  "14/02/2024",
	}}, nil
}

type salesByCode map[string][]domain.SalesLine

func (s salesByCode) GetSales(_ context.Context, code, _, _ string) ([]domain.SalesLine, error) {
	return s[code], nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	stock := stockByCode{"0123456": 40, "0777": 0, "01000": 5}
	sales := salesByCode{"0123456": {
		{Code: "0123456", Quantity: 30, EmissionDate: "10/12/2023", Channel: "Sv. Sobral — Matriz"},
	}}
	engine := requisicao.NewEngine(stock, sales, requisicao.WithClock(func() time.Time {
		return time.Date(2024, time.February, 15, 9, 30, 0, 0, time.UTC)
	}))
	h := NewRequisicaoHandler(service.NewRequisicaoService(engine, nil, nil))

	r := gin.New()
	r.POST("/requisicao", h.Calculate)
	r.POST("/requisicao/export", h.Export)
	r.GET("/requisicao/filiais", h.GetBranches)
	r.GET("/requisicao/janela", h.GetWindow)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCalculate_OK(t *testing.T) {
	w := post(newTestRouter(), "/requisicao", `{"produtosCodigos": ["123456", 777, "404", "500"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body domain.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 4, body.TotalProcessed)
	assert.Equal(t, 2, body.TotalFound)
	require.Len(t, body.Results, 2)

	first := body.Results[0]
	assert.Equal(t, "0123456", first.Code)
	assert.Equal(t, 40, first.Stock["SV SOBRAL"])
	assert.InDelta(t, 10.0, first.Giro["SV SOBRAL"], 1e-9)
	assert.Equal(t, domain.ViabilityMedium, first.Viabilidade["SV SOBRAL"])
	assert.Equal(t, domain.ViabilityUnavailable, first.Viabilidade["SV MATRIZ"])

	second := body.Results[1]
	assert.Equal(t, "0777", second.Code)
	assert.Equal(t, domain.ViabilityUnavailable, second.Viabilidade["SV SOBRAL"])
}

func TestCalculate_ResponseKeys(t *testing.T) {
	w := post(newTestRouter(), "/requisicao", `{"produtosCodigos": ["123456"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(t, raw, "totalProcessados")
	assert.Contains(t, raw, "totalEncontrados")
	assert.Contains(t, raw, "resultados")

	var results []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["resultados"], &results))
	require.Len(t, results, 1)
	for _, key := range []string{
		"cdproduto", "nmproduto", "nmgrupoproduto", "nmfornecedorprincipal",
		"stock", "giro", "viabilidade", "atualizacao",
	} {
		assert.Contains(t, results[0], key)
	}
}

func TestCalculate_BadRequest(t *testing.T) {
	r := newTestRouter()
	for _, body := range []string{
		`{}`,
		`{"produtosCodigos": []}`,
		`{"produtosCodigos": "123456"}`,
		`{"produtosCodigos": {"a": 1}}`,
		`{"produtosCodigos": [null]}`,
		`{"outro": ["1"]}`,
	} {
		w := post(r, "/requisicao", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), body)
		assert.Equal(t, invalidCodesMessage, resp["error"], body)
	}
}

func TestCalculate_InvalidJSONIsServerError(t *testing.T) {
	w := post(newTestRouter(), "/requisicao", `{"produtosCodigos": [`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
	assert.NotEmpty(t, resp["details"])
}

func TestCalculate_CapsAtFifty(t *testing.T) {
	codes := make([]string, 60)
	for i := range codes {
		codes[i] = `"123456"`
	}
	w := post(newTestRouter(), "/requisicao", `{"produtosCodigos": [`+strings.Join(codes, ",")+`]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body domain.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 50, body.TotalProcessed)
	assert.Equal(t, 50, body.TotalFound)
}

func TestExport(t *testing.T) {
	w := post(newTestRouter(), "/requisicao/export", `{"produtosCodigos": ["123456"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"requisicao-")
	assert.NotEmpty(t, w.Header().Get("X-Archive-Key"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestExport_BadRequest(t *testing.T) {
	w := post(newTestRouter(), "/requisicao/export", `{"produtosCodigos": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBranches(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requisicao/filiais", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Filiais []domain.BranchCode `json:"filiais"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.DefaultBranches, body.Filiais)
}

func TestGetWindow(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requisicao/janela", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"inicio": "01/11/2023", "fim": "31/01/2024"}, body)
}

func TestCalculate_NumericCodesUsePlainDecimalText(t *testing.T) {
	w := post(newTestRouter(), "/requisicao", `{"produtosCodigos": [1e3, 1000.0]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body domain.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)
	assert.Equal(t, "01000", body.Results[0].Code)
	assert.Equal(t, "01000", body.Results[1].Code)
}

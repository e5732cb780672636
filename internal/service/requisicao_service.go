package service

import (
	"context"
	"fmt"
	"time"

	"github.com/develop-ac/requisicao-backend/internal/cache"
	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/develop-ac/requisicao-backend/internal/export"
	"github.com/develop-ac/requisicao-backend/internal/requisicao"
	"github.com/develop-ac/requisicao-backend/internal/storage"
	"github.com/rs/zerolog/log"
)

type RequisicaoService struct {
	engine  *requisicao.Engine
	cache   cache.RequisicaoCache
	storage storage.ObjectStorage
	now     func() time.Time
}

// ExportFile is a rendered workbook ready to be sent to the client.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	ArchivedKey string
}

func NewRequisicaoService(engine *requisicao.Engine, cacheImpl cache.RequisicaoCache, store storage.ObjectStorage) *RequisicaoService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRequisicaoCache()
	}
	if store == nil {
		store = storage.NewNoopStorage()
	}
	return &RequisicaoService{
		engine:  engine,
		cache:   cacheImpl,
		storage: store,
		now:     time.Now,
	}
}

// Run computes the batch, serving repeated requests for the same window
// from the cache when one is configured.
func (s *RequisicaoService) Run(ctx context.Context, codes []string) (*domain.BatchResult, error) {
	capped := s.engine.Cap(codes)
	formatted := make([]string, len(capped))
	for i, c := range capped {
		formatted[i] = requisicao.FormatProductCode(c)
	}
	windowStart := s.engine.Window().StartText()

	if result, ok, err := s.cache.GetBatch(ctx, windowStart, formatted); err == nil && ok {
		return result, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("requisicao: cache get batch failed")
	}

	result, err := s.engine.Run(ctx, capped)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetBatch(ctx, windowStart, formatted, result); err != nil {
		log.Warn().Err(err).Msg("requisicao: cache set batch failed")
	}

	return result, nil
}

// Export runs the batch and renders it as a workbook. The workbook is also
// archived to object storage; archive failures are only logged.
func (s *RequisicaoService) Export(ctx context.Context, codes []string) (*ExportFile, error) {
	result, err := s.Run(ctx, codes)
	if err != nil {
		return nil, err
	}

	now := s.now()
	window := s.engine.Window()
	data, err := export.Bytes(result, s.engine.Branches(), export.Meta{
		WindowStart: window.StartText(),
		WindowEnd:   window.EndText(),
		GeneratedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build requisicao workbook: %w", err)
	}

	file := &ExportFile{
		Name:        fmt.Sprintf("requisicao-%s.xlsx", now.Format("20060102-150405")),
		ContentType: export.ContentType,
		Data:        data,
	}

	info, err := s.storage.UploadObject(ctx, file.Name, data, export.ContentType)
	if err != nil {
		log.Warn().Err(err).Str("file", file.Name).Msg("requisicao: archive upload failed")
	} else {
		file.ArchivedKey = info.Key
	}

	return file, nil
}

// Branches returns the branch table reports are built on.
func (s *RequisicaoService) Branches() []domain.BranchCode {
	return s.engine.Branches()
}

// Window returns the current sales window.
func (s *RequisicaoService) Window() requisicao.Window {
	return s.engine.Window()
}

package requisicao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/develop-ac/requisicao-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxProducts = 50
	DefaultConcurrency = 4
)

// ErrNoStock marks a product whose stock lookup returned no rows.
var ErrNoStock = errors.New("no stock record for product")

// Engine computes transfer viability for batches of products.
type Engine struct {
	stock       repository.StockRepository
	sales       repository.SalesRepository
	branches    []domain.BranchCode
	maxProducts int
	concurrency int
	now         func() time.Time
}

type Option func(*Engine)

// WithBranches replaces the default branch table.
func WithBranches(branches []domain.BranchCode) Option {
	return func(e *Engine) {
		if len(branches) > 0 {
			e.branches = branches
		}
	}
}

// WithMaxProducts sets the batch cap; codes past it are dropped.
func WithMaxProducts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxProducts = n
		}
	}
}

// WithConcurrency bounds how many products are processed at once.
// 1 processes the batch sequentially.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithClock sets the source of "now" used for the sales window.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(stock repository.StockRepository, sales repository.SalesRepository, opts ...Option) *Engine {
	e := &Engine{
		stock:       stock,
		sales:       sales,
		branches:    domain.DefaultBranches,
		maxProducts: DefaultMaxProducts,
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Branches returns the branch table the engine reports on.
func (e *Engine) Branches() []domain.BranchCode {
	return e.branches
}

// Window returns the sales window for the engine's current time.
func (e *Engine) Window() Window {
	return WindowFor(e.now())
}

// Cap truncates codes to the batch limit.
func (e *Engine) Cap(codes []string) []string {
	if len(codes) > e.maxProducts {
		return codes[:e.maxProducts]
	}
	return codes
}

// outcome is the per-product result: either a report or the reason it was skipped.
type outcome struct {
	code   string
	report *domain.ProductViabilityReport
	err    error
}

// Run processes up to maxProducts codes. Products whose lookups fail are
// left out of the results; Run itself fails only when ctx ends.
func (e *Engine) Run(ctx context.Context, codes []string) (*domain.BatchResult, error) {
	codes = e.Cap(codes)
	window := e.Window()
	outcomes := make([]outcome, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.processProduct(gctx, FormatProductCode(code), window)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("requisicao batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("requisicao batch: %w", err)
	}

	result := &domain.BatchResult{
		TotalProcessed: len(codes),
		Results:        make([]domain.ProductViabilityReport, 0, len(codes)),
	}
	for _, o := range outcomes {
		if o.err != nil {
			log.Warn().Err(o.err).Str("cdproduto", o.code).Msg("requisicao: skipping product")
			continue
		}
		result.Results = append(result.Results, *o.report)
	}
	result.TotalFound = len(result.Results)

	log.Info().
		Int("processados", result.TotalProcessed).
		Int("encontrados", result.TotalFound).
		Str("inicio", window.StartText()).
		Str("fim", window.EndText()).
		Msg("requisicao: batch completed")

	return result, nil
}

// processProduct issues the stock and sales lookups together, then aggregates.
func (e *Engine) processProduct(ctx context.Context, code string, window Window) outcome {
	var (
		snapshots []domain.StockSnapshot
		lines     []domain.SalesLine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := e.stock.GetStock(gctx, code)
		if err != nil {
			return fmt.Errorf("stock lookup: %w", err)
		}
		snapshots = s
		return nil
	})
	g.Go(func() error {
		l, err := e.sales.GetSales(gctx, code, window.StartText(), window.EndText())
		if err != nil {
			return fmt.Errorf("sales lookup: %w", err)
		}
		lines = l
		return nil
	})
	if err := g.Wait(); err != nil {
		return outcome{code: code, err: err}
	}
	if len(snapshots) == 0 {
		return outcome{code: code, err: ErrNoStock}
	}

	report := BuildReport(code, snapshots[0], lines, window, e.branches)
	return outcome{code: code, report: &report}
}

// BuildReport computes stock, giro and viability for every branch.
func BuildReport(code string, snapshot domain.StockSnapshot, lines []domain.SalesLine, window Window, branches []domain.BranchCode) domain.ProductViabilityReport {
	if snapshot.Code != "" {
		code = snapshot.Code
	}

	report := domain.ProductViabilityReport{
		Code:        code,
		Name:        snapshot.Name,
		Group:       snapshot.Group,
		Supplier:    snapshot.Supplier,
		Stock:       make(map[string]int, len(branches)),
		Giro:        make(map[string]float64, len(branches)),
		Viabilidade: make(map[string]domain.Viability, len(branches)),
		UpdatedAt:   snapshot.UpdatedAt,
	}

	windowed := InWindow(lines, window)
	for _, b := range branches {
		stock := snapshot.Quantity(b.Field)
		giro := branchGiro(windowed, b.Name)

		report.Stock[b.Name] = stock
		report.Giro[b.Name] = giro
		report.Viabilidade[b.Name] = Classify(stock, giro)
	}

	return report
}

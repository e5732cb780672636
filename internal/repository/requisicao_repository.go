// internal/repository/requisicao_repository.go
package repository

import (
	"context"

	"github.com/develop-ac/requisicao-backend/internal/domain"
)

// StockRepository reads per-branch on-hand stock.
type StockRepository interface {
	GetStock(ctx context.Context, productCode string) ([]domain.StockSnapshot, error)
}

// SalesRepository reads raw sales lines of a product between two
// DD/MM/YYYY dates, inclusive.
type SalesRepository interface {
	GetSales(ctx context.Context, productCode, dateFrom, dateTo string) ([]domain.SalesLine, error)
}

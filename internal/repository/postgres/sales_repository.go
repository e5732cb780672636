package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

const salesDateLayout = "02/01/2006"

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) *salesRepository {
	return &salesRepository{db: db}
}

// Sales dates are free DD/MM/YYYY text. The query only narrows rows to the
// window's months with a text match and never casts dtemissao, so a malformed
// value such as 31/02/2024 cannot fail the query; exact day filtering and
// dropping of invalid dates happen in the engine.
const salesQuery = `
	SELECT
		cdproduto,
		COALESCE(nmproduto, '') AS nmproduto,
		COALESCE(nmgrupoproduto, '') AS nmgrupoproduto,
		COALESCE(nmfornecedorprincipal, '') AS nmfornecedorprincipal,
		COALESCE(qtbrutaproduto, 0) AS qtbrutaproduto,
		COALESCE(dtemissao, '') AS dtemissao,
		COALESCE(nmempresacurtovenda, '') AS nmempresacurtovenda
	FROM vendas
	WHERE cdproduto = $1
		AND COALESCE(dtemissao, '') ~ $2
`

func (r *salesRepository) GetSales(ctx context.Context, productCode, dateFrom, dateTo string) ([]domain.SalesLine, error) {
	pattern, err := monthPattern(dateFrom, dateTo)
	if err != nil {
		return nil, fmt.Errorf("error getting sales for %s: %w", productCode, err)
	}

	release, err := r.db.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	var lines []domain.SalesLine
	if err := sqlx.SelectContext(ctx, r.db, &lines, salesQuery, productCode, pattern); err != nil {
		return nil, fmt.Errorf("error getting sales for %s: %w", productCode, err)
	}

	return lines, nil
}

// monthPattern builds a POSIX regex matching DD/MM/YYYY text (day and month
// with or without a leading zero) in any month from dateFrom to dateTo.
// For 01/11/2023..31/01/2024:
//
//	^[0-9]{1,2}/(0?11/2023|0?12/2023|0?1/2024)([^0-9]|$)
func monthPattern(dateFrom, dateTo string) (string, error) {
	from, err := time.Parse(salesDateLayout, dateFrom)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", dateFrom, err)
	}
	to, err := time.Parse(salesDateLayout, dateTo)
	if err != nil {
		return "", fmt.Errorf("invalid end date %q: %w", dateTo, err)
	}
	if to.Before(from) {
		return "", fmt.Errorf("end date %s is before start date %s", dateTo, dateFrom)
	}

	var months []string
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, fmt.Sprintf("0?%d/%04d", int(m.Month()), m.Year()))
	}

	return "^[0-9]{1,2}/(" + strings.Join(months, "|") + ")([^0-9]|$)", nil
}

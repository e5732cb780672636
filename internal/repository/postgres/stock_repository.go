package postgres

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/lib/pq"
)

const stockTable = "estoque"

type stockRepository struct {
	db     *DB
	fields []string
	query  string
}

// NewStockRepository reads the stock columns named by the branch table.
func NewStockRepository(db *DB, branches []domain.BranchCode) *stockRepository {
	if len(branches) == 0 {
		branches = domain.DefaultBranches
	}
	fields := domain.BranchFields(branches)
	return &stockRepository{
		db:     db,
		fields: fields,
		query:  buildStockQuery(fields),
	}
}

func buildStockQuery(fields []string) string {
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = pq.QuoteIdentifier(f)
	}

	return fmt.Sprintf(`
		SELECT
			cdproduto,
			COALESCE(nmproduto, '') AS nmproduto,
			COALESCE(nmgrupoproduto, '') AS nmgrupoproduto,
			COALESCE(nmfornecedorprincipal, '') AS nmfornecedorprincipal,
			%s,
			COALESCE(atualizacao::text, '') AS atualizacao
		FROM %s
		WHERE cdproduto = $1
	`, strings.Join(columns, ",\n\t\t\t"), stockTable)
}

func (r *stockRepository) GetStock(ctx context.Context, productCode string) ([]domain.StockSnapshot, error) {
	release, err := r.db.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := r.db.QueryxContext(ctx, r.query, productCode)
	if err != nil {
		return nil, fmt.Errorf("error querying stock for %s: %w", productCode, err)
	}
	defer rows.Close()

	var snapshots []domain.StockSnapshot
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("error scanning stock for %s: %w", productCode, err)
		}

		snapshot := domain.StockSnapshot{
			Code:       asString(row["cdproduto"]),
			Name:       asString(row["nmproduto"]),
			Group:      asString(row["nmgrupoproduto"]),
			Supplier:   asString(row["nmfornecedorprincipal"]),
			Quantities: make(map[string]int, len(r.fields)),
			UpdatedAt:  asString(row["atualizacao"]),
		}
		for _, f := range r.fields {
			snapshot.Quantities[f] = asQuantity(row[f])
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock for %s: %w", productCode, err)
	}

	return snapshots, nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

// asQuantity converts a driver value to a unit count; NULL and garbage are 0.
func asQuantity(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int64:
		return int(t)
	case int32:
		return int(t)
	case int:
		return t
	case float64:
		return int(math.Round(t))
	case float32:
		return int(math.Round(float64(t)))
	case []byte:
		return parseQuantity(string(t))
	case string:
		return parseQuantity(t)
	default:
		return 0
	}
}

func parseQuantity(s string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int(math.Round(f))
}

// internal/domain/models.go
package domain

// StockSnapshot is the current on-hand stock of one product across branches.
type StockSnapshot struct {
	Code     string
	Name     string
	Group    string
	Supplier string
	// Quantities is keyed by branch stock field (BranchCode.Field).
	Quantities map[string]int
	UpdatedAt  string
}

// Quantity returns the on-hand stock for a branch field, 0 when absent.
func (s StockSnapshot) Quantity(field string) int {
	if s.Quantities == nil {
		return 0
	}
	return s.Quantities[field]
}

// SalesLine is one historical sale movement of a product.
type SalesLine struct {
	Code         string  `db:"cdproduto"`
	Name         string  `db:"nmproduto"`
	Group        string  `db:"nmgrupoproduto"`
	Supplier     string  `db:"nmfornecedorprincipal"`
	Quantity     float64 `db:"qtbrutaproduto"`
	EmissionDate string  `db:"dtemissao"` // DD/MM/YYYY
	Channel      string  `db:"nmempresacurtovenda"`
}

// ViabilityResult is the outcome for one (product, branch) pair.
type ViabilityResult struct {
	Branch    string    `json:"filial"`
	Stock     int       `json:"stock"`
	Giro      float64   `json:"giro"`
	Viability Viability `json:"viabilidade"`
}

// ProductViabilityReport groups the per-branch results of one product.
// Stock, Giro and Viabilidade always share the same key set: every branch
// of the configured table.
type ProductViabilityReport struct {
	Code        string               `json:"cdproduto"`
	Name        string               `json:"nmproduto"`
	Group       string               `json:"nmgrupoproduto"`
	Supplier    string               `json:"nmfornecedorprincipal"`
	Stock       map[string]int       `json:"stock"`
	Giro        map[string]float64   `json:"giro"`
	Viabilidade map[string]Viability `json:"viabilidade"`
	UpdatedAt   string               `json:"atualizacao"`
}

// Results returns the report flattened per branch, following the order of branches.
func (r ProductViabilityReport) Results(branches []BranchCode) []ViabilityResult {
	out := make([]ViabilityResult, 0, len(branches))
	for _, b := range branches {
		out = append(out, ViabilityResult{
			Branch:    b.Name,
			Stock:     r.Stock[b.Name],
			Giro:      r.Giro[b.Name],
			Viability: r.Viabilidade[b.Name],
		})
	}
	return out
}

// BatchResult is the response of one requisição run.
type BatchResult struct {
	TotalProcessed int                      `json:"totalProcessados"`
	TotalFound     int                      `json:"totalEncontrados"`
	Results        []ProductViabilityReport `json:"resultados"`
}

package domain

// BranchCode ties a stock column of the inventory store to the branch name
// used across sales and reports.
type BranchCode struct {
	Field string `json:"field"`
	Name  string `json:"name"`
}

// DefaultBranches is the branch table of the reference deployment. Order is
// the display order of reports and exports.
var DefaultBranches = []BranchCode{
	{Field: "qtestoque_empresa1", Name: "SV MATRIZ"},
	{Field: "qtestoque_empresa2", Name: "SV FILIAL"},
	{Field: "qtestoque_empresa3", Name: "SV BM EXPRESS"},
	{Field: "qtestoque_empresa4", Name: "SV SOBRAL"},
	{Field: "qtestoque_empresa5", Name: "SV MARACANAU"},
	{Field: "qtestoque_empresa6", Name: "SV CAUCAIA"},
	{Field: "qtestoque_empresa7", Name: "SV JUAZEIRO"},
	{Field: "qtestoque_empresa8", Name: "SV CRATO"},
}

// BranchFields returns the stock column names of branches, in order.
func BranchFields(branches []BranchCode) []string {
	fields := make([]string, len(branches))
	for i, b := range branches {
		fields[i] = b.Field
	}
	return fields
}

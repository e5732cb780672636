package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/develop-ac/requisicao-backend/internal/requisicao"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	DetailSheet  = "Requisicao"
	SummarySheet = "Resumo"
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var detailHeader = []interface{}{
	"Código", "Produto", "Grupo", "Fornecedor", "Filial",
	"Estoque", "Giro (un/mês)", "Meses de estoque", "Viabilidade", "Atualização",
}

// Meta describes the run a workbook was generated from.
type Meta struct {
	WindowStart string
	WindowEnd   string
	GeneratedAt time.Time
}

// Build renders a batch result as a workbook with one detail row per
// (product, branch) and a summary sheet.
func Build(result *domain.BatchResult, branches []domain.BranchCode, meta Meta) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", DetailSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename detail sheet: %w", err)
	}
	if err := writeDetail(f, result, branches); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	if err := writeSummary(f, result, meta); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// Bytes renders the workbook into memory.
func Bytes(result *domain.BatchResult, branches []domain.BranchCode, meta Meta) ([]byte, error) {
	f, err := Build(result, branches, meta)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDetail(f *excelize.File, result *domain.BatchResult, branches []domain.BranchCode) error {
	if err := setRow(f, DetailSheet, 1, detailHeader); err != nil {
		return err
	}

	row := 2
	for _, report := range result.Results {
		for _, r := range report.Results(branches) {
			var months interface{} = ""
			if r.Stock > 0 {
				months = round(requisicao.MonthsOfSupply(r.Stock, r.Giro), 1)
			}

			values := []interface{}{
				report.Code,
				report.Name,
				report.Group,
				report.Supplier,
				r.Branch,
				r.Stock,
				round(r.Giro, 2),
				months,
				r.Viability.Label(),
				report.UpdatedAt,
			}
			if err := setRow(f, DetailSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}

	return nil
}

func writeSummary(f *excelize.File, result *domain.BatchResult, meta Meta) error {
	generatedAt := meta.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	rows := [][]interface{}{
		{"Início da janela", meta.WindowStart},
		{"Fim da janela", meta.WindowEnd},
		{"Produtos processados", result.TotalProcessed},
		{"Produtos encontrados", result.TotalFound},
		{"Gerado em", generatedAt.Format("02/01/2006 15:04:05")},
	}
	for i, values := range rows {
		if err := setRow(f, SummarySheet, i+1, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

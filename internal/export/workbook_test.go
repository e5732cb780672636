package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var workbookBranches = []domain.BranchCode{
	{Field: "qtestoque_empresa1", Name: "SV MATRIZ"},
	{Field: "qtestoque_empresa4", Name: "SV SOBRAL"},
}

func sampleResult() *domain.BatchResult {
	return &domain.BatchResult{
		TotalProcessed: 3,
		TotalFound:     1,
		Results: []domain.ProductViabilityReport{{
			Code:     "0123456",
			Name:     "PARAFUSO 10MM",
			Group:    "FIXADORES",
			Supplier: "ACME",
			Stock:    map[string]int{"SV MATRIZ": 40, "SV SOBRAL": 0},
			Giro:     map[string]float64{"SV MATRIZ": 10.0 / 3.0, "SV SOBRAL": 2},
			Viabilidade: map[string]domain.Viability{
				"SV MATRIZ": domain.ViabilityHigh,
				"SV SOBRAL": domain.ViabilityUnavailable,
			},
			UpdatedAt: "14/02/2024",
		}},
	}
}

func TestBytes_DetailAndSummarySheets(t *testing.T) {
	data, err := Bytes(sampleResult(), workbookBranches, Meta{
		WindowStart: "01/11/2023",
		WindowEnd:   "31/01/2024",
		GeneratedAt: time.Date(2024, time.February, 15, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DetailSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(DetailSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Código", rows[0][0])
	assert.Equal(t, "Viabilidade", rows[0][8])

	assert.Equal(t, []string{
		"0123456", "PARAFUSO 10MM", "FIXADORES", "ACME", "SV MATRIZ",
		"40", "3.33", "12", "Alta", "14/02/2024",
	}, rows[1])

	sobral := rows[2]
	assert.Equal(t, "SV SOBRAL", sobral[4])
	assert.Equal(t, "0", sobral[5])
	assert.Equal(t, "2", sobral[6])
	assert.Equal(t, "", sobral[7])
	assert.Equal(t, "Indisponível", sobral[8])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 5)
	assert.Equal(t, []string{"Início da janela", "01/11/2023"}, summary[0])
	assert.Equal(t, []string{"Fim da janela", "31/01/2024"}, summary[1])
	assert.Equal(t, []string{"Produtos processados", "3"}, summary[2])
	assert.Equal(t, []string{"Produtos encontrados", "1"}, summary[3])
	assert.Equal(t, []string{"Gerado em", "15/02/2024 09:30:00"}, summary[4])
}

func TestBuild_EmptyResultHasHeaderOnly(t *testing.T) {
	f, err := Build(&domain.BatchResult{}, workbookBranches, Meta{})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DetailSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.33, round(10.0/3.0, 2))
	assert.Equal(t, 0.1, round(0.05, 1))
	assert.Equal(t, 12.0, round(12.0, 1))
}

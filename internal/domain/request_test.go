package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequisicaoRequest_AcceptsStringsAndNumbers(t *testing.T) {
	var req RequisicaoRequest
	err := json.Unmarshal([]byte(`{"produtosCodigos": [" 123456 ", 777, "AB1234", 1e3, 123.0, 12.5, -4]}`), &req)
	require.NoError(t, err)

	assert.Equal(t, []string{"123456", "777", "AB1234", "1000", "123", "12.5", "-4"}, req.Codes())
}

func TestProductCode_NumberOverflowIsRejected(t *testing.T) {
	var c ProductCode
	assert.Error(t, json.Unmarshal([]byte(`1e400`), &c))
}

func TestProductCode_RejectsOtherTypes(t *testing.T) {
	for _, raw := range []string{`null`, `true`, `{}`, `[]`} {
		var c ProductCode
		assert.Error(t, json.Unmarshal([]byte(raw), &c), raw)
	}
}

func TestViability_Label(t *testing.T) {
	assert.Equal(t, "Alta", ViabilityHigh.Label())
	assert.Equal(t, "Média", ViabilityMedium.Label())
	assert.Equal(t, "Baixa", ViabilityLow.Label())
	assert.Equal(t, "Indisponível", ViabilityUnavailable.Label())
}

func TestProductViabilityReport_Results(t *testing.T) {
	r := ProductViabilityReport{
		Stock:       map[string]int{"SV MATRIZ": 5},
		Giro:        map[string]float64{"SV MATRIZ": 1.5},
		Viabilidade: map[string]Viability{"SV MATRIZ": ViabilityMedium},
	}

	got := r.Results(DefaultBranches[:2])
	require.Len(t, got, 2)
	assert.Equal(t, ViabilityResult{Branch: "SV MATRIZ", Stock: 5, Giro: 1.5, Viability: ViabilityMedium}, got[0])
	assert.Equal(t, "SV FILIAL", got[1].Branch)
}

func TestBranchFields(t *testing.T) {
	fields := BranchFields(DefaultBranches)
	require.Len(t, fields, 8)
	assert.Equal(t, "qtestoque_empresa1", fields[0])
	assert.Equal(t, "qtestoque_empresa8", fields[7])
}

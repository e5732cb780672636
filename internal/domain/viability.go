package domain

// Viability is the transfer suitability tier of a branch's stock.
type Viability string

const (
	ViabilityHigh        Viability = "alta"
	ViabilityMedium      Viability = "media"
	ViabilityLow         Viability = "baixa"
	ViabilityUnavailable Viability = "indisponivel"
)

var viabilityLabels = map[Viability]string{
	ViabilityHigh:        "Alta",
	ViabilityMedium:      "Média",
	ViabilityLow:         "Baixa",
	ViabilityUnavailable: "Indisponível",
}

// Label returns a human-readable label for the tier.
func (v Viability) Label() string {
	if label, ok := viabilityLabels[v]; ok {
		return label
	}

	return string(v)
}

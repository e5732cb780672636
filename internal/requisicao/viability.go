package requisicao

import "github.com/develop-ac/requisicao-backend/internal/domain"

const (
	highSupplyMonths   = 6.0
	mediumSupplyMonths = 3.0
	// giroFloor stands in for a zero giro so a stocked item with no recent
	// sales gets a large but finite months-of-supply.
	giroFloor = 0.1
)

// MonthsOfSupply returns stock divided by giro, with giro floored at 0.1.
func MonthsOfSupply(stock int, giro float64) float64 {
	if giro <= 0 {
		giro = giroFloor
	}
	return float64(stock) / giro
}

// Classify maps on-hand stock and monthly giro to a viability tier.
func Classify(stock int, giro float64) domain.Viability {
	if stock <= 0 {
		return domain.ViabilityUnavailable
	}

	months := MonthsOfSupply(stock, giro)
	switch {
	case months > highSupplyMonths:
		return domain.ViabilityHigh
	case months > mediumSupplyMonths:
		return domain.ViabilityMedium
	default:
		return domain.ViabilityLow
	}
}

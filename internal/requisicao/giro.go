package requisicao

import (
	"github.com/develop-ac/requisicao-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// Giro returns the average monthly units of a product sold by a branch over
// the window: in-window lines whose channel matches the branch, summed and
// divided by three regardless of how many months had sales. Not rounded.
func Giro(lines []domain.SalesLine, branch string, w Window) float64 {
	return branchGiro(InWindow(lines, w), branch)
}

// InWindow keeps the lines whose emission date falls inside the window.
// Lines with unparseable dates are dropped and logged.
func InWindow(lines []domain.SalesLine, w Window) []domain.SalesLine {
	kept := make([]domain.SalesLine, 0, len(lines))
	for _, line := range lines {
		date, err := ParseEmissionDate(line.EmissionDate, w.Start.Location())
		if err != nil {
			log.Warn().
				Str("cdproduto", line.Code).
				Str("dtemissao", line.EmissionDate).
				Str("canal", line.Channel).
				Msg("requisicao: dropping sales line with unparseable date")
			continue
		}
		if w.Contains(date) {
			kept = append(kept, line)
		}
	}
	return kept
}

// branchGiro expects lines already restricted to the window.
func branchGiro(lines []domain.SalesLine, branch string) float64 {
	var total float64
	for _, line := range lines {
		if MatchesBranch(branch, line.Channel) {
			total += line.Quantity
		}
	}
	return total / windowMonths
}

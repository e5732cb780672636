package requisicao

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeBranchName strips diacritics, whitespace and punctuation and
// uppercases the rest: "Sv. Sobral — Matriz" becomes "SVSOBRALMATRIZ".
func NormalizeBranchName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// MatchesBranch reports whether a free-text sales channel refers to the
// canonical branch: after normalisation either name contains the other.
//
// Containment is loose on purpose. "SV SOBRAL" also matches
// "SV SOBRAL EXPRESS"; the sales system has no stable branch key to do better.
// Names that normalise to nothing never match.
func MatchesBranch(canonical, freeText string) bool {
	a := NormalizeBranchName(canonical)
	b := NormalizeBranchName(freeText)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

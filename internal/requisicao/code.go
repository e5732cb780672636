package requisicao

import "strings"

// FormatProductCode applies the store's zero-prefix convention: purely
// numeric codes get a single leading "0"; codes already starting with "0"
// and alphanumeric SKUs are returned unchanged.
func FormatProductCode(code string) string {
	if code == "" || strings.HasPrefix(code, "0") {
		return code
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return code
		}
	}
	return "0" + code
}

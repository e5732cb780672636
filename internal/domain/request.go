package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ProductCode accepts both JSON strings and JSON numbers.
type ProductCode string

func (c *ProductCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("product code must be a string or a number")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ProductCode(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product code must be a string or a number")
	}
	code, err := numberText(n)
	if err != nil {
		return err
	}
	*c = ProductCode(code)
	return nil
}

// numberText renders a JSON number in its shortest plain decimal form, so
// 1e3 and 1000.0 both become "1000".
func numberText(n json.Number) (string, error) {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("product code %s is not a representable number", n)
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// RequisicaoRequest is the body of the batch viability endpoints.
type RequisicaoRequest struct {
	ProductCodes []ProductCode `json:"produtosCodigos" binding:"required,min=1"`
}

// Codes returns the submitted codes as plain strings.
func (r RequisicaoRequest) Codes() []string {
	codes := make([]string, len(r.ProductCodes))
	for i, c := range r.ProductCodes {
		codes[i] = string(c)
	}
	return codes
}

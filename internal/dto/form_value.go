package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"pdv/internal/model"

	"github.com/shopspring/decimal"
)

// FormValue is a raw form field. The UI may send a JSON string, a number or
// null; the core coerces it defensively.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
	default:
		*v = FormValue(b)
	}
	return nil
}

func (v FormValue) Trimmed() string { return strings.TrimSpace(string(v)) }

// Decimal parses the value; ok is false when it is blank or not a number.
// A comma decimal separator is accepted.
func (v FormValue) Decimal() (d decimal.Decimal, ok bool) {
	s := strings.ReplaceAll(v.Trimmed(), ",", ".")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// DecimalOrZero is Decimal with non-numeric input mapped to zero.
func (v FormValue) DecimalOrZero() decimal.Decimal {
	d, _ := v.Decimal()
	return d
}

var maxQuantity = decimal.NewFromInt(model.MaxQuantity)

// Quantity is a non-negative whole number up to model.MaxQuantity; anything
// else is zero.
func (v FormValue) Quantity() int {
	q, _ := v.BoundedQuantity()
	return q
}

// BoundedQuantity is Quantity, with inRange false when the value is a number
// above model.MaxQuantity.
func (v FormValue) BoundedQuantity() (q int, inRange bool) {
	d, ok := v.Decimal()
	if !ok || !d.IsPositive() {
		return 0, true
	}
	if d.Truncate(0).GreaterThan(maxQuantity) {
		return 0, false
	}
	return int(d.IntPart()), true
}

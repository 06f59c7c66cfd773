package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Numeric is either a finite number or the empty placeholder shown while a
// field is being edited. The zero value is the empty placeholder.
type Numeric struct {
	value float64
	set   bool
}

// Number wraps a finite value. Non-finite input yields the empty placeholder.
func Number(v float64) Numeric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Numeric{}
	}
	return Numeric{value: v, set: true}
}

// Empty returns the "not yet entered" placeholder.
func Empty() Numeric {
	return Numeric{}
}

func (n Numeric) IsEmpty() bool {
	return !n.set
}

// Float64 returns the value and whether one is present.
func (n Numeric) Float64() (float64, bool) {
	return n.value, n.set
}

// OrZero collapses the placeholder to 0.
func (n Numeric) OrZero() float64 {
	if !n.set {
		return 0
	}
	return n.value
}

// String renders the value the way an input box shows it.
func (n Numeric) String() string {
	if !n.set {
		return ""
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte(`""`), nil
	}
	return json.Marshal(n.value)
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Numeric{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = CoerceNumeric(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// CoerceNumeric converts raw field input. Empty input stays empty so the form
// can show a blank box; input without a numeric prefix is dropped to empty
// as well instead of failing.
func CoerceNumeric(raw string) Numeric {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Empty()
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return Number(v)
	}
	prefix := numericPrefix.FindString(raw)
	if prefix == "" {
		return Empty()
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return Empty()
	}
	return Number(v)
}

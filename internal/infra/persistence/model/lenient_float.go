package model

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LenientFloat64 scans any numeric-looking column value. NULL, non-numeric text and
// non-finite values leave it invalid instead of failing the scan.
type LenientFloat64 struct {
	Float64 float64
	Valid   bool
}

// Scan implements sql.Scanner.
func (f *LenientFloat64) Scan(value any) error {
	f.Float64, f.Valid = 0, false

	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		f.set(v)
	case float32:
		f.set(float64(v))
	case int64:
		f.set(float64(v))
	case int32:
		f.set(float64(v))
	case int:
		f.set(float64(v))
	case []byte:
		f.parse(string(v))
	case string:
		f.parse(v)
	default:
		return errors.Errorf("unsupported numeric column type %T", value)
	}

	return nil
}

// Value implements driver.Valuer.
func (f LenientFloat64) Value() (driver.Value, error) {
	if !f.Valid {
		return nil, nil
	}

	return f.Float64, nil
}

// Ptr returns the value, or nil when invalid.
func (f LenientFloat64) Ptr() *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64

	return &v
}

// OrZero returns the value, or 0 when invalid.
func (f LenientFloat64) OrZero() float64 {
	if !f.Valid {
		return 0
	}

	return f.Float64
}

func (f *LenientFloat64) parse(s string) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return
	}
	f.set(v)
}

func (f *LenientFloat64) set(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	f.Float64, f.Valid = v, true
}

// UnmarshalJSON accepts JSON numbers, numeric strings and null. Any other value
// leaves it invalid.
func (f *LenientFloat64) UnmarshalJSON(data []byte) error {
	f.Float64, f.Valid = 0, false

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.WithStack(err)
	}

	switch val := v.(type) {
	case float64:
		f.set(val)
	case string:
		f.parse(val)
	}

	return nil
}

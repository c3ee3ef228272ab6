package database

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// PgVector stores an embedding as a pgvector-compatible column value. On
// Postgres the column type is VECTOR(n); on SQLite the same text literal
// "[0.1,0.2]" is persisted in a TEXT column, which keeps the mapper code
// identical across both drivers.
type PgVector struct {
	floats []float64
}

// NewPgVector copies floats into a new vector value.
func NewPgVector(floats []float64) PgVector {
	return PgVector{floats: append([]float64(nil), floats...)}
}

// Floats returns the vector elements. The result is a copy, and it is nil
// when the column was NULL.
func (v PgVector) Floats() []float64 {
	if v.floats == nil {
		return nil
	}
	return append([]float64(nil), v.floats...)
}

// Dimension returns the number of elements in the vector.
func (v PgVector) Dimension() int {
	return len(v.floats)
}

// Scan implements sql.Scanner for the vector text literal.
func (v *PgVector) Scan(value any) error {
	switch val := value.(type) {
	case nil:
		v.floats = nil
		return nil
	case string:
		return v.parse(val)
	case []byte:
		return v.parse(string(val))
	default:
		return fmt.Errorf("cannot scan %T into PgVector", value)
	}
}

func (v *PgVector) parse(raw string) error {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		// Zero-dimension literal, distinct from NULL.
		v.floats = []float64{}
		return nil
	}

	parts := strings.Split(raw, ",")
	floats := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("parse element %d: %w", i, err)
		}
		floats[i] = f
	}
	v.floats = floats
	return nil
}

// Value implements driver.Valuer.
func (v PgVector) Value() (driver.Value, error) {
	return v.String(), nil
}

// String renders the vector as a pgvector text literal, e.g. "[1,2.5,-3]".
func (v PgVector) String() string {
	elems := make([]string, len(v.floats))
	for i, f := range v.floats {
		elems[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return "[" + strings.Join(elems, ",") + "]"
}

package procedure

import "strings"

// Assign stores one column value into a record. The value is whatever the
// driver scanned: nil for NULL, []byte for text, int64, float64 or time.Time.
type Assign[T any] func(dst *T, value any)

// Shape maps result column names to assignments on T. Column names match
// case-insensitively; columns without an entry are ignored and fields without
// a column keep their zero value.
type Shape[T any] map[string]Assign[T]

// assigners resolves the shape against the columns of a result set.
func (s Shape[T]) assigners(columns []string) []Assign[T] {
	folded := make(map[string]Assign[T], len(s))
	for name, fn := range s {
		folded[strings.ToLower(name)] = fn
	}

	out := make([]Assign[T], len(columns))
	for i, col := range columns {
		out[i] = folded[strings.ToLower(col)]
	}
	return out
}

package utils

import (
	"bytes"
	"fmt"
	"time"
)

// DateTimeLayout is the wire format of every timestamp in API responses.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime is a time.Time that marshals to JSON using DateTimeLayout.
// The zero value marshals to null.
type DateTime time.Time

// MarshalJSON implements json.Marshaler.
func (d DateTime) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(DateTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = DateTime{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid datetime %s", data)
	}
	t, err := time.ParseInLocation(DateTimeLayout, string(data[1:len(data)-1]), time.Local)
	if err != nil {
		return fmt.Errorf("invalid datetime %s: %w", data, err)
	}
	*d = DateTime(t)
	return nil
}

// String formats the value with DateTimeLayout.
func (d DateTime) String() string {
	return time.Time(d).Format(DateTimeLayout)
}

package sheets

import (
	"fmt"
	"strconv"
)

// Cell provides type-safe access to Google Sheets cell values.
// The Google Sheets API exchanges [][]interface{}; a Cell wraps one of those
// values so the rest of the package never handles interface{} directly.
// The zero Cell is absent: it is sent as null and leaves the target cell
// untouched.
type Cell struct {
	raw interface{}
}

// NewCell creates a Cell from a raw interface{} value from Google Sheets API
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// TextCell creates a present cell holding s.
func TextCell(s string) Cell {
	return Cell{raw: s}
}

// IntCell creates a present cell holding the decimal form of i.
func IntCell(i int) Cell {
	return Cell{raw: strconv.Itoa(i)}
}

// String returns the cell value as a string
func (c Cell) String() string {
	if c.raw == nil {
		return ""
	}
	if s, ok := c.raw.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", c.raw)
}

// Present reports whether the cell carries a value, including "".
func (c Cell) Present() bool {
	return c.raw != nil
}

// IsEmpty returns true if the cell contains nil or empty string
func (c Cell) IsEmpty() bool {
	return c.raw == nil || c.raw == ""
}

// Raw returns the underlying interface{} value for Google Sheets API calls.
// This should only be used at the API boundary.
func (c Cell) Raw() interface{} {
	return c.raw
}

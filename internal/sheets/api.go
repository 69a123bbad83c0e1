package sheets

import (
	"context"
)

// SheetsAPI defines the raw value operations the exporter needs from
// Google Sheets.
//
// Note on interface{} usage:
// The Google Sheets API (google.golang.org/api/sheets/v4) uses [][]interface{}
// for cell values. This is outside our control and required for API compatibility.
// To minimize unsafe interface{} usage in our codebase:
// - Use the Cell type wrapper for type-safe value extraction
// - Keep interface{} constrained to this API boundary layer
// - Never expose interface{} in business logic or domain layers
type SheetsAPI interface {
	// ReadSheet reads values from a sheet range.
	// Returns [][]interface{} as required by Google Sheets API.
	// Use NewCell() to wrap values for type-safe access.
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)

	// BatchUpdateRanges writes several single-row ranges in one call with
	// RAW value input.
	BatchUpdateRanges(ctx context.Context, spreadsheetID string, ranges []RangeValues) error
}

// RangeValues is one row of values destined for an A1 range.
type RangeValues struct {
	Range  string
	Values []Cell
}

// Compile-time interface compliance check
var _ SheetsAPI = (*Client)(nil)

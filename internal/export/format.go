package export

import "strings"

// Format selects an export strategy.
type Format int

const (
	FormatJSON Format = iota
	FormatSheets
	FormatUdonarium
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatSheets:
		return "sheets"
	case FormatUdonarium:
		return "udonarium"
	}
	return "unknown"
}

// ParseFormat accepts json, sheets (also google-sheets, googlesheets) and
// udonarium, in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "sheets", "google-sheets", "googlesheets":
		return FormatSheets, nil
	case "udonarium":
		return FormatUdonarium, nil
	}
	return 0, newError(KindUnsupportedFormat, "Unknown export format: '%s'. Supported: json, sheets, udonarium", s)
}

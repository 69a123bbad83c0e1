package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"trpg_json/internal/app"
	"trpg_json/internal/config"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	// FirstDataRow is the first row below the sheet's two header rows.
	FirstDataRow = 3

	// LastDataRow bounds the free-row search.
	LastDataRow = 1000

	minSpreadsheetIDLength = 10

	// minTokenLifetime is how long a token must stay valid to be accepted.
	minTokenLifetime = 60 * time.Second
)

var (
	// ErrInvalidSpreadsheetID is returned for empty or too-short ids.
	ErrInvalidSpreadsheetID = errors.New("invalid spreadsheet ID")

	// ErrNoEmptyRows is returned when no odd row is free up to LastDataRow.
	ErrNoEmptyRows = errors.New("failed to find empty row: no empty rows available")

	// ErrInvalidToken is returned by NewClient for missing or expired tokens.
	ErrInvalidToken = errors.New("access token is missing or expired")
)

// RequestFailedError carries a non-success response from the Sheets API.
type RequestFailedError struct {
	Status int
	Body   string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.Body)
}

// Client implements the SheetsAPI interface using Google Sheets API.
//
// Note: This client uses [][]interface{} as required by the Google Sheets API.
// This is the only layer where interface{} should appear. All other code should
// use the Cell type wrapper for type-safe access to cell values.
type Client struct {
	service  *sheets.Service
	timeouts config.TimeoutConfig
	calls    *CallTracker
}

// NewClient creates a Sheets client that sends token as its bearer
// credential. Extra options (an endpoint override in tests) are appended.
func NewClient(ctx context.Context, token *oauth2.Token, opts ...option.ClientOption) (*Client, error) {
	if !usableToken(token) {
		return nil, ErrInvalidToken
	}

	opts = append([]option.ClientOption{option.WithTokenSource(oauth2.StaticTokenSource(token))}, opts...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:  service,
		timeouts: config.DefaultTimeoutConfig,
		calls:    NewCallTracker(),
	}, nil
}

// usableToken reports whether token has an access token and, when it carries
// an expiry, at least minTokenLifetime left.
func usableToken(token *oauth2.Token) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	return token.Expiry.IsZero() || time.Until(token.Expiry) > minTokenLifetime
}

// WithTimeouts replaces the per-call timeouts.
func (c *Client) WithTimeouts(t config.TimeoutConfig) *Client {
	c.timeouts = t
	return c
}

// Calls returns the requests this client has sent so far.
func (c *Client) Calls() CallStats {
	return c.calls.Stats()
}

// LogCallSummary logs the requests this client has sent so far.
func (c *Client) LogCallSummary() {
	c.calls.LogSummary()
}

// ValidateSpreadsheetID rejects empty ids and ids shorter than ten characters.
func ValidateSpreadsheetID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: Spreadsheet ID cannot be empty", ErrInvalidSpreadsheetID)
	}
	if utf8.RuneCountInString(id) < minSpreadsheetIDLength {
		return fmt.Errorf("%w: Spreadsheet ID is too short", ErrInvalidSpreadsheetID)
	}
	return nil
}

// AppendMonsterData writes the creature's rows into the first free block of
// sheetName.
func (c *Client) AppendMonsterData(ctx context.Context, spreadsheetID, sheetName string, creature *app.Creature) error {
	if err := ValidateSpreadsheetID(spreadsheetID); err != nil {
		return err
	}

	startRow, err := c.FindEmptyRow(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}

	rows := TransformMonster(creature, startRow)

	log.Debug().
		Str("monster", creature.Name).
		Int("start_row", startRow).
		Int("rows", len(rows)).
		Msg("Writing monster rows")

	return c.WriteRows(ctx, spreadsheetID, sheetName, rows)
}

// FindEmptyRow returns the first odd row, starting at FirstDataRow, that
// lies below every populated cell of column A.
func (c *Client) FindEmptyRow(ctx context.Context, spreadsheetID, sheetName string) (int, error) {
	values, err := c.ReadSheet(ctx, spreadsheetID, fmt.Sprintf("%s!A%d:A%d", sheetName, FirstDataRow, LastDataRow))
	if err != nil {
		return 0, err
	}

	return nextFreeRow(values)
}

// nextFreeRow picks the destination row from a column-A read that starts at
// FirstDataRow.
func nextFreeRow(values [][]interface{}) (int, error) {
	populated := 0
	for i, row := range values {
		if len(row) > 0 && !NewCell(row[0]).IsEmpty() {
			populated = i + 1
		}
	}

	row := FirstDataRow + 2*((populated+1)/2)
	if row > LastDataRow {
		return 0, ErrNoEmptyRows
	}
	return row, nil
}

// WriteRows submits every row as its own A1 range in a single batched
// update. Only the span between the first and last present cell is sent.
func (c *Client) WriteRows(ctx context.Context, spreadsheetID, sheetName string, rows []SheetOutput) error {
	ranges := make([]RangeValues, 0, len(rows))
	for _, row := range rows {
		first, last, ok := row.Span()
		if !ok {
			continue
		}
		ranges = append(ranges, RangeValues{
			Range:  a1Range(sheetName, row.RowNumber, first, last),
			Values: row.Values[first : last+1],
		})
	}

	if len(ranges) == 0 {
		return nil
	}
	return c.BatchUpdateRanges(ctx, spreadsheetID, ranges)
}

// ReadSheet reads values from the specified sheet range.
// Returns [][]interface{} as mandated by Google Sheets API.
// Wrap returned values with NewCell() for type-safe access.
func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	ctx, cancel := config.WithTimeout(ctx, c.timeouts.SheetRead)
	defer cancel()

	c.calls.RecordCall(opValuesGet)
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", apiError(err))
	}

	return resp.Values, nil
}

// BatchUpdateRanges writes all ranges in one values:batchUpdate call.
func (c *Client) BatchUpdateRanges(ctx context.Context, spreadsheetID string, ranges []RangeValues) error {
	ctx, cancel := config.WithTimeout(ctx, c.timeouts.SheetWrite)
	defer cancel()

	data := make([]*sheets.ValueRange, 0, len(ranges))
	for _, r := range ranges {
		row := make([]interface{}, len(r.Values))
		for i, cell := range r.Values {
			row[i] = cell.Raw()
		}
		data = append(data, &sheets.ValueRange{
			Range:          r.Range,
			MajorDimension: "ROWS",
			Values:         [][]interface{}{row},
		})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}

	c.calls.RecordCall(opValuesBatchUpdate)
	_, err := c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write values: %w", apiError(err))
	}

	return nil
}

// apiError converts a googleapi.Error into a RequestFailedError.
func apiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		body := gerr.Body
		if body == "" {
			body = gerr.Message
		}
		return &RequestFailedError{Status: gerr.Code, Body: body}
	}
	return err
}

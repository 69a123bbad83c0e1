package export

import (
	"context"
	"errors"

	"trpg_json/internal/app"
	"trpg_json/internal/auth"
	"trpg_json/internal/sheets"

	"github.com/rs/zerolog/log"
)

// callSummarizer is implemented by appenders that count their requests.
type callSummarizer interface {
	LogCallSummary()
}

// SheetsExporter appends each creature to a Google Sheets worksheet.
type SheetsExporter struct {
	deps Dependencies
}

func (e *SheetsExporter) Name() string {
	return "Google Sheets Exporter"
}

// Export authenticates if no credentials are stored, then appends creatures
// one at a time. The first failure aborts the export.
func (e *SheetsExporter) Export(ctx context.Context, creatures []app.Creature, cfg Config) error {
	if err := sheets.ValidateSpreadsheetID(cfg.Destination); err != nil {
		return wrap(err, KindInvalidDestination, "You can find your spreadsheet ID in the URL: https://docs.google.com/spreadsheets/d/<SPREADSHEET_ID>/edit")
	}
	if len(creatures) == 0 {
		return newError(KindInvalidDestination, "Cannot export empty monster list. Please filter data first.")
	}

	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = app.DefaultSheetName
	}

	creds, err := e.credentials(ctx)
	if err != nil {
		return err
	}

	appender, err := e.deps.NewAppender(ctx, creds)
	if err != nil {
		return wrap(err, KindAuthentication, "Failed to create Sheets client")
	}

	log.Debug().Int64("expected_calls", sheets.EstimateCalls(len(creatures))).Msg("Appending monsters")

	for i := range creatures {
		log.Info().
			Int("index", i+1).
			Int("total", len(creatures)).
			Str("monster", creatures[i].Name).
			Msg("Exporting monster")

		if err := appender.AppendMonsterData(ctx, cfg.Destination, sheetName, &creatures[i]); err != nil {
			return wrap(err, sheetsErrorKind(err), "Export failed for "+creatures[i].Name)
		}
	}

	if s, ok := appender.(callSummarizer); ok {
		s.LogCallSummary()
	}

	log.Info().
		Int("monsters", len(creatures)).
		Str("url", "https://docs.google.com/spreadsheets/d/"+cfg.Destination+"/edit").
		Msg("Successfully exported monsters to Google Sheets")
	return nil
}

// credentials loads stored credentials, running the browser flow when none
// exist. Any other load failure removes the stored file.
func (e *SheetsExporter) credentials(ctx context.Context) (*auth.Credentials, error) {
	creds, err := e.deps.Credentials.LoadCredentials()
	if err == nil {
		log.Info().Msg("Loaded existing credentials")
		return creds, nil
	}

	if !errors.Is(err, auth.ErrMissingCredentials) {
		log.Warn().Err(err).Msg("Removing invalid credentials")
		if clearErr := e.deps.Credentials.ClearCredentials(); clearErr != nil {
			log.Error().Err(clearErr).Msg("Failed to remove credentials")
		}
		return nil, wrap(err, KindAuthentication, "Failed to load credentials")
	}

	log.Info().Msg("No credentials found. Starting OAuth flow")
	creds, err = e.deps.Credentials.Authenticate(ctx)
	if err != nil {
		return nil, wrap(err, KindAuthentication,
			"OAuth authentication failed. Ensure GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are set and the redirect URI is registered")
	}
	return creds, nil
}

func sheetsErrorKind(err error) Kind {
	switch {
	case errors.Is(err, sheets.ErrInvalidSpreadsheetID):
		return KindInvalidDestination
	case errors.Is(err, sheets.ErrInvalidToken):
		return KindAuthentication
	}
	return KindRemoteAPI
}

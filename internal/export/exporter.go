package export

import (
	"context"

	"trpg_json/internal/app"
	"trpg_json/internal/auth"
	"trpg_json/internal/sheets"
)

// Config describes one export call.
type Config struct {
	// Destination is a file path (json), a spreadsheet id (sheets) or an
	// archive path (udonarium).
	Destination string
	Format      string
	// SheetName is the worksheet the sheets strategy appends to.
	SheetName string
}

// Exporter is one export strategy.
type Exporter interface {
	Name() string
	Export(ctx context.Context, creatures []app.Creature, cfg Config) error
}

// CredentialProvider is the part of auth.Manager the sheets strategy uses.
type CredentialProvider interface {
	LoadCredentials() (*auth.Credentials, error)
	Authenticate(ctx context.Context) (*auth.Credentials, error)
	ClearCredentials() error
}

// MonsterAppender writes one creature into a worksheet.
type MonsterAppender interface {
	AppendMonsterData(ctx context.Context, spreadsheetID, sheetName string, creature *app.Creature) error
}

// AppenderFactory builds an appender authorized by creds.
type AppenderFactory func(ctx context.Context, creds *auth.Credentials) (MonsterAppender, error)

// Dependencies are the collaborators of the sheets strategy.
type Dependencies struct {
	Credentials CredentialProvider
	NewAppender AppenderFactory
}

// DefaultDependencies wires the real OAuth manager and Sheets client.
func DefaultDependencies(configDir string) Dependencies {
	return Dependencies{
		Credentials: auth.NewManager(configDir),
		NewAppender: func(ctx context.Context, creds *auth.Credentials) (MonsterAppender, error) {
			client, err := sheets.NewClient(ctx, creds.Token())
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

// Compile-time interface compliance checks
var (
	_ CredentialProvider = (*auth.Manager)(nil)
	_ MonsterAppender    = (*sheets.Client)(nil)
	_ Exporter           = (*JSONExporter)(nil)
	_ Exporter           = (*SheetsExporter)(nil)
	_ Exporter           = (*UdonariumExporter)(nil)
)

// NewExporter returns the strategy for format.
func NewExporter(format Format, deps Dependencies) (Exporter, error) {
	switch format {
	case FormatJSON:
		return &JSONExporter{}, nil
	case FormatSheets:
		return &SheetsExporter{deps: deps}, nil
	case FormatUdonarium:
		return &UdonariumExporter{}, nil
	}
	return nil, newError(KindUnsupportedFormat, "Export format not supported: %s", format)
}

package export

import (
	"context"

	"trpg_json/internal/app"

	"github.com/rs/zerolog/log"
)

// Coordinator picks the strategy for a format and runs it.
type Coordinator struct {
	deps Dependencies
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(deps Dependencies) *Coordinator {
	return &Coordinator{deps: deps}
}

// Export runs one export. Spreadsheet and archive exports reject an empty
// list before touching any destination; the JSON export writes [].
func (c *Coordinator) Export(ctx context.Context, creatures []app.Creature, cfg Config) error {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	if format != FormatJSON && len(creatures) == 0 {
		return newError(KindInvalidDestination, "Cannot export empty monster list. Please filter data first.")
	}

	exporter, err := NewExporter(format, c.deps)
	if err != nil {
		return err
	}

	log.Info().
		Str("exporter", exporter.Name()).
		Str("destination", cfg.Destination).
		Int("monsters", len(creatures)).
		Msg("Starting export")

	return exporter.Export(ctx, creatures, cfg)
}

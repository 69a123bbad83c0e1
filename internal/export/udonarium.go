package export

import (
	"context"
	"os"
	"path/filepath"

	"trpg_json/internal/app"
	"trpg_json/internal/udonarium"

	"github.com/rs/zerolog/log"
)

// UdonariumExporter packs one character sheet per body part into a zip.
type UdonariumExporter struct{}

func (e *UdonariumExporter) Name() string {
	return "Udonarium Exporter"
}

// Export creates the archive's parent directory if needed. The first
// failing creature aborts the export.
func (e *UdonariumExporter) Export(ctx context.Context, creatures []app.Creature, cfg Config) error {
	if cfg.Destination == "" {
		return newError(KindInvalidDestination, "Output path cannot be empty")
	}
	if len(creatures) == 0 {
		return newError(KindInvalidDestination, "Cannot export empty monster list")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Destination), 0o755); err != nil {
		return wrap(err, KindIO, "failed to create output directory")
	}

	var entries []udonarium.Entry
	for i := range creatures {
		if err := ctx.Err(); err != nil {
			return wrap(err, KindIO, "export cancelled")
		}

		creatureEntries, err := udonarium.Entries(&creatures[i])
		if err != nil {
			return wrap(err, KindSerialization, "XML generation failed for "+creatures[i].Name)
		}
		entries = append(entries, creatureEntries...)
	}

	if err := udonarium.CreateArchive(cfg.Destination, entries); err != nil {
		return wrap(err, KindIO, "Failed to create ZIP file")
	}

	log.Info().
		Str("path", cfg.Destination).
		Int("monsters", len(creatures)).
		Int("sheets", len(entries)).
		Msg("Udonarium export complete")
	return nil
}

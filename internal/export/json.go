package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"trpg_json/internal/app"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// JSONExporter writes the creatures as a pretty-printed JSON array.
type JSONExporter struct{}

func (e *JSONExporter) Name() string {
	return "JSON Exporter"
}

// Export writes to cfg.Destination. The parent directory must exist.
func (e *JSONExporter) Export(ctx context.Context, creatures []app.Creature, cfg Config) error {
	dir := filepath.Dir(cfg.Destination)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return newError(KindInvalidDestination, "Output directory does not exist: %s", dir)
	}

	if creatures == nil {
		creatures = []app.Creature{}
	}

	data, err := json.MarshalIndent(creatures, "", "  ")
	if err != nil {
		return wrap(err, KindSerialization, "failed to encode monsters")
	}

	if err := os.WriteFile(cfg.Destination, data, 0o644); err != nil {
		return wrap(err, KindIO, "failed to write "+cfg.Destination)
	}

	log.Info().Str("path", cfg.Destination).Int("monsters", len(creatures)).Msg("JSON export complete")
	return nil
}

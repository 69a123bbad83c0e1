package store

import (
	"errors"
	"fmt"
	"os"

	"trpg_json/internal/app"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

var (
	// ErrNotArray means a data file's root element is not a JSON array.
	ErrNotArray = errors.New("JSON root element is not an array")
	// ErrNoDataFiles means no data file paths were configured.
	ErrNoDataFiles = errors.New("no data files configured")
)

// LoadCreatures reads every file in order and concatenates their records.
func LoadCreatures(paths []string) ([]app.Creature, error) {
	return loadAll[app.Creature](paths)
}

// LoadSpells reads every file in order and concatenates their records.
func LoadSpells(paths []string) ([]app.Spell, error) {
	return loadAll[app.Spell](paths)
}

// SaveCreatures writes creatures to path as a pretty-printed JSON array,
// replacing the file's contents.
func SaveCreatures(path string, creatures []app.Creature) error {
	if creatures == nil {
		creatures = []app.Creature{}
	}

	data, err := json.MarshalIndent(creatures, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode monsters: %w", err)
	}

	// A failed write leaves the previous file in place.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write data file %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace data file %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("records", len(creatures)).Msg("Saved data file")
	return nil
}

// LoadCreature reads a single creature object from path.
func LoadCreature(path string) (*app.Creature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var creature app.Creature
	if err := json.Unmarshal(data, &creature); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if creature.Name == "" {
		return nil, fmt.Errorf("%s: monster name is required", path)
	}
	return &creature, nil
}

func loadAll[T any](paths []string) ([]T, error) {
	if len(paths) == 0 {
		return nil, ErrNoDataFiles
	}

	var records []T
	for _, path := range paths {
		loaded, err := loadFile[T](path)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Int("records", len(loaded)).Msg("Loaded data file")
		records = append(records, loaded...)
	}
	return records, nil
}

func loadFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse data file %s: invalid JSON", path)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotArray)
	}

	items := root.Array()
	records := make([]T, 0, len(items))
	for i, item := range items {
		var record T
		if err := json.Unmarshal([]byte(item.Raw), &record); err != nil {
			return nil, fmt.Errorf("%s: invalid record at index %d: %w", path, i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

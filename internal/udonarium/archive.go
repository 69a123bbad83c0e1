package udonarium

import (
	"fmt"
	"os"

	"trpg_json/internal/app"
	"trpg_json/internal/domain/monster"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog/log"
)

// Entry is one named document inside an archive.
type Entry struct {
	Name    string
	Content string
}

// Entries renders one "{file name}.xml" document per part of c.
func Entries(c *app.Creature) ([]Entry, error) {
	transformed := Transform(c, monster.NameParts(c))

	entries := make([]Entry, 0, len(transformed.Parts))
	for i, part := range transformed.Parts {
		doc, err := GenerateXML(transformed, i)
		if err != nil {
			return nil, fmt.Errorf("failed to generate XML for %s: %w", part.FileName, err)
		}

		log.Debug().
			Str("monster", c.Name).
			Str("file", part.FileName).
			Bool("core", part.Core).
			Msg("Generated character sheet")

		entries = append(entries, Entry{Name: part.FileName + ".xml", Content: doc})
	}

	return entries, nil
}

// CreateArchive writes entries into a new zip file at path. The parent
// directory must exist. On error the file may be left incomplete.
func CreateArchive(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", path, err)
	}

	for _, name := range duplicateNames(entries) {
		log.Warn().Str("entry", name).Msg("Archive contains more than one entry with this name; monster names repeat in the export")
	}

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("failed to add %s to archive: %w", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Content)); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("failed to write %s: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}

	log.Info().Str("path", path).Int("entries", len(entries)).Msg("Archive written")
	return nil
}

// duplicateNames lists entry names that occur more than once, in first-seen
// order.
func duplicateNames(entries []Entry) []string {
	seen := make(map[string]int, len(entries))
	var dups []string
	for _, e := range entries {
		seen[e.Name]++
		if seen[e.Name] == 2 {
			dups = append(dups, e.Name)
		}
	}
	return dups
}

package monster

import (
	"strconv"

	"trpg_json/internal/app"
)

// PartName is the file name and display name assigned to one body part.
type PartName struct {
	FileName    string
	DisplayName string
}

// PartNamer assigns distinct file names to a creature's parts. Parts that
// share a name get a zero-based occurrence suffix; their display names stay
// identical.
type PartNamer struct {
	counts map[string]int
}

// NewPartNamer counts how many parts carry each name, including "".
func NewPartNamer(parts []app.Part) *PartNamer {
	counts := make(map[string]int, len(parts))
	for _, p := range parts {
		counts[p.Name]++
	}
	return &PartNamer{counts: counts}
}

// Names returns one PartName per part, in order.
func (n *PartNamer) Names(parts []app.Part, creatureName string) []PartName {
	seen := make(map[string]int, len(n.counts))
	names := make([]PartName, 0, len(parts))

	for _, p := range parts {
		occurrence := seen[p.Name]
		seen[p.Name]++
		names = append(names, n.name(creatureName, p, occurrence))
	}

	return names
}

func (n *PartNamer) name(creatureName string, p app.Part, occurrence int) PartName {
	if p.Name == "" {
		if p.IsCore() {
			return PartName{FileName: creatureName, DisplayName: creatureName}
		}
		indexed := creatureName + "_" + strconv.Itoa(occurrence)
		return PartName{FileName: indexed, DisplayName: indexed}
	}

	display := DisplayName(creatureName, p.Name)
	if n.counts[p.Name] > 1 {
		return PartName{
			FileName:    creatureName + "_" + p.Name + "_" + strconv.Itoa(occurrence),
			DisplayName: display,
		}
	}
	return PartName{FileName: creatureName + "_" + p.Name, DisplayName: display}
}

// NameParts is a shorthand for NewPartNamer(parts).Names(parts, name).
func NameParts(c *app.Creature) []PartName {
	return NewPartNamer(c.Parts).Names(c.Parts, c.Name)
}

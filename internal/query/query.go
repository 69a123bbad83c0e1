package query

import (
	"strings"

	"trpg_json/internal/app"
)

// CreatureFilter selects creatures. Zero-value fields match everything.
type CreatureFilter struct {
	Name     string // substring
	Level    *int
	Category string
}

// Empty reports whether no condition is set.
func (f CreatureFilter) Empty() bool {
	return f.Name == "" && f.Level == nil && f.Category == ""
}

func (f CreatureFilter) Match(c *app.Creature) bool {
	if f.Name != "" && !strings.Contains(c.Name, f.Name) {
		return false
	}
	if f.Level != nil && c.Level != *f.Level {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	return true
}

// Creatures returns the matching creatures in input order.
func Creatures(creatures []app.Creature, f CreatureFilter) []app.Creature {
	var out []app.Creature
	for i := range creatures {
		if f.Match(&creatures[i]) {
			out = append(out, creatures[i])
		}
	}
	return out
}

// ExactName returns the index of the first creature named name.
func ExactName(creatures []app.Creature, name string) (int, bool) {
	for i := range creatures {
		if creatures[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// WithoutName returns creatures minus every record named name.
func WithoutName(creatures []app.Creature, name string) []app.Creature {
	out := make([]app.Creature, 0, len(creatures))
	for _, c := range creatures {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}

// SpellFilter selects spells. Zero-value fields match everything.
type SpellFilter struct {
	Name   string // substring
	School string
}

// Empty reports whether no condition is set.
func (f SpellFilter) Empty() bool {
	return f.Name == "" && f.School == ""
}

func (f SpellFilter) Match(s *app.Spell) bool {
	if f.Name != "" && !strings.Contains(s.Name, f.Name) {
		return false
	}
	return f.School == "" || s.School == f.School
}

// Spells returns the matching spells in input order.
func Spells(spells []app.Spell, f SpellFilter) []app.Spell {
	var out []app.Spell
	for i := range spells {
		if f.Match(&spells[i]) {
			out = append(out, spells[i])
		}
	}
	return out
}

package palette

import (
	"fmt"
	"unicode/utf8"

	"trpg_json/internal/app"
)

// ModifierPlaceholder is left in regular palettes for the chat tool to fill.
const ModifierPlaceholder = "{行使修正}"

// details are the fields shared by both palette shapes.
type details struct {
	mp, target, duration, rng, effect string
}

func extract(fields app.Fields) (details, error) {
	var d details
	var err error

	if d.mp, err = MP(fields); err != nil {
		return d, err
	}
	if d.target, err = Target(fields); err != nil {
		return d, err
	}
	if d.duration, err = Duration(fields); err != nil {
		return d, err
	}
	if d.rng, err = Range(fields); err != nil {
		return d, err
	}
	if d.effect, err = Effect(fields); err != nil {
		return d, err
	}
	return d, nil
}

func (d details) line(name string) string {
	return fmt.Sprintf("%s / MP:%s / 対象:%s / 射程:%s / 時間:%s / %s", name, d.mp, d.target, d.rng, d.duration, d.effect)
}

// MagicCategory appends "魔法" to two-character schools ("真語" becomes
// "真語魔法"); longer or shorter names are used as is.
func MagicCategory(school string) string {
	if utf8.RuneCountInString(school) == 2 {
		return school + "魔法"
	}
	return school
}

// Render builds the chat palette line for spell. Support spells render
// without a dice roll; every other spell starts with
// "2d+{category}+{行使修正}".
func Render(spell app.Spell) (string, error) {
	if spell.Name == "" {
		return "", ErrMissingName
	}

	if IsSupport(spell.Fields) {
		return renderSupport(spell)
	}
	return renderRegular(spell)
}

func renderSupport(spell app.Spell) (string, error) {
	d, err := extract(spell.Fields)
	if err != nil {
		return "", err
	}
	return d.line(spell.Name), nil
}

func renderRegular(spell app.Spell) (string, error) {
	if spell.School == "" {
		return "", ErrMissingSchool
	}

	d, err := extract(spell.Fields)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("2d+{%s}+%s  %s", MagicCategory(spell.School), ModifierPlaceholder, d.line(spell.Name)), nil
}

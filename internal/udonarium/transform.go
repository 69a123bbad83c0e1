package udonarium

import (
	"trpg_json/internal/app"
	"trpg_json/internal/domain/monster"
)

// TransformedMonster is the per-export view of a creature used to render
// character sheets. Statistics are still nominal.
type TransformedMonster struct {
	Name            string
	Category        string
	Level           int
	Fame            int
	Initiative      int
	CommonAbilities string
	Parts           []TransformedPart
}

// TransformedPart is one renderable body part.
type TransformedPart struct {
	FileName         string
	DisplayName      string
	HP               int
	MP               int
	Armor            int
	Hit              int
	Dodge            int
	Damage           int
	LifeResistance   int
	MentalResistance int
	SpecialAbilities string
	Core             bool
	Weakness         string
	WeaknessValue    int
}

// Transform projects c onto the render view. names must come from
// monster.NameParts for the same creature; missing entries leave the part
// unnamed.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func Transform(c *app.Creature, names []monster.PartName) TransformedMonster {
	parts := make([]TransformedPart, 0, len(c.Parts))

	for i, p := range c.Parts {
		var name monster.PartName
		if i < len(names) {
			name = names[i]
		}

		part := TransformedPart{
			FileName:         name.FileName,
			DisplayName:      name.DisplayName,
			HP:               deref(p.HP),
			MP:               max(p.MP, 0),
			Armor:            p.Armor,
			Hit:              deref(p.Hit),
			Dodge:            deref(p.Dodge),
			Damage:           deref(p.Damage),
			LifeResistance:   c.LifeResistance,
			MentalResistance: c.MentalResistance,
			SpecialAbilities: p.SpecialAbilities,
			Core:             p.IsCore(),
		}
		if part.Core {
			part.Weakness = c.Weakness
			part.WeaknessValue = c.WeaknessValue
		}

		parts = append(parts, part)
	}

	return TransformedMonster{
		Name:            c.Name,
		Category:        c.Category,
		Level:           c.Level,
		Fame:            c.Fame,
		Initiative:      c.Initiative,
		CommonAbilities: c.CommonAbilities,
		Parts:           parts,
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

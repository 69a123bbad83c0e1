package udonarium

import (
	"testing"

	"trpg_json/internal/app"
	"trpg_json/internal/domain/monster"
)

func intPtr(i int) *int { return &i }

func testMonster() *app.Creature {
	return &app.Creature{
		Category:         "蛮族",
		Level:            6,
		Name:             "テストモンスター",
		Initiative:       14,
		CommonAbilities:  "飛行",
		Weakness:         "属性ダメージ+3",
		WeaknessValue:    17,
		LifeResistance:   16,
		Fame:             14,
		MentalResistance: 16,
		Parts: []app.Part{
			{HP: intPtr(50), MP: 50, Core: true, Hit: intPtr(15), Dodge: intPtr(15), Damage: intPtr(6), Armor: 5},
		},
	}
}

func hydra() *app.Creature {
	return &app.Creature{
		Category:         "幻獣",
		Level:            9,
		Name:             "ヒドラ",
		Initiative:       15,
		CommonAbilities:  "再生",
		Weakness:         "炎属性ダメージ+3",
		WeaknessValue:    20,
		LifeResistance:   18,
		MentalResistance: 17,
		Fame:             15,
		Parts: []app.Part{
			{HP: intPtr(80), MP: 20, Name: "胴体", Core: true, Hit: intPtr(14), Dodge: intPtr(13), Damage: intPtr(10), Armor: 8, SpecialAbilities: "丸呑み"},
			{HP: nil, MP: app.UnknownMP, Name: "首", Hit: intPtr(16), Damage: intPtr(12), Armor: 6},
			{HP: intPtr(40), MP: app.UnknownMP, Name: "首", Hit: intPtr(16), Damage: intPtr(12), Armor: 6},
		},
	}
}

func TestTransform(t *testing.T) {
	c := hydra()
	m := Transform(c, monster.NameParts(c))

	if m.Name != "ヒドラ" || m.Category != "幻獣" || m.Level != 9 || m.Fame != 15 || m.Initiative != 15 {
		t.Errorf("Unexpected creature fields: %+v", m)
	}
	if len(m.Parts) != 3 {
		t.Fatalf("Expected 3 parts, got %d", len(m.Parts))
	}

	core := m.Parts[0]
	if !core.Core || core.Weakness != "炎属性ダメージ+3" || core.WeaknessValue != 20 {
		t.Errorf("Core part should carry weakness, got %+v", core)
	}
	if core.Hit != 14 || core.Dodge != 13 {
		t.Errorf("Stats must stay nominal at transform time, got hit %d dodge %d", core.Hit, core.Dodge)
	}
	if core.FileName != "ヒドラ_胴体" || core.DisplayName != "ヒドラ\n(胴体)" {
		t.Errorf("Unexpected names %q %q", core.FileName, core.DisplayName)
	}

	neck := m.Parts[1]
	if neck.Core || neck.Weakness != "" || neck.WeaknessValue != 0 {
		t.Errorf("Non-core part must not carry weakness, got %+v", neck)
	}
	if neck.HP != 0 {
		t.Errorf("Expected missing HP to default to 0, got %d", neck.HP)
	}
	if neck.MP != 0 {
		t.Errorf("Expected MP sentinel to map to 0, got %d", neck.MP)
	}
	if neck.Dodge != 0 {
		t.Errorf("Expected missing dodge to default to 0, got %d", neck.Dodge)
	}
	if neck.FileName != "ヒドラ_首_0" || m.Parts[2].FileName != "ヒドラ_首_1" {
		t.Errorf("Unexpected duplicate file names %q %q", neck.FileName, m.Parts[2].FileName)
	}

	for i, p := range m.Parts {
		if p.LifeResistance != 18 || p.MentalResistance != 17 {
			t.Errorf("Part %d: resistances must be copied from the creature, got %d/%d", i, p.LifeResistance, p.MentalResistance)
		}
	}
}

func TestTransformWithoutNames(t *testing.T) {
	m := Transform(testMonster(), nil)
	if len(m.Parts) != 1 || m.Parts[0].DisplayName != "" {
		t.Errorf("Expected unnamed part, got %+v", m.Parts)
	}
}

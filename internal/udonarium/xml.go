package udonarium

import (
	"fmt"
	"strings"
	"text/template"

	"trpg_json/internal/domain/monster"
)

// Palette is the chat macro block shared by every character sheet.
const Palette = `//-----計算
C({HP}+{防護点}+{ダメージ軽減}-()) 　【残HP（物理ダメージ）】
C({HP}+{ダメージ軽減}-())　【残HP（魔法ダメージ）】
C({MP}-())　【MP消費】
C{HP}　【現在HP】
C{MP}　【現在MP】

//-----固定値判定
C({命中力}+7) 命中判定（固定値）
C({回避力}+7) 回避判定（固定値）
C({生命抵抗力}+7) 生命抵抗判定（固定値）
C({精神抵抗力}+7) 精神抵抗判定（固定値）

//-----ダイス判定
2d+{命中力}　命中判定
2d+{打撃点}　ダメージロール
2d+{回避力}　回避判定
2d+{生命抵抗力}　生命抵抗判定
2d+{精神抵抗力}　精神抵抗判定`

const sheetTemplates = `
{{- define "head" -}}
<?xml version="1.0" encoding="utf-8"?>
<character location.name="table" location.x="0" location.y="0" posZ="0" rotate="0" roll="0">
  <data name="character">
    <data name="image">
      <data type="image" name="imageIdentifier"></data>
    </data>
    <data name="common">
      <data name="name">{{x .Name}}</data>
      <data name="size">1</data>
    </data>
    <data name="detail">
      <data name="リソース">
        <data type="numberResource" currentValue="{{.HP}}" name="HP">{{.HP}}</data>
        <data type="numberResource" currentValue="{{.MP}}" name="MP">{{.MP}}</data>
        <data type="numberResource" currentValue="{{.Armor}}" name="防護点">{{.Armor}}</data>
      </data>
      <data name="ステータス・バフ・デバフ">
        <data name="命中力" type="number">{{.Hit}}</data>
        <data name="打撃点" type="number">{{.Damage}}</data>
        <data name="回避力" type="number">{{.Dodge}}</data>
        <data name="生命抵抗力" type="number">{{.LifeResistance}}</data>
        <data name="精神抵抗力" type="number">{{.MentalResistance}}</data>
      </data>
      <data name="特殊能力">
        <data name="特殊能力1" type="note">{{x .CommonAbilities}}</data>
        <data name="特殊能力2" type="note">{{x .SpecialAbilities}}</data>
      </data>
{{- end}}

{{- define "tail"}}
    </data>
  </data>
  <chat-palette dicebot="SwordWorld2.5">
{{x .Palette}}
  </chat-palette>
</character>
{{end}}

{{- define "core" -}}
{{template "head" .}}
      <data name="戦闘準備">
        <data name="魔物知識・先制判定" type="note">{{.Fame}}/{{.WeaknessValue}}
{{.Initiative}}</data>
      </data>
      <data name="情報">
        <data name="弱点" type="note">{{x .Weakness}}</data>
      </data>
      <data name="魔物知識">
        <data name="生態" type="note">{{x .Category}} Lv.{{.Level}}</data>
      </data>
{{- template "tail" .}}
{{- end}}

{{- define "part" -}}
{{template "head" .}}
{{- template "tail" .}}
{{- end}}
`

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var sheetTmpl = template.Must(template.New("sheets").
	Funcs(template.FuncMap{"x": xmlEscaper.Replace}).
	Parse(sheetTemplates))

// sheetData is the flattened, render-ready view of one part. Hit, dodge and
// both resistances are already adjusted to base values.
type sheetData struct {
	Name             string
	HP               int
	MP               int
	Armor            int
	Hit              int
	Damage           int
	Dodge            int
	LifeResistance   int
	MentalResistance int
	CommonAbilities  string
	SpecialAbilities string
	Fame             int
	WeaknessValue    int
	Initiative       int
	Weakness         string
	Category         string
	Level            int
	Palette          string
}

// GenerateXML renders the character sheet for part partIndex. Core parts get
// the additional combat-prep, weakness and species notes.
func GenerateXML(m TransformedMonster, partIndex int) (string, error) {
	if partIndex < 0 || partIndex >= len(m.Parts) {
		return "", fmt.Errorf("Part index %d out of bounds", partIndex)
	}
	part := m.Parts[partIndex]

	data := sheetData{
		Name:             part.DisplayName,
		HP:               part.HP,
		MP:               part.MP,
		Armor:            part.Armor,
		Hit:              monster.AdjustStat(part.Hit),
		Damage:           part.Damage,
		Dodge:            monster.AdjustStat(part.Dodge),
		LifeResistance:   monster.AdjustStat(part.LifeResistance),
		MentalResistance: monster.AdjustStat(part.MentalResistance),
		CommonAbilities:  m.CommonAbilities,
		SpecialAbilities: part.SpecialAbilities,
		Fame:             m.Fame,
		WeaknessValue:    part.WeaknessValue,
		Initiative:       m.Initiative,
		Weakness:         monster.TransformWeakness(part.Weakness),
		Category:         m.Category,
		Level:            m.Level,
		Palette:          Palette,
	}

	name := "part"
	if part.Core {
		name = "core"
	}

	var b strings.Builder
	if err := sheetTmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s sheet: %w", name, err)
	}
	return b.String(), nil
}

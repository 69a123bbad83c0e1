package app

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// NoMovement marks a creature that cannot move in the given medium.
const NoMovement Movement = -1

// UnknownMP marks a part whose MP is unknown or absent.
const UnknownMP = -1

// Movement is a movement rate. Source data writes "" for creatures that
// cannot move; that decodes to NoMovement.
type Movement int

func (m *Movement) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch res.Type {
	case gjson.Null:
		*m = NoMovement
	case gjson.Number:
		*m = Movement(res.Int())
	case gjson.String:
		if res.Str == "" {
			*m = NoMovement
			return nil
		}
		i, err := strconv.Atoi(res.Str)
		if err != nil {
			return fmt.Errorf("invalid movement value %q", res.Str)
		}
		*m = Movement(i)
	default:
		return fmt.Errorf("invalid movement value %s", res.Raw)
	}
	return nil
}

// Flag is a boolean that also accepts "" and null as false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch res.Type {
	case gjson.True:
		*f = true
	case gjson.False, gjson.Null:
		*f = false
	case gjson.String:
		if res.Str != "" {
			return fmt.Errorf("invalid flag value %q", res.Str)
		}
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", res.Raw)
	}
	return nil
}

// Part is one body part of a creature.
type Part struct {
	HP               *int   `json:"HP"`
	MP               int    `json:"MP"`
	Name             string `json:"name"`
	Core             Flag   `json:"コア"`
	Hit              *int   `json:"命中力"`
	Dodge            *int   `json:"回避力"`
	Damage           *int   `json:"打撃点"`
	PartCount        int    `json:"部位数"`
	SpecialAbilities string `json:"部位特殊能力"`
	Armor            int    `json:"防護点"`
}

// IsCore reports whether this part is the creature's primary part.
func (p Part) IsCore() bool {
	return bool(p.Core)
}

// Creature is a monster record. Keys not modelled here are kept in Extra
// and written back verbatim.
type Creature struct {
	Category         string   `json:"Category"`
	Level            int      `json:"Lv"`
	Revision         float64  `json:"Revision"`
	Data             string   `json:"data"`
	Illust           string   `json:"illust"`
	MoveIn           Movement `json:"movein"`
	MoveInNote       string   `json:"movein_des"`
	MoveOn           Movement `json:"moveon"`
	MoveOnNote       string   `json:"moveon_des"`
	Name             string   `json:"name"`
	Parts            []Part   `json:"part"`
	Notes            string   `json:"備考"`
	Initiative       int      `json:"先制値"`
	CommonAbilities  string   `json:"共通特殊能力"`
	Weakness         string   `json:"弱点"`
	WeaknessValue    int      `json:"弱点値"`
	LifeResistance   int      `json:"生命抵抗力"`
	Fame             int      `json:"知名度"`
	MentalResistance int      `json:"精神抵抗力"`

	Extra Fields `json:"-"`
}

type creatureFields Creature

var creatureKeys = map[string]bool{
	"Category": true, "Lv": true, "Revision": true, "data": true, "illust": true,
	"movein": true, "movein_des": true, "moveon": true, "moveon_des": true,
	"name": true, "part": true, "備考": true, "先制値": true, "共通特殊能力": true,
	"弱点": true, "弱点値": true, "生命抵抗力": true, "知名度": true, "精神抵抗力": true,
}

func (c *Creature) UnmarshalJSON(data []byte) error {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("creature record must be a JSON object")
	}

	var known creatureFields
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	*c = Creature(known)
	c.Extra = collectExtra(root, creatureKeys)
	return nil
}

func (c Creature) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(creatureFields(c))
	if err != nil {
		return nil, err
	}
	return appendExtra(body, c.Extra)
}

// Spell is a magic record. Only name and school are fixed; everything else
// varies per spell and is read through Fields.
type Spell struct {
	Name   string
	School string
	Fields Fields
}

var spellKeys = map[string]bool{"name": true, "school": true}

func (s *Spell) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid spell JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("spell record must be a JSON object")
	}

	name := root.Get("name")
	if name.Exists() && name.Type != gjson.String {
		return fmt.Errorf("spell name must be a string")
	}
	school := root.Get("school")
	if school.Exists() && school.Type != gjson.String {
		return fmt.Errorf("spell school must be a string")
	}

	s.Name = name.Str
	s.School = school.Str
	s.Fields = collectExtra(root, spellKeys)
	return nil
}

func (s Spell) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(struct {
		Name   string `json:"name"`
		School string `json:"school"`
	}{s.Name, s.School})
	if err != nil {
		return nil, err
	}
	return appendExtra(body, s.Fields)
}

func collectExtra(root gjson.Result, known map[string]bool) Fields {
	extra := Fields{}
	root.ForEach(func(key, val gjson.Result) bool {
		if !known[key.Str] {
			extra[key.Str] = valueOf(val)
		}
		return true
	})
	return extra
}

// appendExtra splices extra members into an encoded JSON object, in key order.
func appendExtra(body []byte, extra Fields) ([]byte, error) {
	if len(extra) == 0 {
		return body, nil
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(bytes.TrimSuffix(bytes.TrimSpace(body), []byte("}")))
	for _, k := range keys {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		raw, err := extra[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

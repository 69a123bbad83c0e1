package palette

import (
	"fmt"
	"strconv"

	"trpg_json/internal/app"
)

// Field names inside a spell record.
const (
	fieldMP        = "MP"
	fieldTarget    = "対象"
	fieldRange     = "射程"
	fieldRangeM    = "射程(m)"
	fieldTime      = "時間"
	fieldEffect    = "効果"
	fieldSupport   = "補助"
	targetSingle   = "個別"
	targetArea     = "エリア"
	areaRadius     = "半径(m)"
	areaSuffix     = "末尾"
	keyValue       = "value"
	keyValueOrMore = "value+"
	keySpecial     = "special"
)

// MP renders the cost: a fixed value, an open minimum "n～", or special text.
func MP(fields app.Fields) (string, error) {
	mp := fields.Get(fieldMP)
	if mp.Kind() != app.KindObject {
		return "", ErrMissingMP
	}

	if v, ok := mp.Field(keyValue).Int(); ok {
		return strconv.FormatInt(v, 10), nil
	}
	if v, ok := mp.Field(keyValueOrMore).Int(); ok {
		return strconv.FormatInt(v, 10) + "～", nil
	}
	if s, ok := mp.Field(keySpecial).Str(); ok {
		return s, nil
	}
	return "", ErrMissingMP
}

// Target renders a single-target description or an area "{value}(半径{r}m{suffix})".
func Target(fields app.Fields) (string, error) {
	target := fields.Get(fieldTarget)
	if target.Kind() != app.KindObject {
		return "", ErrMissingTarget
	}

	kind, ok := target.Field("kind").Str()
	if !ok {
		return "", ErrInvalidTargetKind
	}

	switch kind {
	case targetSingle:
		s, ok := target.Field(targetSingle).Str()
		if !ok {
			return "", ErrMissingTarget
		}
		return s, nil

	case targetArea:
		area := target.Field(targetArea)
		value, ok := area.Field(keyValue).Str()
		if !ok {
			return "", ErrMissingTarget
		}
		radius, ok := area.Field(areaRadius).Text()
		if !ok {
			return "", ErrMissingTarget
		}
		suffix, ok := area.Field(areaSuffix).Text()
		if !ok {
			return "", ErrMissingTarget
		}
		return fmt.Sprintf("%s(半径%sm%s)", value, radius, suffix), nil
	}

	return "", ErrInvalidTargetKind
}

// Range prefers "射程" and falls back to "射程(m)". Either may be text or an
// integer.
func Range(fields app.Fields) (string, error) {
	if s, ok := fields.Get(fieldRange).Text(); ok {
		return s, nil
	}
	if s, ok := fields.Get(fieldRangeM).Text(); ok {
		return s, nil
	}
	return "", ErrMissingRange
}

// Duration renders text verbatim, or an integer followed by its unit.
func Duration(fields app.Fields) (string, error) {
	t := fields.Get(fieldTime)
	if t.Kind() != app.KindObject {
		return "", ErrMissingTime
	}

	value := t.Field(keyValue)
	if s, ok := value.Str(); ok {
		return s, nil
	}
	if i, ok := value.Int(); ok {
		unit, _ := t.Field("unit").Str()
		return strconv.FormatInt(i, 10) + unit, nil
	}
	return "", ErrInvalidTimeValue
}

// Effect returns the effect text.
func Effect(fields app.Fields) (string, error) {
	s, ok := fields.Get(fieldEffect).Str()
	if !ok {
		return "", ErrMissingEffect
	}
	return s, nil
}

// IsSupport reads the support flag; anything but JSON true is false.
func IsSupport(fields app.Fields) bool {
	b, ok := fields.Get(fieldSupport).Bool()
	return ok && b
}

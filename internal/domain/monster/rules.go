package monster

import (
	"strconv"
	"strings"

	"trpg_json/internal/app"
)

// ExpectedRollOffset is the fixed 2d6 average folded into expected-roll
// statistics.
const ExpectedRollOffset = 7

// weaknessReplacements are applied in order. "属性" must be removed after
// the other two so that it also disappears from their output.
var weaknessReplacements = []struct{ from, to string }{
	{"エネルギー", "E"},
	{"ダメージ", "ダメ"},
	{"属性", ""},
}

// TransformWeakness shortens weakness text for table display,
// e.g. "純エネルギー属性ダメージ+2" becomes "純Eダメ+2".
//
// Pure function: No I/O operations, fully testable with direct inputs.
func TransformWeakness(text string) string {
	for _, r := range weaknessReplacements {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return text
}

// AdjustStat converts an expected-roll statistic to its base value,
// clamped at zero.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func AdjustStat(value int) int {
	return max(value-ExpectedRollOffset, 0)
}

// FormatMovement renders a movement rate with its optional note.
// Creatures that cannot move render as "-".
func FormatMovement(value app.Movement, note string) string {
	if value == app.NoMovement {
		return "-"
	}
	v := strconv.Itoa(int(value))
	if note == "" {
		return v
	}
	return v + "\n(" + note + ")"
}

// DisplayName is the creature name, with the part name on a second line
// when the part has one.
func DisplayName(creatureName, partName string) string {
	if partName == "" {
		return creatureName
	}
	return creatureName + "\n(" + partName + ")"
}

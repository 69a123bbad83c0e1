package sheets

import (
	"fmt"

	"trpg_json/internal/app"
	"trpg_json/internal/domain/monster"
)

// RowWidth is the number of cells in every generated row (A through BB).
const RowWidth = 54

// Column positions within a row, zero-based.
const (
	colName             = 0
	colHP               = 11
	colMP               = 15
	colArmor            = 17
	colInitiative       = 19
	colLifeResistance   = 21
	colMentalResistance = 23
	colFixed            = 25
	colMoveOn           = 27
	colMoveIn           = 29
	colHit              = 31
	colDodge            = 33
	colData             = 35
	colAbilities        = 38
	colFame             = 48
)

// SheetOutput is one spreadsheet row: its 1-based row number and exactly
// RowWidth cells.
type SheetOutput struct {
	RowNumber int
	Values    []Cell
}

// Span returns the first and last present column, or ok=false when the row
// has no present cells.
func (o SheetOutput) Span() (first, last int, ok bool) {
	first, last = -1, -1
	for i, c := range o.Values {
		if !c.Present() {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last, first >= 0
}

// TransformMonster lays a creature out as two rows per part, starting at
// startRow. Part i occupies rows startRow+2i and startRow+2i+1.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func TransformMonster(c *app.Creature, startRow int) []SheetOutput {
	rows := make([]SheetOutput, 0, len(c.Parts)*2)

	for i, part := range c.Parts {
		first := i == 0
		rows = append(rows,
			SheetOutput{RowNumber: startRow + 2*i, Values: oddRow(c, part, first)},
			SheetOutput{RowNumber: startRow + 2*i + 1, Values: evenRow(c, part, first)},
		)
	}

	return rows
}

func oddRow(c *app.Creature, part app.Part, first bool) []Cell {
	row := make([]Cell, RowWidth)

	name := monster.DisplayName(c.Name, part.Name)
	if part.IsCore() {
		name = "★" + name
	}
	row[colName] = TextCell(name)

	if part.HP != nil {
		row[colHP] = IntCell(*part.HP)
	}

	if part.MP >= 0 {
		row[colMP] = IntCell(part.MP)
	} else {
		row[colMP] = TextCell("-")
	}

	row[colArmor] = IntCell(part.Armor)

	if first {
		row[colInitiative] = IntCell(c.Initiative)
		row[colLifeResistance] = IntCell(c.LifeResistance)
		row[colMentalResistance] = IntCell(c.MentalResistance)
	} else {
		row[colInitiative] = TextCell("-")
		row[colLifeResistance] = TextCell("-")
		row[colMentalResistance] = TextCell("-")
	}

	row[colFixed] = TextCell("3")
	row[colMoveOn] = TextCell(monster.FormatMovement(c.MoveOn, c.MoveOnNote))
	row[colMoveIn] = TextCell(monster.FormatMovement(c.MoveIn, c.MoveInNote))

	if part.Hit != nil {
		row[colHit] = IntCell(*part.Hit)
	}
	if part.Dodge != nil {
		row[colDodge] = IntCell(*part.Dodge)
	}

	row[colData] = TextCell(c.Data)

	if c.CommonAbilities != "" {
		row[colAbilities] = TextCell(c.CommonAbilities)
	}

	if first {
		row[colFame] = TextCell(fmt.Sprintf("%d/%d", c.Fame, c.WeaknessValue))
	} else {
		row[colFame] = TextCell("-/-")
	}

	return row
}

func evenRow(c *app.Creature, part app.Part, first bool) []Cell {
	row := make([]Cell, RowWidth)

	if part.SpecialAbilities != "" {
		row[colAbilities] = TextCell(part.SpecialAbilities)
	}

	row[colFame] = TextCell("-")
	if first && c.Weakness != "" {
		row[colFame] = TextCell(monster.TransformWeakness(c.Weakness))
	}

	return row
}

package sheets

import (
	"fmt"
	"strings"
)

// IndexToColumn converts a zero-based column index to spreadsheet letters:
// 0 is "A", 25 is "Z", 26 is "AA", 702 is "AAA".
func IndexToColumn(index int) string {
	if index < 0 {
		return ""
	}

	var letters []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		letters = append(letters, byte('A'+(n-1)%26))
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}

// ColumnToIndex is the inverse of IndexToColumn. Lowercase letters are
// accepted.
func ColumnToIndex(column string) (int, error) {
	if column == "" {
		return 0, fmt.Errorf("empty column")
	}

	n := 0
	for _, r := range strings.ToUpper(column) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column %q", column)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1, nil
}

// a1Range builds "{sheet}!{startCol}{row}:{endCol}{row}" for a single row.
func a1Range(sheetName string, row, firstCol, lastCol int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", sheetName, IndexToColumn(firstCol), row, IndexToColumn(lastCol), row)
}

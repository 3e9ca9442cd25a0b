package grid

// ColumnLabel returns the Excel-style letter label for a zero-based
// column position: A..Z, AA, AB, ...
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}
	label := ""
	for index >= 0 {
		label = string(rune('A'+index%26)) + label
		index = index/26 - 1
	}
	return label
}

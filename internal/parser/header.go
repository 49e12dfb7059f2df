package parser

import "github.com/mkwon-dev/riderpay/internal/excel"

// ResolveHeader locates each mapped field's column in the header row.
//
// The header row is grid[StartRow-1]. Each selector key is compared against
// the literal text of the header cells; the leftmost exact match wins when
// a label appears more than once. Fields whose selector matches no header
// cell are omitted from the result — an incomplete match is not an error
// here, it just yields fewer extracted columns.
//
// An out-of-range header row yields an empty map: downstream extraction
// then produces zero records and the ingestion reports no valid rows,
// which points the uploader at the template's startRow.
func ResolveHeader(grid [][]excel.CellValue, mapping *ColumnMapping) map[string]int {
	fieldIdx := make(map[string]int)

	headerRow := mapping.StartRow - 1
	if headerRow < 0 || headerRow >= len(grid) {
		return fieldIdx
	}
	header := grid[headerRow]

	for field, sel := range mapping.Fields {
		for col, cell := range header {
			if cell.Text() == sel.Key {
				fieldIdx[field] = col
				break
			}
		}
	}
	return fieldIdx
}

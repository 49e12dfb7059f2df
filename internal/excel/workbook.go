// Package excel reads uploaded spreadsheet bytes into a grid of normalized
// cell values. It knows nothing about headers or column mappings; it only
// exposes sheets as two-dimensional arrays of CellValue.
package excel

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnreadableFile means the uploaded bytes are not a parseable
	// spreadsheet (corrupt archive, unsupported format).
	ErrUnreadableFile = errors.New("file is not a readable spreadsheet")

	// ErrSheetNotFound means a sheet was requested by name but the
	// workbook has no sheet with that name.
	ErrSheetNotFound = errors.New("sheet not found in workbook")
)

// Workbook wraps an opened spreadsheet file.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook parses spreadsheet bytes into a Workbook.
// Returns ErrUnreadableFile if the bytes are not a valid spreadsheet
// container — a corrupt file must surface as an error, never as an empty
// grid.
func OpenWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	return &Workbook{file: f}, nil
}

// Close releases resources held by the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames returns the workbook's sheet names in declared order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// SelectSheet resolves which sheet to read. An empty preferred name selects
// the workbook's first sheet. A non-empty preferred name must exist;
// otherwise ErrSheetNotFound is returned — there is no silent fallback,
// because a template naming a missing sheet is a template/file mismatch the
// uploader must see.
func (w *Workbook) SelectSheet(preferred string) (string, error) {
	names := w.SheetNames()
	if len(names) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
	}
	if preferred == "" {
		return names[0], nil
	}
	for _, name := range names {
		if name == preferred {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, preferred)
}

// Grid materializes a sheet as rows of normalized cells. Rows are padded to
// a uniform width so column indexes resolved against the header row stay
// valid for every data row.
func (w *Workbook) Grid(sheet string) ([][]CellValue, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	grid := make([][]CellValue, len(rows))
	for i, row := range rows {
		grid[i] = make([]CellValue, maxCol)
		for j, raw := range row {
			grid[i][j] = NewCell(raw)
		}
	}
	return grid, nil
}

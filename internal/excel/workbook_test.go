package excel

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook creates an in-memory .xlsx with the given sheets, each a
// map of cell reference to value.
func buildWorkbook(t *testing.T, sheets map[string]map[string]any, order []string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("NewSheet failed: %v", err)
			}
		}
		for ref, value := range sheets[name] {
			if err := f.SetCellValue(name, ref, value); err != nil {
				t.Fatalf("SetCellValue failed: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func TestOpenWorkbook(t *testing.T) {
	t.Run("rejects bytes that are not a spreadsheet", func(t *testing.T) {
		_, err := OpenWorkbook([]byte("definitely not a zip archive"))
		if !errors.Is(err, ErrUnreadableFile) {
			t.Fatalf("expected ErrUnreadableFile, got %v", err)
		}
	})

	t.Run("opens a valid workbook", func(t *testing.T) {
		data := buildWorkbook(t, map[string]map[string]any{
			"Settlements": {"A1": "rider"},
		}, []string{"Settlements"})

		wb, err := OpenWorkbook(data)
		if err != nil {
			t.Fatalf("OpenWorkbook failed: %v", err)
		}
		defer wb.Close()

		names := wb.SheetNames()
		if len(names) != 1 || names[0] != "Settlements" {
			t.Errorf("unexpected sheet names: %v", names)
		}
	})
}

func TestSelectSheet(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]any{
		"First":  {"A1": "a"},
		"Second": {"A1": "b"},
	}, []string{"First", "Second"})

	wb, err := OpenWorkbook(data)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	t.Run("empty preference selects the first sheet", func(t *testing.T) {
		name, err := wb.SelectSheet("")
		if err != nil {
			t.Fatalf("SelectSheet failed: %v", err)
		}
		if name != "First" {
			t.Errorf("expected First, got %s", name)
		}
	})

	t.Run("existing preference is honored", func(t *testing.T) {
		name, err := wb.SelectSheet("Second")
		if err != nil {
			t.Fatalf("SelectSheet failed: %v", err)
		}
		if name != "Second" {
			t.Errorf("expected Second, got %s", name)
		}
	})

	t.Run("missing preference is a hard error", func(t *testing.T) {
		_, err := wb.SelectSheet("Missing")
		if !errors.Is(err, ErrSheetNotFound) {
			t.Fatalf("expected ErrSheetNotFound, got %v", err)
		}
	})
}

func TestGrid(t *testing.T) {
	data := buildWorkbook(t, map[string]map[string]any{
		"Sheet": {
			"A1": "rider", "B1": "amount",
			"A2": "R1", "B2": 1000,
			"A3": "R2",
			"C3": "note",
		},
	}, []string{"Sheet"})

	wb, err := OpenWorkbook(data)
	if err != nil {
		t.Fatalf("OpenWorkbook failed: %v", err)
	}
	defer wb.Close()

	grid, err := wb.Grid("Sheet")
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}

	if len(grid) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(grid))
	}

	t.Run("rows are padded to uniform width", func(t *testing.T) {
		for i, row := range grid {
			if len(row) != 3 {
				t.Errorf("row %d: expected width 3, got %d", i, len(row))
			}
		}
	})

	t.Run("numeric cells become Number", func(t *testing.T) {
		n, ok := grid[1][1].Number()
		if !ok || n != 1000 {
			t.Errorf("expected Number 1000, got %v (ok=%v)", n, ok)
		}
	})

	t.Run("text cells become Text", func(t *testing.T) {
		if grid[0][0].Kind() != Text || grid[0][0].Text() != "rider" {
			t.Errorf("unexpected cell: %+v", grid[0][0])
		}
	})

	t.Run("absent cells are Empty", func(t *testing.T) {
		if !grid[1][2].IsEmpty() || !grid[2][1].IsEmpty() {
			t.Error("expected padding cells to be Empty")
		}
	})
}

func TestNewCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind Kind
	}{
		{"empty string", "", Empty},
		{"plain text", "김재성0818", Text},
		{"integer", "1338982", Number},
		{"negative", "-10640", Number},
		{"decimal", "12.5", Number},
		{"currency text is not a number", "₩1,000", Text},
		{"whitespace is kept as text", " ", Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := NewCell(tt.raw)
			if cell.Kind() != tt.kind {
				t.Errorf("NewCell(%q).Kind() = %v, want %v", tt.raw, cell.Kind(), tt.kind)
			}
			if cell.Text() != tt.raw && tt.kind != Empty {
				t.Errorf("NewCell(%q).Text() = %q, want original", tt.raw, cell.Text())
			}
		})
	}
}

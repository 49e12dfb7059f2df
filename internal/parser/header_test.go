package parser

import (
	"reflect"
	"testing"

	"github.com/mkwon-dev/riderpay/internal/excel"
)

// makeGrid builds a cell grid from raw string rows.
func makeGrid(rows ...[]string) [][]excel.CellValue {
	grid := make([][]excel.CellValue, len(rows))
	for i, row := range rows {
		grid[i] = make([]excel.CellValue, len(row))
		for j, raw := range row {
			grid[i][j] = excel.NewCell(raw)
		}
	}
	return grid
}

func mapping(startRow int, fields map[string]string) *ColumnMapping {
	m := &ColumnMapping{Fields: make(map[string]Selector), StartRow: startRow}
	for name, key := range fields {
		m.Fields[name] = Selector{Key: key}
	}
	return m
}

func TestResolveHeader(t *testing.T) {
	t.Run("matches fields to column indexes", func(t *testing.T) {
		grid := makeGrid([]string{"ID", "이름", "정산금액"})
		m := mapping(1, map[string]string{
			"rider_platform_id": "ID",
			"rider_name":        "이름",
			"settlement_amount": "정산금액",
		})

		got := ResolveHeader(grid, m)
		want := map[string]int{"rider_platform_id": 0, "rider_name": 1, "settlement_amount": 2}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ResolveHeader = %v, want %v", got, want)
		}
	})

	t.Run("unmatched selectors are omitted not errors", func(t *testing.T) {
		grid := makeGrid([]string{"ID"})
		m := mapping(1, map[string]string{
			"rider_platform_id": "ID",
			"settlement_amount": "정산금액",
		})

		got := ResolveHeader(grid, m)
		if len(got) != 1 {
			t.Fatalf("expected 1 match, got %v", got)
		}
		if got["rider_platform_id"] != 0 {
			t.Errorf("unexpected index: %v", got)
		}
	})

	t.Run("leftmost occurrence wins on duplicates", func(t *testing.T) {
		grid := makeGrid([]string{"A", "B", "A"})
		m := mapping(1, map[string]string{"rider_platform_id": "A"})

		got := ResolveHeader(grid, m)
		if got["rider_platform_id"] != 0 {
			t.Errorf("expected index 0, got %d", got["rider_platform_id"])
		}
	})

	t.Run("matching is exact, no trimming or case folding", func(t *testing.T) {
		grid := makeGrid([]string{" ID", "id"})
		m := mapping(1, map[string]string{"rider_platform_id": "ID"})

		got := ResolveHeader(grid, m)
		if len(got) != 0 {
			t.Errorf("expected no match, got %v", got)
		}
	})

	t.Run("start row selects a later header line", func(t *testing.T) {
		grid := makeGrid(
			[]string{"주간 정산 보고서"},
			[]string{"ID", "이름"},
			[]string{"R1", "김"},
		)
		m := mapping(2, map[string]string{"rider_platform_id": "ID"})

		got := ResolveHeader(grid, m)
		if got["rider_platform_id"] != 0 {
			t.Errorf("unexpected result: %v", got)
		}
	})

	t.Run("out of range header row yields an empty map", func(t *testing.T) {
		grid := makeGrid([]string{"ID"})
		m := mapping(5, map[string]string{"rider_platform_id": "ID"})

		got := ResolveHeader(grid, m)
		if len(got) != 0 {
			t.Errorf("expected empty map, got %v", got)
		}
	})

	t.Run("deterministic across repeated runs", func(t *testing.T) {
		grid := makeGrid([]string{"ID", "이름", "ID", "이름"})
		m := mapping(1, map[string]string{
			"rider_platform_id": "ID",
			"rider_name":        "이름",
		})

		first := ResolveHeader(grid, m)
		for i := 0; i < 10; i++ {
			if got := ResolveHeader(grid, m); !reflect.DeepEqual(got, first) {
				t.Fatalf("run %d differs: %v vs %v", i, got, first)
			}
		}
	})
}

package excel

import "strconv"

// Kind discriminates the closed set of cell value variants.
type Kind int

const (
	// Empty is a cell with no content (or whitespace-free empty string).
	Empty Kind = iota

	// Text is a cell holding a non-numeric string.
	Text

	// Number is a cell whose content parses as a decimal number.
	Number
)

// CellValue is a spreadsheet cell normalized to one of three variants:
// empty, text, or number. All downstream parsing logic switches on Kind
// instead of guessing at dynamic types.
//
// The literal cell text is always preserved so header matching can compare
// against exactly what the file contains, regardless of variant.
type CellValue struct {
	kind Kind
	text string
	num  float64
}

// NewCell classifies raw cell text into a CellValue.
// An empty string becomes Empty; text that parses as a float becomes
// Number; everything else stays Text. No trimming is applied — matching
// and storage operate on the literal cell content.
func NewCell(raw string) CellValue {
	if raw == "" {
		return CellValue{kind: Empty}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return CellValue{kind: Number, text: raw, num: n}
	}
	return CellValue{kind: Text, text: raw}
}

// Kind returns the variant tag.
func (c CellValue) Kind() Kind { return c.kind }

// IsEmpty reports whether the cell has no content.
func (c CellValue) IsEmpty() bool { return c.kind == Empty }

// Text returns the literal cell text. Empty cells return "".
func (c CellValue) Text() string { return c.text }

// Number returns the numeric value and whether the cell is a Number.
func (c CellValue) Number() (float64, bool) {
	return c.num, c.kind == Number
}

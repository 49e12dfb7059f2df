// Package parser turns a tenant's column-mapping template and a spreadsheet
// grid into normalized settlement records. It owns the three core steps:
// parsing the mapping JSON into an explicit shape, resolving the header row
// into field→column indexes, and extracting/coercing data rows.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/mkwon-dev/riderpay/internal/models"
)

var (
	// ErrEmptyMapping means the template body has no field rules at all.
	ErrEmptyMapping = errors.New("column mapping has no field rules")

	// ErrUnknownField means the mapping names a field that is not a
	// settlement column.
	ErrUnknownField = errors.New("column mapping references unknown settlement field")

	// ErrBadSelector means a field rule is neither a selector string nor a
	// {key, type} object, or its key is empty.
	ErrBadSelector = errors.New("invalid column selector")

	// ErrBadStartRow means startRow is present but not a positive integer.
	ErrBadStartRow = errors.New("startRow must be a positive integer")
)

// Reserved mapping keys that configure the parse instead of mapping a field.
const (
	keySheetName = "sheetName"
	keyStartRow  = "startRow"
	keyColumns   = "columns"
)

// Selector locates one spreadsheet column for one logical field.
// A bare string in the template JSON becomes {Key: s}; a structured rule
// {"key": ..., "type": ...} carries an expected value type as well.
type Selector struct {
	// Key is the header cell text the column is matched by. Matching is
	// exact: case-sensitive, no trimming, no fuzzy matching.
	Key string

	// Type is an optional expected value type hint ("string", "number").
	// Informational; coercion is driven by the settlement column itself.
	Type string
}

// ColumnMapping is the validated, explicit shape of a template body.
type ColumnMapping struct {
	// Fields maps logical settlement field names to column selectors.
	Fields map[string]Selector

	// SheetName optionally names the workbook sheet to read.
	// Empty means the first sheet.
	SheetName string

	// StartRow is the 1-based row at which the header line begins.
	StartRow int
}

// FieldNames returns the mapped field names in sorted order.
func (m *ColumnMapping) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// knownField reports whether name is a column of official_settlements that
// a template may map.
func knownField(name string) bool {
	return name == models.FieldRiderPlatformID ||
		name == models.FieldRiderName ||
		models.MoneyFields[name]
}

// ParseColumnMapping decodes and validates a raw template body.
//
// The body is hand-edited JSON, so this is the single place that tolerates
// its loose shape: bare-string rules, {key, type} rules, the reserved
// sheetName/startRow keys, and an optional "columns" wrapper object around
// the field rules (present in older templates). Everything past this
// function operates on the explicit ColumnMapping shape only.
func ParseColumnMapping(raw []byte) (*ColumnMapping, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyMapping
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode column mapping: %w", err)
	}

	m := &ColumnMapping{Fields: make(map[string]Selector), StartRow: 1}

	if rawSheet, ok := body[keySheetName]; ok {
		if err := json.Unmarshal(rawSheet, &m.SheetName); err != nil {
			return nil, fmt.Errorf("decode sheetName: %w", err)
		}
		delete(body, keySheetName)
	}
	if rawStart, ok := body[keyStartRow]; ok {
		var start float64
		if err := json.Unmarshal(rawStart, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadStartRow, err)
		}
		if start < 1 || start != float64(int(start)) {
			return nil, fmt.Errorf("%w: got %v", ErrBadStartRow, start)
		}
		m.StartRow = int(start)
		delete(body, keyStartRow)
	}

	// Older templates nest the field rules under "columns".
	fieldRules := body
	if rawColumns, ok := body[keyColumns]; ok {
		fieldRules = make(map[string]json.RawMessage)
		if err := json.Unmarshal(rawColumns, &fieldRules); err != nil {
			return nil, fmt.Errorf("decode columns wrapper: %w", err)
		}
	}

	for field, rawRule := range fieldRules {
		if !knownField(field) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		sel, err := parseSelector(rawRule)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field, err)
		}
		m.Fields[field] = sel
	}

	if len(m.Fields) == 0 {
		return nil, ErrEmptyMapping
	}
	return m, nil
}

func parseSelector(raw json.RawMessage) (Selector, error) {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		if plain == "" {
			return Selector{}, fmt.Errorf("%w: empty selector string", ErrBadSelector)
		}
		return Selector{Key: plain}, nil
	}

	var typed struct {
		Key  string `json:"key"`
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &typed); err != nil {
		return Selector{}, fmt.Errorf("%w: %v", ErrBadSelector, err)
	}
	if typed.Key == "" {
		return Selector{}, fmt.Errorf("%w: missing key", ErrBadSelector)
	}
	return Selector{Key: typed.Key, Type: typed.Type}, nil
}

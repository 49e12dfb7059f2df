package models

// ParsingTemplate is a tenant-defined rule set that translates a settlement
// spreadsheet's header labels into logical settlement field names.
//
// The mapping body is kept as raw JSON here; internal/parser owns the
// parsed, validated shape. A template is read once at the start of an
// ingestion and never re-fetched mid-parse, so edits cannot affect an
// in-flight upload.
type ParsingTemplate struct {
	// ID is the unique identifier for the template (UUID format).
	ID string

	// TenantID is the tenant that owns the template.
	TenantID string

	// TemplateName is the display label shown in the template editor.
	// Not unique.
	TemplateName string

	// ColumnMapping is the raw JSON mapping body as saved by the editor.
	ColumnMapping []byte

	// IsActive marks the template as selectable in the upload form.
	// Informational only; parsing does not check it.
	IsActive bool

	// CreatedAt is the Unix timestamp when the template was created.
	CreatedAt int64
}

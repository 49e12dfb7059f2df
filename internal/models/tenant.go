package models

// Tenant represents an isolated branch or franchise organization.
// Uploads, templates, and settlements belong to exactly one tenant and are
// never visible across tenants.
type Tenant struct {
	// ID is the unique identifier for the tenant (UUID format).
	ID string

	// Name is the display name of the tenant (e.g., "Gangnam Branch").
	Name string

	// CreatedAt is the Unix timestamp when the tenant was created.
	CreatedAt int64
}

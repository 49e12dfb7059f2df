package models

// Role classifies what a profile is allowed to do.
type Role string

const (
	// RoleRider is a delivery rider who can only view their own settlements.
	RoleRider Role = "RIDER"

	// RoleAdmin manages uploads, templates, and fees for one tenant.
	RoleAdmin Role = "ADMIN"

	// RoleSuperAdmin has admin rights across tenant administration.
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleRider, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// CanUpload reports whether the role may ingest settlement files.
func (r Role) CanUpload() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Profile represents a user account associated with a tenant.
type Profile struct {
	// ID is the unique identifier for the profile (UUID format).
	ID string

	// Email is the login email address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the login password.
	// Never serialized to API responses.
	PasswordHash string

	// FullName is the display name of the user.
	FullName string

	// Role determines what the user can do (RIDER, ADMIN, SUPER_ADMIN).
	Role Role

	// TenantID is the tenant this profile belongs to.
	// Empty for accounts not yet assigned to a tenant; such accounts
	// cannot upload files or view tenant data.
	TenantID string

	// PlatformIDs maps delivery platform names to the rider's ID on that
	// platform (e.g., {"baemin": "86073821121"}). Used to match a rider
	// profile against settlement rows parsed from platform spreadsheets.
	PlatformIDs map[string]string

	// CreatedAt is the Unix timestamp when the profile was created.
	CreatedAt int64
}

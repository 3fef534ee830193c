package model

import "time"

// Roles form a closed set.  The Spanish names are the external contract:
// they appear in JWT claims, in the users table and in payroll queries.
const (
	RoleCliente = "CLIENTE"
	RoleAdmin   = "ADMIN"
	RolePiloto  = "PILOTO"
	RoleAzafata = "AZAFATA"
)

// ValidRole reports whether r is a member of the closed role set.
func ValidRole(r string) bool {
	switch r {
	case RoleCliente, RoleAdmin, RolePiloto, RoleAzafata:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table.  Crew members (PILOTO, AZAFATA) are referenced from flights by
// ID only; the payroll engine resolves them back through ListByRole.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name used on payroll line items.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of the Role* constants above.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the raw token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}

package model

import "time"

// Role values stored in users.role.  OWNER is the landlord account that
// controls a company and all of its PGs.  SUBUSER is a delegated
// operator working under an owner with a granted subset of the owner's
// permissions.  TENANT is a room seeker who submits enquiries,
// checkout requests and payments.
const (
	RoleOwner   = "OWNER"
	RoleSubUser = "SUBUSER"
	RoleTenant  = "TENANT"
)

// User represents an account able to authenticate against the API.
// Owners and sub-users belong to a company; tenants carry a zero
// company ID because they enquire across companies.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – normalized (lower case) login email.
//  PasswordHash – bcrypt hash of the password.
//  Role         – one of OWNER, SUBUSER, TENANT.
//  CompanyID    – owning company for OWNER/SUBUSER accounts.
//  IsActive     – soft-disable flag.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CompanyID    uint64    // users.company_id
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

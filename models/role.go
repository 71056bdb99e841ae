package models

// Role is the single role claim an account holds.
type Role string

const (
	RolePetOwner  Role = "PET_OWNER"
	RolePetSitter Role = "PET_SITTER"
	RolePetHotel  Role = "PET_HOTEL"
	RolePetSchool Role = "PET_SCHOOL"
	RoleVendor    Role = "VENDOR"
	RoleAdmin     Role = "ADMIN"
)

var knownRoles = map[Role]bool{
	RolePetOwner:  true,
	RolePetSitter: true,
	RolePetHotel:  true,
	RolePetSchool: true,
	RoleVendor:    true,
	RoleAdmin:     true,
}

// IsKnown reports whether r is one of the platform roles.
func (r Role) IsKnown() bool {
	return knownRoles[r]
}

// IsBusiness reports whether r is a provider role backed by a business profile.
func (r Role) IsBusiness() bool {
	switch r {
	case RolePetSitter, RolePetHotel, RolePetSchool, RoleVendor:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Principal is the identity decoded from a verified credential. It is not
// modified for the lifetime of a request.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

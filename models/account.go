package models

// AccountStatus is owned by the identity system and read-only here.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountBlocked   AccountStatus = "BLOCKED"
)

// Account is the projection of a user document needed for status enforcement.
type Account struct {
	ID     string        `bson:"id" json:"id"`
	Email  string        `bson:"email" json:"email,omitempty"`
	Role   Role          `bson:"role" json:"role,omitempty"`
	Status AccountStatus `bson:"status" json:"status"`
}

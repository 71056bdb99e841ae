package models

import "time"

type ProfileStatus string

const (
	ProfileActive   ProfileStatus = "ACTIVE"
	ProfileInactive ProfileStatus = "INACTIVE"
)

// BusinessProfile proves an account may act as a provider of RoleType.
// It is created by onboarding/KYC and verified by an administrator.
type BusinessProfile struct {
	ID             string        `bson:"id" json:"id"`
	OwnerAccountID string        `bson:"ownerAccountId" json:"ownerAccountId"`
	RoleType       Role          `bson:"roleType" json:"roleType"`
	IsVerified     bool          `bson:"isVerified" json:"isVerified"`
	Status         ProfileStatus `bson:"status" json:"status"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Usable reports whether the profile may back a business operation.
func (p BusinessProfile) Usable() bool {
	return p.IsVerified && p.Status == ProfileActive
}

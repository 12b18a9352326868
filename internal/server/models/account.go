package models

import "time"

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Access tiers. Transitions only ever move forward:
// none -> requested -> premium.
const (
	TierNone      = "none"
	TierRequested = "requested"
	TierPremium   = "premium"
)

// Account is a registered user keyed by email. RequestedBioID is the profile
// a pending or granted premium request concerns; zero when the tier is none.
type Account struct {
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	Tier           string    `json:"tier"`
	RequestedBioID int64     `json:"requestedBioId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

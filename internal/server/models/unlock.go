package models

import "time"

// Contact unlock statuses. A record only ever moves pending -> approved.
const (
	UnlockPending  = "pending"
	UnlockApproved = "approved"
)

// ContactUnlock is one paid request to see a profile's contact fields.
// The amount is recorded in minor currency units as already collected by the
// payment provider; the core never charges.
type ContactUnlock struct {
	ID             string    `json:"id"`
	RequesterEmail string    `json:"requesterEmail"`
	BioID          int64     `json:"bioId"`
	AmountCents    int64     `json:"amountCents"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ContactUnlockDetail is an unlock joined to its target profile for the
// "my requests" listing. Unlocks whose profile no longer exists are dropped
// from that listing entirely, so the embedded fields are always present.
type ContactUnlockDetail struct {
	ContactUnlock
	ProfileName  string `json:"profileName"`
	MobileNumber string `json:"mobileNumber"`
	ContactEmail string `json:"contactEmail"`
}

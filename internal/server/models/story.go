package models

import "time"

// SuccessStory is an append-only record of a married couple. Stories are
// never updated or deleted after creation.
type SuccessStory struct {
	ID           string    `json:"id"`
	SelfBioID    int64     `json:"selfBioId"`
	PartnerBioID int64     `json:"partnerBioId"`
	PhotoURL     string    `json:"photoUrl"`
	Review       string    `json:"review"`
	Stars        int       `json:"stars"`
	MarriedAt    string    `json:"marriedAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

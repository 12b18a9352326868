package models

import "time"

// Favorite is a bookmark of a profile. The same owner may favourite the same
// profile more than once; the store does not deduplicate.
type Favorite struct {
	ID         string    `json:"id"`
	OwnerEmail string    `json:"ownerEmail"`
	BioID      int64     `json:"bioId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FavoriteDetail joins a favourite to a summary of its profile.
type FavoriteDetail struct {
	Favorite
	Name              string `json:"name"`
	PermanentDivision string `json:"permanentDivision"`
	Occupation        string `json:"occupation"`
}

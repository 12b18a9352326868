package models

import "time"

// Profile categories. The directory only distinguishes the two the
// matchmaking flow filters on.
const (
	CategoryMale   = "Male"
	CategoryFemale = "Female"
)

// Profile is a published bio-data record. BioID is the process-wide
// sequential identifier allocated on first submission; it never changes
// afterwards, even when the owner resubmits the form.
//
// ContactEmail and MobileNumber are the sensitive contact fields. They are
// only populated on owner reads and on reads backed by an approved contact
// unlock; every other path returns them blank.
type Profile struct {
	BioID                   int64     `json:"bioId"`
	OwnerEmail              string    `json:"ownerEmail"`
	Name                    string    `json:"name"`
	Category                string    `json:"category"`
	DateOfBirth             string    `json:"dateOfBirth"`
	HeightCM                int       `json:"heightCm"`
	WeightKG                int       `json:"weightKg"`
	Age                     int       `json:"age"`
	Occupation              string    `json:"occupation"`
	Race                    string    `json:"race"`
	FathersName             string    `json:"fathersName"`
	MothersName             string    `json:"mothersName"`
	PermanentDivision       string    `json:"permanentDivision"`
	PresentDivision         string    `json:"presentDivision"`
	ExpectedPartnerAge      int       `json:"expectedPartnerAge"`
	ExpectedPartnerHeightCM int       `json:"expectedPartnerHeightCm"`
	ExpectedPartnerWeightKG int       `json:"expectedPartnerWeightKg"`
	ContactEmail            string    `json:"contactEmail,omitempty"`
	MobileNumber            string    `json:"mobileNumber,omitempty"`
	PhotoKey                string    `json:"photoKey"`
	Premium                 bool      `json:"premium"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// ProfileSummary is the reduced shape served on browse/listing paths.
// It deliberately has no contact fields.
type ProfileSummary struct {
	BioID             int64  `json:"bioId"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	Age               int    `json:"age"`
	Occupation        string `json:"occupation"`
	PermanentDivision string `json:"permanentDivision"`
	PhotoKey          string `json:"photoKey"`
	Premium           bool   `json:"premium"`
}

// Summary projects the reduced listing shape out of a full profile.
func (p *Profile) Summary() *ProfileSummary {
	return &ProfileSummary{
		BioID:             p.BioID,
		Name:              p.Name,
		Category:          p.Category,
		Age:               p.Age,
		Occupation:        p.Occupation,
		PermanentDivision: p.PermanentDivision,
		PhotoKey:          p.PhotoKey,
		Premium:           p.Premium,
	}
}

package models

// Stats is the admin dashboard aggregate. Every value is computed fresh from
// the store on each call; nothing here is authoritative.
//
// RevenueCents sums approved unlock amounts only. Pending records represent
// money collected but not yet granting visibility, and counting them inflated
// the dashboard in earlier versions.
type Stats struct {
	TotalProfiles  int64 `json:"totalProfiles"`
	MaleProfiles   int64 `json:"maleProfiles"`
	FemaleProfiles int64 `json:"femaleProfiles"`
	PremiumMembers int64 `json:"premiumMembers"`
	RevenueCents   int64 `json:"revenueCents"`
}

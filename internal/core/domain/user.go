package domain

// User is an account in the Sonifyr system. Birth fields are empty until
// the user completes onboarding.
type User struct {
	ID            string `json:"id"`
	DisplayName   string `json:"displayName"`
	BirthDate     string `json:"birthDate,omitempty"`
	BirthTime     string `json:"birthTime,omitempty"`
	BirthLocation string `json:"birthLocation,omitempty"`
}

// BirthData returns the user's birth inputs for chart calculation.
func (u User) BirthData() BirthData {
	return BirthData{
		BirthDate:     u.BirthDate,
		BirthTime:     u.BirthTime,
		BirthLocation: u.BirthLocation,
	}
}

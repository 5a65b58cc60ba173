package models

// IgnoreType says why a listing was not applied to
type IgnoreType string

const (
	IgnoreTypeIsInIgnore        IgnoreType = "Meets ignore criteria"
	IgnoreTypeNotInIdeal        IgnoreType = "Doesn't meet ideal criteria"
	IgnoreTypeLanguage          IgnoreType = "Language mismatch"
	IgnoreTypeDescriptionNoLoad IgnoreType = "Job description didnt load"
)

// IgnoreCategory narrows an IgnoreType to the field that triggered it
type IgnoreCategory string

const (
	IgnoreCategoryLanguage    IgnoreCategory = "Language"
	IgnoreCategoryTitle       IgnoreCategory = "Title"
	IgnoreCategoryCompany     IgnoreCategory = "Company"
	IgnoreCategoryLocation    IgnoreCategory = "Location"
	IgnoreCategoryDescription IgnoreCategory = "Description"
	IgnoreCategoryLowPay      IgnoreCategory = "Low Pay"
	IgnoreCategoryHighPay     IgnoreCategory = "High Pay"
	IgnoreCategoryLowYoe      IgnoreCategory = "Low YoE"
	IgnoreCategoryHighYoe     IgnoreCategory = "High YoE"
)

// Application records the accept/ignore decision for one listing.
// Applied is true iff all three ignore fields are nil.
type Application struct {
	Applied        bool            `json:"applied"`
	IgnoreType     *IgnoreType     `json:"ignore_type,omitempty"`
	IgnoreCategory *IgnoreCategory `json:"ignore_category,omitempty"`
	IgnoreTerm     *string         `json:"ignore_term,omitempty"`
	Listing        *Listing        `json:"listing"`
}

// Ignore marks the application rejected with the given reason
func (a *Application) Ignore(t IgnoreType, c IgnoreCategory, term string) {
	a.Applied = false
	a.IgnoreType = &t
	a.IgnoreCategory = &c
	a.IgnoreTerm = &term
}

// IgnoreTypeOnly is used by the ideal-criteria gate, which records no
// category or term
func (a *Application) IgnoreTypeOnly(t IgnoreType) {
	a.Applied = false
	a.IgnoreType = &t
}

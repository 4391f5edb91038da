package entity

const AnySentinel = "any"

// AgeRange bounds are both optional; a nil pointer means the side is unset.
type AgeRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// FilterCriteria is an immutable snapshot of the active scheme filters.
// Multi-valued fields are sets; insertion order is irrelevant and the
// serialized form is canonical (sorted values, fixed key order).
type FilterCriteria struct {
	Categories     []string  `json:"categories"`
	Eligibility    []string  `json:"eligibility"`
	SchemeTypes    []string  `json:"scheme_types"`
	IncomeLevel    string    `json:"income_level"`
	AgeRange       *AgeRange `json:"age_range,omitempty"`
	Location       string    `json:"location"`
	UsePreferences bool      `json:"use_preferences"`
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Categories:  []string{},
		Eligibility: []string{},
		SchemeTypes: []string{},
		IncomeLevel: AnySentinel,
		Location:    AnySentinel,
	}
}

func (c FilterCriteria) IsEmpty() bool {
	return len(c.Categories) == 0 &&
		len(c.Eligibility) == 0 &&
		len(c.SchemeTypes) == 0 &&
		(c.IncomeLevel == "" || c.IncomeLevel == AnySentinel) &&
		c.AgeRange == nil &&
		(c.Location == "" || c.Location == AnySentinel)
}

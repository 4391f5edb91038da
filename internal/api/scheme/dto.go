package scheme

import (
	"time"

	"YojanaSetu/internal/entity"
)

type ListSchemesResponse struct {
	Schemes []SchemeResponse `json:"schemes"`
	Total   int              `json:"total"`
	Query   string           `json:"query"`
}

type SchemeResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Category           string    `json:"category"`
	Description        string    `json:"description"`
	Eligibility        string    `json:"eligibility"`
	Benefits           string    `json:"benefits"`
	ApplicationProcess string    `json:"application_process"`
	Documents          string    `json:"documents"`
	Deadline           string    `json:"deadline"`
	Website            string    `json:"website"`
	IsBookmarked       bool      `json:"is_bookmarked"`
	CreatedAt          time.Time `json:"created_at"`
}

type FilterStateResponse struct {
	Criteria entity.FilterCriteria `json:"criteria"`
	Query    string                `json:"query"`
}

// UpdateFilterRequest carries exactly one field change; nil pointers mean
// the field is untouched.
type UpdateFilterRequest struct {
	Categories  *[]string `json:"categories,omitempty"`
	Eligibility *[]string `json:"eligibility,omitempty"`
	SchemeTypes *[]string `json:"scheme_types,omitempty"`
	IncomeLevel *string   `json:"income_level,omitempty"`
	MinAge      *int      `json:"min_age,omitempty" validate:"omitempty,gte=0,lte=120"`
	MaxAge      *int      `json:"max_age,omitempty" validate:"omitempty,gte=0,lte=120"`
	Location    *string   `json:"location,omitempty"`
}

type TogglePreferencesRequest struct {
	Enabled bool `json:"enabled"`
}

type SavePreferencesRequest struct {
	Criteria entity.FilterCriteria `json:"criteria"`
}

type FAQResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

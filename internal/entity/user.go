package entity

import "time"

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Password  string    `db:"password"`
	State     string    `db:"state"`
	IsGoogle  bool      `db:"is_google"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID    string
	Name  string
	Email string
}

// PreferenceProfile is the persisted copy of a user's filter criteria.
// Created empty at registration, overwritten only by an explicit save,
// removed only together with the user row.
type PreferenceProfile struct {
	UserID         string    `db:"user_id" json:"user_id"`
	Categories     []string  `db:"-" json:"categories"`
	Eligibility    []string  `db:"-" json:"eligibility"`
	SchemeTypes    []string  `db:"-" json:"scheme_types"`
	IncomeLevel    string    `db:"income_level" json:"income_level"`
	MinAge         *int      `db:"min_age" json:"min_age,omitempty"`
	MaxAge         *int      `db:"max_age" json:"max_age,omitempty"`
	Location       string    `db:"location" json:"location"`
	UsePreferences bool      `db:"use_preferences" json:"use_preferences"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

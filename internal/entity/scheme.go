package entity

import "time"

type Scheme struct {
	ID                 string    `db:"id" json:"id"`
	Title              string    `db:"title" json:"title"`
	Category           string    `db:"category" json:"category"`
	Description        string    `db:"description" json:"description"`
	Eligibility        string    `db:"eligibility" json:"eligibility"`
	Benefits           string    `db:"benefits" json:"benefits"`
	ApplicationProcess string    `db:"application_process" json:"application_process"`
	Documents          string    `db:"documents" json:"documents"`
	Deadline           string    `db:"deadline" json:"deadline"`
	Website            string    `db:"website" json:"website"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

type SchemeFAQ struct {
	ID        string    `db:"id" json:"id"`
	SchemeID  string    `db:"scheme_id" json:"scheme_id"`
	Question  string    `db:"question" json:"question"`
	Answer    string    `db:"answer" json:"answer"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Bookmark struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	SchemeID  string    `db:"scheme_id" json:"scheme_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

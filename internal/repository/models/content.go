package models

import (
	"database/sql"
	"time"
)

// Ad row; ad_code holds raw markup.
type Ad struct {
	ID        string       `db:"id"`
	Name      string       `db:"name"`
	Placement string       `db:"placement"`
	AdCode    string       `db:"ad_code"`
	Priority  int          `db:"priority"`
	IsActive  bool         `db:"is_active"`
	StartDate sql.NullTime `db:"start_date"`
	EndDate   sql.NullTime `db:"end_date"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

type SeoMetadata struct {
	ID            string         `db:"id"`
	Path          string         `db:"path"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	Keywords      sql.NullString `db:"keywords"`
	OgImage       sql.NullString `db:"og_image"`
	OgTitle       sql.NullString `db:"og_title"`
	OgDescription sql.NullString `db:"og_description"`
	CanonicalURL  sql.NullString `db:"canonical_url"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

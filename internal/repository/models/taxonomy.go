package models

import (
	"database/sql"
	"time"
)

// Category row of the categories table.
type Category struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Icon        sql.NullString `db:"icon"`
	Color       sql.NullString `db:"color"`
	SortOrder   int            `db:"sort_order"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Bank row of the banks table.
type Bank struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Logo        sql.NullString `db:"logo"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// DifficultyLevel row; level is stored as level_no.
type DifficultyLevel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Level       int            `db:"level_no"`
	Color       sql.NullString `db:"color"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

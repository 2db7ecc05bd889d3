package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an authenticated identity. OpenID is the provider-scoped subject.
type User struct {
	ID           string
	OpenID       string
	Name         string
	Email        string
	LoginMethod  string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session is the identity resolved for a request. A nil *Session means anonymous.
type Session struct {
	UserID string
	Role   Role
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByOpenID(ctx context.Context, openID string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

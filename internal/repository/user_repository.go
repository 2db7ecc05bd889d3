package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"provafoco/internal/domain"
	"provafoco/internal/repository/models"
	"provafoco/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = "id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in"

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	base
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{base: newBase(db)}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	role := domain.Role(m.Role)
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{
		ID:           m.ID,
		OpenID:       m.OpenID,
		Name:         m.Name.String,
		Email:        m.Email.String,
		LoginMethod:  m.LoginMethod.String,
		Role:         role,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		LastSignedIn: m.LastSignedIn,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ID,
		OpenID:       u.OpenID,
		Name:         util.StringToNullString(u.Name),
		Email:        util.StringToNullString(u.Email),
		LoginMethod:  util.StringToNullString(u.LoginMethod),
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastSignedIn: u.LastSignedIn,
	}
}

// GetByID retrieves a user by their internal ID. A missing user yields (nil, nil).
func (r *sqlxUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, "get user by id", "id = ?", id)
}

// GetByOpenID retrieves a user by the identity provider's subject.
func (r *sqlxUserRepository) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	return r.getOne(ctx, "get user by open id", "open_id = ?", openID)
}

func (r *sqlxUserRepository) getOne(ctx context.Context, op, where string, arg interface{}) (*domain.User, error) {
	exec := r.exec(ctx)
	var user models.User
	if err := exec.GetContext(ctx, &user, exec.Rebind("SELECT "+userColumns+" FROM users WHERE "+where), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return toDomainUser(&user), nil
}

// Create inserts a new user. Role defaults to user.
func (r *sqlxUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.LastSignedIn.IsZero() {
		user.LastSignedIn = now
	}
	m := fromDomainUser(user)

	exec := r.exec(ctx)
	query := exec.Rebind(`INSERT INTO users (id, open_id, name, email, login_method, role, created_at, updated_at, last_signed_in)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query, m.ID, m.OpenID, m.Name, m.Email, m.LoginMethod, m.Role, m.CreatedAt, m.UpdatedAt, m.LastSignedIn)
	if isUniqueViolation(err) {
		return domain.ValidationErrors{domain.NewDuplicateError("openId", user.OpenID)}
	}
	return storeErr("create user", err)
}

// Update overwrites the profile fields, role and last sign-in time.
func (r *sqlxUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	m := fromDomainUser(user)

	exec := r.exec(ctx)
	query := exec.Rebind(`UPDATE users SET name = ?, email = ?, login_method = ?, role = ?, updated_at = ?, last_signed_in = ?
	          WHERE id = ?`)
	result, err := exec.ExecContext(ctx, query, m.Name, m.Email, m.LoginMethod, m.Role, m.UpdatedAt, m.LastSignedIn, m.ID)
	if err != nil {
		return storeErr("update user", err)
	}
	return notFoundIfNone(result, "user", user.ID)
}

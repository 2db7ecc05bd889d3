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

const bankColumns = "id, name, description, logo, is_active, created_at, updated_at"

type sqlxBankRepository struct {
	base
}

func NewSQLXBankRepository(db *sqlx.DB) domain.BankRepository {
	return &sqlxBankRepository{base: newBase(db)}
}

func toDomainBank(m *models.Bank) *domain.Bank {
	if m == nil {
		return nil
	}
	return &domain.Bank{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description.String,
		Logo:        m.Logo.String,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *sqlxBankRepository) ListActive(ctx context.Context) ([]*domain.Bank, error) {
	var rows []models.Bank
	query := "SELECT " + bankColumns + " FROM banks WHERE is_active = 1 ORDER BY name ASC"
	if err := r.exec(ctx).SelectContext(ctx, &rows, query); err != nil {
		return nil, storeErr("list banks", err)
	}
	out := make([]*domain.Bank, len(rows))
	for i := range rows {
		out[i] = toDomainBank(&rows[i])
	}
	return out, nil
}

func (r *sqlxBankRepository) GetByID(ctx context.Context, id string) (*domain.Bank, error) {
	return r.getOne(ctx, "get bank by id", "id = ?", id)
}

func (r *sqlxBankRepository) GetByName(ctx context.Context, name string) (*domain.Bank, error) {
	return r.getOne(ctx, "get bank by name", "name = ?", name)
}

func (r *sqlxBankRepository) getOne(ctx context.Context, op, where string, arg interface{}) (*domain.Bank, error) {
	exec := r.exec(ctx)
	var row models.Bank
	if err := exec.GetContext(ctx, &row, exec.Rebind("SELECT "+bankColumns+" FROM banks WHERE "+where), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return toDomainBank(&row), nil
}

func (r *sqlxBankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	if bank.ID == "" {
		bank.ID = util.NewULID()
	}
	now := time.Now()
	bank.CreatedAt, bank.UpdatedAt = now, now

	exec := r.exec(ctx)
	query := exec.Rebind(`INSERT INTO banks (id, name, description, logo, is_active, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query, bank.ID, bank.Name, util.StringToNullString(bank.Description),
		util.StringToNullString(bank.Logo), util.BoolToInt(bank.IsActive), bank.CreatedAt, bank.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ValidationErrors{domain.NewDuplicateError("name", bank.Name)}
	}
	return storeErr("create bank", err)
}

func (r *sqlxBankRepository) Update(ctx context.Context, bank *domain.Bank) error {
	bank.UpdatedAt = time.Now()

	exec := r.exec(ctx)
	query := exec.Rebind("UPDATE banks SET name = ?, description = ?, logo = ?, is_active = ?, updated_at = ? WHERE id = ?")
	result, err := exec.ExecContext(ctx, query, bank.Name, util.StringToNullString(bank.Description),
		util.StringToNullString(bank.Logo), util.BoolToInt(bank.IsActive), bank.UpdatedAt, bank.ID)
	if isUniqueViolation(err) {
		return domain.ValidationErrors{domain.NewDuplicateError("name", bank.Name)}
	}
	if err != nil {
		return storeErr("update bank", err)
	}
	return notFoundIfNone(result, "bank", bank.ID)
}

func (r *sqlxBankRepository) SoftDelete(ctx context.Context, id string) error {
	exec := r.exec(ctx)
	result, err := exec.ExecContext(ctx, exec.Rebind("UPDATE banks SET is_active = 0, updated_at = ? WHERE id = ?"), time.Now(), id)
	if err != nil {
		return storeErr("delete bank", err)
	}
	return notFoundIfNone(result, "bank", id)
}

package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"provafoco/internal/database"
	"provafoco/internal/domain"

	"github.com/jmoiron/sqlx"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
}

// base is embedded by every sqlx repository.
type base struct {
	db      *sqlx.DB
	dialect database.Dialect
}

func newBase(db *sqlx.DB) base {
	return base{db: db, dialect: database.NewDialect(db.DriverName())}
}

func (b base) exec(ctx context.Context) DBTX {
	return GetExecutor(ctx, b.db)
}

// storeErr classifies err: connection-level failures become STORE_UNAVAILABLE,
// everything else is wrapped with the operation name.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return domain.NewStoreUnavailableError(op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "ora-03113") ||
		strings.Contains(msg, "ora-12541")
}

// isUniqueViolation recognises duplicate-key errors from both drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "ORA-00001")
}

// notFoundIfNone turns a zero-row write into a NotFound error.
func notFoundIfNone(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewNotFoundError(entity, id)
	}
	return nil
}

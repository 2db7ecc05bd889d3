package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"provafoco/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite/*.sql migrations/oracle/*.sql
var migrationFS embed.FS

// Migrate brings the schema of db up to date for its driver.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if db.DriverName() == DriverOracle {
		return RunOracleMigrations(ctx, db.DB)
	}
	return runSQLiteMigrations(db.DB)
}

func runSQLiteMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationFS, "migrations/sqlite")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create sqlite migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}
	// m.Close would close db as well, which the caller still owns.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	version, dirty, verr := m.Version()
	if verr == nil {
		logger.Get().Info("SQLite migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}

// RunOracleMigrations executes every embedded *.up.sql file that has not been
// recorded in schema_migrations, one statement at a time.
func RunOracleMigrations(ctx context.Context, db *sql.DB) error {
	if err := ensureOracleMigrationTable(ctx, db); err != nil {
		return err
	}

	files, err := fs.Glob(migrationFS, "migrations/oracle/*.up.sql")
	if err != nil {
		return fmt.Errorf("could not list migrations: %v", err)
	}
	sort.Strings(files)

	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".up.sql")

		var applied int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = :1", version).Scan(&applied); err != nil {
			return fmt.Errorf("could not read migration state: %v", err)
		}
		if applied > 0 {
			continue
		}

		content, err := migrationFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %v", file, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %v", version, err)
			}
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (version, applied_at) VALUES (:1, :2)", version, time.Now()); err != nil {
			return fmt.Errorf("could not record migration %s: %v", version, err)
		}
		logger.Get().Info("Executed migration", zap.String("version", version))
	}

	logger.Get().Info("Oracle migrations completed successfully")
	return nil
}

func ensureOracleMigrationTable(ctx context.Context, db *sql.DB) error {
	var exists int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'").Scan(&exists)
	if err != nil {
		return fmt.Errorf("could not inspect schema: %v", err)
	}
	if exists > 0 {
		return nil
	}
	_, err = db.ExecContext(ctx, "CREATE TABLE schema_migrations (version VARCHAR2(255) PRIMARY KEY, applied_at TIMESTAMP NOT NULL)")
	if err != nil {
		return fmt.Errorf("could not create schema_migrations: %v", err)
	}
	return nil
}

// SplitStatements breaks a script on ';' line endings; Oracle accepts one statement per call.
func SplitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		stmt := strings.TrimSpace(part)
		if stmt == "" || strings.HasPrefix(stmt, "--") && !strings.Contains(stmt, "\n") {
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"provafoco/internal/config"
	"provafoco/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver, registers "oracle"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, registers "sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverOracle = "oracle"
)

func init() {
	// Queries are written with '?' and rebound per driver.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Connect opens and pings the configured store.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driver := cfg.DB.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	if driver != DriverSQLite && driver != DriverOracle {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	switch driver {
	case DriverOracle:
		// Oracle reports unquoted identifiers in upper case.
		db.Mapper = reflectx.NewMapperTagFunc("db", strings.ToUpper, strings.ToUpper)
		db.SetMaxOpenConns(20)
		db.SetConnMaxIdleTime(5 * time.Minute)
	case DriverSQLite:
		// one writer at a time; WAL lets readers proceed
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			logger.Get().Warn("Could not enable WAL journal mode", zap.Error(err))
		}
	}

	logger.Get().Info("Connected to database", zap.String("driver", driver))
	return db, nil
}

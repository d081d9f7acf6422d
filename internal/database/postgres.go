package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/wichananm65/image-price-checker/internal/config"
)

// DSN renders the DB_* values as a libpq keyword/value string. Unset values
// are left out so pgx falls back to the PG* environment and its defaults,
// including sslmode.
func DSN(cfg *config.Config) string {
	parts := make([]string, 0, 5)
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+quoteValue(value))
		}
	}
	add("host", cfg.DBHost)
	if cfg.DBPort > 0 {
		add("port", strconv.Itoa(cfg.DBPort))
	}
	add("dbname", cfg.DBName)
	add("user", cfg.DBUser)
	add("password", cfg.DBPassword)
	return strings.Join(parts, " ")
}

func quoteValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ConnConfig parses the connection settings, TLS included, for the DB_* host.
func ConnConfig(cfg *config.Config) (*pgx.ConnConfig, error) {
	cc, err := pgx.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	return cc, nil
}

// Open returns a database handle. Connections are established lazily, so an
// unreachable server is not an error here.
func Open(cfg *config.Config) (*sql.DB, error) {
	cc, err := ConnConfig(cfg)
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*cc), nil
}

// Ping checks connectivity with a short deadline.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

package database

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/wichananm65/image-price-checker/internal/config"
)

func TestConnConfig_UsesDBSettings(t *testing.T) {
	t.Setenv("PGSSLMODE", "disable")
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBPort:     6543,
		DBName:     "shop",
		DBUser:     "reader",
		DBPassword: "p@ss word",
	}

	cc, err := ConnConfig(cfg)
	if err != nil {
		t.Fatalf("ConnConfig failed: %v", err)
	}
	if cc.Host != "db.internal" || cc.Port != 6543 {
		t.Fatalf("unexpected host/port %s:%d", cc.Host, cc.Port)
	}
	if cc.Database != "shop" || cc.User != "reader" || cc.Password != "p@ss word" {
		t.Fatalf("unexpected credentials %+v", cc)
	}
}

func TestConnConfig_NegotiatesTLSWithConfiguredHost(t *testing.T) {
	t.Setenv("PGSSLROOTCERT", "")
	t.Setenv("PGSSLSNI", "")
	cfg := &config.Config{DBHost: "db.example.com", DBPort: 5432, DBName: "shop"}

	for _, mode := range []string{"require", "prefer"} {
		t.Setenv("PGSSLMODE", mode)
		cc, err := ConnConfig(cfg)
		if err != nil {
			t.Fatalf("ConnConfig(%s) failed: %v", mode, err)
		}
		if cc.Host != "db.example.com" {
			t.Fatalf("sslmode=%s: unexpected host %s", mode, cc.Host)
		}
		if cc.TLSConfig == nil {
			t.Fatalf("sslmode=%s: expected TLS to be configured", mode)
		}
		if cc.TLSConfig.ServerName != "db.example.com" {
			t.Fatalf("sslmode=%s: expected server name db.example.com, got %q", mode, cc.TLSConfig.ServerName)
		}
	}

	t.Setenv("PGSSLMODE", "disable")
	cc, err := ConnConfig(cfg)
	if err != nil {
		t.Fatalf("ConnConfig(disable) failed: %v", err)
	}
	if cc.TLSConfig != nil {
		t.Fatalf("sslmode=disable should not configure TLS")
	}
}

func TestDSN_QuotesValues(t *testing.T) {
	got := DSN(&config.Config{DBHost: "db", DBPort: 5432, DBName: "shop", DBUser: "reader", DBPassword: `it's \ secret`})
	want := `host='db' port='5432' dbname='shop' user='reader' password='it\'s \\ secret'`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	cc, err := pgx.ParseConfig(got)
	if err != nil {
		t.Fatalf("DSN should parse: %v", err)
	}
	if cc.Password != `it's \ secret` {
		t.Fatalf("password not round-tripped: %q", cc.Password)
	}
}

func TestOpen_DoesNotConnect(t *testing.T) {
	db, err := Open(&config.Config{DBHost: "127.0.0.1", DBPort: 1, DBName: "none"})
	if err != nil {
		t.Fatalf("Open should not fail for an unreachable host: %v", err)
	}
	defer db.Close()
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_PORT", "SESSION_STORE", "SESSION_TTL_HOURS", "DEV"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Session.Store != "db" {
		t.Fatalf("session store = %q, want db", cfg.Session.Store)
	}
	if cfg.Session.TTL() != 14*24*time.Hour {
		t.Fatalf("ttl = %v", cfg.Session.TTL())
	}
	if cfg.App.Dev {
		t.Fatalf("dev mode must be opt-in")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("MIGRATIONS", "yes")
	t.Setenv("DEV", "1")
	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Fatalf("port = %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.Port != 5432 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.Database.Port)
	}
	if cfg.Session.Store != "redis" {
		t.Fatalf("session store = %q", cfg.Session.Store)
	}
	if !cfg.App.Migrations || !cfg.App.Dev {
		t.Fatalf("bool parsing wrong: %+v", cfg.App)
	}
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	if got, want := pg.DSN(), "host=h port=5432 user=u password=p dbname=d sslmode=disable"; got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
	if got, want := pg.MigrateURL(), "postgres://u:p@h:5432/d?sslmode=disable"; got != want {
		t.Fatalf("MigrateURL() = %q, want %q", got, want)
	}
	pg.URL = "postgres://x:y@db:6543/records"
	if pg.DSN() != pg.URL || pg.MigrateURL() != pg.URL {
		t.Fatalf("DATABASE_URL should win: %q %q", pg.DSN(), pg.MigrateURL())
	}
	lite := DatabaseConfig{Driver: "sqlite", SQLitePath: "records.db"}
	if got, want := lite.DSN(), "records.db?_foreign_keys=on"; got != want {
		t.Fatalf("sqlite DSN() = %q, want %q", got, want)
	}
	lite.SQLitePath = "file:x?mode=memory"
	if got, want := lite.DSN(), "file:x?mode=memory&_foreign_keys=on"; got != want {
		t.Fatalf("sqlite DSN with params = %q, want %q", got, want)
	}
	lite.SQLitePath = "file:x?_foreign_keys=off"
	if got := lite.DSN(); got != "file:x?_foreign_keys=off" {
		t.Fatalf("explicit foreign key setting should be kept, got %q", got)
	}
}

func TestLoadDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", ` "postgres://a:b@c/d" `)
	if got := Load().Database.URL; got != "postgres://a:b@c/d" {
		t.Fatalf("DATABASE_URL not trimmed: %q", got)
	}
}

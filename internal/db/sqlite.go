package db

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName is the go-sqlite3 driver registered with the
// per-connection setup below.
const sqliteDriverName = "sqlite3_records"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{ConnectHook: setupSQLiteConn})
}

// setupSQLiteConn turns on foreign keys and replaces lower() with a
// Unicode-aware fold on every pooled connection. SQLite's built-in lower()
// only folds ASCII.
func setupSQLiteConn(conn *sqlite3.SQLiteConn) error {
	if _, err := conn.Exec("PRAGMA foreign_keys = ON", nil); err != nil {
		return err
	}
	return conn.RegisterFunc("lower", foldLower, true)
}

func foldLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return strings.ToLower(string(s))
	default:
		return v
	}
}

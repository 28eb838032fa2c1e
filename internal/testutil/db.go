// Package testutil provides the in-memory database fixture shared by the
// repository, service and handler tests.
package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE users (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    username   TEXT NOT NULL,
    email      TEXT NOT NULL UNIQUE,
    password   TEXT NOT NULL,
    avatar     TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

CREATE TABLE listings (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id        INTEGER NOT NULL,
    name           TEXT NOT NULL,
    description    TEXT NOT NULL,
    address        TEXT NOT NULL,
    regular_price  REAL NOT NULL DEFAULT 0,
    discount_price REAL NOT NULL DEFAULT 0,
    bathrooms      INTEGER NOT NULL DEFAULT 0,
    bedrooms       INTEGER NOT NULL DEFAULT 0,
    furnished      BOOLEAN NOT NULL DEFAULT 0,
    parking        BOOLEAN NOT NULL DEFAULT 0,
    type           TEXT NOT NULL,
    offer          BOOLEAN NOT NULL DEFAULT 0,
    image_urls     TEXT,
    photo_file_id  TEXT NOT NULL DEFAULT '',
    created_at     DATETIME NOT NULL,
    updated_at     DATETIME NOT NULL
);
`

// NewTestDB opens an in-memory sqlite database with the service schema. The
// production queries stick to the portable subset ($N placeholders, RETURNING,
// no server-side time functions), so they run unchanged here.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// one conn, or each pool conn would see its own empty :memory: db
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

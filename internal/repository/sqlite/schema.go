package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type table struct {
	name string
	ddl  string
}

// tables is listed in dependency order; DropAll walks it backwards.
var tables = []table{
	{name: "users", ddl: `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username VARCHAR(80) NOT NULL UNIQUE,
	email VARCHAR(120) NOT NULL UNIQUE,
	password VARCHAR(255) NOT NULL,
	created_at DATETIME NOT NULL
);`},
	{name: "categories", ddl: `
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(50) NOT NULL UNIQUE
);`},
	{name: "threads", ddl: `
CREATE TABLE IF NOT EXISTS threads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title VARCHAR(200) NOT NULL,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	user_id INTEGER NOT NULL,
	category_id INTEGER NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE RESTRICT,
	FOREIGN KEY(category_id) REFERENCES categories(id) ON DELETE RESTRICT
);
CREATE INDEX IF NOT EXISTS idx_threads_created_at ON threads(created_at);
CREATE INDEX IF NOT EXISTS idx_threads_user_id ON threads(user_id);`},
	{name: "comments", ddl: `
CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	user_id INTEGER NOT NULL,
	thread_id INTEGER NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE RESTRICT,
	FOREIGN KEY(thread_id) REFERENCES threads(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_comments_thread_id ON comments(thread_id);
CREATE INDEX IF NOT EXISTS idx_comments_user_id ON comments(user_id);`},
	{name: "city", ddl: `
CREATE TABLE IF NOT EXISTS city (
	id_city INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(60) NOT NULL
);`},
	{name: "customer", ddl: `
CREATE TABLE IF NOT EXISTS customer (
	id_customer INTEGER PRIMARY KEY AUTOINCREMENT,
	name VARCHAR(50) NOT NULL,
	email VARCHAR(50) NOT NULL DEFAULT '',
	phone VARCHAR(20) NOT NULL DEFAULT '',
	zip VARCHAR(10) NOT NULL DEFAULT ''
);`},
}

// TableNames returns the managed tables in creation order.
func TableNames() []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.name
	}
	return names
}

// CreateAll creates every table that does not exist yet.
func CreateAll(ctx context.Context, db *sql.DB) error {
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create %s table: %w", t.name, err)
		}
	}
	return nil
}

// DropAll drops every managed table, dependents first.
func DropAll(ctx context.Context, db *sql.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables[i].name)); err != nil {
			return fmt.Errorf("drop %s table: %w", tables[i].name, err)
		}
	}
	return nil
}

// Reset drops and recreates the whole schema.
func Reset(ctx context.Context, db *sql.DB) error {
	if err := DropAll(ctx, db); err != nil {
		return err
	}
	return CreateAll(ctx, db)
}

// Snapshot writes a consistent copy of the database to dest, which must not exist yet.
func Snapshot(ctx context.Context, db *sql.DB, dest string) error {
	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("vacuum into %s: %w", dest, err)
	}
	return nil
}

// Package db persists todos and tags in a sqlite database.
package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// Database manages the db connection.
type Database struct {
	conn *sql.DB
}

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx,
// so every Store operation works both inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store exposes todo and tag operations bound to either the shared
// connection or one transaction.
type Store struct {
	q querier
}

// Open connects to the sqlite database at the given filename and initializes
// the structure if not present.
func Open(ctx context.Context, filename string) (*Database, error) {
	conn, err := sql.Open("sqlite3", filename+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	database := Database{conn: conn}

	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := conn.ExecContext(ctx, baseSQL); err != nil {
		conn.Close()

		return nil, fmt.Errorf("error running base sql: %w", err)
	}

	return &database, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// Store returns a Store bound to the shared connection, for single-statement
// reads that don't need transaction isolation.
func (d *Database) Store() *Store {
	return &Store{q: d.conn}
}

// WithTx runs fn against a transaction-scoped Store. The transaction is
// rolled back if fn returns an error and committed otherwise.
func (d *Database) WithTx(ctx context.Context, fn func(*Store) error) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}

	if err := fn(&Store{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back transaction after %w: %v", err, rbErr)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

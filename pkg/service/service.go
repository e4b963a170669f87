// Package service implements the todo use cases on top of the store:
// filtered listing, todo and tag lifecycle, and CSV import/export.
package service

import "github.com/matt-steen/todo-list/pkg/db"

// Service runs each operation as one unit of work against the database,
// wrapping multi-step operations in a transaction.
type Service struct {
	db *db.Database
}

// New creates a Service backed by the given database.
func New(database *db.Database) *Service {
	return &Service{db: database}
}

package service

import (
	"context"

	"github.com/matt-steen/todo-list/pkg/csv"
	"github.com/matt-steen/todo-list/pkg/db"
)

// ImportResult reports a completed import: how many todos were created, and
// the created todos in source-row order.
type ImportResult struct {
	SuccessCount int
	Todos        []*db.Todo
}

// ImportCSV imports todos from raw CSV text.
//
// A structural problem (no data rows, missing header) or any row-level
// validation failure rejects the whole import with nothing persisted; row
// failures are reported together as a csv.RowErrors with 1-based row
// numbers. Otherwise all referenced tag names are reconciled and one todo
// is created per row, in row order, inside a single transaction.
func (s *Service) ImportCSV(ctx context.Context, text string) (*ImportResult, error) {
	validRows, rowErrs, err := csv.ParseWithSchema(text, csvHeaders, parseCSVRow)
	if err != nil {
		return nil, err
	}

	if len(rowErrs) > 0 {
		return nil, rowErrs
	}

	var allNames []string
	for _, row := range validRows {
		allNames = append(allNames, row.Tags...)
	}

	result := &ImportResult{}

	err = s.db.WithTx(ctx, func(store *db.Store) error {
		nameToID, err := ensureTags(ctx, store, allNames)
		if err != nil {
			return err
		}

		for _, row := range validRows {
			tagIDs := make([]string, 0, len(row.Tags))
			for _, name := range row.Tags {
				tagIDs = append(tagIDs, nameToID[name])
			}

			todo, err := store.CreateTodo(ctx, db.CreateTodoParams{
				Content: row.Content,
				Status:  row.Status,
				DueDate: row.DueDate,
			}, tagIDs)
			if err != nil {
				return err
			}

			result.Todos = append(result.Todos, todo)
		}

		result.SuccessCount = len(result.Todos)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ExportCSV returns all todos as CSV text in the exchange format.
func (s *Service) ExportCSV(ctx context.Context) (string, error) {
	todos, err := s.db.Store().ListTodos(ctx, db.Filter{}, db.DefaultSort())
	if err != nil {
		return "", err
	}

	rows := make([]csv.Record, 0, len(todos))
	for _, todo := range todos {
		rows = append(rows, exportRow(todo))
	}

	return csv.Serialize(rows, csvHeaders), nil
}

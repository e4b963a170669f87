package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matt-steen/todo-list/pkg/csv"
	"github.com/matt-steen/todo-list/pkg/db"
)

// dueDateLayout is the date format used in the exchange format.
const dueDateLayout = "2006-01-02"

// csvHeaders is the fixed column order of the todo exchange format.
var csvHeaders = []string{"content", "status", "dueDate", "tags"}

// csvRow is the validated form of one CSV data row, ready to become a todo.
type csvRow struct {
	Content string
	Status  db.Status
	DueDate *time.Time
	Tags    []string
}

// parseCSVRow validates and coerces one record into a csvRow. All field
// complaints for the row are collected into a single error rather than
// stopping at the first.
func parseCSVRow(record csv.Record) (csvRow, error) {
	var problems []string

	row := csvRow{Status: db.StatusNotStarted, Tags: []string{}}

	row.Content = strings.TrimSpace(record["content"])
	if row.Content == "" {
		problems = append(problems, "content is required")
	}

	if status := strings.TrimSpace(record["status"]); status != "" {
		row.Status = db.Status(status)
		if !row.Status.IsValid() {
			problems = append(problems, fmt.Sprintf("invalid status %q", status))
		}
	}

	if due := strings.TrimSpace(record["dueDate"]); due != "" {
		date, err := time.Parse(dueDateLayout, due)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid due date %q", due))
		} else {
			row.DueDate = &date
		}
	}

	for _, name := range strings.Split(record["tags"], ",") {
		if name = strings.TrimSpace(name); name != "" {
			row.Tags = append(row.Tags, name)
		}
	}

	if len(problems) > 0 {
		return csvRow{}, errors.New(strings.Join(problems, ", "))
	}

	return row, nil
}

// exportRow maps a persisted todo to its exchange record: due date as
// YYYY-MM-DD or empty, tags comma-joined in tag-set order.
func exportRow(todo *db.Todo) csv.Record {
	due := ""
	if todo.DueDate != nil {
		due = todo.DueDate.Format(dueDateLayout)
	}

	return csv.Record{
		"content": todo.Content,
		"status":  string(todo.Status),
		"dueDate": due,
		"tags":    strings.Join(todo.TagNames(), ","),
	}
}

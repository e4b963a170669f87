package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// dateLayout is how due dates are stored; lexical order matches date order.
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339Nano
)

// CreateTodoParams are the caller-supplied fields of a new todo.
type CreateTodoParams struct {
	Content string
	// Status defaults to NOT_STARTED when empty.
	Status  Status
	DueDate *time.Time
}

// UpdateTodoParams are partial updates to a todo; nil pointer fields are left
// untouched.
type UpdateTodoParams struct {
	Content *string
	Status  *Status
	DueDate *time.Time
	// ClearDueDate removes the due date; ignored when DueDate is set.
	ClearDueDate bool
	// TagIDs replaces the todo's entire tag set when ReplaceTags is true.
	TagIDs      []string
	ReplaceTags bool
}

// ListTodos returns todos matching the filter in the given sort order, with
// tag sets attached. Filtering and sorting happen in the query so correctness
// holds at any data volume.
func (s *Store) ListTodos(ctx context.Context, filter Filter, sort Sort) ([]*Todo, error) {
	if sort.Field == "" {
		sort = DefaultSort()
	}

	where, args := filter.whereClause()
	query := fmt.Sprintf(
		`SELECT id, content, status, due_date, created_at, updated_at FROM todo %s %s`,
		where, sort.orderClause(),
	)

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}

	defer rows.Close()

	todos := []*Todo{}

	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning todo: %w", err)
		}

		todos = append(todos, todo)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning todos: %w", err)
	}

	if err := s.loadTags(ctx, todos); err != nil {
		return nil, err
	}

	return todos, nil
}

// FindTodo returns the todo with the given id, or nil if there is none.
func (s *Store) FindTodo(ctx context.Context, id string) (*Todo, error) {
	row := s.q.QueryRowContext(
		ctx, `SELECT id, content, status, due_date, created_at, updated_at FROM todo WHERE id = ?`, id,
	)

	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("error finding todo %s: %w", id, err)
	}

	if err := s.loadTags(ctx, []*Todo{todo}); err != nil {
		return nil, err
	}

	return todo, nil
}

// CreateTodo inserts a new todo associated with the given tag ids and returns
// it with its tag set loaded. Unknown tag ids fail the insert via the foreign
// key on todo_tag.
func (s *Store) CreateTodo(ctx context.Context, params CreateTodoParams, tagIDs []string) (*Todo, error) {
	if params.Status == "" {
		params.Status = StatusNotStarted
	}

	now := time.Now()
	todo := &Todo{
		ID:        uuid.NewString(),
		Content:   params.Content,
		Status:    params.Status,
		DueDate:   params.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []*Tag{},
	}

	var due any
	if params.DueDate != nil {
		due = params.DueDate.Format(dateLayout)
	}

	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO todo (id, content, status, due_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Content, string(todo.Status), due, now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}

	if err := s.replaceTodoTags(ctx, todo.ID, tagIDs); err != nil {
		return nil, err
	}

	if err := s.loadTags(ctx, []*Todo{todo}); err != nil {
		return nil, err
	}

	return todo, nil
}

// UpdateTodo applies the partial update to the todo with the given id and
// returns the updated todo.
func (s *Store) UpdateTodo(ctx context.Context, id string, params UpdateTodoParams) (*Todo, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().Format(timeLayout)}

	if params.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *params.Content)
	}

	if params.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*params.Status))
	}

	switch {
	case params.DueDate != nil:
		sets = append(sets, "due_date = ?")
		args = append(args, params.DueDate.Format(dateLayout))
	case params.ClearDueDate:
		sets = append(sets, "due_date = NULL")
	}

	args = append(args, id)

	result, err := s.q.ExecContext(
		ctx, fmt.Sprintf(`UPDATE todo SET %s WHERE id = ?`, strings.Join(sets, ", ")), args...,
	)
	if err != nil {
		return nil, fmt.Errorf("error updating todo %s: %w", id, err)
	}

	if affected, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("error updating todo %s: %w", id, err)
	} else if affected == 0 {
		return nil, &NotFoundError{Entity: "Todo", ID: id}
	}

	if params.ReplaceTags {
		if _, err := s.q.ExecContext(ctx, `DELETE FROM todo_tag WHERE todo_id = ?`, id); err != nil {
			return nil, fmt.Errorf("error clearing tags for todo %s: %w", id, err)
		}

		if err := s.replaceTodoTags(ctx, id, params.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.FindTodo(ctx, id)
}

// DeleteTodo removes the todo with the given id; its tag associations go with
// it via the cascade.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM todo WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting todo %s: %w", id, err)
	}

	if affected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("error deleting todo %s: %w", id, err)
	} else if affected == 0 {
		return &NotFoundError{Entity: "Todo", ID: id}
	}

	return nil
}

// replaceTodoTags inserts one join row per distinct tag id, preserving the
// order the ids were given in.
func (s *Store) replaceTodoTags(ctx context.Context, todoID string, tagIDs []string) error {
	seen := map[string]bool{}

	for _, tagID := range tagIDs {
		if seen[tagID] {
			continue
		}

		seen[tagID] = true

		_, err := s.q.ExecContext(ctx, `INSERT INTO todo_tag (todo_id, tag_id) VALUES (?, ?)`, todoID, tagID)
		if err != nil {
			return fmt.Errorf("error associating tag %s with todo %s: %w", tagID, todoID, err)
		}
	}

	return nil
}

// loadTags attaches tag sets to the given todos with a single join query,
// preserving association order.
func (s *Store) loadTags(ctx context.Context, todos []*Todo) error {
	if len(todos) == 0 {
		return nil
	}

	byID := make(map[string]*Todo, len(todos))
	args := make([]any, 0, len(todos))

	for _, todo := range todos {
		todo.Tags = []*Tag{}
		byID[todo.ID] = todo

		args = append(args, todo.ID)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(todos)), ",")
	query := fmt.Sprintf(
		`SELECT tt.todo_id, t.id, t.name, t.created_at, t.updated_at
		 FROM todo_tag tt JOIN tag t ON t.id = tt.tag_id
		 WHERE tt.todo_id IN (%s)
		 ORDER BY tt.rowid`, placeholders,
	)

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error loading todo tags: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var todoID string

		var tag Tag

		var created, updated string

		if err := rows.Scan(&todoID, &tag.ID, &tag.Name, &created, &updated); err != nil {
			return fmt.Errorf("error scanning todo tag: %w", err)
		}

		if tag.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return fmt.Errorf("error parsing tag created_at: %w", err)
		}

		if tag.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
			return fmt.Errorf("error parsing tag updated_at: %w", err)
		}

		if todo, ok := byID[todoID]; ok {
			todo.Tags = append(todo.Tags, &tag)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error scanning todo tags: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*Todo, error) {
	var todo Todo

	var due sql.NullString

	var created, updated string

	if err := row.Scan(&todo.ID, &todo.Content, &todo.Status, &due, &created, &updated); err != nil {
		return nil, err
	}

	if due.Valid && due.String != "" {
		date, err := time.Parse(dateLayout, due.String)
		if err != nil {
			return nil, fmt.Errorf("error parsing due date %q: %w", due.String, err)
		}

		todo.DueDate = &date
	}

	var err error

	if todo.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("error parsing created_at: %w", err)
	}

	if todo.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("error parsing updated_at: %w", err)
	}

	todo.Tags = []*Tag{}

	return &todo, nil
}

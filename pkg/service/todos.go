package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matt-steen/todo-list/pkg/db"
)

// ErrEmptyContent is returned when a todo would be created or updated with
// empty content.
var ErrEmptyContent = errors.New("content is required")

// CreateTodoInput are the fields of a new todo.
type CreateTodoInput struct {
	Content string
	// Status defaults to NOT_STARTED when empty.
	Status  db.Status
	DueDate *time.Time
	TagIDs  []string
}

// UpdateTodoInput is a partial update; nil pointer fields are left untouched.
type UpdateTodoInput struct {
	Content *string
	Status  *db.Status
	DueDate *time.Time
	// ClearDueDate removes the due date; ignored when DueDate is set.
	ClearDueDate bool
	// TagIDs replaces the todo's entire tag set when ReplaceTags is true.
	TagIDs      []string
	ReplaceTags bool
}

// ListTodos returns todos matching the filter in the given sort order. A nil
// sort means newest first.
func (s *Service) ListTodos(ctx context.Context, filter db.Filter, sort *db.Sort) ([]*db.Todo, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	order := db.DefaultSort()

	if sort != nil {
		if err := sort.Validate(); err != nil {
			return nil, err
		}

		order = *sort
	}

	return s.db.Store().ListTodos(ctx, filter, order)
}

// GetTodo returns the todo with the given id.
func (s *Service) GetTodo(ctx context.Context, id string) (*db.Todo, error) {
	todo, err := s.db.Store().FindTodo(ctx, id)
	if err != nil {
		return nil, err
	}

	if todo == nil {
		return nil, &db.NotFoundError{Entity: "Todo", ID: id}
	}

	return todo, nil
}

// CreateTodo creates a todo after checking that every referenced tag id
// exists.
func (s *Service) CreateTodo(ctx context.Context, input CreateTodoInput) (*db.Todo, error) {
	if input.Content == "" {
		return nil, ErrEmptyContent
	}

	if input.Status != "" && !input.Status.IsValid() {
		return nil, fmt.Errorf("invalid status %q", string(input.Status))
	}

	var todo *db.Todo

	err := s.db.WithTx(ctx, func(store *db.Store) error {
		if err := checkTagIDs(ctx, store, input.TagIDs); err != nil {
			return err
		}

		var err error

		todo, err = store.CreateTodo(ctx, db.CreateTodoParams{
			Content: input.Content,
			Status:  input.Status,
			DueDate: input.DueDate,
		}, input.TagIDs)

		return err
	})
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// UpdateTodo applies a partial update to the todo with the given id.
func (s *Service) UpdateTodo(ctx context.Context, id string, input UpdateTodoInput) (*db.Todo, error) {
	if input.Content != nil && *input.Content == "" {
		return nil, ErrEmptyContent
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, fmt.Errorf("invalid status %q", string(*input.Status))
	}

	var todo *db.Todo

	err := s.db.WithTx(ctx, func(store *db.Store) error {
		existing, err := store.FindTodo(ctx, id)
		if err != nil {
			return err
		}

		if existing == nil {
			return &db.NotFoundError{Entity: "Todo", ID: id}
		}

		if input.ReplaceTags {
			if err := checkTagIDs(ctx, store, input.TagIDs); err != nil {
				return err
			}
		}

		todo, err = store.UpdateTodo(ctx, id, db.UpdateTodoParams{
			Content:      input.Content,
			Status:       input.Status,
			DueDate:      input.DueDate,
			ClearDueDate: input.ClearDueDate,
			TagIDs:       input.TagIDs,
			ReplaceTags:  input.ReplaceTags,
		})

		return err
	})
	if err != nil {
		return nil, err
	}

	return todo, nil
}

// DeleteTodo removes the todo with the given id.
func (s *Service) DeleteTodo(ctx context.Context, id string) error {
	return s.db.WithTx(ctx, func(store *db.Store) error {
		existing, err := store.FindTodo(ctx, id)
		if err != nil {
			return err
		}

		if existing == nil {
			return &db.NotFoundError{Entity: "Todo", ID: id}
		}

		return store.DeleteTodo(ctx, id)
	})
}

// checkTagIDs verifies that every referenced tag id exists, with one batched
// query rather than one query per id.
func checkTagIDs(ctx context.Context, store *db.Store, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	tags, err := store.FindTagsByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}

	found := make(map[string]bool, len(tags))
	for _, tag := range tags {
		found[tag.ID] = true
	}

	for _, id := range tagIDs {
		if !found[id] {
			return &db.NotFoundError{Entity: "Tag", ID: id}
		}
	}

	return nil
}

package service

import (
	"context"
	"errors"

	"github.com/matt-steen/todo-list/pkg/db"
)

// ErrEmptyTagName is returned when a tag would be created or renamed with an
// empty name.
var ErrEmptyTagName = errors.New("tag name is required")

// ListTags returns all tags ordered by name.
func (s *Service) ListTags(ctx context.Context) ([]*db.Tag, error) {
	return s.db.Store().ListTags(ctx)
}

// CreateTag creates a tag, rejecting a name that already exists.
func (s *Service) CreateTag(ctx context.Context, name string) (*db.Tag, error) {
	if name == "" {
		return nil, ErrEmptyTagName
	}

	var tag *db.Tag

	err := s.db.WithTx(ctx, func(store *db.Store) error {
		existing, err := store.FindTagByName(ctx, name)
		if err != nil {
			return err
		}

		if existing != nil {
			return &db.ConflictError{Name: name}
		}

		tag, err = store.CreateTag(ctx, name)

		return err
	})
	if err != nil {
		return nil, err
	}

	return tag, nil
}

// RenameTag renames the tag with the given id, rejecting a name already used
// by a different tag.
func (s *Service) RenameTag(ctx context.Context, id, name string) (*db.Tag, error) {
	if name == "" {
		return nil, ErrEmptyTagName
	}

	var tag *db.Tag

	err := s.db.WithTx(ctx, func(store *db.Store) error {
		existing, err := store.FindTag(ctx, id)
		if err != nil {
			return err
		}

		if existing == nil {
			return &db.NotFoundError{Entity: "Tag", ID: id}
		}

		duplicate, err := store.FindTagByName(ctx, name)
		if err != nil {
			return err
		}

		if duplicate != nil && duplicate.ID != id {
			return &db.ConflictError{Name: name}
		}

		tag, err = store.UpdateTag(ctx, id, name)

		return err
	})
	if err != nil {
		return nil, err
	}

	return tag, nil
}

// DeleteTag removes the tag with the given id from all todos that reference
// it; the todos themselves are kept.
func (s *Service) DeleteTag(ctx context.Context, id string) error {
	return s.db.WithTx(ctx, func(store *db.Store) error {
		existing, err := store.FindTag(ctx, id)
		if err != nil {
			return err
		}

		if existing == nil {
			return &db.NotFoundError{Entity: "Tag", ID: id}
		}

		return store.DeleteTag(ctx, id)
	})
}

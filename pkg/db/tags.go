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

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*Tag, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, name, created_at, updated_at FROM tag ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("error listing tags: %w", err)
	}

	defer rows.Close()

	return collectTags(rows)
}

// FindTag returns the tag with the given id, or nil if there is none.
func (s *Store) FindTag(ctx context.Context, id string) (*Tag, error) {
	return s.findTag(ctx, `SELECT id, name, created_at, updated_at FROM tag WHERE id = ?`, id)
}

// FindTagByName returns the tag with the given name (case-sensitive exact
// match), or nil if there is none.
func (s *Store) FindTagByName(ctx context.Context, name string) (*Tag, error) {
	return s.findTag(ctx, `SELECT id, name, created_at, updated_at FROM tag WHERE name = ?`, name)
}

// FindTagsByNames returns the tags whose names are in the given set, in one
// query.
func (s *Store) FindTagsByNames(ctx context.Context, names []string) ([]*Tag, error) {
	if len(names) == 0 {
		return []*Tag{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(names)), ",")
	args := make([]any, len(names))

	for i, name := range names {
		args[i] = name
	}

	rows, err := s.q.QueryContext(
		ctx,
		fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM tag WHERE name IN (%s) ORDER BY name ASC`, placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding tags by name: %w", err)
	}

	defer rows.Close()

	return collectTags(rows)
}

// FindTagsByIDs returns the tags whose ids are in the given set, in one query.
func (s *Store) FindTagsByIDs(ctx context.Context, ids []string) ([]*Tag, error) {
	if len(ids) == 0 {
		return []*Tag{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))

	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.q.QueryContext(
		ctx,
		fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM tag WHERE id IN (%s) ORDER BY name ASC`, placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding tags by id: %w", err)
	}

	defer rows.Close()

	return collectTags(rows)
}

// CreateTag inserts a new tag with the given name. A duplicate name fails the
// unique constraint on tag.name.
func (s *Store) CreateTag(ctx context.Context, name string) (*Tag, error) {
	now := time.Now()
	tag := &Tag{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}

	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO tag (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		tag.ID, tag.Name, now.Format(timeLayout), now.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("error adding tag %s: %w", name, err)
	}

	return tag, nil
}

// BulkCreateTags inserts one tag per name and returns the created tags in
// input order. On error, inserts made so far stay pending in the caller's
// transaction.
func (s *Store) BulkCreateTags(ctx context.Context, names []string) ([]*Tag, error) {
	tags := make([]*Tag, 0, len(names))

	for _, name := range names {
		tag, err := s.CreateTag(ctx, name)
		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

// UpdateTag renames the tag with the given id and returns the updated tag.
func (s *Store) UpdateTag(ctx context.Context, id, name string) (*Tag, error) {
	result, err := s.q.ExecContext(
		ctx, `UPDATE tag SET name = ?, updated_at = ? WHERE id = ?`, name, time.Now().Format(timeLayout), id,
	)
	if err != nil {
		return nil, fmt.Errorf("error renaming tag %s: %w", id, err)
	}

	if affected, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("error renaming tag %s: %w", id, err)
	} else if affected == 0 {
		return nil, &NotFoundError{Entity: "Tag", ID: id}
	}

	return s.FindTag(ctx, id)
}

// DeleteTag removes the tag with the given id. The cascade removes the tag
// from every todo that referenced it; the todos themselves are untouched.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM tag WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting tag %s: %w", id, err)
	}

	if affected, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("error deleting tag %s: %w", id, err)
	} else if affected == 0 {
		return &NotFoundError{Entity: "Tag", ID: id}
	}

	return nil
}

func (s *Store) findTag(ctx context.Context, query string, arg any) (*Tag, error) {
	var tag Tag

	var created, updated string

	err := s.q.QueryRowContext(ctx, query, arg).Scan(&tag.ID, &tag.Name, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("error finding tag: %w", err)
	}

	if tag.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("error parsing tag created_at: %w", err)
	}

	if tag.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("error parsing tag updated_at: %w", err)
	}

	return &tag, nil
}

func collectTags(rows *sql.Rows) ([]*Tag, error) {
	tags := []*Tag{}

	for rows.Next() {
		var tag Tag

		var created, updated string

		if err := rows.Scan(&tag.ID, &tag.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("error scanning tag: %w", err)
		}

		var err error

		if tag.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, fmt.Errorf("error parsing tag created_at: %w", err)
		}

		if tag.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
			return nil, fmt.Errorf("error parsing tag updated_at: %w", err)
		}

		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning tags: %w", err)
	}

	return tags, nil
}

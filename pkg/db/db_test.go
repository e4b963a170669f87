package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/stretchr/testify/assert"
)

func getDB(t *testing.T, assert *assert.Assertions) *db.Database {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"))
	assert.NotNil(database)
	assert.Nil(err)

	t.Cleanup(func() { database.Close() })

	return database
}

func date(assert *assert.Assertions, value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	assert.Nil(err)

	return &parsed
}

func TestOpenBadFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	database, err := db.Open(context.Background(), "/alwfkjasfd/asdflkjdsal.sqlite")
	assert.Nil(database)
	assert.NotNil(err)
	assert.Contains(err.Error(), "error running base sql")
}

func TestOpenIdempotent(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	filename := filepath.Join(t.TempDir(), "test.sqlite")

	database, err := db.Open(ctx, filename)
	assert.Nil(err)

	_, err = database.Store().CreateTodo(ctx, db.CreateTodoParams{Content: "do some work"}, nil)
	assert.Nil(err)

	assert.Nil(database.Close())

	database2, err := db.Open(ctx, filename)
	assert.Nil(err)

	defer database2.Close()

	todos, err := database2.Store().ListTodos(ctx, db.Filter{}, db.DefaultSort())
	assert.Nil(err)
	assert.Len(todos, 1)
	assert.Equal("do some work", todos[0].Content)
}

func TestWithTxCommit(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	database := getDB(t, assert)

	err := database.WithTx(ctx, func(store *db.Store) error {
		_, err := store.CreateTodo(ctx, db.CreateTodoParams{Content: "inside tx"}, nil)

		return err
	})
	assert.Nil(err)

	todos, err := database.Store().ListTodos(ctx, db.Filter{}, db.DefaultSort())
	assert.Nil(err)
	assert.Len(todos, 1)
}

func TestWithTxRollback(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	database := getDB(t, assert)

	boom := errors.New("boom")

	err := database.WithTx(ctx, func(store *db.Store) error {
		if _, err := store.CreateTodo(ctx, db.CreateTodoParams{Content: "doomed"}, nil); err != nil {
			return err
		}

		if _, err := store.CreateTag(ctx, "doomed-tag"); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(err, boom)

	// nothing from the failed transaction is observable
	todos, err := database.Store().ListTodos(ctx, db.Filter{}, db.DefaultSort())
	assert.Nil(err)
	assert.Empty(todos)

	tags, err := database.Store().ListTags(ctx)
	assert.Nil(err)
	assert.Empty(tags)
}

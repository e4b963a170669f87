package service_test

import (
	"context"
	"testing"

	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/matt-steen/todo-list/pkg/service"
	"github.com/stretchr/testify/assert"
)

func TestCreateTodoValidation(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	_, err := svc.CreateTodo(ctx, service.CreateTodoInput{})
	assert.ErrorIs(err, service.ErrEmptyContent)

	_, err = svc.CreateTodo(ctx, service.CreateTodoInput{Content: "ok", Status: "BOGUS"})
	assert.NotNil(err)
	assert.Equal(`invalid status "BOGUS"`, err.Error())
}

func TestCreateTodoUnknownTag(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	work, err := svc.CreateTag(ctx, "work")
	assert.Nil(err)

	_, err = svc.CreateTodo(ctx, service.CreateTodoInput{
		Content: "mystery",
		TagIDs:  []string{work.ID, "no-such-tag"},
	})

	var notFound *db.NotFoundError

	assert.ErrorAs(err, &notFound)
	assert.Equal("Tag with ID no-such-tag not found", err.Error())

	// the whole create rolled back
	todos, err := svc.ListTodos(ctx, db.Filter{}, nil)
	assert.Nil(err)
	assert.Empty(todos)
}

func TestUpdateTodo(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	work, err := svc.CreateTag(ctx, "work")
	assert.Nil(err)

	todo, err := svc.CreateTodo(ctx, service.CreateTodoInput{Content: "draft report"})
	assert.Nil(err)

	status := db.StatusInProgress

	updated, err := svc.UpdateTodo(ctx, todo.ID, service.UpdateTodoInput{
		Status:      &status,
		TagIDs:      []string{work.ID},
		ReplaceTags: true,
	})
	assert.Nil(err)
	assert.Equal(db.StatusInProgress, updated.Status)
	assert.Equal([]string{"work"}, updated.TagNames())
	assert.Equal("draft report", updated.Content)
}

func TestUpdateTodoMissing(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	svc := getService(t, assert)

	status := db.StatusCompleted

	_, err := svc.UpdateTodo(context.Background(), "missing", service.UpdateTodoInput{Status: &status})

	var notFound *db.NotFoundError

	assert.ErrorAs(err, &notFound)
	assert.Equal("Todo with ID missing not found", err.Error())
}

func TestUpdateTodoUnknownTag(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	todo, err := svc.CreateTodo(ctx, service.CreateTodoInput{Content: "stable"})
	assert.Nil(err)

	_, err = svc.UpdateTodo(ctx, todo.ID, service.UpdateTodoInput{
		TagIDs:      []string{"no-such-tag"},
		ReplaceTags: true,
	})

	var notFound *db.NotFoundError

	assert.ErrorAs(err, &notFound)
}

func TestDeleteTodo(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	todo, err := svc.CreateTodo(ctx, service.CreateTodoInput{Content: "temp"})
	assert.Nil(err)

	assert.Nil(svc.DeleteTodo(ctx, todo.ID))

	var notFound *db.NotFoundError

	err = svc.DeleteTodo(ctx, todo.ID)
	assert.ErrorAs(err, &notFound)

	_, err = svc.GetTodo(ctx, todo.ID)
	assert.ErrorAs(err, &notFound)
}

func TestListTodos(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	_, err := svc.CreateTodo(ctx, service.CreateTodoInput{
		Content: "buy milk",
		DueDate: date(assert, "2025-02-01"),
	})
	assert.Nil(err)

	_, err = svc.CreateTodo(ctx, service.CreateTodoInput{
		Content: "buy stamps",
		DueDate: date(assert, "2025-01-01"),
	})
	assert.Nil(err)

	_, err = svc.CreateTodo(ctx, service.CreateTodoInput{Content: "walk dog"})
	assert.Nil(err)

	todos, err := svc.ListTodos(ctx, db.Filter{Keyword: "buy"}, &db.Sort{
		Field: db.SortByDueDate,
		Order: db.OrderAsc,
	})
	assert.Nil(err)
	assert.Len(todos, 2)
	assert.Equal("buy stamps", todos[0].Content)
	assert.Equal("buy milk", todos[1].Content)
}

func TestListTodosInvalidCriteria(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	_, err := svc.ListTodos(ctx, db.Filter{Status: []db.Status{"BOGUS"}}, nil)
	assert.NotNil(err)
	assert.Equal(`invalid status "BOGUS" in filter`, err.Error())

	_, err = svc.ListTodos(ctx, db.Filter{}, &db.Sort{Field: "rank", Order: db.OrderAsc})
	assert.NotNil(err)
	assert.Equal(`invalid sort field "rank"`, err.Error())

	_, err = svc.ListTodos(ctx, db.Filter{}, &db.Sort{Field: db.SortByContent, Order: "sideways"})
	assert.NotNil(err)
	assert.Equal(`invalid sort order "sideways"`, err.Error())
}

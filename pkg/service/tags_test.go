package service_test

import (
	"context"
	"testing"

	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/matt-steen/todo-list/pkg/service"
	"github.com/stretchr/testify/assert"
)

func TestCreateTagConflict(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	first, err := svc.CreateTag(ctx, "work")
	assert.Nil(err)

	_, err = svc.CreateTag(ctx, "work")

	var conflict *db.ConflictError

	assert.ErrorAs(err, &conflict)
	assert.Equal(`Tag with name "work" already exists`, err.Error())

	// the first tag remains unchanged
	tags, err := svc.ListTags(ctx)
	assert.Nil(err)
	assert.Len(tags, 1)
	assert.Equal(first.ID, tags[0].ID)
}

func TestCreateTagEmptyName(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	svc := getService(t, assert)

	_, err := svc.CreateTag(context.Background(), "")
	assert.ErrorIs(err, service.ErrEmptyTagName)
}

func TestRenameTag(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	tag, err := svc.CreateTag(ctx, "werk")
	assert.Nil(err)

	renamed, err := svc.RenameTag(ctx, tag.ID, "work")
	assert.Nil(err)
	assert.Equal("work", renamed.Name)

	// renaming a tag to its own name is not a conflict
	_, err = svc.RenameTag(ctx, tag.ID, "work")
	assert.Nil(err)
}

func TestRenameTagConflict(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	_, err := svc.CreateTag(ctx, "work")
	assert.Nil(err)

	other, err := svc.CreateTag(ctx, "home")
	assert.Nil(err)

	_, err = svc.RenameTag(ctx, other.ID, "work")

	var conflict *db.ConflictError

	assert.ErrorAs(err, &conflict)
}

func TestRenameTagMissing(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	svc := getService(t, assert)

	_, err := svc.RenameTag(context.Background(), "missing", "anything")

	var notFound *db.NotFoundError

	assert.ErrorAs(err, &notFound)
	assert.Equal("Tag with ID missing not found", err.Error())
}

func TestDeleteTagKeepsTodos(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	work, err := svc.CreateTag(ctx, "work")
	assert.Nil(err)

	home, err := svc.CreateTag(ctx, "home")
	assert.Nil(err)

	first, err := svc.CreateTodo(ctx, service.CreateTodoInput{
		Content: "chores",
		TagIDs:  []string{work.ID, home.ID},
	})
	assert.Nil(err)

	second, err := svc.CreateTodo(ctx, service.CreateTodoInput{
		Content: "report",
		TagIDs:  []string{work.ID},
	})
	assert.Nil(err)

	assert.Nil(svc.DeleteTag(ctx, work.ID))

	// the tag disappears from every todo that referenced it; the todos stay
	found, err := svc.GetTodo(ctx, first.ID)
	assert.Nil(err)
	assert.Equal([]string{"home"}, found.TagNames())

	found, err = svc.GetTodo(ctx, second.ID)
	assert.Nil(err)
	assert.Empty(found.TagNames())
}

func TestDeleteTagMissing(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	svc := getService(t, assert)

	err := svc.DeleteTag(context.Background(), "missing")

	var notFound *db.NotFoundError

	assert.ErrorAs(err, &notFound)
}

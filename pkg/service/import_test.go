package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matt-steen/todo-list/pkg/csv"
	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/matt-steen/todo-list/pkg/service"
	"github.com/stretchr/testify/assert"
)

func date(assert *assert.Assertions, value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	assert.Nil(err)

	return &parsed
}

func getService(t *testing.T, assert *assert.Assertions) *service.Service {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"))
	assert.Nil(err)

	t.Cleanup(func() { database.Close() })

	return service.New(database)
}

func TestImportCSV(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	text := "content,status,dueDate,tags\n" +
		"買い物リストを作成,NOT_STARTED,2024-12-31,\"買い物,家事\"\n" +
		"デザインレビュー,IN_PROGRESS,,\"デザイン,urgent\""

	result, err := svc.ImportCSV(ctx, text)
	assert.Nil(err)
	assert.Equal(2, result.SuccessCount)
	assert.Len(result.Todos, 2)

	// todos are created in source-row order
	first, second := result.Todos[0], result.Todos[1]

	assert.Equal("買い物リストを作成", first.Content)
	assert.Equal(db.StatusNotStarted, first.Status)
	assert.Equal("2024-12-31", first.DueDate.Format("2006-01-02"))
	assert.Equal([]string{"買い物", "家事"}, first.TagNames())

	assert.Equal("デザインレビュー", second.Content)
	assert.Equal(db.StatusInProgress, second.Status)
	assert.Nil(second.DueDate)
	assert.Equal([]string{"デザイン", "urgent"}, second.TagNames())

	tags, err := svc.ListTags(ctx)
	assert.Nil(err)
	assert.Len(tags, 4)
}

func TestImportCSVDefaults(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	// blank status and due date are optional; duplicate tags in one row collapse
	text := "content,status,dueDate,tags\nbuy milk,,,\"errands,errands\""

	result, err := svc.ImportCSV(ctx, text)
	assert.Nil(err)
	assert.Equal(1, result.SuccessCount)

	todo := result.Todos[0]
	assert.Equal(db.StatusNotStarted, todo.Status)
	assert.Nil(todo.DueDate)
	assert.Equal([]string{"errands"}, todo.TagNames())

	tags, err := svc.ListTags(ctx)
	assert.Nil(err)
	assert.Len(tags, 1)
}

func TestImportCSVReusesExistingTags(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	existing, err := svc.CreateTag(ctx, "work")
	assert.Nil(err)

	text := "content,status,dueDate,tags\nfirst,,,work\nsecond,,,\"work,home\""

	result, err := svc.ImportCSV(ctx, text)
	assert.Nil(err)
	assert.Equal(2, result.SuccessCount)

	// only the previously-missing name was created
	tags, err := svc.ListTags(ctx)
	assert.Nil(err)
	assert.Len(tags, 2)

	assert.Equal(existing.ID, result.Todos[0].Tags[0].ID)
	assert.Equal(existing.ID, result.Todos[1].Tags[0].ID)
}

func TestImportCSVRowErrors(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	text := "content,status,dueDate,tags\n" +
		"good row,NOT_STARTED,,\n" +
		",BOGUS,not-a-date,tag\n" +
		"another good row,,,newtag"

	_, err := svc.ImportCSV(ctx, text)

	var rowErrs csv.RowErrors

	assert.ErrorAs(err, &rowErrs)
	assert.Len(rowErrs, 1)

	// the header is row 1, so the bad second data line is row 3, and every
	// field complaint for the row is reported together
	assert.Equal(3, rowErrs[0].Row)
	assert.Equal(`content is required, invalid status "BOGUS", invalid due date "not-a-date"`, rowErrs[0].Message)

	// one bad row rejects the whole batch: no todos and no tags persisted
	todos, err := svc.ListTodos(ctx, db.Filter{}, nil)
	assert.Nil(err)
	assert.Empty(todos)

	tags, err := svc.ListTags(ctx)
	assert.Nil(err)
	assert.Empty(tags)
}

func TestImportCSVStructuralErrors(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	var structural *csv.StructuralError

	_, err := svc.ImportCSV(ctx, "content,status,dueDate,tags\n")
	assert.ErrorAs(err, &structural)

	_, err = svc.ImportCSV(ctx, "content,status\nbuy milk,NOT_STARTED")
	assert.ErrorAs(err, &structural)
	assert.Equal("CSV must have headers: content, status, dueDate, tags", err.Error())
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	svc := getService(t, assert)

	home, err := svc.CreateTag(ctx, "home")
	assert.Nil(err)

	errands, err := svc.CreateTag(ctx, "errands")
	assert.Nil(err)

	_, err = svc.CreateTodo(ctx, service.CreateTodoInput{
		Content: "buy milk",
		DueDate: date(assert, "2024-12-31"),
		TagIDs:  []string{errands.ID, home.ID},
	})
	assert.Nil(err)

	text, err := svc.ExportCSV(ctx)
	assert.Nil(err)

	// a multi-tag set contains a comma, so the tags field is quoted
	assert.Equal(
		"content,status,dueDate,tags\n"+
			`buy milk,NOT_STARTED,2024-12-31,"errands,home"`,
		text,
	)
}

func TestExportCSVEmpty(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	svc := getService(t, assert)

	text, err := svc.ExportCSV(context.Background())
	assert.Nil(err)
	assert.Equal("content,status,dueDate,tags", text)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	ctx := context.Background()

	source := getService(t, assert)

	text := "content,status,dueDate,tags\n" +
		"buy milk,NOT_STARTED,2024-12-31,\"errands,home\"\n" +
		"review design,IN_PROGRESS,,design\n" +
		"file taxes,WAITING,2025-04-15,"

	_, err := source.ImportCSV(ctx, text)
	assert.Nil(err)

	exported, err := source.ExportCSV(ctx)
	assert.Nil(err)

	dest := getService(t, assert)

	result, err := dest.ImportCSV(ctx, exported)
	assert.Nil(err)
	assert.Equal(3, result.SuccessCount)

	originals, err := source.ListTodos(ctx, db.Filter{}, nil)
	assert.Nil(err)

	copies, err := dest.ListTodos(ctx, db.Filter{}, nil)
	assert.Nil(err)
	assert.Len(copies, len(originals))

	byContent := map[string]*db.Todo{}
	for _, todo := range copies {
		byContent[todo.Content] = todo
	}

	for _, original := range originals {
		imported, ok := byContent[original.Content]
		assert.True(ok)
		assert.Equal(original.Status, imported.Status)
		assert.ElementsMatch(original.TagNames(), imported.TagNames())

		if original.DueDate == nil {
			assert.Nil(imported.DueDate)
		} else {
			assert.Equal(original.DueDate.Format("2006-01-02"), imported.DueDate.Format("2006-01-02"))
		}
	}
}

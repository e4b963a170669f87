// Package controller runs the terminal UI: one page of todos per status,
// keyword search, and forms for editing todos and their tags. All business
// rules live in the service; the controller only mediates between the
// service and the view.
package controller

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/matt-steen/todo-list/pkg/service"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const descContentRatio = 2

// Controller mediates between the service and the view.
type Controller struct {
	ctx context.Context
	svc *service.Service
	app *tview.Application

	pages            *tview.Pages
	statusTables     map[db.Status]*tview.Table
	statusContents   map[db.Status]*StatusContent
	formHeaderTables map[string]*tview.Table

	todoForm     *tview.Form
	contentField *tview.InputField
	dueDateField *tview.InputField

	tagForm     *tview.Form
	tagDropDown *tview.DropDown
	addTag      bool

	searchForm   *tview.Form
	keywordField *tview.InputField

	selectedStatus db.Status
	selectedTodo   *db.Todo
	keyword        string

	events     map[tcell.Key]KeyEvent
	formEvents map[tcell.Key]KeyEvent
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, svc *service.Service) (*Controller, error) {
	c := Controller{
		ctx:              ctx,
		svc:              svc,
		app:              tview.NewApplication(),
		statusTables:     map[db.Status]*tview.Table{},
		statusContents:   map[db.Status]*StatusContent{},
		formHeaderTables: map[string]*tview.Table{},
		selectedStatus:   db.StatusNotStarted,
	}

	initKeys()
	c.initEvents()

	return &c, nil
}

// Go starts the app.
func (c *Controller) Go() error {
	c.pages = tview.NewPages()

	for _, status := range db.ValidStatuses() {
		c.pages.AddPage(pageName(string(status)), c.getStatusGrid(status), true, status == db.StatusNotStarted)
	}

	c.pages.AddPage(pageName("form"), c.getFormGrid(), true, false)
	c.pages.AddPage(pageName("tagForm"), c.getTagFormGrid(), true, false)
	c.pages.AddPage(pageName("searchForm"), c.getSearchFormGrid(), true, false)

	c.showStatus(db.StatusNotStarted)

	if err := c.app.SetRoot(c.pages, true).SetFocus(c.pages).Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}

	return nil
}

// reload refreshes one status page's todos from the service, applying the
// current keyword filter.
func (c *Controller) reload(status db.Status) {
	todos, err := c.svc.ListTodos(c.ctx, db.Filter{
		Keyword: c.keyword,
		Status:  []db.Status{status},
	}, nil)
	if err != nil {
		log.Err(err).Msgf("error loading todos for status %s", status)

		return
	}

	c.statusContents[status].todos = todos
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if k, ok := c.events[key]; ok {
		return k.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if k, ok := c.formEvents[key]; ok {
		return k.Action(evt)
	}

	return evt
}

func pageName(name string) string {
	return "page-" + name
}

func statusTitle(status db.Status) string {
	switch status {
	case db.StatusNotStarted:
		return "Not Started"
	case db.StatusInProgress:
		return "In Progress"
	case db.StatusNotApplicable:
		return "Not Applicable"
	case db.StatusWaiting:
		return "Waiting"
	case db.StatusCompleted:
		return "Completed"
	default:
		return string(status)
	}
}

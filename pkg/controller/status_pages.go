package controller

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) getStatusGrid(status db.Status) *tview.Grid {
	header := c.getStatusHeader(status)
	c.statusTables[status] = c.getTable(status)

	grid := tview.NewGrid().SetBorders(true)

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.statusTables[status], 1, 0, 1, 1, 0, 0, true)

	return grid
}

// getStatusHeader returns the header used for each list of todos.
// it shows the status at the top, followed by 3 columns listing keyboard
// shortcuts. The first column contains misc shortcuts, the second contains
// "Show <status>" shortcuts, and the third contains "Move to <status>"
// shortcuts. All three columns are sorted alphabetically.
func (c *Controller) getStatusHeader(status db.Status) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	row := 0
	table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", statusTitle(status))))
	row++

	shortcuts := map[int][]string{
		0: {},
		1: {},
		2: {},
	}

	for key, event := range c.events {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)

		switch event.Description[:4] {
		case "Show":
			shortcuts[1] = append(shortcuts[1], text)
		case "Move":
			shortcuts[2] = append(shortcuts[2], text)
		default:
			shortcuts[0] = append(shortcuts[0], text)
		}
	}

	for col := 0; col < 3; col++ {
		sort.Strings(shortcuts[col])
	}

	for row-1 < len(shortcuts[0]) || row-1 < len(shortcuts[1]) || row-1 < len(shortcuts[2]) {
		for col := 0; col < 3; col++ {
			if row-1 < len(shortcuts[col]) {
				table.SetCell(row, col, tview.NewTableCell(shortcuts[col][row-1]).SetExpansion(1))
			}
		}

		row++
	}

	return table
}

func (c *Controller) getTodoForRow(row int) *db.Todo {
	todos := c.statusContents[c.selectedStatus].todos

	// adjust for the header row
	if idx := row - 1; idx < len(todos) && idx >= 0 {
		return todos[idx]
	}

	return nil
}

// when the row selection changes, update the selected Todo.
func (c *Controller) setCurrentRow(row, col int) {
	c.setSelectedTodo(row, c.getTodoForRow(row))
}

func (c *Controller) getTable(status db.Status) *tview.Table {
	table := tview.NewTable().SetBorders(false)

	c.statusContents[status] = &StatusContent{}

	table.SetContent(c.statusContents[status])
	table.SetSelectable(true, false)
	table.SetSelectionChangedFunc(c.setCurrentRow)

	return table
}

func (c *Controller) setSelectedTodo(row int, todo *db.Todo) {
	c.selectedTodo = todo

	content := "nil"
	if todo != nil {
		content = todo.Content
	}

	log.Debug().
		Str("selectedStatus", string(c.selectedStatus)).
		Int("row", row).
		Msgf("setting selectedTodo to '%s'", content)
}

func (c *Controller) showStatus(status db.Status) {
	c.selectedStatus = status

	c.reload(status)

	c.app.SetInputCapture(c.handleKeys)

	todos := c.statusContents[status].todos

	row, _ := c.statusTables[status].GetSelection()

	switch {
	case row-1 >= 0 && row-1 < len(todos):
		c.setSelectedTodo(row, todos[row-1])
	case len(todos) > 0:
		c.statusTables[status].Select(1, 0).SetFixed(1, 0)
		c.setSelectedTodo(1, todos[0])
	default:
		c.setSelectedTodo(-1, nil)
	}

	c.pages.SwitchToPage(pageName(string(status)))
}

package controller

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/rivo/tview"
)

// tagColors is a list of colors for tags to alternate through so that todos
// with common tags are easier to spot.
func tagColors() []string {
	return []string{
		"#FF0000",
		"#00FF00",
		"#0000FF",
		"#FFFF00",
		"#FF00FF",
		"#00FFFF",
		"#FFFFFF",
		"#AA0000",
		"#00AA00",
		"#0000AA",
		"#AAAA00",
		"#AA00AA",
		"#00AAAA",
		"#AAAAAA",
	}
}

// StatusContent implements tview.TableContent, which tview.Table uses to
// update data.
type StatusContent struct {
	tview.TableContentReadOnly
	todos []*db.Todo
}

// GetCell returns the cell at the given position or nil if no cell.
func (s *StatusContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("content").SetExpansion(descContentRatio).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("due").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("tags").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}
	}

	if row-1 >= len(s.todos) {
		return nil
	}

	todo := s.todos[row-1]

	switch col {
	case 0:
		return tview.NewTableCell(todo.Content).SetExpansion(descContentRatio).SetReference(todo)
	case 1:
		due := ""
		if todo.DueDate != nil {
			due = todo.DueDate.Format("2006-01-02")
		}

		return tview.NewTableCell(due).SetExpansion(1)
	case 2:
		colors := tagColors()
		names := make([]string, 0, len(todo.Tags))

		for _, tag := range todo.Tags {
			names = append(names, fmt.Sprintf("[%s]%s", colors[colorIndex(tag.Name)], tag.Name))
		}

		return tview.NewTableCell(strings.Join(names, ", ")).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (s *StatusContent) GetRowCount() int {
	return len(s.todos) + 1
}

// GetColumnCount returns the number of columns in the table.
func (s *StatusContent) GetColumnCount() int {
	return 3
}

// colorIndex picks a stable color per tag name so a tag keeps its color
// across todos and refreshes.
func colorIndex(name string) int {
	sum := 0
	for _, char := range name {
		sum += int(char)
	}

	return sum % len(tagColors())
}

package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/matt-steen/todo-list/pkg/service"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) switchToForm() {
	title := "New Todo"
	if c.selectedTodo != nil {
		title = "Edit Todo"

		c.contentField.SetText(c.selectedTodo.Content)

		due := ""
		if c.selectedTodo.DueDate != nil {
			due = c.selectedTodo.DueDate.Format("2006-01-02")
		}

		c.dueDateField.SetText(due)
	}

	name := "form"

	c.setFormTitle(name, title)

	c.todoForm.SetFocus(0)

	c.pages.SwitchToPage(pageName(name))

	c.app.SetInputCapture(c.handleFormKeys)
}

func (c *Controller) switchToTagForm() {
	title := "Add Tag"
	if !c.addTag {
		title = "Remove Tag"
	}

	name := "tagForm"

	c.setFormTitle(name, title)

	c.updateTagFormOptions()

	c.tagForm.SetFocus(0)

	c.pages.SwitchToPage(pageName(name))

	c.app.SetInputCapture(c.handleFormKeys)
}

func (c *Controller) switchToSearchForm() {
	name := "searchForm"

	c.setFormTitle(name, "Search")

	c.keywordField.SetText(c.keyword)

	c.searchForm.SetFocus(0)

	c.pages.SwitchToPage(pageName(name))

	c.app.SetInputCapture(c.handleFormKeys)
}

func (c *Controller) getFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true)

	name := "form"

	c.initFormHeader(name)
	c.initForm()

	grid.AddItem(c.formHeaderTables[name], 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.todoForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getTagFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true)

	name := "tagForm"

	c.initFormHeader(name)
	c.initTagForm()

	grid.AddItem(c.formHeaderTables[name], 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.tagForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) getSearchFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true)

	name := "searchForm"

	c.initFormHeader(name)
	c.initSearchForm()

	grid.AddItem(c.formHeaderTables[name], 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.searchForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) setFormTitle(tableName, title string) {
	c.formHeaderTables[tableName].SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))
}

func (c *Controller) initFormHeader(name string) {
	c.formHeaderTables[name] = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	row := 1

	for key, event := range c.formEvents {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)
		c.formHeaderTables[name].SetCell(row, 0, tview.NewTableCell(text))
		row++
	}
}

func (c *Controller) initForm() {
	contentMax := 500
	dueDateMax := 10

	c.todoForm = tview.NewForm().
		AddInputField("Content", "", contentMax, nil, nil).
		AddInputField("Due Date (YYYY-MM-DD)", "", dueDateMax, nil, nil)

	c.contentField, _ = c.todoForm.GetFormItemByLabel("Content").(*tview.InputField)
	c.dueDateField, _ = c.todoForm.GetFormItemByLabel("Due Date (YYYY-MM-DD)").(*tview.InputField)

	c.todoForm.AddButton("Save", func() {
		content := c.contentField.GetText()

		var due *time.Time

		if text := strings.TrimSpace(c.dueDateField.GetText()); text != "" {
			parsed, err := time.Parse("2006-01-02", text)
			if err != nil {
				log.Err(err).Msgf("invalid due date '%s'", text)

				return
			}

			due = &parsed
		}

		var err error

		log.Debug().Msgf("saving todo with content '%s'. c.selectedTodo: %p", content, c.selectedTodo)

		if c.selectedTodo == nil {
			_, err = c.svc.CreateTodo(c.ctx, service.CreateTodoInput{
				Content: content,
				Status:  c.selectedStatus,
				DueDate: due,
			})
		} else {
			input := service.UpdateTodoInput{Content: &content, DueDate: due}
			if due == nil {
				input.ClearDueDate = true
			}

			_, err = c.svc.UpdateTodo(c.ctx, c.selectedTodo.ID, input)
		}

		if err != nil {
			log.Err(err).Msg("error saving the todo")

			return
		}

		c.contentField.SetText("")
		c.dueDateField.SetText("")

		c.showStatus(c.selectedStatus)
	})
}

func (c *Controller) updateTagFormOptions() {
	options := []string{}

	if c.addTag {
		tags, err := c.svc.ListTags(c.ctx)
		if err != nil {
			log.Err(err).Msg("error listing tags")
		}

		onTodo := map[string]bool{}
		for _, tag := range c.selectedTodo.Tags {
			onTodo[tag.Name] = true
		}

		for _, tag := range tags {
			if !onTodo[tag.Name] {
				options = append(options, tag.Name)
			}
		}
	} else {
		options = append(options, c.selectedTodo.TagNames()...)
	}

	c.tagDropDown.SetOptions(options, nil)
	c.tagDropDown.SetCurrentOption(-1)
}

func (c *Controller) getSelectedTag() *db.Tag {
	_, name := c.tagDropDown.GetCurrentOption()

	tags, err := c.svc.ListTags(c.ctx)
	if err != nil {
		log.Err(err).Msg("error listing tags")

		return nil
	}

	for _, tag := range tags {
		if tag.Name == name {
			return tag
		}
	}

	log.Error().Msgf("no tag found with name '%s'", name)

	return nil
}

func (c *Controller) initTagForm() {
	c.tagForm = tview.NewForm().
		AddDropDown("Tag", []string{}, -1, nil)

	c.tagDropDown, _ = c.tagForm.GetFormItemByLabel("Tag").(*tview.DropDown)

	c.tagForm.AddButton("Save", func() {
		tag := c.getSelectedTag()
		if tag == nil {
			return
		}

		tagIDs := []string{}

		for _, existing := range c.selectedTodo.Tags {
			if existing.ID != tag.ID {
				tagIDs = append(tagIDs, existing.ID)
			}
		}

		if c.addTag {
			log.Debug().Msgf("adding tag '%s' to todo '%s'", tag.Name, c.selectedTodo.Content)

			tagIDs = append(tagIDs, tag.ID)
		} else {
			log.Debug().Msgf("removing tag '%s' from todo '%s'", tag.Name, c.selectedTodo.Content)
		}

		_, err := c.svc.UpdateTodo(c.ctx, c.selectedTodo.ID, service.UpdateTodoInput{
			TagIDs:      tagIDs,
			ReplaceTags: true,
		})
		if err != nil {
			log.Err(err).Msg("error updating the todo's tags")
		}

		c.showStatus(c.selectedStatus)
	})
}

func (c *Controller) initSearchForm() {
	keywordMax := 50

	c.searchForm = tview.NewForm().
		AddInputField("Keyword", "", keywordMax, nil, nil)

	c.keywordField, _ = c.searchForm.GetFormItemByLabel("Keyword").(*tview.InputField)

	c.searchForm.AddButton("Search", func() {
		c.keyword = strings.TrimSpace(c.keywordField.GetText())

		c.showStatus(c.selectedStatus)
	})

	c.searchForm.AddButton("Clear", func() {
		c.keyword = ""
		c.keywordField.SetText("")

		c.showStatus(c.selectedStatus)
	})
}

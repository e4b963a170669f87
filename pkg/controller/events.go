package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/matt-steen/todo-list/pkg/service"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{}
	c.formEvents = map[tcell.Key]KeyEvent{}

	c.initShowEvents(c.events)
	c.initMoveEvents(c.events)
	c.initTodoEvents(c.events)
	c.initExitEvent(c.events)

	c.formEvents[tcell.KeyEscape] = KeyEvent{
		Description: "Cancel",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.showStatus(c.selectedStatus)

			return nil
		},
	}
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		log.Info().Msg("terminating application")

		c.app.Stop()

		return key
	}
}

func (c *Controller) initExitEvent(events map[tcell.Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) getShowAction(status db.Status) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.showStatus(status)

		return key
	}
}

func (c *Controller) initShowEvents(events map[tcell.Key]KeyEvent) {
	events[KeyShiftS] = KeyEvent{
		Description: "Show Not Started",
		Action:      c.getShowAction(db.StatusNotStarted),
	}

	events[KeyShiftP] = KeyEvent{
		Description: "Show In Progress",
		Action:      c.getShowAction(db.StatusInProgress),
	}

	events[KeyShiftX] = KeyEvent{
		Description: "Show Not Applicable",
		Action:      c.getShowAction(db.StatusNotApplicable),
	}

	events[KeyShiftW] = KeyEvent{
		Description: "Show Waiting",
		Action:      c.getShowAction(db.StatusWaiting),
	}

	events[KeyShiftC] = KeyEvent{
		Description: "Show Completed",
		Action:      c.getShowAction(db.StatusCompleted),
	}
}

func (c *Controller) getMoveAction(status db.Status) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selectedTodo == nil {
			return key
		}

		target := status

		_, err := c.svc.UpdateTodo(c.ctx, c.selectedTodo.ID, service.UpdateTodoInput{Status: &target})
		if err != nil {
			log.Warn().Err(err).Msgf(
				"error while trying to change status from %s to %s for todo %s.",
				c.selectedStatus,
				status,
				c.selectedTodo.Content,
			)

			return key
		}

		c.showStatus(status)

		return key
	}
}

func (c *Controller) initMoveEvents(events map[tcell.Key]KeyEvent) {
	events[KeyS] = KeyEvent{
		Description: "Move to Not Started",
		Action:      c.getMoveAction(db.StatusNotStarted),
	}

	events[KeyP] = KeyEvent{
		Description: "Move to In Progress",
		Action:      c.getMoveAction(db.StatusInProgress),
	}

	events[KeyX] = KeyEvent{
		Description: "Move to Not Applicable",
		Action:      c.getMoveAction(db.StatusNotApplicable),
	}

	events[KeyW] = KeyEvent{
		Description: "Move to Waiting",
		Action:      c.getMoveAction(db.StatusWaiting),
	}

	events[KeyC] = KeyEvent{
		Description: "Move to Completed",
		Action:      c.getMoveAction(db.StatusCompleted),
	}
}

func (c *Controller) initTodoEvents(events map[tcell.Key]KeyEvent) {
	events[KeyN] = KeyEvent{
		Description: "New Todo",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.selectedTodo = nil
			c.switchToForm()

			return nil
		},
	}

	events[KeyE] = KeyEvent{
		Description: "Edit Todo",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.selectedTodo != nil {
				c.switchToForm()
			}

			return nil
		},
	}

	events[KeyD] = KeyEvent{
		Description: "Delete Todo",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.selectedTodo == nil {
				return key
			}

			if err := c.svc.DeleteTodo(c.ctx, c.selectedTodo.ID); err != nil {
				log.Err(err).Msgf("error deleting todo '%s'", c.selectedTodo.Content)
			}

			c.showStatus(c.selectedStatus)

			return nil
		},
	}

	events[KeyA] = KeyEvent{
		Description: "Add Tag",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.selectedTodo != nil {
				c.addTag = true
				c.switchToTagForm()
			}

			return nil
		},
	}

	events[KeyR] = KeyEvent{
		Description: "Remove Tag",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if c.selectedTodo != nil && len(c.selectedTodo.Tags) > 0 {
				c.addTag = false
				c.switchToTagForm()
			}

			return nil
		},
	}

	events[KeySlash] = KeyEvent{
		Description: "Search",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToSearchForm()

			return nil
		},
	}
}

package services

import (
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"
)

// Action is something an actor attempts against the task board.
type Action string

const (
	ActionCreate       Action = "create"
	ActionReadAll      Action = "read_all"
	ActionUpdateStatus Action = "update_status"
	ActionUpdateFields Action = "update_fields"
	ActionDelete       Action = "delete"
	ActionComment      Action = "comment"
)

// Can is the single authorization decision surface. Every mutating entry
// point goes through here; no handler or service carries its own role check.
//
// task may be nil for actions that do not target an existing task
// (Create, ReadAll). It is a pure function: no I/O, no side effects.
func Can(actor models.Actor, task *models.Task, action Action) bool {
	if !actor.Role.Valid() {
		return false
	}

	switch action {
	case ActionCreate:
		return actor.Role == models.RoleAdmin || actor.Role == models.RoleEditor

	case ActionReadAll, ActionComment:
		// Any authenticated actor may read the board and join the
		// discussion; commentary is not ownership-gated.
		return true

	case ActionUpdateStatus, ActionUpdateFields:
		if actor.Role == models.RoleAdmin {
			return true
		}
		if actor.Role == models.RoleEditor {
			return task != nil && task.AssignedTo == actor.ID
		}
		return false

	case ActionDelete:
		if actor.Role == models.RoleAdmin {
			return true
		}
		// The assignee may remove their own task regardless of role.
		return task != nil && task.AssignedTo == actor.ID
	}

	return false
}

package services

import (
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"
)

// Summarize reduces a task snapshot to the board statistics the dashboard
// shows. Pure function over an already-fetched snapshot; it never touches
// the store. Tasks whose assignee could not be resolved to a display name
// are counted in the totals but omitted from the per-assignee tally.
func Summarize(tasks []models.TaskView) models.BoardSummary {
	summary := models.BoardSummary{
		ByAssignee: make(map[string]int),
	}

	for _, task := range tasks {
		summary.Total++
		if task.Status == models.StatusDone {
			summary.Done++
		}
		if name := task.Assignee.Name; name != "" {
			summary.ByAssignee[name]++
		}
	}

	return summary
}

package services

import (
	"testing"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"
)

func boardTask(status models.Status, assignee string) models.TaskView {
	return models.TaskView{
		ID:       mustUUID(),
		Status:   status,
		Assignee: models.UserSummary{ID: mustUUID(), Name: assignee},
	}
}

func TestSummarize_EmptyBoard(t *testing.T) {
	summary := Summarize(nil)

	if summary.Total != 0 {
		t.Errorf("Expected total 0, got %d", summary.Total)
	}
	if summary.Done != 0 {
		t.Errorf("Expected done 0, got %d", summary.Done)
	}
	if summary.ByAssignee == nil {
		t.Error("Expected initialized ByAssignee map, got nil")
	}
	if len(summary.ByAssignee) != 0 {
		t.Errorf("Expected empty ByAssignee, got %v", summary.ByAssignee)
	}
}

func TestSummarize_CountsAndGrouping(t *testing.T) {
	tasks := []models.TaskView{
		boardTask(models.StatusDone, "alice"),
		boardTask(models.StatusToDo, "bob"),
		boardTask(models.StatusInProgress, "alice"),
	}

	summary := Summarize(tasks)

	if summary.Total != 3 {
		t.Errorf("Expected total 3, got %d", summary.Total)
	}
	if summary.Done != 1 {
		t.Errorf("Expected done 1, got %d", summary.Done)
	}
	if summary.ByAssignee["alice"] != 2 {
		t.Errorf("Expected alice to hold 2 tasks, got %d", summary.ByAssignee["alice"])
	}
	if summary.ByAssignee["bob"] != 1 {
		t.Errorf("Expected bob to hold 1 task, got %d", summary.ByAssignee["bob"])
	}
}

func TestSummarize_AllStatusesCountTowardTotal(t *testing.T) {
	tasks := []models.TaskView{
		boardTask(models.StatusToDo, "a"),
		boardTask(models.StatusInProgress, "a"),
		boardTask(models.StatusDone, "a"),
		boardTask(models.StatusDone, "a"),
	}

	summary := Summarize(tasks)

	if summary.Total != 4 {
		t.Errorf("Expected total 4, got %d", summary.Total)
	}
	if summary.Done != 2 {
		t.Errorf("Expected done 2, got %d", summary.Done)
	}
	if summary.ByAssignee["a"] != 4 {
		t.Errorf("Expected 4 tasks for a, got %d", summary.ByAssignee["a"])
	}
}

func TestSummarize_UnresolvedAssigneeOmittedFromTally(t *testing.T) {
	tasks := []models.TaskView{
		boardTask(models.StatusDone, "alice"),
		boardTask(models.StatusToDo, ""),
	}

	summary := Summarize(tasks)

	if summary.Total != 2 {
		t.Errorf("Expected total 2, got %d", summary.Total)
	}
	if len(summary.ByAssignee) != 1 {
		t.Errorf("Expected 1 named assignee, got %d", len(summary.ByAssignee))
	}
}

func TestSummarize_Pure(t *testing.T) {
	tasks := []models.TaskView{
		boardTask(models.StatusDone, "alice"),
		boardTask(models.StatusToDo, "bob"),
	}

	first := Summarize(tasks)
	second := Summarize(tasks)

	if first.Total != second.Total || first.Done != second.Done {
		t.Error("Expected identical summaries for identical input")
	}
	if tasks[0].Status != models.StatusDone || tasks[1].Status != models.StatusToDo {
		t.Error("Expected input snapshot untouched")
	}
}

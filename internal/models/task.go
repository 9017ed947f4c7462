package models

import (
	"time"

	"github.com/gofrs/uuid"
)

type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      Status     `json:"status" gorm:"type:varchar(16);not null;default:'To Do'"`
	Priority    Priority   `json:"priority" gorm:"type:varchar(16);not null;default:'Medium'"`
	AssignedTo  uuid.UUID  `json:"assigned_to" gorm:"type:uuid;not null;index"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Comments    []Comment  `json:"comments" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Comment rows are append-only: inserted once, never updated or deleted on
// their own. They go away only when the parent task is deleted.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID    uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:uuid;not null"`
	Text      string    `json:"text" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskView is the read model returned to clients: foreign keys resolved to
// user summaries at read time.
type TaskView struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      Status        `json:"status"`
	Priority    Priority      `json:"priority"`
	Assignee    UserSummary   `json:"assigned_to"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	Comments    []CommentView `json:"comments"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type CommentView struct {
	ID        uuid.UUID   `json:"id"`
	Author    UserSummary `json:"author"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
}

// BoardSummary is the aggregate the dashboard renders.
type BoardSummary struct {
	Total      int            `json:"total"`
	Done       int            `json:"done"`
	ByAssignee map[string]int `json:"by_assignee"`
}

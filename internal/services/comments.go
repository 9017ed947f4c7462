package services

import (
	"context"
	"strings"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/repositories"

	"github.com/gofrs/uuid"
)

type CommentService interface {
	Append(ctx context.Context, actor models.Actor, taskID uuid.UUID, text string) (models.TaskView, error)
}

// CommentServiceImpl owns the append-only comment ledger. Appending is a
// dedicated operation, deliberately outside the generic field-update path:
// a comment row is inserted once and never edited, reordered, or removed.
type CommentServiceImpl struct {
	tasks    repositories.TaskRepository
	users    repositories.UserRepository
	notifier Notifier
}

func NewCommentService(tasks repositories.TaskRepository, users repositories.UserRepository, notifier Notifier) *CommentServiceImpl {
	return &CommentServiceImpl{tasks: tasks, users: users, notifier: notifier}
}

func (s *CommentServiceImpl) Append(ctx context.Context, actor models.Actor, taskID uuid.UUID, text string) (models.TaskView, error) {
	if actor.ID == uuid.Nil {
		return models.TaskView{}, errs.ErrUnauthenticated
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.TaskView{}, err
	}

	if !Can(actor, &task, ActionComment) {
		return models.TaskView{}, errs.ErrForbidden
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return models.TaskView{}, errs.Validation("text", "must not be empty")
	}

	comment := models.Comment{
		ID:        uuid.Must(uuid.NewV4()),
		TaskID:    task.ID,
		AuthorID:  actor.ID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	// One INSERT per append: two actors commenting at the same moment
	// produce two rows, never a lost update.
	if err := s.tasks.AppendComment(ctx, &comment); err != nil {
		return models.TaskView{}, err
	}

	if s.notifier != nil {
		s.notifier.CommentAdded(ctx, task.ID, actor.ID, text)
	}

	updated, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.TaskView{}, err
	}

	ids := []uuid.UUID{updated.AssignedTo}
	for _, c := range updated.Comments {
		ids = append(ids, c.AuthorID)
	}
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return models.TaskView{}, err
	}

	return buildTaskView(updated, users), nil
}

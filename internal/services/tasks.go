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

// CreateTaskInput is the payload for creating a task. Status and Priority
// fall back to their defaults when omitted.
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assigned_to"`
	Deadline    *time.Time `json:"deadline"`
}

// UpdateTaskInput is a partial patch: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	AssignedTo  *string    `json:"assigned_to"`
	Deadline    *time.Time `json:"deadline"`
}

type TaskService interface {
	Create(ctx context.Context, actor models.Actor, input CreateTaskInput) (models.TaskView, error)
	ListAll(ctx context.Context, actor models.Actor) ([]models.TaskView, error)
	UpdateStatus(ctx context.Context, actor models.Actor, taskID uuid.UUID, status string) (models.TaskView, error)
	UpdateFields(ctx context.Context, actor models.Actor, taskID uuid.UUID, patch UpdateTaskInput) (models.TaskView, error)
	Delete(ctx context.Context, actor models.Actor, taskID uuid.UUID) error
}

type TaskServiceImpl struct {
	tasks    repositories.TaskRepository
	users    repositories.UserRepository
	notifier Notifier
}

func NewTaskService(tasks repositories.TaskRepository, users repositories.UserRepository, notifier Notifier) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks, users: users, notifier: notifier}
}

func (s *TaskServiceImpl) Create(ctx context.Context, actor models.Actor, input CreateTaskInput) (models.TaskView, error) {
	if actor.ID == uuid.Nil {
		return models.TaskView{}, errs.ErrUnauthenticated
	}
	if !Can(actor, nil, ActionCreate) {
		return models.TaskView{}, errs.ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.TaskView{}, errs.Validation("title", "must not be empty")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return models.TaskView{}, errs.Validation("description", "must not be empty")
	}

	status := models.StatusToDo
	if input.Status != "" {
		status = models.Status(input.Status)
		if !status.Valid() {
			return models.TaskView{}, errs.Validation("status", "must be one of: To Do, In Progress, Done")
		}
	}

	priority := models.PriorityMedium
	if input.Priority != "" {
		priority = models.Priority(input.Priority)
		if !priority.Valid() {
			return models.TaskView{}, errs.Validation("priority", "must be one of: Low, Medium, High")
		}
	}

	assigneeID, err := uuid.FromString(input.AssignedTo)
	if err != nil {
		return models.TaskView{}, errs.Validation("assigned_to", "must be a valid user id")
	}
	if _, err := s.users.GetByID(ctx, assigneeID); err != nil {
		return models.TaskView{}, err
	}

	now := time.Now()
	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  assigneeID,
		Deadline:    input.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return models.TaskView{}, err
	}

	if s.notifier != nil {
		s.notifier.TaskAssigned(ctx, task.ID, assigneeID, title)
	}

	return s.buildView(ctx, task)
}

func (s *TaskServiceImpl) ListAll(ctx context.Context, actor models.Actor) ([]models.TaskView, error) {
	if actor.ID == uuid.Nil {
		return nil, errs.ErrUnauthenticated
	}
	if !Can(actor, nil, ActionReadAll) {
		return nil, errs.ErrForbidden
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.resolveUsers(ctx, tasks)
	if err != nil {
		return nil, err
	}

	views := make([]models.TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, buildTaskView(task, users))
	}
	return views, nil
}

func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, actor models.Actor, taskID uuid.UUID, status string) (models.TaskView, error) {
	if actor.ID == uuid.Nil {
		return models.TaskView{}, errs.ErrUnauthenticated
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.TaskView{}, err
	}

	if !Can(actor, &task, ActionUpdateStatus) {
		return models.TaskView{}, errs.ErrForbidden
	}

	newStatus := models.Status(status)
	if !newStatus.Valid() {
		return models.TaskView{}, errs.Validation("status", "must be one of: To Do, In Progress, Done")
	}

	// The status graph is complete: any of the three states may follow
	// any other. Only the actor's authority is gated, not the shape of
	// the transition.
	task.Status = newStatus
	task.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, &task); err != nil {
		return models.TaskView{}, err
	}
	return s.buildView(ctx, task)
}

func (s *TaskServiceImpl) UpdateFields(ctx context.Context, actor models.Actor, taskID uuid.UUID, patch UpdateTaskInput) (models.TaskView, error) {
	if actor.ID == uuid.Nil {
		return models.TaskView{}, errs.ErrUnauthenticated
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.TaskView{}, err
	}

	if !Can(actor, &task, ActionUpdateFields) {
		return models.TaskView{}, errs.ErrForbidden
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.TaskView{}, errs.Validation("title", "must not be empty")
		}
		task.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return models.TaskView{}, errs.Validation("description", "must not be empty")
		}
		task.Description = description
	}
	if patch.Priority != nil {
		priority := models.Priority(*patch.Priority)
		if !priority.Valid() {
			return models.TaskView{}, errs.Validation("priority", "must be one of: Low, Medium, High")
		}
		task.Priority = priority
	}
	if patch.AssignedTo != nil {
		assigneeID, err := uuid.FromString(*patch.AssignedTo)
		if err != nil {
			return models.TaskView{}, errs.Validation("assigned_to", "must be a valid user id")
		}
		if _, err := s.users.GetByID(ctx, assigneeID); err != nil {
			return models.TaskView{}, err
		}
		if assigneeID != task.AssignedTo && s.notifier != nil {
			s.notifier.TaskAssigned(ctx, task.ID, assigneeID, task.Title)
		}
		task.AssignedTo = assigneeID
	}
	if patch.Deadline != nil {
		task.Deadline = patch.Deadline
	}

	task.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, &task); err != nil {
		return models.TaskView{}, err
	}
	return s.buildView(ctx, task)
}

func (s *TaskServiceImpl) Delete(ctx context.Context, actor models.Actor, taskID uuid.UUID) error {
	if actor.ID == uuid.Nil {
		return errs.ErrUnauthenticated
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !Can(actor, &task, ActionDelete) {
		return errs.ErrForbidden
	}

	// Deletion is final: the task and its comments go together, no
	// tombstones left behind.
	return s.tasks.Delete(ctx, taskID)
}

func (s *TaskServiceImpl) buildView(ctx context.Context, task models.Task) (models.TaskView, error) {
	users, err := s.resolveUsers(ctx, []models.Task{task})
	if err != nil {
		return models.TaskView{}, err
	}
	return buildTaskView(task, users), nil
}

func (s *TaskServiceImpl) resolveUsers(ctx context.Context, tasks []models.Task) (map[uuid.UUID]models.User, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, task := range tasks {
		if !seen[task.AssignedTo] {
			seen[task.AssignedTo] = true
			ids = append(ids, task.AssignedTo)
		}
		for _, comment := range task.Comments {
			if !seen[comment.AuthorID] {
				seen[comment.AuthorID] = true
				ids = append(ids, comment.AuthorID)
			}
		}
	}
	return s.users.GetByIDs(ctx, ids)
}

func buildTaskView(task models.Task, users map[uuid.UUID]models.User) models.TaskView {
	assignee := models.UserSummary{ID: task.AssignedTo}
	if user, ok := users[task.AssignedTo]; ok {
		assignee = user.Summary()
	}

	comments := make([]models.CommentView, 0, len(task.Comments))
	for _, comment := range task.Comments {
		author := models.UserSummary{ID: comment.AuthorID}
		if user, ok := users[comment.AuthorID]; ok {
			author = user.Summary()
		}
		comments = append(comments, models.CommentView{
			ID:        comment.ID,
			Author:    author,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}

	return models.TaskView{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Assignee:    assignee,
		Deadline:    task.Deadline,
		Comments:    comments,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

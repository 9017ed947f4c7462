package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"

	"github.com/gofrs/uuid"
)

// In-memory repositories used across the service tests.

type fakeTaskRepo struct {
	mu       sync.Mutex
	tasks    map[uuid.UUID]models.Task
	comments map[uuid.UUID][]models.Comment
	failWith error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:    make(map[uuid.UUID]models.Task),
		comments: make(map[uuid.UUID][]models.Comment),
	}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return models.Task{}, r.failWith
	}
	task, ok := r.tasks[id]
	if !ok {
		return models.Task{}, errs.ErrNotFound
	}
	task.Comments = append([]models.Comment(nil), r.comments[id]...)
	return task, nil
}

func (r *fakeTaskRepo) List(ctx context.Context) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	tasks := make([]models.Task, 0, len(r.tasks))
	for id, task := range r.tasks {
		task.Comments = append([]models.Comment(nil), r.comments[id]...)
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return errs.ErrNotFound
	}
	stored := *task
	stored.Comments = nil
	r.tasks[task.ID] = stored
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.tasks[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.tasks, id)
	delete(r.comments, id)
	return nil
}

func (r *fakeTaskRepo) AppendComment(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.tasks[comment.TaskID]; !ok {
		return errs.ErrNotFound
	}
	r.comments[comment.TaskID] = append(r.comments[comment.TaskID], *comment)
	return nil
}

func (r *fakeTaskRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]models.User)}
	for _, user := range users {
		r.users[user.ID] = user
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return models.User{}, errs.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, errs.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[uuid.UUID]models.User)
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]models.Token
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]models.Token)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *models.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.JTI] = *token
	return nil
}

func (r *fakeTokenRepo) FindActive(ctx context.Context, jti, userID uuid.UUID, now time.Time) (models.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[jti]
	if !ok || token.UserID != userID || token.ExpiresAt.Before(now) {
		return models.Token{}, errs.ErrNotFound
	}
	return token, nil
}

func (r *fakeTokenRepo) DeleteByJTI(ctx context.Context, jti uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, jti)
	return nil
}

// recordingNotifier captures fire-and-forget events for assertions.
type recordingNotifier struct {
	mu          sync.Mutex
	assignments []uuid.UUID
	comments    []uuid.UUID
}

func (n *recordingNotifier) TaskAssigned(ctx context.Context, taskID, assigneeID uuid.UUID, title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assignments = append(n.assignments, assigneeID)
}

func (n *recordingNotifier) CommentAdded(ctx context.Context, taskID, authorID uuid.UUID, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.comments = append(n.comments, authorID)
}

func mustUUID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func testUser(name string, role models.Role) models.User {
	return models.User{
		ID:    mustUUID(),
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
}

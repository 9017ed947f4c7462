package services

import (
	"context"
	"log"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/cache"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"

	"github.com/gofrs/uuid"
)

const (
	taskListCacheKey = "tasks:all"
	taskListCacheTTL = time.Minute
)

// CachedTaskService decorates a TaskService with a read-through cache on
// the list path. Every board is the same for every authenticated actor, so
// one key covers the snapshot; any mutation invalidates it.
type CachedTaskService struct {
	inner TaskService
	cache cache.Cache
}

func NewCachedTaskService(inner TaskService, c cache.Cache) *CachedTaskService {
	return &CachedTaskService{inner: inner, cache: c}
}

func (s *CachedTaskService) Create(ctx context.Context, actor models.Actor, input CreateTaskInput) (models.TaskView, error) {
	view, err := s.inner.Create(ctx, actor, input)
	if err == nil {
		s.invalidate()
	}
	return view, err
}

func (s *CachedTaskService) ListAll(ctx context.Context, actor models.Actor) ([]models.TaskView, error) {
	if !Can(actor, nil, ActionReadAll) || actor.ID == uuid.Nil {
		// Authorization stays with the inner service; never serve a
		// cached board to a caller it would reject.
		return s.inner.ListAll(ctx, actor)
	}

	var cached []models.TaskView
	if err := s.cache.Get(taskListCacheKey, &cached); err == nil {
		return cached, nil
	}

	views, err := s.inner.ListAll(ctx, actor)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(taskListCacheKey, views, taskListCacheTTL); err != nil {
		log.Printf("failed to cache task list: %v", err)
	}
	return views, nil
}

func (s *CachedTaskService) UpdateStatus(ctx context.Context, actor models.Actor, taskID uuid.UUID, status string) (models.TaskView, error) {
	view, err := s.inner.UpdateStatus(ctx, actor, taskID, status)
	if err == nil {
		s.invalidate()
	}
	return view, err
}

func (s *CachedTaskService) UpdateFields(ctx context.Context, actor models.Actor, taskID uuid.UUID, patch UpdateTaskInput) (models.TaskView, error) {
	view, err := s.inner.UpdateFields(ctx, actor, taskID, patch)
	if err == nil {
		s.invalidate()
	}
	return view, err
}

func (s *CachedTaskService) Delete(ctx context.Context, actor models.Actor, taskID uuid.UUID) error {
	err := s.inner.Delete(ctx, actor, taskID)
	if err == nil {
		s.invalidate()
	}
	return err
}

// Invalidate drops the cached board snapshot. Exposed so the comment path
// can evict after an append.
func (s *CachedTaskService) Invalidate() {
	s.invalidate()
}

func (s *CachedTaskService) invalidate() {
	if err := s.cache.DeletePattern("tasks:*"); err != nil {
		log.Printf("failed to invalidate task cache: %v", err)
	}
}

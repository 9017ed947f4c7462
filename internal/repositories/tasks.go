package repositories

import (
	"context"
	"errors"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type GormTaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return errs.Unavailable(err)
	}
	return nil
}

func (r *GormTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, errs.ErrNotFound
		}
		return models.Task{}, errs.Unavailable(err)
	}
	return task, nil
}

func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, errs.Unavailable(err)
	}
	return tasks, nil
}

func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	// Comments are owned by AppendComment; the association stays out of
	// the general update path.
	result := r.db.WithContext(ctx).Omit("Comments").Save(task)
	if result.Error != nil {
		return errs.Unavailable(result.Error)
	}
	return nil
}

func (r *GormTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id)
	if result.Error != nil {
		return errs.Unavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *GormTaskRepository) AppendComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return errs.Unavailable(err)
	}
	return nil
}

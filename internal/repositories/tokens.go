package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type GormTokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *GormTokenRepository {
	return &GormTokenRepository{db: db}
}

func (r *GormTokenRepository) Create(ctx context.Context, token *models.Token) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return errs.Unavailable(err)
	}
	return nil
}

func (r *GormTokenRepository) FindActive(ctx context.Context, jti, userID uuid.UUID, now time.Time) (models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).
		Where("jti = ? AND user_id = ? AND expires_at > ?", jti, userID, now).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Token{}, errs.ErrNotFound
		}
		return models.Token{}, errs.Unavailable(err)
	}
	return token, nil
}

func (r *GormTokenRepository) DeleteByJTI(ctx context.Context, jti uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("jti = ?", jti).Delete(&models.Token{}).Error; err != nil {
		return errs.Unavailable(err)
	}
	return nil
}

// Package repositories holds the persistence layer. Services talk to the
// store through these interfaces so the lifecycle rules can be exercised
// against an in-memory implementation in tests.
package repositories

import (
	"context"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"

	"github.com/gofrs/uuid"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Task, error)
	// List returns all tasks with comments preloaded in append order,
	// tasks ordered by creation time, most recent first.
	List(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AppendComment inserts one comment row. Each append is its own
	// INSERT, so concurrent appends to the same task never clobber
	// each other.
	AppendComment(ctx context.Context, comment *models.Comment) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// GetByIDs resolves a batch of user ids; missing ids are simply
	// absent from the result map.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)
}

type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	FindActive(ctx context.Context, jti, userID uuid.UUID, now time.Time) (models.Token, error)
	DeleteByJTI(ctx context.Context, jti uuid.UUID) error
}

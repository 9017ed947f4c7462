package services

import (
	"context"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/repositories"

	"github.com/gofrs/uuid"
)

type UserService interface {
	ListUsers(ctx context.Context, actor models.Actor) ([]models.UserSummary, error)
}

type UserServiceImpl struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

// ListUsers returns the user directory used to populate the assignee
// selector. Admins only; the directory is not part of the task policy
// surface.
func (s *UserServiceImpl) ListUsers(ctx context.Context, actor models.Actor) ([]models.UserSummary, error) {
	if actor.ID == uuid.Nil {
		return nil, errs.ErrUnauthenticated
	}
	if actor.Role != models.RoleAdmin {
		return nil, errs.ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.Summary())
	}
	return summaries, nil
}

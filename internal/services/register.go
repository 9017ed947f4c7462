package services

import (
	"context"
	"errors"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/errs"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/models"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/repositories"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrDuplicateEmail = errors.New("email already exists")

type RegistrationRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type RegisterService interface {
	RegisterUser(ctx context.Context, req RegistrationRequest) (models.User, error)
}

type RegisterServiceImpl struct {
	users repositories.UserRepository
}

func NewRegisterService(users repositories.UserRepository) *RegisterServiceImpl {
	return &RegisterServiceImpl{users: users}
}

func (s *RegisterServiceImpl) RegisterUser(ctx context.Context, req RegistrationRequest) (models.User, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, errs.ErrNotFound) {
		return models.User{}, err
	}

	// New accounts default to the least-privileged role.
	role := models.RoleViewer
	if req.Role != "" {
		role = models.Role(req.Role)
		if !role.Valid() {
			return models.User{}, errs.Validation("role", "must be one of: Admin, Editor, Viewer")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now()
	user := models.User{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}

	return user, nil
}

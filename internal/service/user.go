package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cafebonheur/pos/internal/apperr"
	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/internal/store"
	"github.com/cafebonheur/pos/pkg/validator"
)

// CreateUserParams carries the caller-supplied user fields. The last
// login date is always generated.
type CreateUserParams struct {
	FirstName string           `validate:"required"`
	LastName  string           `validate:"required"`
	Email     string           `validate:"required,email"`
	Role      model.Role       `validate:"required,enum"`
	Status    model.UserStatus `validate:"required,enum"`
}

// UpdateUserParams is a partial update; nil fields are left unchanged.
type UpdateUserParams struct {
	FirstName *string           `validate:"omitempty,min=1"`
	LastName  *string           `validate:"omitempty,min=1"`
	Email     *string           `validate:"omitempty,email"`
	Role      *model.Role       `validate:"omitempty,enum"`
	Status    *model.UserStatus `validate:"omitempty,enum"`
	LastLogin *string
}

type UserService interface {
	ListUsers(ctx context.Context, query string) ([]model.User, error)
	CreateUser(ctx context.Context, params CreateUserParams) (model.User, error)
	UpdateUser(ctx context.Context, id int64, params UpdateUserParams) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	st       *store.Store
	validate validator.Validator
}

func NewUserService(st *store.Store, validate validator.Validator) UserService {
	return &userService{
		st:       st,
		validate: validate,
	}
}

func (s *userService) ListUsers(_ context.Context, query string) ([]model.User, error) {
	users := s.st.Snapshot().Users
	if query == "" {
		return users, nil
	}

	filtered := make([]model.User, 0, len(users))
	for _, u := range users {
		if matchUser(u, query) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// matchUser is the settings view's search predicate: name, email or role.
func matchUser(u model.User, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(u.FirstName), q) ||
		strings.Contains(strings.ToLower(u.LastName), q) ||
		strings.Contains(strings.ToLower(u.Email), q) ||
		strings.Contains(strings.ToLower(string(u.Role)), q)
}

func (s *userService) CreateUser(_ context.Context, params CreateUserParams) (model.User, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.User{}, fmt.Errorf("validate create user params: %w", err)
	}

	user := s.st.AddUser(store.UserInput{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Role:      params.Role,
		Status:    params.Status,
	})

	return user, nil
}

func (s *userService) UpdateUser(_ context.Context, id int64, params UpdateUserParams) (model.User, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.User{}, fmt.Errorf("validate update user params: %w", err)
	}

	user, ok := s.st.UpdateUser(id, store.UserUpdate{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Role:      params.Role,
		Status:    params.Status,
		LastLogin: params.LastLogin,
	})
	if !ok {
		return model.User{}, apperr.UserNotFoundErr
	}

	return user, nil
}

func (s *userService) DeleteUser(_ context.Context, id int64) error {
	if ok := s.st.DeleteUser(id); !ok {
		return apperr.UserNotFoundErr
	}
	return nil
}

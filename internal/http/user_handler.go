package http

import (
	"fmt"
	"net/http"

	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/internal/service"
)

type userHandler struct {
	userSvc service.UserService
}

func newUserHandler(userSvc service.UserService) *userHandler {
	return &userHandler{
		userSvc: userSvc,
	}
}

type createUserRequest struct {
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	Role      model.Role       `json:"role"`
	Status    model.UserStatus `json:"status"`
}

type updateUserRequest struct {
	FirstName *string           `json:"firstName"`
	LastName  *string           `json:"lastName"`
	Email     *string           `json:"email"`
	Role      *model.Role       `json:"role"`
	Status    *model.UserStatus `json:"status"`
	LastLogin *string           `json:"lastLogin"`
}

func (h *userHandler) list(w http.ResponseWriter, r *http.Request) error {
	users, err := h.userSvc.ListUsers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return fmt.Errorf("user service list users: %w", err)
	}

	return respondJSON(w, http.StatusOK, users)
}

func (h *userHandler) create(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeJSON[createUserRequest](r)
	if err != nil {
		return err
	}

	user, err := h.userSvc.CreateUser(r.Context(), service.CreateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Status:    req.Status,
	})
	if err != nil {
		return fmt.Errorf("user service create user: %w", err)
	}

	return respondJSON(w, http.StatusCreated, user)
}

func (h *userHandler) update(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	req, err := decodeJSON[updateUserRequest](r)
	if err != nil {
		return err
	}

	user, err := h.userSvc.UpdateUser(r.Context(), id, service.UpdateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Status:    req.Status,
		LastLogin: req.LastLogin,
	})
	if err != nil {
		return fmt.Errorf("user service update user: %w", err)
	}

	return respondJSON(w, http.StatusOK, user)
}

func (h *userHandler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.userSvc.DeleteUser(r.Context(), id); err != nil {
		return fmt.Errorf("user service delete user: %w", err)
	}

	return respondJSON(w, http.StatusNoContent, nil)
}

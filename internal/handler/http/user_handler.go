package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/kurtbuset/user-service/internal/user"
)

type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Age       int    `json:"age" validate:"required"`
}

// UpdateUserRequest lists the fields a client may change. Anything else in
// the body, id included, is ignored.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Age       *int    `json:"age"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

type ListUsersResponse struct {
	Message string         `json:"message"`
	Users   []UserResponse `json:"users"`
}

type GetUserResponse struct {
	Msg  string       `json:"msg"`
	User UserResponse `json:"user"`
}

type CreateUserResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type UpdateUserResponse struct {
	Message string       `json:"message"`
	NewUser UserResponse `json:"newUser"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type UserHandler struct {
	service  user.Service
	validate *validator.Validate
}

func NewUserHandler(service user.Service) *UserHandler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)
	return &UserHandler{
		service:  service,
		validate: validate,
	}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Get("/users", wrap("error", h.handleListUsers))
	router.Post("/users", wrap("error", h.handleCreateUser))
	router.Get("/user/{id}", wrap("msg", h.handleGetUserByID))
	router.Put("/user/{id}", wrap("error", h.handleUpdateUser))
	router.Delete("/user/{id}", wrap("error", h.handleDeleteUser))
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Age:       u.Age,
	}
}

func (h *UserHandler) handleListUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		return err
	}

	if len(users) == 0 {
		return newAPIError(http.StatusNotFound, "message", "No users found")
	}

	responsePayload := ListUsersResponse{
		Message: "List of users",
		Users:   make([]UserResponse, 0, len(users)),
	}
	for i := range users {
		responsePayload.Users = append(responsePayload.Users, toUserResponse(&users[i]))
	}

	respondWithJSON(w, http.StatusOK, responsePayload)
	return nil
}

func (h *UserHandler) handleGetUserByID(w http.ResponseWriter, r *http.Request) error {
	idValue, err := parseID(r)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("user_id", chi.URLParam(r, "id")).Msg("Failed to parse id parameter from URL")
		return newAPIError(http.StatusBadRequest, "msg", "invalid user id")
	}

	notFound := newAPIError(http.StatusNotFound, "msg", fmt.Sprintf("user id: %s cant be found", formatID(idValue)))
	userID, ok := storedID(idValue)
	if !ok {
		return notFound
	}

	foundUser, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return notFound
		}
		return err
	}

	respondWithJSON(w, http.StatusOK, GetUserResponse{
		Msg:  "User found",
		User: toUserResponse(foundUser),
	})
	return nil
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) error {
	var requestPayload CreateUserRequest

	// An empty body is treated like an empty object so it fails validation
	// rather than decoding.
	err := decodeJSONBody(r, &requestPayload)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to decode request body")
		return newAPIError(http.StatusBadRequest, "error", "Invalid request payload")
	}

	err = h.validate.Struct(requestPayload)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate create request: %w", err)
		}

		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "All fields are required",
			Details: formatValidationErrors(validationErrors),
		})
		return nil
	}

	domainUser := user.User{
		FirstName: requestPayload.FirstName,
		LastName:  requestPayload.LastName,
		Age:       requestPayload.Age,
	}

	createdUser, err := h.service.CreateUser(r.Context(), &domainUser)
	if err != nil {
		if errors.Is(err, user.ErrMissingFields) {
			return newAPIError(http.StatusBadRequest, "error", "All fields are required")
		}
		return err
	}

	respondWithJSON(w, http.StatusCreated, CreateUserResponse{
		Message: "User created",
		User:    toUserResponse(createdUser),
	})
	return nil
}

func (h *UserHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request) error {
	var requestPayload UpdateUserRequest
	if err := decodeJSONBody(r, &requestPayload); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("Failed to decode request body")
		return newAPIError(http.StatusBadRequest, "msg", "Invalid request payload")
	}

	idValue, err := parseID(r)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("user_id", chi.URLParam(r, "id")).Msg("Failed to parse id parameter from URL")
		return newAPIError(http.StatusBadRequest, "msg", "no user can be found")
	}

	userID, ok := storedID(idValue)
	if !ok {
		return newAPIError(http.StatusNotFound, "msg", "no user can be found")
	}

	updatedUser, err := h.service.UpdateUser(r.Context(), userID, user.Patch{
		FirstName: requestPayload.FirstName,
		LastName:  requestPayload.LastName,
		Age:       requestPayload.Age,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return newAPIError(http.StatusNotFound, "msg", "no user can be found")
		}
		return err
	}

	respondWithJSON(w, http.StatusOK, UpdateUserResponse{
		Message: fmt.Sprintf("user %d updated.", userID),
		NewUser: toUserResponse(updatedUser),
	})
	return nil
}

func (h *UserHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) error {
	idValue, err := parseID(r)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Str("user_id", chi.URLParam(r, "id")).Msg("Failed to parse id parameter from URL")
		return newAPIError(http.StatusBadRequest, "error", "Invalid user ID")
	}

	userID, ok := storedID(idValue)
	if !ok {
		return newAPIError(http.StatusNotFound, "message", "User not found")
	}

	err = h.service.DeleteUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return newAPIError(http.StatusNotFound, "message", "User not found")
		}
		return err
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "User has been removed"})
	return nil
}

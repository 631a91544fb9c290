package handler

import (
	"net/http"

	"github.com/msomdec/taskboard/internal/service"
)

// UserHandler handles sign-in and user-related HTTP requests.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleLogin signs a user in by email, creating the account on first use.
// POST /api/users/login
// Request:  {"email":"..."}
// Response: {"user": {...}, "token": "...", "isNew": true}
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.users.Login(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, "login user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  toUserDTO(result.User),
		"token": result.Token,
		"isNew": result.IsNew,
	})
}

// HandleRegister creates a user without signing them in.
// POST /api/users
// Request:  {"email":"..."}
// Response: 201 {"user": {...}}, 409 when the email is taken
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Create(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, "register user", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleMe returns the currently authenticated user.
// GET /api/users/me
// Response: {"user": {...}} or 401
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	user, err := h.users.FindByID(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, "get current user", err)
		return
	}
	if user == nil {
		// The token outlived its user record.
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

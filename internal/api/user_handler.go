package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accounthub/accounts-api/internal/api/shared"
	"github.com/accounthub/accounts-api/internal/platform/logger"
	"github.com/accounthub/accounts-api/internal/service"
)

// UserHandler handles the user-facing account endpoints. It translates
// between HTTP and the account service; every decision lives in the service.
type UserHandler struct {
	accounts service.AccountService
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(accounts service.AccountService, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		accounts: accounts,
		logger:   log.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accounts.ListUsers(r.Context())
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, NewUserResponse(user))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetUserByID handles GET /users/{id}.
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.accounts.GetUserByID(r.Context(), id)
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.accounts.CreateUser(r.Context(), req.Username, req.Password, req.Birthday)
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewAuthUserResponse(user))
}

// Login handles PUT /users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAuthUserResponse(user))
}

// Logout handles PUT /users/logout.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.accounts.Logout(r.Context(), req.Token)
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateUser handles PUT /users/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.accounts.UpdateUser(r.Context(), id, service.UserPatch{
		Username: req.Username,
		Birthday: req.Birthday,
	})
	if err != nil {
		h.respondWithDomainError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// pathID extracts and parses the {id} path parameter. On failure it writes
// a 400 response and returns false.
func (h *UserHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Debug("invalid user id in path", slog.String("value", raw))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate parses the JSON body into req and validates it. On
// failure it writes a 400 response and returns false.
func (h *UserHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}

// respondWithDomainError translates a service failure into its HTTP shape.
func (h *UserHandler) respondWithDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Error("unexpected error handling request",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
			slog.String("method", r.Method))
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

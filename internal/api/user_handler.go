package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasklist/internal/api/shared"
	"github.com/phrazzld/tasklist/internal/platform/logger"
	"github.com/phrazzld/tasklist/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("user service cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// Mount registers the /user routes on r.
func (h *UserHandler) Mount(r chi.Router) {
	r.Route("/user", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/", h.DeleteAll)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Replace)
		r.Patch("/{id}", h.Alter)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /user requests
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Create handles POST /user requests
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	id, err := h.users.Create(r.Context(), req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("user created", slog.String("user_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedResponse{ID: id})
}

// Get handles GET /user/{id} requests
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Replace handles PUT /user/{id} requests
func (h *UserHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.users.Replace(r.Context(), id, req.toPatch()); err != nil {
		HandleAPIError(w, r, err, "Failed to replace user")
		return
	}

	shared.RespondNoContent(w)
}

// Alter handles PATCH /user/{id} requests
func (h *UserHandler) Alter(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UserPatchRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.users.Alter(r.Context(), id, req.toPatch()); err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	shared.RespondNoContent(w)
}

// Delete handles DELETE /user/{id} requests
// Tasks owned by the user are left in place.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	shared.RespondNoContent(w)
}

// DeleteAll handles DELETE /user requests
func (h *UserHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteAll(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to delete users")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("all users deleted via api")
	shared.RespondNoContent(w)
}

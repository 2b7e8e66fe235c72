package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flicklist/flicklist-go/internal/middleware"
	"github.com/flicklist/flicklist-go/internal/model"
	"github.com/flicklist/flicklist-go/internal/service"
)

// UserHandler handles HTTP requests for user accounts and favorites.
type UserHandler struct {
	accounts  *service.AccountService
	favorites *service.FavoritesService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts *service.AccountService, favorites *service.FavoritesService) *UserHandler {
	return &UserHandler{accounts: accounts, favorites: favorites}
}

// HandleRegister handles POST /users requests.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidationError(w, verr)
		case errors.Is(err, service.ErrUsernameTaken):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeServerError(w, "register", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleGetUser handles GET /users/{username} requests.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	resp, err := h.accounts.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeServerError(w, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateUser handles PUT /users/{username} requests.
func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	caller, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.UpdateProfileRequest
	if !decodeJSON(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.accounts.UpdateProfile(r.Context(), username, caller, req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			writeValidationError(w, verr)
		case errors.Is(err, service.ErrForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServerError(w, "update user", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteUser handles DELETE /users/{username} requests.
func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	caller, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	err := h.accounts.DeleteUser(r.Context(), username, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServerError(w, "delete user", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(username + " was deleted."))
}

// HandleAddFavorite handles POST /users/{username}/{movieID} requests.
func (h *UserHandler) HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	h.handleFavorite(w, r, h.favorites.Add, "add favorite")
}

// HandleRemoveFavorite handles DELETE /users/{username}/{movieID} requests.
func (h *UserHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	h.handleFavorite(w, r, h.favorites.Remove, "remove favorite")
}

func (h *UserHandler) handleFavorite(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, username, caller string, movieID int64) (model.UserResponse, error),
	opName string,
) {
	username := chi.URLParam(r, "username")
	caller, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid movie id"))
		return
	}

	resp, err := op(r.Context(), username, caller, movieID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrMovieNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeServerError(w, opName, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

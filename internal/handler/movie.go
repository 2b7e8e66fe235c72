package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flicklist/flicklist-go/internal/service"
)

// MovieHandler handles HTTP requests for catalog lookups.
type MovieHandler struct {
	service *service.CatalogService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.CatalogService) *MovieHandler {
	return &MovieHandler{service: svc}
}

// HandleListMovies handles GET /movies requests.
func (h *MovieHandler) HandleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.ListMovies(r.Context())
	if err != nil {
		writeServerError(w, "list movies", err)
		return
	}

	writeJSON(w, http.StatusOK, movies)
}

// HandleGetMovie handles GET /movies/{id} requests.
func (h *MovieHandler) HandleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid movie id"))
		return
	}

	movie, err := h.service.GetMovie(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeServerError(w, "get movie", err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

// HandleGetGenre handles GET /genres/{name} requests.
func (h *MovieHandler) HandleGetGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := h.service.GetGenreByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("genre not found"))
			return
		}
		writeServerError(w, "get genre", err)
		return
	}

	writeJSON(w, http.StatusOK, genre)
}

// HandleGetDirector handles GET /directors/{name} requests.
func (h *MovieHandler) HandleGetDirector(w http.ResponseWriter, r *http.Request) {
	director, err := h.service.GetDirectorByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("director not found"))
			return
		}
		writeServerError(w, "get director", err)
		return
	}

	writeJSON(w, http.StatusOK, director)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"kinofav/internal/domain"
	"kinofav/internal/middleware"
	"kinofav/internal/service"
)

// FavoritesHandler handles the per-account favorites endpoints
type FavoritesHandler struct {
	favoritesService *service.FavoritesService
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(favoritesService *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesService: favoritesService,
	}
}

// FavoriteResponse represents a single favorited film
type FavoriteResponse struct {
	FilmID      int64     `json:"film_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AddedAt     time.Time `json:"added_at"`
}

// AddFavoriteResponse reports whether the add created a new entry or found
// an existing one
type AddFavoriteResponse struct {
	Status   service.AddStatus `json:"status"`
	FilmID   int64             `json:"film_id"`
	Favorite *FavoriteResponse `json:"favorite,omitempty"`
}

// RemoveFavoriteResponse reports whether the remove deleted an entry
type RemoveFavoriteResponse struct {
	Status service.RemoveStatus `json:"status"`
	FilmID int64                `json:"film_id"`
}

// ListFavoritesResponse wraps the account's favorites
type ListFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// Add favorites the film given by the id query parameter. Adding a film
// that is already favorited answers 200 instead of 201; it is never an
// error.
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	filmID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid film id")
		return
	}

	favorite, status, err := h.favoritesService.Add(r.Context(), accountID, filmID)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	resp := AddFavoriteResponse{Status: status, FilmID: filmID}
	httpStatus := http.StatusOK
	if status == service.AddStatusCreated {
		httpStatus = http.StatusCreated
		resp.Favorite = toFavoriteResponse(favorite)
	}

	writeJSON(w, httpStatus, resp)
}

// Remove deletes the favorite for the film in the URL. Removing a film that
// was never favorited answers 200 with a not_found status.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	filmID, err := strconv.ParseInt(chi.URLParam(r, "film_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid film id")
		return
	}

	status, err := h.favoritesService.Remove(r.Context(), accountID, filmID)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, RemoveFavoriteResponse{Status: status, FilmID: filmID})
}

// List returns the account's favorites in the order they were added
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	favorites, err := h.favoritesService.List(r.Context(), accountID)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	resp := ListFavoritesResponse{Favorites: make([]FavoriteResponse, 0, len(favorites))}
	for _, favorite := range favorites {
		resp.Favorites = append(resp.Favorites, *toFavoriteResponse(favorite))
	}

	writeJSON(w, http.StatusOK, resp)
}

func toFavoriteResponse(favorite *domain.Favorite) *FavoriteResponse {
	return &FavoriteResponse{
		FilmID:      favorite.FilmID,
		Name:        favorite.Name,
		Description: favorite.Description,
		AddedAt:     favorite.CreatedAt,
	}
}

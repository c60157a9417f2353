package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kinofav/internal/domain"
)

// MoviesHandler exposes thin read-only views over the external catalog
type MoviesHandler struct {
	catalog domain.CatalogGateway
}

// NewMoviesHandler creates a new movies handler
func NewMoviesHandler(catalog domain.CatalogGateway) *MoviesHandler {
	return &MoviesHandler{
		catalog: catalog,
	}
}

// SearchResponse wraps the catalog search results
type SearchResponse struct {
	Keyword string                `json:"keyword"`
	Films   []*domain.FilmSummary `json:"films"`
}

// Search proxies a keyword search to the catalog
func (h *MoviesHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "Missing keyword parameter")
		return
	}

	films, err := h.catalog.Search(r.Context(), keyword)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{Keyword: keyword, Films: films})
}

// Details proxies a film details lookup to the catalog
func (h *MoviesHandler) Details(w http.ResponseWriter, r *http.Request) {
	filmID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid film id")
		return
	}

	details, err := h.catalog.FetchByID(r.Context(), filmID)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, details)
}

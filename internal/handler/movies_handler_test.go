package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"kinofav/internal/domain"
	"kinofav/internal/testutil"
)

func newMoviesRouter(catalog *testutil.MockCatalogGateway) http.Handler {
	h := NewMoviesHandler(catalog)

	r := chi.NewRouter()
	r.Get("/movies/search", h.Search)
	r.Get("/movies/{id}", h.Details)
	return r
}

func TestMoviesHandler_Search_Success(t *testing.T) {
	catalog := testutil.NewMockCatalogGateway()
	catalog.SearchFunc = func(ctx context.Context, keyword string) ([]*domain.FilmSummary, error) {
		if keyword != "matrix" {
			t.Errorf("expected keyword 'matrix', got %q", keyword)
		}
		return []*domain.FilmSummary{
			{FilmID: 301, Name: "The Matrix", Year: "1999"},
		}, nil
	}

	router := newMoviesRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/movies/search?keyword=matrix", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	testutil.AssertStatusCode(t, w, http.StatusOK)

	resp := testutil.DecodeJSON[SearchResponse](t, w)
	testutil.AssertEqual(t, resp.Keyword, "matrix")
	testutil.AssertLen(t, resp.Films, 1)
	testutil.AssertEqual(t, resp.Films[0].Name, "The Matrix")
}

func TestMoviesHandler_Search_MissingKeyword(t *testing.T) {
	router := newMoviesRouter(testutil.NewMockCatalogGateway())

	req := httptest.NewRequest(http.MethodGet, "/movies/search", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	testutil.AssertJSONError(t, w, http.StatusBadRequest, "Missing keyword parameter")
}

func TestMoviesHandler_Search_CatalogFailures(t *testing.T) {
	tests := []struct {
		name           string
		catalogErr     error
		expectedStatus int
	}{
		{"no matches", domain.ErrFilmNotFound, http.StatusNotFound},
		{"catalog down", domain.ErrCatalogUnavailable, http.StatusServiceUnavailable},
		{"catalog drifted", domain.ErrCatalogMalformed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := testutil.NewMockCatalogGateway()
			catalog.SearchFunc = func(ctx context.Context, keyword string) ([]*domain.FilmSummary, error) {
				return nil, tt.catalogErr
			}

			router := newMoviesRouter(catalog)

			req := httptest.NewRequest(http.MethodGet, "/movies/search?keyword=x", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			testutil.AssertStatusCode(t, w, tt.expectedStatus)
		})
	}
}

func TestMoviesHandler_Details_Success(t *testing.T) {
	catalog := testutil.NewMockCatalogGateway()
	catalog.Films[301] = &domain.FilmDetails{
		FilmID:      301,
		Name:        "The Matrix",
		Description: "Simulated reality",
		Year:        1999,
	}

	router := newMoviesRouter(catalog)

	req := httptest.NewRequest(http.MethodGet, "/movies/301", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	testutil.AssertStatusCode(t, w, http.StatusOK)

	resp := testutil.DecodeJSON[domain.FilmDetails](t, w)
	testutil.AssertEqual(t, resp.FilmID, int64(301))
	testutil.AssertEqual(t, resp.Name, "The Matrix")
}

func TestMoviesHandler_Details_NotFound(t *testing.T) {
	router := newMoviesRouter(testutil.NewMockCatalogGateway())

	req := httptest.NewRequest(http.MethodGet, "/movies/999", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	testutil.AssertStatusCode(t, w, http.StatusNotFound)
}

func TestMoviesHandler_Details_BadID(t *testing.T) {
	router := newMoviesRouter(testutil.NewMockCatalogGateway())

	req := httptest.NewRequest(http.MethodGet, "/movies/abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	testutil.AssertJSONError(t, w, http.StatusBadRequest, "Invalid film id")
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"kinofav/internal/domain"
	"kinofav/internal/observability"
)

const (
	detailsPath = "/api/v2.2/films/%d"
	searchPath  = "/api/v2.1/films/search-by-keyword"

	requestTimeout = 10 * time.Second
)

// Client handles requests to the Kinopoisk catalog API. It is the only place
// that sees raw upstream responses; everything it returns is either
// normalized film data or one of the domain catalog errors.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Kinopoisk API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// FetchByID fetches a single film by its catalog id
func (c *Client) FetchByID(ctx context.Context, filmID int64) (*domain.FilmDetails, error) {
	body, err := c.get(ctx, "details", fmt.Sprintf(c.baseURL+detailsPath, filmID))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var payload struct {
		KinopoiskID  int64  `json:"kinopoiskId"`
		NameRu       string `json:"nameRu"`
		NameEn       string `json:"nameEn"`
		NameOriginal string `json:"nameOriginal"`
		Description  string `json:"description"`
		Year         int    `json:"year"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMalformed, err)
	}

	// A 200 response without a kinopoiskId field is not a film record
	if payload.KinopoiskID == 0 {
		return nil, fmt.Errorf("%w: missing kinopoiskId", domain.ErrCatalogMalformed)
	}

	name := payload.NameRu
	if name == "" {
		name = payload.NameEn
	}
	if name == "" {
		name = payload.NameOriginal
	}

	return &domain.FilmDetails{
		FilmID:      payload.KinopoiskID,
		Name:        name,
		Description: payload.Description,
		Year:        payload.Year,
	}, nil
}

// Search looks films up by keyword. A search that matches nothing fails with
// ErrFilmNotFound; an empty result set is never returned silently.
func (c *Client) Search(ctx context.Context, keyword string) ([]*domain.FilmSummary, error) {
	endpoint := c.baseURL + searchPath + "?keyword=" + url.QueryEscape(keyword)

	body, err := c.get(ctx, "search", endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var payload struct {
		Films *[]struct {
			FilmID      int64  `json:"filmId"`
			NameRu      string `json:"nameRu"`
			NameEn      string `json:"nameEn"`
			Year        string `json:"year"`
			Description string `json:"description"`
		} `json:"films"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMalformed, err)
	}

	if payload.Films == nil {
		return nil, fmt.Errorf("%w: missing films list", domain.ErrCatalogMalformed)
	}

	if len(*payload.Films) == 0 {
		return nil, domain.ErrFilmNotFound
	}

	summaries := make([]*domain.FilmSummary, 0, len(*payload.Films))
	for _, f := range *payload.Films {
		name := f.NameRu
		if name == "" {
			name = f.NameEn
		}
		summaries = append(summaries, &domain.FilmSummary{
			FilmID:      f.FilmID,
			Name:        name,
			Year:        f.Year,
			Description: f.Description,
		})
	}
	return summaries, nil
}

// Ping checks that the catalog endpoint is reachable. Used by readiness
// checks only; any HTTP response counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	resp.Body.Close()
	return nil
}

// get performs a catalog request and normalizes transport and status
// outcomes: 200 hands the body back, 404 is ErrFilmNotFound, everything
// else (including timeouts and connection errors) is ErrCatalogUnavailable.
func (c *Client) get(ctx context.Context, operation, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.ObserveCatalogRequest(operation, "unavailable", time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		observability.ObserveCatalogRequest(operation, "ok", time.Since(start))
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		observability.ObserveCatalogRequest(operation, "not_found", time.Since(start))
		return nil, domain.ErrFilmNotFound
	default:
		resp.Body.Close()
		observability.ObserveCatalogRequest(operation, "unavailable", time.Since(start))
		return nil, fmt.Errorf("%w: unexpected status code %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}
}

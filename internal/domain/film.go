package domain

import (
	"context"
	"errors"
)

var (
	// ErrFilmNotFound is returned when the catalog reports a missing film,
	// including a keyword search with zero matches.
	ErrFilmNotFound = errors.New("film not found")
	// ErrCatalogUnavailable covers transport-level failures (timeouts,
	// connection resets, upstream 5xx). Safe for the caller to retry.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrCatalogMalformed means the catalog answered with a payload in an
	// unrecognized shape. Not retryable; signals an external API change.
	ErrCatalogMalformed = errors.New("malformed catalog response")
)

// FilmDetails holds the normalized fields of a single catalog film
type FilmDetails struct {
	FilmID      int64  `json:"film_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Year        int    `json:"year,omitempty"`
}

// FilmSummary is one keyword-search hit
type FilmSummary struct {
	FilmID      int64  `json:"film_id"`
	Name        string `json:"name"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// CatalogGateway normalizes every external catalog outcome into found,
// ErrFilmNotFound, ErrCatalogUnavailable or ErrCatalogMalformed
type CatalogGateway interface {
	FetchByID(ctx context.Context, filmID int64) (*FilmDetails, error)
	Search(ctx context.Context, keyword string) ([]*FilmSummary, error)
}

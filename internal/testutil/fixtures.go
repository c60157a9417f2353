package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"kinofav/internal/domain"
)

// Counter for generating unique IDs
var idCounter atomic.Int64

// AccountOptions allows customizing account fixture creation
type AccountOptions struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// NewTestAccount creates a test account with sensible defaults
// Pass options to override specific fields
func NewTestAccount(opts ...func(*AccountOptions)) *domain.Account {
	id := idCounter.Add(1)
	o := &AccountOptions{
		ID:           id,
		Username:     fmt.Sprintf("testaccount%d", id),
		PasswordHash: "$2a$10$test.hash.for.testing.purposes.only", // bcrypt hash placeholder
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	return &domain.Account{
		ID:           o.ID,
		Username:     o.Username,
		PasswordHash: o.PasswordHash,
		CreatedAt:    o.CreatedAt,
	}
}

// WithAccountID sets the account ID
func WithAccountID(id int64) func(*AccountOptions) {
	return func(o *AccountOptions) {
		o.ID = id
	}
}

// WithUsername sets the username
func WithUsername(username string) func(*AccountOptions) {
	return func(o *AccountOptions) {
		o.Username = username
	}
}

// WithPasswordHash sets the stored bcrypt hash
func WithPasswordHash(hash string) func(*AccountOptions) {
	return func(o *AccountOptions) {
		o.PasswordHash = hash
	}
}

// FavoriteOptions allows customizing favorite fixture creation
type FavoriteOptions struct {
	ID          int64
	AccountID   int64
	FilmID      int64
	Name        string
	Description string
	CreatedAt   time.Time
}

// NewTestFavorite creates a test favorite with sensible defaults
func NewTestFavorite(opts ...func(*FavoriteOptions)) *domain.Favorite {
	id := idCounter.Add(1)
	o := &FavoriteOptions{
		ID:          id,
		AccountID:   1,
		FilmID:      300 + id,
		Name:        fmt.Sprintf("Test Film %d", id),
		Description: "A film used in tests",
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	return &domain.Favorite{
		ID:          o.ID,
		AccountID:   o.AccountID,
		FilmID:      o.FilmID,
		Name:        o.Name,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
	}
}

// WithFavoriteAccount sets the owning account id
func WithFavoriteAccount(accountID int64) func(*FavoriteOptions) {
	return func(o *FavoriteOptions) {
		o.AccountID = accountID
	}
}

// WithFavoriteFilm sets the film id
func WithFavoriteFilm(filmID int64) func(*FavoriteOptions) {
	return func(o *FavoriteOptions) {
		o.FilmID = filmID
	}
}

// WithFavoriteName sets the film name
func WithFavoriteName(name string) func(*FavoriteOptions) {
	return func(o *FavoriteOptions) {
		o.Name = name
	}
}

// NewTestFilmDetails creates catalog film details for tests
func NewTestFilmDetails(filmID int64) *domain.FilmDetails {
	return &domain.FilmDetails{
		FilmID:      filmID,
		Name:        fmt.Sprintf("Catalog Film %d", filmID),
		Description: "A film from the test catalog",
		Year:        2020,
	}
}

package domain

import (
	"context"
	"time"
)

// Favorite links one account to one film from the external catalog.
// The (AccountID, FilmID) pair is unique; the same film can be favorited
// by any number of different accounts.
type Favorite struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	FilmID      int64     `json:"film_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	// CreateIfAbsent inserts the favorite unless the account already has an
	// entry for the same film. Returns false when the entry already existed.
	CreateIfAbsent(ctx context.Context, favorite *Favorite) (bool, error)
	Exists(ctx context.Context, accountID, filmID int64) (bool, error)
	// DeleteByFilm removes the entry for (accountID, filmID) and returns the
	// number of rows deleted. The account id is part of the predicate so an
	// account can never delete another account's favorite.
	DeleteByFilm(ctx context.Context, accountID, filmID int64) (int64, error)
	// ListByAccount returns the account's favorites in insertion order.
	ListByAccount(ctx context.Context, accountID int64) ([]*Favorite, error)
}

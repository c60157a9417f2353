package service

import (
	"context"

	"kinofav/internal/domain"
)

// AddStatus distinguishes a created favorite from an idempotent no-op
type AddStatus string

const (
	AddStatusCreated        AddStatus = "created"
	AddStatusAlreadyPresent AddStatus = "already_present"
)

// RemoveStatus distinguishes a removal from an idempotent no-op
type RemoveStatus string

const (
	RemoveStatusRemoved  RemoveStatus = "removed"
	RemoveStatusNotFound RemoveStatus = "not_found"
)

type FavoritesService struct {
	favorites domain.FavoriteRepository
	catalog   domain.CatalogGateway
}

func NewFavoritesService(favorites domain.FavoriteRepository, catalog domain.CatalogGateway) *FavoritesService {
	return &FavoritesService{
		favorites: favorites,
		catalog:   catalog,
	}
}

// Add favorites a film for the account. The film must exist in the external
// catalog; its name and description are captured at add time. Adding a film
// that is already favorited is a no-op success, never an error and never a
// duplicate row. The catalog call happens before any transaction is opened
// so slow upstream responses never hold database locks.
func (s *FavoritesService) Add(ctx context.Context, accountID, filmID int64) (*domain.Favorite, AddStatus, error) {
	exists, err := s.favorites.Exists(ctx, accountID, filmID)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, AddStatusAlreadyPresent, nil
	}

	details, err := s.catalog.FetchByID(ctx, filmID)
	if err != nil {
		return nil, "", err
	}

	favorite := &domain.Favorite{
		AccountID:   accountID,
		FilmID:      details.FilmID,
		Name:        details.Name,
		Description: details.Description,
	}

	created, err := s.favorites.CreateIfAbsent(ctx, favorite)
	if err != nil {
		return nil, "", err
	}
	if !created {
		// Lost the race against a concurrent add of the same film
		return nil, AddStatusAlreadyPresent, nil
	}

	return favorite, AddStatusCreated, nil
}

// Remove deletes the account's favorite for the film. A missing entry is a
// soft "not found" status, not an error. The delete predicate includes the
// account id, so the operation can never touch another account's entries.
func (s *FavoritesService) Remove(ctx context.Context, accountID, filmID int64) (RemoveStatus, error) {
	deleted, err := s.favorites.DeleteByFilm(ctx, accountID, filmID)
	if err != nil {
		return "", err
	}
	if deleted == 0 {
		return RemoveStatusNotFound, nil
	}
	return RemoveStatusRemoved, nil
}

// List returns the account's favorites in insertion order; an account with
// no favorites gets an empty list
func (s *FavoritesService) List(ctx context.Context, accountID int64) ([]*domain.Favorite, error) {
	favorites, err := s.favorites.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []*domain.Favorite{}
	}
	return favorites, nil
}

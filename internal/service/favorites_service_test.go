package service

import (
	"context"
	"errors"
	"testing"

	"kinofav/internal/domain"
	"kinofav/internal/testutil"
)

func TestFavoritesService_Add_Created(t *testing.T) {
	favoriteRepo := testutil.NewMockFavoriteRepository()
	catalog := testutil.NewMockCatalogGateway()
	catalog.Films[301] = &domain.FilmDetails{
		FilmID:      301,
		Name:        "The Matrix",
		Description: "Simulated reality",
	}

	svc := NewFavoritesService(favoriteRepo, catalog)

	favorite, status, err := svc.Add(context.Background(), 1, 301)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status != AddStatusCreated {
		t.Errorf("expected status created, got %q", status)
	}
	if favorite.Name != "The Matrix" {
		t.Errorf("expected catalog name captured, got %q", favorite.Name)
	}
	if favorite.Description != "Simulated reality" {
		t.Errorf("expected catalog description captured, got %q", favorite.Description)
	}
	if len(favoriteRepo.Favorites) != 1 {
		t.Fatalf("expected one stored favorite, got %d", len(favoriteRepo.Favorites))
	}
}

func TestFavoritesService_Add_AlreadyPresent_SkipsCatalog(t *testing.T) {
	favoriteRepo := testutil.NewMockFavoriteRepository()
	favoriteRepo.Favorites = append(favoriteRepo.Favorites,
		testutil.NewTestFavorite(
			testutil.WithFavoriteAccount(1),
			testutil.WithFavoriteFilm(301),
		))

	catalogCalled := false
	catalog := testutil.NewMockCatalogGateway()
	catalog.FetchByIDFunc = func(ctx context.Context, filmID int64) (*domain.FilmDetails, error) {
		catalogCalled = true
		return testutil.NewTestFilmDetails(filmID), nil
	}

	svc := NewFavoritesService(favoriteRepo, catalog)

	favorite, status, err := svc.Add(context.Background(), 1, 301)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status != AddStatusAlreadyPresent {
		t.Errorf("expected status already_present, got %q", status)
	}
	if favorite != nil {
		t.Errorf("expected nil favorite for repeat add, got: %+v", favorite)
	}
	if catalogCalled {
		t.Error("catalog must not be consulted for a film that is already favorited")
	}
	if len(favoriteRepo.Favorites) != 1 {
		t.Errorf("expected no new rows, got %d", len(favoriteRepo.Favorites))
	}
}

func TestFavoritesService_Add_CatalogErrors(t *testing.T) {
	tests := []struct {
		name        string
		catalogErr  error
		expectedErr error
	}{
		{"film not found", domain.ErrFilmNotFound, domain.ErrFilmNotFound},
		{"catalog unavailable", domain.ErrCatalogUnavailable, domain.ErrCatalogUnavailable},
		{"catalog malformed", domain.ErrCatalogMalformed, domain.ErrCatalogMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			favoriteRepo := testutil.NewMockFavoriteRepository()
			catalog := testutil.NewMockCatalogGateway()
			catalog.FetchByIDFunc = func(ctx context.Context, filmID int64) (*domain.FilmDetails, error) {
				return nil, tt.catalogErr
			}

			svc := NewFavoritesService(favoriteRepo, catalog)

			_, _, err := svc.Add(context.Background(), 1, 301)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got: %v", tt.expectedErr, err)
			}

			// A failed catalog lookup must leave nothing behind
			if len(favoriteRepo.Favorites) != 0 {
				t.Errorf("expected no stored favorites, got %d", len(favoriteRepo.Favorites))
			}
		})
	}
}

func TestFavoritesService_Add_LostInsertRace(t *testing.T) {
	favoriteRepo := testutil.NewMockFavoriteRepository()
	favoriteRepo.ExistsFunc = func(ctx context.Context, accountID, filmID int64) (bool, error) {
		return false, nil
	}
	favoriteRepo.CreateIfAbsentFunc = func(ctx context.Context, favorite *domain.Favorite) (bool, error) {
		return false, nil
	}

	catalog := testutil.NewMockCatalogGateway()
	catalog.Films[301] = testutil.NewTestFilmDetails(301)

	svc := NewFavoritesService(favoriteRepo, catalog)

	_, status, err := svc.Add(context.Background(), 1, 301)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status != AddStatusAlreadyPresent {
		t.Errorf("expected status already_present after lost race, got %q", status)
	}
}

func TestFavoritesService_Remove(t *testing.T) {
	favoriteRepo := testutil.NewMockFavoriteRepository()
	favoriteRepo.Favorites = append(favoriteRepo.Favorites,
		testutil.NewTestFavorite(
			testutil.WithFavoriteAccount(1),
			testutil.WithFavoriteFilm(301),
		))

	svc := NewFavoritesService(favoriteRepo, testutil.NewMockCatalogGateway())

	status, err := svc.Remove(context.Background(), 1, 301)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status != RemoveStatusRemoved {
		t.Errorf("expected status removed, got %q", status)
	}

	// Second remove is a soft not_found, never an error
	status, err = svc.Remove(context.Background(), 1, 301)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status != RemoveStatusNotFound {
		t.Errorf("expected status not_found, got %q", status)
	}
}

func TestFavoritesService_Remove_ScopedToAccount(t *testing.T) {
	favoriteRepo := testutil.NewMockFavoriteRepository()
	favoriteRepo.Favorites = append(favoriteRepo.Favorites,
		testutil.NewTestFavorite(
			testutil.WithFavoriteAccount(2),
			testutil.WithFavoriteFilm(301),
		))

	svc := NewFavoritesService(favoriteRepo, testutil.NewMockCatalogGateway())

	status, err := svc.Remove(context.Background(), 1, 301)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status != RemoveStatusNotFound {
		t.Errorf("expected not_found for another account's favorite, got %q", status)
	}
	if len(favoriteRepo.Favorites) != 1 {
		t.Error("another account's favorite must not be deleted")
	}
}

func TestFavoritesService_List(t *testing.T) {
	favoriteRepo := testutil.NewMockFavoriteRepository()
	favoriteRepo.Favorites = append(favoriteRepo.Favorites,
		testutil.NewTestFavorite(testutil.WithFavoriteAccount(1), testutil.WithFavoriteFilm(301)),
		testutil.NewTestFavorite(testutil.WithFavoriteAccount(1), testutil.WithFavoriteFilm(302)),
		testutil.NewTestFavorite(testutil.WithFavoriteAccount(2), testutil.WithFavoriteFilm(301)),
	)

	svc := NewFavoritesService(favoriteRepo, testutil.NewMockCatalogGateway())

	favorites, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if favorites[0].FilmID != 301 || favorites[1].FilmID != 302 {
		t.Errorf("expected insertion order, got %d then %d", favorites[0].FilmID, favorites[1].FilmID)
	}
}

func TestFavoritesService_List_EmptyIsNotNil(t *testing.T) {
	favoriteRepo := testutil.NewMockFavoriteRepository()
	favoriteRepo.ListByAccountFunc = func(ctx context.Context, accountID int64) ([]*domain.Favorite, error) {
		return nil, nil
	}

	svc := NewFavoritesService(favoriteRepo, testutil.NewMockCatalogGateway())

	favorites, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if favorites == nil {
		t.Error("expected non-nil empty slice")
	}
	if len(favorites) != 0 {
		t.Errorf("expected empty slice, got %d elements", len(favorites))
	}
}

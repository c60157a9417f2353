// Package testutil provides shared test utilities, mocks, and fixtures
// for testing the kinofav application.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"kinofav/internal/domain"
)

// Common test errors
var (
	ErrMockNotImplemented = errors.New("mock function not implemented")
	ErrMockNotFound       = errors.New("mock: not found")
)

// MockAccountRepository implements domain.AccountRepository for testing
type MockAccountRepository struct {
	mu sync.RWMutex

	// Function overrides - set these to customize behavior
	CreateFunc        func(ctx context.Context, account *domain.Account) error
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.Account, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.Account, error)

	// In-memory storage for simple tests
	Accounts map[int64]*domain.Account
	nextID   int64
}

// NewMockAccountRepository creates a new MockAccountRepository with initialized maps
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[int64]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Accounts == nil {
		m.Accounts = make(map[int64]*domain.Account)
	}

	for _, a := range m.Accounts {
		if a.Username == account.Username {
			return domain.ErrAccountExists
		}
	}

	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}
	m.Accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, account := range m.Accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if account, ok := m.Accounts[id]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// MockFavoriteRepository implements domain.FavoriteRepository for testing
type MockFavoriteRepository struct {
	mu sync.RWMutex

	// Function overrides - set these to customize behavior
	CreateIfAbsentFunc func(ctx context.Context, favorite *domain.Favorite) (bool, error)
	ExistsFunc         func(ctx context.Context, accountID, filmID int64) (bool, error)
	DeleteByFilmFunc   func(ctx context.Context, accountID, filmID int64) (int64, error)
	ListByAccountFunc  func(ctx context.Context, accountID int64) ([]*domain.Favorite, error)

	// In-memory storage for simple tests
	Favorites []*domain.Favorite
	nextID    int64
}

// NewMockFavoriteRepository creates a new MockFavoriteRepository
func NewMockFavoriteRepository() *MockFavoriteRepository {
	return &MockFavoriteRepository{}
}

func (m *MockFavoriteRepository) CreateIfAbsent(ctx context.Context, favorite *domain.Favorite) (bool, error) {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, favorite)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.Favorites {
		if f.AccountID == favorite.AccountID && f.FilmID == favorite.FilmID {
			return false, nil
		}
	}

	m.nextID++
	favorite.ID = m.nextID
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}
	m.Favorites = append(m.Favorites, favorite)
	return true, nil
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, accountID, filmID int64) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, accountID, filmID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, f := range m.Favorites {
		if f.AccountID == accountID && f.FilmID == filmID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockFavoriteRepository) DeleteByFilm(ctx context.Context, accountID, filmID int64) (int64, error) {
	if m.DeleteByFilmFunc != nil {
		return m.DeleteByFilmFunc(ctx, accountID, filmID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, f := range m.Favorites {
		if f.AccountID == accountID && f.FilmID == filmID {
			m.Favorites = append(m.Favorites[:i], m.Favorites[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockFavoriteRepository) ListByAccount(ctx context.Context, accountID int64) ([]*domain.Favorite, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*domain.Favorite{}
	for _, f := range m.Favorites {
		if f.AccountID == accountID {
			result = append(result, f)
		}
	}
	return result, nil
}

// MockCatalogGateway implements domain.CatalogGateway for testing
type MockCatalogGateway struct {
	// Function overrides - set these to customize behavior
	FetchByIDFunc func(ctx context.Context, filmID int64) (*domain.FilmDetails, error)
	SearchFunc    func(ctx context.Context, keyword string) ([]*domain.FilmSummary, error)

	// Static film inventory for simple tests
	Films map[int64]*domain.FilmDetails
}

// NewMockCatalogGateway creates a new MockCatalogGateway with initialized maps
func NewMockCatalogGateway() *MockCatalogGateway {
	return &MockCatalogGateway{
		Films: make(map[int64]*domain.FilmDetails),
	}
}

func (m *MockCatalogGateway) FetchByID(ctx context.Context, filmID int64) (*domain.FilmDetails, error) {
	if m.FetchByIDFunc != nil {
		return m.FetchByIDFunc(ctx, filmID)
	}
	if details, ok := m.Films[filmID]; ok {
		return details, nil
	}
	return nil, domain.ErrFilmNotFound
}

func (m *MockCatalogGateway) Search(ctx context.Context, keyword string) ([]*domain.FilmSummary, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, keyword)
	}
	return nil, ErrMockNotImplemented
}

// MockTokenService implements the token issue/validate pair for testing
type MockTokenService struct {
	IssueFunc    func(accountID int64) (string, error)
	ValidateFunc func(tokenString string) (int64, error)
}

func (m *MockTokenService) Issue(accountID int64) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(accountID)
	}
	return "test-token", nil
}

func (m *MockTokenService) Validate(tokenString string) (int64, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(tokenString)
	}
	return 0, ErrMockNotImplemented
}

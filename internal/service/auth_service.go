package service

import (
	"context"
	"errors"
	"regexp"

	"kinofav/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// TokenIssuer issues a signed session token for an account
type TokenIssuer interface {
	Issue(accountID int64) (string, error)
}

type AuthService struct {
	accounts domain.AccountRepository
	tokens   TokenIssuer
}

func NewAuthService(accounts domain.AccountRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
	}
}

// Register creates a new account. The username must be free, the two
// password copies must match, and the password is stored only as a bcrypt
// hash.
func (s *AuthService) Register(ctx context.Context, username, password, passwordRepeat string) (*domain.Account, error) {
	if len(username) < 3 || len(username) > 50 {
		return nil, domain.ErrInvalidInput
	}
	if !usernameRegex.MatchString(username) {
		return nil, domain.ErrInvalidInput
	}
	if len(password) < 8 || len(password) > 100 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrAccountExists
	}

	if password != passwordRepeat {
		return nil, domain.ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	// The unique constraint backstops the existence check above, so a
	// concurrent registration still surfaces as ErrAccountExists.
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Login verifies credentials and issues a session token. A missing account
// and a wrong password both fail with the same ErrInvalidCredentials so the
// response never reveals which part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(account.PasswordHash), []byte(password),
	); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(account.ID)
	if err != nil {
		return "", nil, err
	}

	return tokenString, account, nil
}

// GetAccountByID looks up an account by its id
func (s *AuthService) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

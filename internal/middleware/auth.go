package middleware

import (
	"context"
	"net/http"

	"kinofav/internal/domain"
	"kinofav/internal/observability"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	AccountKey   contextKey = "account"
)

// TokenValidator checks a signed session token and returns the account id it
// was issued for.
type TokenValidator interface {
	Validate(tokenString string) (int64, error)
}

// Auth resolves the session from the access_token cookie. Any failure along
// the chain (missing cookie, bad or expired token, deleted account) ends the
// request with 401; the specific reason is never exposed to the client.
func Auth(tokens TokenValidator, accounts domain.AccountRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("access_token")
			if err != nil {
				http.Error(w, `{"error":"Not authenticated"}`, http.StatusUnauthorized)
				return
			}

			accountID, err := tokens.Validate(cookie.Value)
			if err != nil {
				http.Error(w, `{"error":"Invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			account, err := accounts.GetByID(r.Context(), accountID)
			if err != nil {
				http.Error(w, `{"error":"Invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, account.ID)
			ctx = context.WithValue(ctx, AccountKey, account)
			ctx = observability.WithAccountID(ctx, account.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAccountID(ctx context.Context) (int64, bool) {
	accountID, ok := ctx.Value(AccountIDKey).(int64)
	return accountID, ok
}

func GetAccount(ctx context.Context) (*domain.Account, bool) {
	account, ok := ctx.Value(AccountKey).(*domain.Account)
	return account, ok
}

func WithAccountID(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, AccountIDKey, accountID)
}

func WithAccount(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, AccountKey, account)
}

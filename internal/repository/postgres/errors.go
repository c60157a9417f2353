package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation on the named constraint. An empty constraint matches any unique
// violation. The repositories pass the constraints from the migrations, such
// as accounts_username_key and favorites_account_film_key, so an unrelated
// collision is never mistaken for a duplicate row.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	if string(pqErr.Code) != pqUniqueViolation {
		return false
	}

	return constraint == "" || pqErr.Constraint == constraint
}

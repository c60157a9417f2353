package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"kinofav/internal/domain"
)

// FavoriteRepository implements domain.FavoriteRepository for PostgreSQL
type FavoriteRepository struct {
	db *sql.DB
	tm *TxManager
}

// NewFavoriteRepository creates a new PostgreSQL favorite repository
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{
		db: db,
		tm: NewTxManager(db),
	}
}

// CreateIfAbsent runs the check-then-insert step inside a transaction. The
// favorites_account_film_key unique constraint closes the remaining race
// between concurrent adds for the same (account, film) pair: a violation is
// reported as "already existed", not as an error.
func (r *FavoriteRepository) CreateIfAbsent(ctx context.Context, favorite *domain.Favorite) (bool, error) {
	created := false

	err := r.tm.WithTx(ctx, func(tx *sql.Tx) error {
		var existingID int64
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM favorites
			WHERE account_id = $1 AND film_id = $2
			FOR UPDATE
		`, favorite.AccountID, favorite.FilmID).Scan(&existingID)

		if err == nil {
			return nil
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("failed to check existing favorite: %w", err)
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO favorites (account_id, film_id, name, description)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`,
			favorite.AccountID,
			favorite.FilmID,
			favorite.Name,
			favorite.Description,
		).Scan(&favorite.ID, &favorite.CreatedAt)

		if err != nil {
			if IsUniqueViolation(err, "favorites_account_film_key") {
				return nil
			}
			return fmt.Errorf("failed to create favorite: %w", err)
		}

		created = true
		return nil
	})

	return created, err
}

// Exists reports whether the account already favorited the film
func (r *FavoriteRepository) Exists(ctx context.Context, accountID, filmID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM favorites WHERE account_id = $1 AND film_id = $2
		)
	`, accountID, filmID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// DeleteByFilm deletes the favorite scoped to the owning account and returns
// the number of rows removed
func (r *FavoriteRepository) DeleteByFilm(ctx context.Context, accountID, filmID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE account_id = $1 AND film_id = $2
	`, accountID, filmID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorite: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return count, nil
}

// ListByAccount returns the account's favorites in insertion order
func (r *FavoriteRepository) ListByAccount(ctx context.Context, accountID int64) ([]*domain.Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, film_id, name, description, created_at
		FROM favorites
		WHERE account_id = $1
		ORDER BY id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]*domain.Favorite, 0)
	for rows.Next() {
		f := &domain.Favorite{}
		if err := rows.Scan(
			&f.ID,
			&f.AccountID,
			&f.FilmID,
			&f.Name,
			&f.Description,
			&f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

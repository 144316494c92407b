package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

// GetSecret returns the TOTP secret for a user and whether 2FA is enabled.
// Returns ("", false, nil) when the user never enrolled.
func (r *TOTPRepository) GetSecret(ctx context.Context, userID int) (string, bool, error) {
	var secret string
	var enabled bool
	err := r.DB.QueryRow(ctx,
		`SELECT secret, enabled FROM user_totp WHERE user_id = $1`, userID,
	).Scan(&secret, &enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return secret, enabled, nil
}

func (r *TOTPRepository) SaveSecret(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO user_totp (user_id, secret, enabled)
		 VALUES ($1, $2, FALSE)
		 ON CONFLICT (user_id) DO UPDATE SET secret = EXCLUDED.secret, enabled = FALSE`,
		userID, secret)
	return err
}

func (r *TOTPRepository) Enable(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE user_totp SET enabled = TRUE WHERE user_id = $1`, userID)
	return err
}

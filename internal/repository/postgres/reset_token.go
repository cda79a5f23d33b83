package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campus-backend/internal/domain"
	"campus-backend/internal/logger"
	"campus-backend/internal/repository"
)

type resetTokenRepository struct {
	db *sql.DB
}

func NewResetTokenRepository(db *sql.DB) repository.ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

// Upsert replaces any prior token in one statement. There is never a window
// with zero or two live tokens for an email.
func (r *resetTokenRepository) Upsert(ctx context.Context, t *domain.ResetToken) error {
	query := `INSERT INTO password_reset_tokens (email, token_hash, created_on)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (email) DO UPDATE SET token_hash = EXCLUDED.token_hash, created_on = EXCLUDED.created_on`
	if t.CreatedOn.IsZero() {
		t.CreatedOn = time.Now().UTC()
	}
	logger.DatabaseCall("UPSERT", "password_reset_tokens", "email", t.Email)
	_, err := r.db.ExecContext(ctx, query, t.Email, t.TokenHash, t.CreatedOn)
	logger.DatabaseResult("UPSERT", 1, err, "email", t.Email)
	return err
}

func (r *resetTokenRepository) GetByEmail(ctx context.Context, email string) (*domain.ResetToken, error) {
	t := &domain.ResetToken{}
	query := `SELECT email, token_hash, created_on FROM password_reset_tokens WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&t.Email, &t.TokenHash, &t.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Consume deletes the row only when both email and hash match. Two racing
// resets with the same token cannot both succeed: the second delete affects
// zero rows.
func (r *resetTokenRepository) Consume(ctx context.Context, email, tokenHash string) error {
	query := `DELETE FROM password_reset_tokens WHERE LOWER(email) = LOWER($1) AND token_hash = $2`
	result, err := r.db.ExecContext(ctx, query, email, tokenHash)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidToken
	}
	return nil
}

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

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, name, email, role, approval_status, password_hash, created_on, updated_on`

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (name, email, role, approval_status, password_hash, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now().UTC()
	a.CreatedOn = now
	a.UpdatedOn = now
	logger.DatabaseCall("INSERT", "accounts", "email", a.Email)
	err := r.db.QueryRowContext(ctx, query, a.Name, a.Email, a.Role, a.Status, a.PasswordHash, a.CreatedOn, a.UpdatedOn).Scan(&a.ID)
	logger.DatabaseResult("INSERT", 1, err, "accountID", a.ID)
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id int32) (*domain.Account, error) {
	a := &domain.Account{}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.Role, &a.Status, &a.PasswordHash, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	a := &domain.Account{}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.Role, &a.Status, &a.PasswordHash, &a.CreatedOn, &a.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateStatus is the arbiter of concurrent approve/reject calls: the WHERE
// clause on the current status means only one of two racing transitions can
// affect a row, the loser sees zero rows and gets ErrInvalidState.
func (r *accountRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.ApprovalStatus) error {
	query := `UPDATE accounts SET approval_status = $1, updated_on = $2 WHERE id = $3 AND approval_status = $4`
	logger.DatabaseCall("UPDATE", "accounts", "accountID", id, "from", from, "to", to)
	result, err := r.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "accountID", id)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult("UPDATE", rows, nil, "accountID", id)
	if rows == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidState
	}
	return nil
}

func (r *accountRepository) UpdateCredential(ctx context.Context, id int32, passwordHash string) error {
	query := `UPDATE accounts SET password_hash = $1, updated_on = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *accountRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE role = $1 AND approval_status = $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, role, domain.ApprovalStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *accountRepository) ListPending(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE approval_status = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, domain.ApprovalStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *accountRepository) ListApproved(ctx context.Context, afterID, limit int32) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE approval_status = $1 AND id > $2 ORDER BY id LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, domain.ApprovalStatusApproved, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func scanAccounts(rows *sql.Rows) ([]domain.Account, error) {
	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role, &a.Status, &a.PasswordHash, &a.CreatedOn, &a.UpdatedOn); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

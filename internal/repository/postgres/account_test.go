package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-backend/internal/domain"
)

func newAccountRepoTest(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &accountRepository{db: db}, mock
}

func accountRows(ids ...int32) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "role", "approval_status", "password_hash", "created_on", "updated_on"})
	now := time.Now().UTC()
	for _, id := range ids {
		rows.AddRow(id, "Ada Student", "ada@campus.local", "STUDENT", "APPROVED", "hash", now, now)
	}
	return rows
}

func TestAccountRepository_Create(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("Ada Student", "ada@campus.local", domain.RoleStudent, domain.ApprovalStatusPending, "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	a := &domain.Account{
		Name:         "Ada Student",
		Email:        "ada@campus.local",
		Role:         domain.RoleStudent,
		Status:       domain.ApprovalStatusPending,
		PasswordHash: "hash",
	}
	err := repo.Create(context.Background(), a)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo, mock := newAccountRepoTest(t)

		mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id =`).
			WithArgs(int32(1)).
			WillReturnRows(accountRows(1))

		a, err := repo.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), a.ID)
		assert.Equal(t, domain.RoleStudent, a.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newAccountRepoTest(t)

		mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE id =`).
			WithArgs(int32(404)).
			WillReturnRows(accountRows())

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAccountRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingToApproved", func(t *testing.T) {
		repo, mock := newAccountRepoTest(t)

		mock.ExpectExec(`UPDATE accounts SET approval_status =`).
			WithArgs(domain.ApprovalStatusApproved, sqlmock.AnyArg(), int32(1), domain.ApprovalStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 1, domain.ApprovalStatusPending, domain.ApprovalStatusApproved)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LostRaceOnExistingRow", func(t *testing.T) {
		repo, mock := newAccountRepoTest(t)

		mock.ExpectExec(`UPDATE accounts SET approval_status =`).
			WithArgs(domain.ApprovalStatusRejected, sqlmock.AnyArg(), int32(1), domain.ApprovalStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.UpdateStatus(ctx, 1, domain.ApprovalStatusPending, domain.ApprovalStatusRejected)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("MissingRow", func(t *testing.T) {
		repo, mock := newAccountRepoTest(t)

		mock.ExpectExec(`UPDATE accounts SET approval_status =`).
			WithArgs(domain.ApprovalStatusApproved, sqlmock.AnyArg(), int32(404), domain.ApprovalStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.UpdateStatus(ctx, 404, domain.ApprovalStatusPending, domain.ApprovalStatusApproved)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAccountRepository_UpdateCredential(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := newAccountRepoTest(t)

		mock.ExpectExec(`UPDATE accounts SET password_hash =`).
			WithArgs("newhash", sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateCredential(context.Background(), 1, "newhash"))
	})

	t.Run("MissingRow", func(t *testing.T) {
		repo, mock := newAccountRepoTest(t)

		mock.ExpectExec(`UPDATE accounts SET password_hash =`).
			WithArgs("newhash", sqlmock.AnyArg(), int32(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateCredential(context.Background(), 404, "newhash")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAccountRepository_ListApproved(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE approval_status = (.+) AND id >`).
		WithArgs(domain.ApprovalStatusApproved, int32(10), int32(2)).
		WillReturnRows(accountRows(11, 12))

	accounts, err := repo.ListApproved(context.Background(), 10, 2)
	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, int32(11), accounts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_ListPending(t *testing.T) {
	repo, mock := newAccountRepoTest(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "role", "approval_status", "password_hash", "created_on", "updated_on"}).
		AddRow(3, "Pending Teacher", "pt@campus.local", "TEACHER", "PENDING", "hash", time.Now().UTC(), time.Now().UTC())

	mock.ExpectQuery(`SELECT (.+) FROM accounts WHERE approval_status = (.+) ORDER BY created_on`).
		WithArgs(domain.ApprovalStatusPending).
		WillReturnRows(rows)

	accounts, err := repo.ListPending(context.Background())
	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, domain.ApprovalStatusPending, accounts[0].Status)
}

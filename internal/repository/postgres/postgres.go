package postgres

import (
	"database/sql"

	"campus-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AccountRepository
	repository.NotificationRepository
	repository.ResetTokenRepository
	repository.EventRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		AccountRepository:      NewAccountRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		ResetTokenRepository:   NewResetTokenRepository(db),
		EventRepository:        NewEventRepository(db),
	}
}

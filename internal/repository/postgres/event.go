package postgres

import (
	"context"
	"database/sql"
	"time"

	"campus-backend/internal/domain"
	"campus-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

// ListByDate matches on the date component only; event_date is a DATE column.
func (r *eventRepository) ListByDate(ctx context.Context, date time.Time) ([]domain.CalendarEvent, error) {
	query := `SELECT id, title, description, event_date FROM calendar_events WHERE event_date = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.CalendarEvent
	for rows.Next() {
		var e domain.CalendarEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

package jobs

import (
	"context"
	"fmt"
	"time"

	"campus-backend/internal/logger"
	"campus-backend/internal/notify"
)

// SendUpcomingEventReminders notifies every approved account of calendar
// events happening tomorrow. Accounts are paged through in batches so the
// (events × accounts) fan-out never materializes in memory.
func (jr *JobRunner) SendUpcomingEventReminders() {
	jr.runWithRecovery("SendUpcomingEventReminders", func() {
		ctx := context.Background()

		now := jr.now()
		tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

		events, err := jr.eventRepo.ListByDate(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to query upcoming events", "error", err)
			return
		}
		if len(events) == 0 {
			logger.Info("No events scheduled for tomorrow, nothing to send", "date", tomorrow.Format("2006-01-02"))
			return
		}

		batchSize := jr.config.Scheduler.ReminderBatchSize
		var afterID int32
		count := 0

		for {
			accounts, err := jr.accountRepo.ListApproved(ctx, afterID, batchSize)
			if err != nil {
				logger.Error("Failed to list accounts for event reminders", "after_id", afterID, "error", err)
				return
			}
			if len(accounts) == 0 {
				break
			}

			for _, acct := range accounts {
				rcpt := notify.Recipient{AccountID: acct.ID, Name: acct.Name, Email: acct.Email}
				for _, ev := range events {
					event := notify.Event{
						Type:  notify.EventUpcomingEvent,
						Title: fmt.Sprintf("Upcoming event: %s", ev.Title),
						Message: fmt.Sprintf("%s is scheduled for %s. %s",
							ev.Title, ev.Date.Format("2006-01-02"), ev.Description),
						Attributes: map[string]string{
							"event_id": fmt.Sprintf("%d", ev.ID),
							"date":     ev.Date.Format("2006-01-02"),
						},
					}
					if err := jr.dispatcher.Dispatch(ctx, event, rcpt); err != nil {
						logger.Error("Failed to dispatch event reminder",
							"event_id", ev.ID, "account_id", acct.ID, "error", err)
						continue
					}
					count++
				}
			}

			if int32(len(accounts)) < batchSize {
				break
			}
			afterID = accounts[len(accounts)-1].ID
		}

		logger.Info("Upcoming event reminders sent", "events", len(events), "notifications", count)
	})
}

package service

import (
	"context"
	"fmt"

	"campus-backend/internal/domain"
	"campus-backend/internal/logger"
	"campus-backend/internal/notify"
	"campus-backend/internal/repository"
)

type approvalService struct {
	accountRepo repository.AccountRepository
	dispatcher  *notify.Dispatcher
}

func NewApprovalService(accountRepo repository.AccountRepository, dispatcher *notify.Dispatcher) ApprovalService {
	return &approvalService{
		accountRepo: accountRepo,
		dispatcher:  dispatcher,
	}
}

func (s *approvalService) Approve(ctx context.Context, accountID int32) (*domain.Account, error) {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	// The conditional update is the race arbiter: of two concurrent
	// approve/reject calls, one sees ErrInvalidState.
	if err := s.accountRepo.UpdateStatus(ctx, accountID, domain.ApprovalStatusPending, domain.ApprovalStatusApproved); err != nil {
		return nil, err
	}
	acct.Status = domain.ApprovalStatusApproved

	// The approval is durable at this point. Dispatch failures are logged,
	// never surfaced to the operator as an approval failure.
	event := notify.Event{
		Type:    notify.EventAccountApproved,
		Title:   "Account approved",
		Message: fmt.Sprintf("Hello %s, your registration has been approved. You can now sign in.", acct.Name),
		Attributes: map[string]string{
			"account_id": fmt.Sprintf("%d", acct.ID),
		},
	}
	rcpt := notify.Recipient{AccountID: acct.ID, Name: acct.Name, Email: acct.Email}
	if err := s.dispatcher.Dispatch(ctx, event, rcpt); err != nil {
		logger.Error("Failed to dispatch approval notification", "account_id", acct.ID, "error", err)
	}

	return acct, nil
}

func (s *approvalService) Reject(ctx context.Context, accountID int32) error {
	acct, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	if err := s.accountRepo.UpdateStatus(ctx, accountID, domain.ApprovalStatusPending, domain.ApprovalStatusRejected); err != nil {
		return err
	}

	event := notify.Event{
		Type:    notify.EventAccountRejected,
		Title:   "Registration rejected",
		Message: fmt.Sprintf("Hello %s, your registration request was not approved.", acct.Name),
		Attributes: map[string]string{
			"account_id": fmt.Sprintf("%d", acct.ID),
		},
	}
	rcpt := notify.Recipient{AccountID: acct.ID, Name: acct.Name, Email: acct.Email}
	if err := s.dispatcher.Dispatch(ctx, event, rcpt); err != nil {
		logger.Error("Failed to dispatch rejection notification", "account_id", acct.ID, "error", err)
	}

	return nil
}

func (s *approvalService) ListPending(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListPending(ctx)
}

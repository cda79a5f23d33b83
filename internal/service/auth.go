package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"campus-backend/internal/domain"
	"campus-backend/internal/logger"
	"campus-backend/internal/notify"
	"campus-backend/internal/repository"
	"campus-backend/internal/security"
)

type authService struct {
	accountRepo  repository.AccountRepository
	dispatcher   *notify.Dispatcher
	tokenManager security.TokenManager
}

func NewAuthService(accountRepo repository.AccountRepository, dispatcher *notify.Dispatcher, tokenManager security.TokenManager) AuthService {
	return &authService{
		accountRepo:  accountRepo,
		dispatcher:   dispatcher,
		tokenManager: tokenManager,
	}
}

func (s *authService) Register(ctx context.Context, na NewAccount) (*domain.Account, error) {
	if !domain.ValidRole(na.Role) {
		return nil, fmt.Errorf("unknown role: %s", na.Role)
	}

	_, err := s.accountRepo.GetByEmail(ctx, na.Email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(na.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acct := &domain.Account{
		Name:         na.Name,
		Email:        na.Email,
		Role:         na.Role,
		Status:       domain.ApprovalStatusPending,
		PasswordHash: string(hash),
	}
	if err := s.accountRepo.Create(ctx, acct); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.notifyAdmins(ctx, acct)

	return acct, nil
}

// notifyAdmins tells every admin about the new registration request. The
// account is already created; notification failures are logged only.
func (s *authService) notifyAdmins(ctx context.Context, acct *domain.Account) {
	admins, err := s.accountRepo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		logger.Error("Failed to list admins for registration notice", "error", err)
		return
	}
	if len(admins) == 0 {
		return
	}

	event := notify.Event{
		Type:    notify.EventRegistrationReceived,
		Title:   "New registration request",
		Message: fmt.Sprintf("%s (%s) requested a %s account and is awaiting approval.", acct.Name, acct.Email, acct.Role),
		Attributes: map[string]string{
			"account_id": fmt.Sprintf("%d", acct.ID),
		},
	}
	recipients := make([]notify.Recipient, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, notify.Recipient{AccountID: admin.ID, Name: admin.Name, Email: admin.Email})
	}
	if err := s.dispatcher.Dispatch(ctx, event, recipients...); err != nil {
		logger.Error("Failed to dispatch registration notice", "account_id", acct.ID, "error", err)
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	acct, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", "", domain.ErrInvalidCredentials
	}

	if !acct.IsApproved() {
		return "", "", domain.ErrNotApproved
	}

	return s.generateTokens(acct)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	acct, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return "", "", security.ErrInvalidToken
	}
	if !acct.IsApproved() {
		return "", "", domain.ErrNotApproved
	}

	return s.generateTokens(acct)
}

func (s *authService) generateTokens(acct *domain.Account) (string, string, error) {
	access, err := s.tokenManager.GenerateAccessToken(acct.ID, acct.Email, acct.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(acct.ID, acct.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

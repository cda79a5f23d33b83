package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"campus-backend/internal/domain"
	"campus-backend/internal/notify"
	"campus-backend/internal/repository"
)

type passwordResetService struct {
	accountRepo repository.AccountRepository
	tokenRepo   repository.ResetTokenRepository
	dispatcher  *notify.Dispatcher
	tokenExpiry time.Duration
	linkBaseURL string

	now func() time.Time // mockable
}

func NewPasswordResetService(
	accountRepo repository.AccountRepository,
	tokenRepo repository.ResetTokenRepository,
	dispatcher *notify.Dispatcher,
	tokenExpiryMinutes int,
	linkBaseURL string,
) PasswordResetService {
	return &passwordResetService{
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		dispatcher:  dispatcher,
		tokenExpiry: time.Duration(tokenExpiryMinutes) * time.Minute,
		linkBaseURL: linkBaseURL,
		now:         time.Now,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	acct, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	// Only the hash is stored; the plaintext token goes out by mail once and
	// is never recoverable from our side.
	reset := &domain.ResetToken{
		Email:     acct.Email,
		TokenHash: hashToken(token),
		CreatedOn: s.now().UTC(),
	}
	if err := s.tokenRepo.Upsert(ctx, reset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	event := notify.Event{
		Type:  notify.EventPasswordReset,
		Title: "Password reset requested",
		Message: fmt.Sprintf(
			"Hello %s,\n\nA password reset was requested for your account. Follow the link below to choose a new password:\n\n%s/reset-password?email=%s&token=%s\n\nIf you did not request this, you can ignore this message.",
			acct.Name, s.linkBaseURL, acct.Email, token),
	}
	rcpt := notify.Recipient{AccountID: acct.ID, Name: acct.Name, Email: acct.Email}
	return s.dispatcher.Dispatch(ctx, event, rcpt)
}

func (s *passwordResetService) VerifyToken(ctx context.Context, email, token string) bool {
	return s.verify(ctx, email, token) == nil
}

func (s *passwordResetService) CompleteReset(ctx context.Context, email, token, newPassword string) error {
	if err := s.verify(ctx, email, token); err != nil {
		return err
	}

	acct, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return domain.ErrInvalidToken
	}

	// Consume first: the conditional delete is what rejects replays, so the
	// credential only changes for the caller that actually spent the token.
	if err := s.tokenRepo.Consume(ctx, email, hashToken(token)); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.accountRepo.UpdateCredential(ctx, acct.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}
	return nil
}

// verify checks the candidate against the stored hash and expiry. All failure
// modes collapse into ErrInvalidToken so callers cannot tell wrong-token from
// wrong-email or expired.
func (s *passwordResetService) verify(ctx context.Context, email, token string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}

	stored, err := s.tokenRepo.GetByEmail(ctx, email)
	if err != nil {
		return domain.ErrInvalidToken
	}

	candidate := hashToken(token)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(stored.TokenHash)) != 1 {
		return domain.ErrInvalidToken
	}

	if s.now().Sub(stored.CreatedOn) > s.tokenExpiry {
		return domain.ErrInvalidToken
	}
	return nil
}

// generateToken returns 32 bytes of high-entropy randomness, URL-safe encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

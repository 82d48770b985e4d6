package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

// SettingsService lets any authenticated account change its own credentials.
type SettingsService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewSettingsService(repo ports.AccountRepository, log zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, log: log}
}

func (s *SettingsService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ErrMissingPasswords
	}

	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return wrapUnlessDomain("change password", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongPassword
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, accountID, hash); err != nil {
		return wrapUnlessDomain("change password", err)
	}

	s.log.Info().Str("account_id", accountID).Msg("password changed")
	return nil
}

// ChangeEmail moves an account to newEmail unless another account owns it.
// Re-submitting the current email succeeds.
func (s *SettingsService) ChangeEmail(ctx context.Context, accountID, newEmail string) error {
	newEmail = normalizeEmail(newEmail)
	if newEmail == "" {
		return domain.ErrMissingNewEmail
	}

	existing, err := s.repo.FindByEmail(ctx, newEmail)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("change email: %w", err)
	}
	if existing != nil && existing.ID != accountID {
		return domain.ErrEmailInUse
	}

	if err := s.repo.UpdateEmail(ctx, accountID, newEmail); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrEmailInUse
		}
		return wrapUnlessDomain("change email", err)
	}

	s.log.Info().Str("account_id", accountID).Msg("email changed")
	return nil
}

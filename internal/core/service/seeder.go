package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

// SeedAccount is one canonical account created at startup.
type SeedAccount struct {
	Email    string
	Username string
	Name     string
	Role     domain.Role
}

// CanonicalAccounts are the three accounts every deployment starts with.
var CanonicalAccounts = []SeedAccount{
	{Email: "admin@legalaid.com", Username: "admin", Name: "Admin User", Role: domain.RoleAdmin},
	{Email: "lawyer@legalaid.com", Username: "lawyer", Name: "Lawyer User", Role: domain.RoleLawyer},
	{Email: "client@legalaid.com", Username: "client", Name: "Client User", Role: domain.RoleClient},
}

// Seeder creates the canonical accounts that do not exist yet.
type Seeder struct {
	repo     ports.AccountRepository
	password string
	log      zerolog.Logger
	now      func() time.Time
}

func NewSeeder(repo ports.AccountRepository, defaultPassword string, log zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, password: defaultPassword, log: log, now: time.Now}
}

// Seed is idempotent: an account matching either the email or the username
// of a canonical account counts as existing. It returns the number created.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	if s.password == "" {
		return 0, errors.New("seed: default password is empty")
	}

	created := 0
	for _, acc := range CanonicalAccounts {
		_, err := s.repo.FindByEmailOrUsername(ctx, acc.Email, acc.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return created, fmt.Errorf("seed %s: %w", acc.Email, err)
		}

		hash, err := hashPassword(s.password)
		if err != nil {
			return created, fmt.Errorf("seed %s: hash: %w", acc.Email, err)
		}

		now := s.now().UTC()
		if _, err := s.repo.Create(ctx, &domain.Account{
			Email:        acc.Email,
			Username:     acc.Username,
			Name:         acc.Name,
			Role:         acc.Role,
			PasswordHash: hash,
			Status:       domain.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			// Another instance seeding at the same time already created it.
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return created, fmt.Errorf("seed %s: %w", acc.Email, err)
		}

		created++
		s.log.Info().Str("email", acc.Email).Str("role", string(acc.Role)).Msg("seed account created")
	}
	return created, nil
}

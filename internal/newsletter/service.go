package newsletter

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"hk-storefront/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrInvalidEmail rejects addresses that fail the local format check.
var ErrInvalidEmail = errors.New("invalid email address")

type subscriber interface {
	Subscribe(ctx context.Context, email string) error
}

// Service validates and forwards newsletter signups.
type Service struct {
	remote subscriber
	logger *log.Logger
}

func New(remote subscriber, logger *log.Logger) *Service {
	return &Service{remote: remote, logger: logger}
}

// Subscribe registers an address. An address the backend already knows is
// treated as success; the caller asked for a state that already holds.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	err := s.remote.Subscribe(ctx, email)
	if errors.Is(err, domain.ErrAlreadySubscribed) {
		s.logger.Printf("newsletter signup for already-subscribed address")
		return nil
	}
	return err
}

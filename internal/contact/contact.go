// Package contact accepts and lists contact form submissions.
package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/17okk-xie/portfolio/internal/model"
)

// messageRepository is the subset of store.Messages the service requires.
type messageRepository interface {
	Create(ctx context.Context, m model.Message) (*model.Message, error)
	List(ctx context.Context, limit int) ([]model.Message, error)
}

type Service struct {
	repo   messageRepository
	logger *slog.Logger
}

func NewService(repo messageRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Submit validates and stores a message. Validation failures are returned
// as joined *model.FieldError values.
func (s *Service) Submit(ctx context.Context, m model.Message) (*model.Message, error) {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	saved, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("saving contact message: %w", err)
	}
	s.logger.Info("contact message received", "id", saved.ID, "email", saved.Email, "subject", saved.Subject)
	return saved, nil
}

// Recent returns up to limit messages, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]model.Message, error) {
	return s.repo.List(ctx, limit)
}

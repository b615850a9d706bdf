package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carebridge/hms/internal/domain"
	"github.com/carebridge/hms/internal/domain/contact"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ContactService struct {
	queryRepo contact.Repository
	log       *zap.Logger
}

func NewContactService(queryRepo contact.Repository, log *zap.Logger) *ContactService {
	return &ContactService{queryRepo: queryRepo, log: log}
}

// Submit files a contact ticket. No authentication required.
func (s *ContactService) Submit(ctx context.Context, cmd *contact.SubmitQueryCommand) (*contact.Query, error) {
	var fields []string
	if strings.TrimSpace(cmd.Name) == "" {
		fields = append(fields, "name is required")
	}
	if cmd.DateOfBirth.IsZero() {
		fields = append(fields, "date_of_birth is required")
	}
	if strings.TrimSpace(cmd.Problem) == "" {
		fields = append(fields, "problem is required")
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	q := &contact.Query{
		Name:        strings.TrimSpace(cmd.Name),
		Age:         cmd.Age,
		DateOfBirth: cmd.DateOfBirth,
		Address:     strings.TrimSpace(cmd.Address),
		Problem:     strings.TrimSpace(cmd.Problem),
	}
	if err := s.queryRepo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("creating contact query: %w", err)
	}

	s.log.Info("contact query submitted", zap.String("query_id", q.ID.String()))
	return q, nil
}

func (s *ContactService) List(ctx context.Context, claims *domain.Claims) ([]*contact.Query, error) {
	if claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.queryRepo.List(ctx)
}

func (s *ContactService) Get(ctx context.Context, claims *domain.Claims, id uuid.UUID) (*contact.Query, error) {
	if claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.queryRepo.GetByID(ctx, id)
}

// Reply sets the admin reply text. RepliedAt is stamped on the first
// transition to a non-empty reply and never touched again.
func (s *ContactService) Reply(ctx context.Context, claims *domain.Claims, id uuid.UUID, text string) (*contact.Query, error) {
	if claims.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	q, err := s.queryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stamped := q.ApplyReply(strings.TrimSpace(text), time.Now())
	if err := s.queryRepo.UpdateReply(ctx, q); err != nil {
		return nil, fmt.Errorf("updating reply: %w", err)
	}

	s.log.Info("contact query replied",
		zap.String("query_id", q.ID.String()),
		zap.Bool("first_reply", stamped),
	)
	return q, nil
}

package inquiry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/meki101/mekitech.co.ke/internal/model"
	"github.com/meki101/mekitech.co.ke/internal/repository"
	"github.com/meki101/mekitech.co.ke/internal/util"
)

// CreatedTopic carries one event per stored inquiry.
const CreatedTopic = "inquiries.created"

// Service atomically persists inquiries and their outbox events.
type Service struct {
	db        *sqlx.DB
	inquiries repository.InquiriesRepository
	outbox    repository.OutboxRepository

	newID func() string
}

// New constructs the inquiry service.
func New(
	db *sqlx.DB,
	inquiriesRepo repository.InquiriesRepository,
	outboxRepo repository.OutboxRepository,
) *Service {
	return &Service{
		db:        db,
		inquiries: inquiriesRepo,
		outbox:    outboxRepo,
		newID:     util.NewID,
	}
}

// Submit generates a ULID, normalizes contact fields, and writes the inquiry
// and an `inquiries.created` outbox row within a single transaction.
// Returns the generated inquiry ID.
func (s *Service) Submit(ctx context.Context, inq model.Inquiry) (string, error) {
	inq.ID = s.newID()
	inq.ClientName = strings.TrimSpace(inq.ClientName)
	inq.ClientEmail = strings.TrimSpace(inq.ClientEmail)
	inq.ClientPhone = util.NormalizePhone(inq.ClientPhone)
	inq.ClientCompany = strings.TrimSpace(inq.ClientCompany)
	inq.ProjectDescription = strings.TrimSpace(inq.ProjectDescription)
	if inq.ServiceID != nil && strings.TrimSpace(*inq.ServiceID) == "" {
		inq.ServiceID = nil
	}

	payload, err := json.Marshal(model.EnvelopeFor(inq))
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	// the contact form shows this text as is
	if err := s.inquiries.Insert(ctx, tx, inq); err != nil {
		return "", err
	}

	if err := s.outbox.Insert(ctx, tx, "inquiry", inq.ID, CreatedTopic, payload); err != nil {
		return "", fmt.Errorf("insert outbox: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return inq.ID, nil
}

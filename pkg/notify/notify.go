// Package notify delivers built digests by email, once per digest.
package notify

import (
	"context"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/metrics"
	"github.com/umputun/postdigest/pkg/render"
)

//go:generate moq -out mocks/digest_store.go -pkg mocks -skip-ensure -fmt goimports . DigestStore
//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender

// DigestStore loads digests and records delivery
type DigestStore interface {
	GetDigestView(ctx context.Context, id int64) (*domain.DigestView, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time, recipient string) error
}

// Sender sends one email
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// Outcome of a delivery attempt
type Outcome string

// delivery outcomes
const (
	OutcomeSent     Outcome = "sent"
	OutcomeSkipped  Outcome = "skipped" // already sent
	OutcomeDisabled Outcome = "disabled"
)

// Params for the delivery service
type Params struct {
	Store     DigestStore
	Sender    Sender
	Renderer  *render.Renderer
	Recipient string
	Enabled   bool
}

// Service delivers digests by email
type Service struct {
	Params
	now func() time.Time
}

// New makes a delivery service
func New(p Params) *Service {
	return &Service{Params: p, now: time.Now}
}

// Deliver sends the digest email unless email is disabled or the digest was already sent
func (s *Service) Deliver(ctx context.Context, digestID int64) (Outcome, error) {
	if !s.Enabled || s.Sender == nil {
		log.Printf("[DEBUG] email disabled, digest %d not delivered", digestID)
		metrics.DeliveredDigests.WithLabelValues(string(OutcomeDisabled)).Inc()
		return OutcomeDisabled, nil
	}

	view, err := s.Store.GetDigestView(ctx, digestID)
	if err != nil {
		return "", fmt.Errorf("get digest %d: %w", digestID, err)
	}
	if view.Digest.SentAt != nil {
		log.Printf("[WARN] digest %s already sent at %s to %s", view.Digest.DateString(),
			view.Digest.SentAt.Format(time.RFC3339), view.Digest.Recipient)
		metrics.DeliveredDigests.WithLabelValues(string(OutcomeSkipped)).Inc()
		return OutcomeSkipped, nil
	}

	email, err := s.Renderer.Email(*view)
	if err != nil {
		metrics.DeliveredDigests.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("render digest %d: %w", digestID, err)
	}
	if err := s.Sender.Send(ctx, s.Recipient, email.Subject, email.HTML, email.Text); err != nil {
		metrics.DeliveredDigests.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("deliver digest %d: %w", digestID, err)
	}
	if err := s.Store.MarkSent(ctx, digestID, s.now().UTC(), s.Recipient); err != nil {
		// email is out, a failed mark may cause a duplicate on the next run
		metrics.DeliveredDigests.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("mark digest %d sent: %w", digestID, err)
	}

	log.Printf("[INFO] digest %s sent to %s", view.Digest.DateString(), s.Recipient)
	metrics.DeliveredDigests.WithLabelValues(string(OutcomeSent)).Inc()
	return OutcomeSent, nil
}

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/lifecycle"
)

// Outcome describes what handling one event changed.
type Outcome struct {
	EventID         string
	EventType       string
	Ignored         bool
	PaymentUpdated  bool
	JobTransitioned bool
}

// ReconciliationService turns verified payment events into job status
// changes. Every step is a conditional update so redelivered events and
// retries after a partial failure converge on the same state.
type ReconciliationService struct {
	gateway  Gateway
	payments PaymentRepoInterface
	jobs     JobRepoInterface
	log      *slog.Logger
	now      func() time.Time
}

func NewReconciliationService(
	gateway Gateway,
	payments PaymentRepoInterface,
	jobs JobRepoInterface,
	log *slog.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		gateway:  gateway,
		payments: payments,
		jobs:     jobs,
		log:      log.With(slog.String("component", "reconciliation")),
		now:      time.Now,
	}
}

var _ ReconcilerInterface = (*ReconciliationService)(nil)

func (s *ReconciliationService) HandleEvent(ctx context.Context, payload []byte, signature string) (*Outcome, error) {
	if strings.TrimSpace(signature) == "" {
		s.log.Warn("webhook rejected", slog.String("reason", "missing signature header"))
		return nil, common.Wrap(http.StatusBadRequest, ErrSignatureVerificationFailed, "missing stripe-signature header")
	}

	event, err := s.gateway.VerifyEvent(payload, signature)
	if err != nil {
		s.log.Warn("webhook rejected", slog.String("reason", "signature verification failed"), slog.Any("error", err))
		return nil, common.Wrap(http.StatusBadRequest,
			fmt.Errorf("%w: %w", ErrSignatureVerificationFailed, err),
			"webhook signature verification failed")
	}

	out := &Outcome{EventID: event.ID, EventType: event.Type}
	log := s.log.With(slog.String("event_id", event.ID), slog.String("event_type", event.Type))

	if event.Type != EventCheckoutSessionCompleted {
		out.Ignored = true
		log.Debug("event ignored")
		return out, nil
	}

	jobID := strings.TrimSpace(event.Metadata[MetadataJobID])
	if jobID == "" || event.SessionID == "" {
		log.Warn("event rejected", slog.String("reason", "missing correlation key"), slog.String("session_id", event.SessionID))
		return nil, common.Wrap(http.StatusBadRequest, ErrMissingCorrelationKey, "checkout session is missing job_id metadata")
	}
	log = log.With(slog.String("job_id", jobID), slog.String("session_id", event.SessionID))

	updated, err := s.completePayment(ctx, log, event, jobID)
	if err != nil {
		return nil, err
	}
	out.PaymentUpdated = updated

	moved, err := s.submitJob(ctx, log, jobID)
	if err != nil {
		return nil, err
	}
	out.JobTransitioned = moved

	log.Info("checkout reconciled",
		slog.Bool("payment_updated", out.PaymentUpdated),
		slog.Bool("job_transitioned", out.JobTransitioned),
	)
	return out, nil
}

func (s *ReconciliationService) completePayment(ctx context.Context, log *slog.Logger, event *Event, jobID string) (bool, error) {
	p, err := s.payments.GetBySessionID(ctx, event.SessionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// The posting request may not have stored the row yet; a
			// server error makes the gateway redeliver later.
			log.Warn("payment not found for session")
			return false, common.Wrap(http.StatusInternalServerError, ErrPaymentNotFound, ErrPaymentNotFound.Error())
		}
		log.Error("payment lookup failed", slog.Any("error", err))
		return false, common.FromStoreError(err, "load payment")
	}

	if p.JobID != jobID {
		log.Error("payment job mismatch", slog.String("payment_job_id", p.JobID))
		return false, common.Wrap(http.StatusBadRequest, ErrCorrelationMismatch, ErrCorrelationMismatch.Error())
	}

	updated, err := s.payments.MarkCompleted(ctx, event.SessionID, event.PaymentIntentID)
	if err != nil {
		log.Error("payment update failed", slog.Any("error", err))
		return false, common.FromStoreError(err, "complete payment")
	}
	if !updated && p.Status == config.PaymentStatusCompleted {
		log.Info("payment already completed")
	}
	return updated, nil
}

// submitJob moves the paid job from draft to pending. A job that already
// left draft is a replay or a job the admin acted on, and stays as is.
func (s *ReconciliationService) submitJob(ctx context.Context, log *slog.Logger, jobID string) (bool, error) {
	res, err := lifecycle.ApplyTransition(config.JobStatusDraft, config.JobStatusPending, s.now())
	if err != nil {
		return false, common.Wrap(http.StatusInternalServerError, err, "invalid payment transition")
	}

	moved, err := s.jobs.TransitionStatus(ctx, jobID, config.JobStatusDraft, res.Status, res.SideEffects)
	if err != nil {
		log.Error("job transition failed", slog.Any("error", err))
		return false, common.FromStoreError(err, "update job")
	}
	if moved {
		return true, nil
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Error("paid job does not exist")
			return false, common.Wrap(http.StatusInternalServerError, ErrJobNotFound, ErrJobNotFound.Error())
		}
		return false, common.FromStoreError(err, "load job")
	}

	log.Info("job already past draft", slog.String("status", job.Status.String()))
	return false, nil
}

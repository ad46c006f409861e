package payment_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/lifecycle"
	"github.com/joshu-sajeev/jobboard/internal/logger"
	"github.com/joshu-sajeev/jobboard/internal/mocks"
	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/joshu-sajeev/jobboard/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	jobID     = "6f1c2d7e-0b5a-4a43-9a8e-1f0a6d2b9c11"
	sessionID = "cs_test_a1"
	intentID  = "pi_test_a1"
	signature = "t=1,v1=abc"
)

var payload = []byte(`{"id":"evt_1"}`)

func completedEvent() *payment.Event {
	return &payment.Event{
		ID:              "evt_1",
		Type:            payment.EventCheckoutSessionCompleted,
		SessionID:       sessionID,
		PaymentIntentID: intentID,
		Metadata:        map[string]string{payment.MetadataJobID: jobID},
	}
}

func pendingPayment() *models.Payment {
	return &models.Payment{ID: "pay_1", JobID: jobID, StripeSessionID: sessionID, Status: config.PaymentStatusPending}
}

func TestReconciliationService_HandleEvent(t *testing.T) {
	tests := []struct {
		name       string
		signature  string
		setupMock  func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock)
		wantErr    error
		wantStatus int
		want       *payment.Outcome
	}{
		{
			name: "completed checkout moves draft job to pending",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				p.On("GetBySessionID", mock.Anything, sessionID).Return(pendingPayment(), nil)
				p.On("MarkCompleted", mock.Anything, sessionID, intentID).Return(true, nil)
				j.On("TransitionStatus", mock.Anything, jobID, config.JobStatusDraft, config.JobStatusPending, lifecycle.SideEffects{}).
					Return(true, nil)
			},
			want: &payment.Outcome{
				EventID:         "evt_1",
				EventType:       payment.EventCheckoutSessionCompleted,
				PaymentUpdated:  true,
				JobTransitioned: true,
			},
		},
		{
			name:       "missing signature is rejected before verification",
			signature:  " ",
			setupMock:  func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {},
			wantErr:    payment.ErrSignatureVerificationFailed,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "bad signature has no side effects",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(nil, errors.New("no signatures found matching the expected signature"))
			},
			wantErr:    payment.ErrSignatureVerificationFailed,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "other event types are acknowledged",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(&payment.Event{ID: "evt_2", Type: "invoice.paid"}, nil)
			},
			want: &payment.Outcome{EventID: "evt_2", EventType: "invoice.paid", Ignored: true},
		},
		{
			name: "missing job_id metadata",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				evt := completedEvent()
				evt.Metadata = nil
				g.On("VerifyEvent", payload, signature).Return(evt, nil)
			},
			wantErr:    payment.ErrMissingCorrelationKey,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown session asks for redelivery",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				p.On("GetBySessionID", mock.Anything, sessionID).Return(nil, fmt.Errorf("get payment: %w", common.ErrNotFound))
			},
			wantErr:    payment.ErrPaymentNotFound,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "payment for another job is not touched",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				other := pendingPayment()
				other.JobID = "someone-else"
				p.On("GetBySessionID", mock.Anything, sessionID).Return(other, nil)
			},
			wantErr:    payment.ErrCorrelationMismatch,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "payment store failure",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				p.On("GetBySessionID", mock.Anything, sessionID).Return(pendingPayment(), nil)
				p.On("MarkCompleted", mock.Anything, sessionID, intentID).Return(false, errors.New("connection reset"))
			},
			wantErr:    common.ErrPersistence,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "store timeout is transient",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				p.On("GetBySessionID", mock.Anything, sessionID).
					Return(nil, fmt.Errorf("get payment: %w", context.DeadlineExceeded))
			},
			wantErr:    context.DeadlineExceeded,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "replay after full success changes nothing",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				done := pendingPayment()
				done.Status = config.PaymentStatusCompleted
				p.On("GetBySessionID", mock.Anything, sessionID).Return(done, nil)
				p.On("MarkCompleted", mock.Anything, sessionID, intentID).Return(false, nil)
				j.On("TransitionStatus", mock.Anything, jobID, config.JobStatusDraft, config.JobStatusPending, mock.Anything).
					Return(false, nil)
				j.On("GetByID", mock.Anything, jobID).Return(&models.Job{ID: jobID, Status: config.JobStatusPending}, nil)
			},
			want: &payment.Outcome{EventID: "evt_1", EventType: payment.EventCheckoutSessionCompleted},
		},
		{
			name: "replay after crash between the two updates completes the job",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				done := pendingPayment()
				done.Status = config.PaymentStatusCompleted
				p.On("GetBySessionID", mock.Anything, sessionID).Return(done, nil)
				p.On("MarkCompleted", mock.Anything, sessionID, intentID).Return(false, nil)
				j.On("TransitionStatus", mock.Anything, jobID, config.JobStatusDraft, config.JobStatusPending, mock.Anything).
					Return(true, nil)
			},
			want: &payment.Outcome{
				EventID:         "evt_1",
				EventType:       payment.EventCheckoutSessionCompleted,
				JobTransitioned: true,
			},
		},
		{
			name: "job already approved by admin is left alone",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				p.On("GetBySessionID", mock.Anything, sessionID).Return(pendingPayment(), nil)
				p.On("MarkCompleted", mock.Anything, sessionID, intentID).Return(true, nil)
				j.On("TransitionStatus", mock.Anything, jobID, config.JobStatusDraft, config.JobStatusPending, mock.Anything).
					Return(false, nil)
				j.On("GetByID", mock.Anything, jobID).Return(&models.Job{ID: jobID, Status: config.JobStatusActive}, nil)
			},
			want: &payment.Outcome{
				EventID:        "evt_1",
				EventType:      payment.EventCheckoutSessionCompleted,
				PaymentUpdated: true,
			},
		},
		{
			name: "paid job missing asks for redelivery",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				p.On("GetBySessionID", mock.Anything, sessionID).Return(pendingPayment(), nil)
				p.On("MarkCompleted", mock.Anything, sessionID, intentID).Return(true, nil)
				j.On("TransitionStatus", mock.Anything, jobID, config.JobStatusDraft, config.JobStatusPending, mock.Anything).
					Return(false, nil)
				j.On("GetByID", mock.Anything, jobID).Return(nil, fmt.Errorf("get job: %w", common.ErrNotFound))
			},
			wantErr:    payment.ErrJobNotFound,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "job store failure",
			setupMock: func(g *mocks.GatewayMock, p *mocks.PaymentRepoMock, j *mocks.JobRepoMock) {
				g.On("VerifyEvent", payload, signature).Return(completedEvent(), nil)
				p.On("GetBySessionID", mock.Anything, sessionID).Return(pendingPayment(), nil)
				p.On("MarkCompleted", mock.Anything, sessionID, intentID).Return(true, nil)
				j.On("TransitionStatus", mock.Anything, jobID, config.JobStatusDraft, config.JobStatusPending, mock.Anything).
					Return(false, errors.New("deadlock detected"))
			},
			wantErr:    common.ErrPersistence,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := new(mocks.GatewayMock)
			payments := new(mocks.PaymentRepoMock)
			jobs := new(mocks.JobRepoMock)
			tt.setupMock(gateway, payments, jobs)

			svc := payment.NewReconciliationService(gateway, payments, jobs, logger.Discard())

			sig := signature
			if tt.signature != "" {
				sig = tt.signature
			}
			out, err := svc.HandleEvent(context.Background(), payload, sig)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var apiErr common.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantStatus, apiErr.Status)
				assert.Nil(t, out)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, out)
			}

			gateway.AssertExpectations(t)
			payments.AssertExpectations(t)
			jobs.AssertExpectations(t)
		})
	}
}

func TestReconciliationService_SignatureFailureTouchesNothing(t *testing.T) {
	gateway := new(mocks.GatewayMock)
	payments := new(mocks.PaymentRepoMock)
	jobs := new(mocks.JobRepoMock)
	gateway.On("VerifyEvent", mock.Anything, mock.Anything).Return(nil, errors.New("bad sig"))

	svc := payment.NewReconciliationService(gateway, payments, jobs, logger.Discard())
	_, err := svc.HandleEvent(context.Background(), payload, "t=1,v1=forged")

	require.Error(t, err)
	payments.AssertNotCalled(t, "GetBySessionID", mock.Anything, mock.Anything)
	payments.AssertNotCalled(t, "MarkCompleted", mock.Anything, mock.Anything, mock.Anything)
	jobs.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

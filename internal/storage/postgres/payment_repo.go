package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/job"
	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/joshu-sajeev/jobboard/internal/payment"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

var (
	_ payment.PaymentRepoInterface = (*PaymentRepository)(nil)
	_ job.PaymentRepoInterface     = (*PaymentRepository)(nil)
)

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, "stripe_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get payment for session %s: %w", sessionID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// MarkCompleted completes the pending payment for a checkout session. It
// reports false when no pending payment matched, which includes a payment
// that was already completed by an earlier delivery.
func (r *PaymentRepository) MarkCompleted(ctx context.Context, sessionID, paymentIntentID string) (bool, error) {
	updates := map[string]any{"status": config.PaymentStatusCompleted}
	if paymentIntentID != "" {
		updates["stripe_payment_intent_id"] = paymentIntentID
	}

	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("stripe_session_id = ? AND status = ?", sessionID, config.PaymentStatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("complete payment: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

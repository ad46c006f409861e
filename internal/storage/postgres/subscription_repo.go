package postgres

import (
	"context"
	"fmt"

	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/joshu-sajeev/jobboard/internal/subscription"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

var _ subscription.SubscriptionRepoInterface = (*SubscriptionRepository)(nil)

// Upsert inserts the subscription or, when the email is already known,
// replaces its preferences and resets confirmation.
func (r *SubscriptionRepository) Upsert(ctx context.Context, s *models.EmailSubscription) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"tags", "job_types", "location_types", "confirmed"}),
	}).Create(s).Error
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

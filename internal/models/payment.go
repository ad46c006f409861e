package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"gorm.io/gorm"
)

// Payment records one checkout session opened for a job posting.
type Payment struct {
	ID                    string               `gorm:"type:varchar(36);primaryKey"`
	JobID                 string               `gorm:"type:varchar(36);not null;index"`
	Status                config.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	StripeSessionID       string               `gorm:"type:varchar(255);not null;uniqueIndex"`
	StripePaymentIntentID *string              `gorm:"type:varchar(255)"`
	Amount                int64                `gorm:"not null"`
	Currency              string               `gorm:"type:varchar(3);not null"`
	CreatedAt             time.Time            `gorm:"autoCreateTime"`
	UpdatedAt             time.Time            `gorm:"autoUpdateTime"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

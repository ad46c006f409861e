package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EmailSubscription struct {
	ID            string                      `gorm:"type:varchar(36);primaryKey"`
	Email         string                      `gorm:"type:varchar(320);not null;uniqueIndex"`
	Tags          datatypes.JSONSlice[string] `gorm:"default:null"`
	JobTypes      datatypes.JSONSlice[string] `gorm:"default:null"`
	LocationTypes datatypes.JSONSlice[string] `gorm:"default:null"`
	Confirmed     bool                        `gorm:"not null;default:false"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime"`
}

func (s *EmailSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

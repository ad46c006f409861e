package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/joshu-sajeev/jobboard/internal/config"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Job struct {
	ID             string                      `gorm:"type:varchar(36);primaryKey"`
	CompanyID      string                      `gorm:"type:varchar(36);not null;index"`
	Company        *Company                    `gorm:"foreignKey:CompanyID"`
	Title          string                      `gorm:"type:varchar(255);not null"`
	Slug           string                      `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description    string                      `gorm:"type:text;not null"`
	JobType        string                      `gorm:"type:varchar(32);not null"`
	LocationType   string                      `gorm:"type:varchar(32);not null"`
	Location       *string                     `gorm:"type:varchar(255)"`
	SalaryMin      *int                        `gorm:"default:null"`
	SalaryMax      *int                        `gorm:"default:null"`
	SalaryCurrency string                      `gorm:"type:varchar(3);not null;default:'CHF'"`
	ApplyURL       string                      `gorm:"type:text;not null"`
	Tags           datatypes.JSONSlice[string] `gorm:"default:null"`
	Status         config.JobStatus            `gorm:"type:varchar(20);not null;default:'draft';index"`
	Featured       bool                        `gorm:"not null;default:false"`
	PublishedAt    *time.Time
	ExpiresAt      *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

package dto

import (
	"time"

	"github.com/joshu-sajeev/jobboard/internal/config"
)

type StatusUpdateDTO struct {
	Status config.JobStatus `json:"status" validate:"required"`
}

type AdminJobListQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=draft pending active expired rejected"`
}

type AdminJobDTO struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	CompanyID   string           `json:"company_id"`
	CompanyName string           `json:"company_name,omitempty"`
	Status      config.JobStatus `json:"status"`
	Featured    bool             `json:"featured"`
	PublishedAt *time.Time       `json:"published_at,omitempty"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type AdminStatsDTO struct {
	Pending   int64 `json:"pending"`
	Active    int64 `json:"active"`
	Total     int64 `json:"total"`
	Companies int64 `json:"companies"`
}

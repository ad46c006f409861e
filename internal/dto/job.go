package dto

import (
	"strings"
	"time"

	"github.com/joshu-sajeev/jobboard/internal/sanitize"
)

type JobCreateDTO struct {
	CompanyID    string  `json:"company_id" validate:"required,uuid"`
	Title        string  `json:"title" validate:"required,min=3,max=200"`
	Description  string  `json:"description" validate:"required,min=20,max=20000"`
	JobType      string  `json:"job_type" validate:"required,oneof=full-time part-time contract internship"`
	LocationType string  `json:"location_type" validate:"required,oneof=remote onsite hybrid"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200"`
	SalaryMin    *int    `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax    *int    `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	ApplyURL     string  `json:"apply_url" validate:"required,url,max=2000"`
	// Tags is a comma separated list, e.g. "go, postgres, remote".
	Tags string `json:"tags,omitempty" validate:"max=500"`
}

// JobListQuery carries the public listing filters.
type JobListQuery struct {
	JobType      string `form:"job_type" validate:"omitempty,oneof=full-time part-time contract internship"`
	LocationType string `form:"location_type" validate:"omitempty,oneof=remote onsite hybrid"`
	Tag          string `form:"tag" validate:"omitempty,max=50"`
	Page         int    `form:"page" validate:"omitempty,gte=1,lte=10000"`
}

type JobCreatedDTO struct {
	JobID       string `json:"job_id"`
	Slug        string `json:"slug"`
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

type CompanySummaryDTO struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	LogoURL *string `json:"logo_url,omitempty"`
}

type JobResponseDTO struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Slug           string                `json:"slug"`
	Company        *CompanySummaryDTO    `json:"company,omitempty"`
	JobType        string                `json:"job_type"`
	LocationType   string                `json:"location_type"`
	Location       *string               `json:"location,omitempty"`
	SalaryMin      *int                  `json:"salary_min,omitempty"`
	SalaryMax      *int                  `json:"salary_max,omitempty"`
	SalaryCurrency string                `json:"salary_currency"`
	ApplyURL       string                `json:"apply_url"`
	Tags           []string              `json:"tags"`
	Featured       bool                  `json:"featured"`
	Description    *sanitize.Description `json:"description,omitempty"`
	PublishedAt    *time.Time            `json:"published_at,omitempty"`
	ExpiresAt      *time.Time            `json:"expires_at,omitempty"`
}

type JobPageDTO struct {
	Jobs       []JobResponseDTO `json:"jobs"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
}

type CompanyResponseDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	LogoURL     *string          `json:"logo_url,omitempty"`
	Website     *string          `json:"website,omitempty"`
	Description *string          `json:"description,omitempty"`
	Location    *string          `json:"location,omitempty"`
	Jobs        []JobResponseDTO `json:"jobs,omitempty"`
}

type StatsDTO struct {
	ActiveJobs int64 `json:"active_jobs"`
	Companies  int64 `json:"companies"`
}

// Normalize trims free-text fields before validation.
func (d *JobCreateDTO) Normalize() {
	d.CompanyID = strings.TrimSpace(d.CompanyID)
	d.Title = strings.TrimSpace(d.Title)
	d.ApplyURL = strings.TrimSpace(d.ApplyURL)
	if d.Location != nil {
		loc := strings.TrimSpace(*d.Location)
		if loc == "" {
			d.Location = nil
		} else {
			d.Location = &loc
		}
	}
}

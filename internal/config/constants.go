package config

type JobStatus string

type PaymentStatus string

const (
	JobStatusDraft    JobStatus = "draft"
	JobStatusPending  JobStatus = "pending"
	JobStatusActive   JobStatus = "active"
	JobStatusExpired  JobStatus = "expired"
	JobStatusRejected JobStatus = "rejected"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

func (s JobStatus) String() string {
	return string(s)
}

var (
	AllowedJobTypes      = []string{"full-time", "part-time", "contract", "internship"}
	AllowedLocationTypes = []string{"remote", "onsite", "hybrid"}
	DefaultCurrency      = "CHF"
	JobsPerPage          = 10
	LatestJobsLimit      = 6
)

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/joshu-sajeev/jobboard/internal/config"
	"github.com/joshu-sajeev/jobboard/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Disable logs during tests
	})
	require.NoError(t, err)

	// Every pooled connection to :memory: is a separate database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Company{}, &models.Job{}, &models.Payment{}, &models.EmailSubscription{})
	require.NoError(t, err)

	return db
}

func seedCompany(t *testing.T, db *gorm.DB, name, slug string) *models.Company {
	t.Helper()

	c := &models.Company{Name: name, Slug: slug}
	require.NoError(t, NewCompanyRepository(db).Create(context.Background(), c))
	return c
}

type jobOpt func(*models.Job)

func withStatus(s config.JobStatus) jobOpt {
	return func(j *models.Job) { j.Status = s }
}

func publishedAt(at time.Time) jobOpt {
	return func(j *models.Job) {
		p := at.UTC()
		e := p.Add(30 * 24 * time.Hour)
		j.PublishedAt, j.ExpiresAt = &p, &e
	}
}

func expiresAt(at time.Time) jobOpt {
	return func(j *models.Job) {
		e := at.UTC()
		j.ExpiresAt = &e
	}
}

func seedJob(t *testing.T, db *gorm.DB, companyID, slug string, opts ...jobOpt) *models.Job {
	t.Helper()

	j := &models.Job{
		CompanyID:      companyID,
		Title:          slug,
		Slug:           slug,
		Description:    "Build things with us every day.",
		JobType:        "full-time",
		LocationType:   "remote",
		SalaryCurrency: config.DefaultCurrency,
		ApplyURL:       "https://example.com/apply",
		Status:         config.JobStatusDraft,
	}
	for _, o := range opts {
		o(j)
	}
	require.NoError(t, NewJobRepository(db).Create(context.Background(), j))
	return j
}

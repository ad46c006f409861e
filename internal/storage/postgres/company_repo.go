package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/admin"
	"github.com/joshu-sajeev/jobboard/internal/job"
	"github.com/joshu-sajeev/jobboard/internal/models"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

var (
	_ job.CompanyRepoInterface   = (*CompanyRepository)(nil)
	_ admin.CompanyRepoInterface = (*CompanyRepository)(nil)
)

func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *CompanyRepository) GetBySlug(ctx context.Context, slug string) (*models.Company, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.WithContext(ctx).Order("name").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Company{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return n, nil
}

func (r *CompanyRepository) first(ctx context.Context, query string, arg any) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).Where(query, arg).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get company: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

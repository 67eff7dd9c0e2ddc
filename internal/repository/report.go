package repository

import (
	"context"

	"chika/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportRepository stores moderation reports.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListByTarget(ctx context.Context, targetID string) ([]*models.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) ListByTarget(ctx context.Context, targetID string) ([]*models.Report, error) {
	var reports []*models.Report
	err := r.db.WithContext(ctx).Where("target_id = ?", targetID).Order("created_at ASC").Find(&reports).Error
	return reports, err
}

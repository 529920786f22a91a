package db

import (
	"context"
	"errors"

	"loandesk/models"

	"gorm.io/gorm"
)

var ErrReportExists = errors.New("order already has a report")

// CreateReport attaches the one allowed report to an order. The order must
// exist; duplicates are rejected up front instead of surfacing as a
// constraint violation.
func (r *Repo) CreateReport(ctx context.Context, rep *models.Report) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, "id = ?", rep.OrderID).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.Report{}).
			Where("order_id = ?", rep.OrderID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrReportExists
		}
		return tx.Create(rep).Error
	})
}

func (r *Repo) FindReportByOrder(ctx context.Context, orderID string) (*models.Report, error) {
	var rep models.Report
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&rep).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *Repo) ListUserReports(ctx context.Context, userID string) ([]models.Report, error) {
	var reps []models.Report
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reps).Error
	return reps, err
}

func (r *Repo) ListReports(ctx context.Context, activeOnly bool) ([]models.Report, error) {
	q := r.DB.WithContext(ctx).Order("created_at DESC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var reps []models.Report
	err := q.Find(&reps).Error
	return reps, err
}

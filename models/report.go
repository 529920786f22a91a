package models

import "time"

const ReportTable = "ld_reports"

// Report is a free-text incident note attached to an order after the loan.
// Purely descriptive; scheduling never consults it.
type Report struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string    `gorm:"type:uuid;uniqueIndex;not null" json:"orderId"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"userId"`
	Details   string    `gorm:"type:text;not null" json:"details"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Report) TableName() string { return ReportTable }

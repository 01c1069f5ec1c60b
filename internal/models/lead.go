package models

import (
	"time"
)

// Lead represents a captured name/phone submission
type Lead struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone       string    `gorm:"type:varchar(32);not null;index" json:"phone"` // +digits
	CatalogCode *string   `gorm:"type:varchar(255)" json:"catalog_code,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Lead) TableName() string {
	return "leads"
}

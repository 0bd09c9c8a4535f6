package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a single inventory item belonging to a category.
// CreatedAt and UpdatedAt follow the GORM convention: both are stamped
// when the row is first created, and UpdatedAt alone is refreshed on
// every subsequent save, whether or not any field actually changed.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	CategoryID  uint            `gorm:"not null;default:1;index" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Product) TableName() string {
	return "products"
}

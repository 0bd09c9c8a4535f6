package models

// Category groups products for display and selection.
// It owns the inverse side of the product relationship.
type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

func (c *Category) TableName() string {
	return "categories"
}

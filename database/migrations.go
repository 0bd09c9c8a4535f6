package database

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Schema history is an ordered, append-only sequence of forward and
// backward transforms. Steps are applied and reverted strictly in
// sequence; each one declares its own snapshot of the tables it touches
// so that later model changes never leak into an older step.

// Seed timestamps are fixed so that applying, reverting and re-applying
// a step is deterministic. The category step restamps the seed products
// on apply and its revert restores the initial stamps.
var (
	initialSeedStamp  = time.Date(2025, 7, 19, 2, 39, 19, 0, time.UTC)
	categorySeedStamp = time.Date(2025, 7, 19, 6, 41, 14, 0, time.UTC)
)

// productV1 is the products table as created by the first step, before
// categories existed.
type productV1 struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null"`
	Description string          `gorm:"size:500;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (productV1) TableName() string { return "products" }

// productV2 adds the category reference.
type productV2 struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null"`
	Description string          `gorm:"size:500;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null"`
	CategoryID  uint            `gorm:"not null;default:1;index"`
	Category    categoryV2      `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (productV2) TableName() string { return "products" }

type categoryV2 struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`
}

func (categoryV2) TableName() string { return "categories" }

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202507190239_initial_create",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Migrator().CreateTable(&productV1{}); err != nil {
					return err
				}
				seed := []productV1{
					{
						ID:          1,
						Name:        "Sample product 1",
						Description: "This is the description of sample product 1",
						Price:       decimal.NewFromInt(1000),
						Quantity:    10,
						CreatedAt:   initialSeedStamp,
						UpdatedAt:   initialSeedStamp,
					},
					{
						ID:          2,
						Name:        "Sample product 2",
						Description: "This is the description of sample product 2",
						Price:       decimal.NewFromInt(2000),
						Quantity:    5,
						CreatedAt:   initialSeedStamp,
						UpdatedAt:   initialSeedStamp,
					},
				}
				return tx.Create(&seed).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&productV1{})
			},
		},
		{
			ID: "202507190641_add_category_table",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Migrator().AddColumn(&productV2{}, "CategoryID"); err != nil {
					return err
				}
				if err := tx.Migrator().CreateTable(&categoryV2{}); err != nil {
					return err
				}
				seed := []categoryV2{
					{ID: 1, Name: "Electronics"},
					{ID: 2, Name: "Books"},
					{ID: 3, Name: "Daily goods"},
				}
				if err := tx.Create(&seed).Error; err != nil {
					return err
				}
				if err := tx.Table("products").
					Where("id IN ?", []uint{1, 2}).
					UpdateColumns(map[string]interface{}{
						"category_id": 1,
						"created_at":  categorySeedStamp,
						"updated_at":  categorySeedStamp,
					}).Error; err != nil {
					return err
				}
				// The constraint goes in before the index: on SQLite the
				// foreign key is added by recreating the products table,
				// which would discard any index created earlier.
				if err := tx.Migrator().CreateConstraint(&productV2{}, "Category"); err != nil {
					return err
				}
				return tx.Migrator().CreateIndex(&productV2{}, "CategoryID")
			},
			Rollback: func(tx *gorm.DB) error {
				// Mirror image of apply: the index must go before the
				// constraint, whose removal recreates the table on SQLite.
				if err := tx.Migrator().DropIndex(&productV2{}, "CategoryID"); err != nil {
					return err
				}
				if err := tx.Migrator().DropConstraint(&productV2{}, "Category"); err != nil {
					return err
				}
				if err := tx.Migrator().DropColumn(&productV2{}, "CategoryID"); err != nil {
					return err
				}
				if err := tx.Migrator().DropTable(&categoryV2{}); err != nil {
					return err
				}
				return tx.Table("products").
					Where("id IN ?", []uint{1, 2}).
					UpdateColumns(map[string]interface{}{
						"created_at": initialSeedStamp,
						"updated_at": initialSeedStamp,
					}).Error
			},
		},
	}
}

// Migrate applies every pending step in order, creating the schema from
// scratch on an empty store.
func Migrate(db *gorm.DB) error {
	return gormigrate.New(db, gormigrate.DefaultOptions, migrations()).Migrate()
}

// RollbackLast reverts the most recently applied step.
func RollbackLast(db *gorm.DB) error {
	return gormigrate.New(db, gormigrate.DefaultOptions, migrations()).RollbackLast()
}

package models

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

// GetAllCategories returns every category ordered by id.
func (r *CategoriesRepository) GetAllCategories() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, translateStoreError(err, ErrCategoryNotFound)
	}
	return categories, nil
}

func (r *CategoriesRepository) CreateCategory(category *Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := r.db.Create(category).Error; err != nil {
		return translateStoreError(err, ErrCategoryNotFound)
	}
	return nil
}

// DeleteCategory removes a category. The schema restricts deletion
// while any product still references the category, so the attempt
// comes back as a constraint violation and nothing changes.
func (r *CategoriesRepository) DeleteCategory(id uint) error {
	result := r.db.Delete(&Category{}, id)
	if result.Error != nil {
		return translateStoreError(result.Error, ErrCategoryNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

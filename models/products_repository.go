package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"
)

// ProductsRepository mediates all product reads and writes against the
// store. It keeps a caller-visible cache of every entity it has handed
// out, keyed by id; Refresh re-reads the cached entities from the store
// and discards any that have vanished. Listing never reloads implicitly,
// so the refresh policy is the caller's deliberate choice.
type ProductsRepository struct {
	db *gorm.DB

	mu      sync.RWMutex
	tracked map[uint]Product
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db:      db,
		tracked: make(map[uint]Product),
	}
}

// GetAllProducts returns every product joined with its category,
// ordered by id. The result set replaces the tracked cache.
func (r *ProductsRepository) GetAllProducts() ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Category").
		Order("id").
		Find(&products).Error; err != nil {
		return nil, translateStoreError(err, ErrProductNotFound)
	}

	r.mu.Lock()
	r.tracked = make(map[uint]Product, len(products))
	for _, p := range products {
		r.tracked[p.ID] = p
	}
	r.mu.Unlock()

	return products, nil
}

// GetProduct loads a single product with its category and tracks it.
func (r *ProductsRepository) GetProduct(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Category").
		First(&product, id).Error; err != nil {
		return nil, translateStoreError(err, ErrProductNotFound)
	}
	r.track(product)
	return &product, nil
}

// CreateProduct persists a new product. The store assigns the id and
// stamps both timestamps at save time; the persisted entity is written
// back into draft, category included.
func (r *ProductsRepository) CreateProduct(draft *Product) error {
	if strings.TrimSpace(draft.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := r.db.Omit("Category").Create(draft).Error; err != nil {
		return translateStoreError(err, ErrProductNotFound)
	}

	// Reload so the column default for category_id and the joined
	// category are reflected in the returned entity.
	if err := r.db.Preload("Category").First(draft, draft.ID).Error; err != nil {
		return translateStoreError(err, ErrProductNotFound)
	}

	r.track(*draft)
	return nil
}

// UpdateProduct saves changes to an existing product. Only updated_at
// is restamped; created_at keeps its original value. A save with no
// field changes still bumps updated_at.
func (r *ProductsRepository) UpdateProduct(product *Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	var existing Product
	if err := r.db.First(&existing, product.ID).Error; err != nil {
		return translateStoreError(err, ErrProductNotFound)
	}

	product.CreatedAt = existing.CreatedAt
	if err := r.db.Omit("Category").Save(product).Error; err != nil {
		return translateStoreError(err, ErrProductNotFound)
	}

	if err := r.db.Preload("Category").First(product, product.ID).Error; err != nil {
		return translateStoreError(err, ErrProductNotFound)
	}

	r.track(*product)
	return nil
}

// DeleteProduct removes the row permanently.
func (r *ProductsRepository) DeleteProduct(id uint) error {
	result := r.db.Delete(&Product{}, id)
	if result.Error != nil {
		return translateStoreError(result.Error, ErrProductNotFound)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	r.mu.Lock()
	delete(r.tracked, id)
	r.mu.Unlock()
	return nil
}

// Refresh re-reads every tracked entity from the store, dropping those
// that no longer exist. Pending in-memory state held by callers becomes
// stale the moment this returns.
func (r *ProductsRepository) Refresh() error {
	r.mu.RLock()
	ids := make([]uint, 0, len(r.tracked))
	for id := range r.tracked {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		var product Product
		err := r.db.Preload("Category").First(&product, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.mu.Lock()
			delete(r.tracked, id)
			r.mu.Unlock()
			continue
		}
		if err != nil {
			return translateStoreError(err, ErrProductNotFound)
		}
		r.track(product)
	}
	return nil
}

// Tracked returns the cached copy of an entity, if the repository has
// seen it since the last refresh or invalidation.
func (r *ProductsRepository) Tracked(id uint) (Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.tracked[id]
	return p, ok
}

// Invalidate empties the tracked cache. Callers use it after a
// database reset, when every previously loaded entity is stale.
func (r *ProductsRepository) Invalidate() {
	r.mu.Lock()
	r.tracked = make(map[uint]Product)
	r.mu.Unlock()
}

func (r *ProductsRepository) track(p Product) {
	r.mu.Lock()
	r.tracked[p.ID] = p
	r.mu.Unlock()
}

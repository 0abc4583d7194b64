package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"haircare-match-service/internal/domain"
)

// ProductRepository implements domain.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new PostgreSQL product repository.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID retrieves a single product by its internal ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting product by id: %w", err)
	}

	return model.ToDomain(), nil
}

// ListAll returns the full product catalog.
func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	var models []ProductModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	products := make([]*domain.Product, len(models))
	for i, m := range models {
		products[i] = m.ToDomain()
	}

	return products, nil
}

// Upsert creates or updates a single product.
func (r *ProductRepository) Upsert(ctx context.Context, product *domain.Product) error {
	model := ProductFromDomain(product)
	model.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "brand", "category", "ingredients", "price", "image_url", "updated_at",
		}),
	}).Create(model).Error

	if err != nil {
		return fmt.Errorf("upserting product: %w", err)
	}

	// Update the domain object with database-generated fields
	product.ID = model.ID
	product.CreatedAt = model.CreatedAt
	product.UpdatedAt = model.UpdatedAt

	return nil
}

// Count returns the total number of products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}

	return count, nil
}

// RoutineRepository implements domain.RoutineRepository using PostgreSQL.
type RoutineRepository struct {
	db *gorm.DB
}

// NewRoutineRepository creates a new PostgreSQL routine repository.
func NewRoutineRepository(db *gorm.DB) *RoutineRepository {
	return &RoutineRepository{db: db}
}

// GetByID retrieves a single routine with its steps ordered by position.
func (r *RoutineRepository) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	var model RoutineModel
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("routine_steps.position ASC")
		}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}

		return nil, fmt.Errorf("getting routine by id: %w", err)
	}

	return model.ToDomain(), nil
}

// ListPublic returns all publicly shared routines with their steps.
func (r *RoutineRepository) ListPublic(ctx context.Context) ([]*domain.Routine, error) {
	var models []RoutineModel
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("routine_steps.position ASC")
		}).
		Where("public = ?", true).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing public routines: %w", err)
	}

	routines := make([]*domain.Routine, len(models))
	for i, m := range models {
		routines[i] = m.ToDomain()
	}

	return routines, nil
}

// Upsert creates or updates a routine and replaces its steps.
func (r *RoutineRepository) Upsert(ctx context.Context, routine *domain.Routine) error {
	model := RoutineFromDomain(routine)
	model.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := model.Steps
		model.Steps = nil

		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "owner_id", "public", "updated_at",
			}),
		}).Create(model).Error
		if err != nil {
			return err
		}

		// Steps are replaced wholesale; positions may have shifted.
		if err := tx.Where("routine_id = ?", model.ID).Delete(&RoutineStepModel{}).Error; err != nil {
			return err
		}
		for i := range steps {
			steps[i].RoutineID = model.ID
		}
		if len(steps) > 0 {
			if err := tx.Create(&steps).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("upserting routine: %w", err)
	}

	routine.ID = model.ID
	routine.CreatedAt = model.CreatedAt
	routine.UpdatedAt = model.UpdatedAt

	return nil
}

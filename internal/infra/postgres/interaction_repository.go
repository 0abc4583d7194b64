package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"haircare-match-service/internal/domain"
)

// InteractionRepository implements domain.InteractionRepository using
// PostgreSQL. Interactions are an append-only event log.
type InteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new PostgreSQL interaction repository.
func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// Record appends one interaction event.
func (r *InteractionRepository) Record(ctx context.Context, event *domain.InteractionEvent) error {
	model := InteractionFromDomain(event)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("recording interaction: %w", err)
	}

	event.ID = model.ID
	event.CreatedAt = model.CreatedAt

	return nil
}

// ListByEntity returns every interaction recorded against one entity,
// oldest first.
func (r *InteractionRepository) ListByEntity(ctx context.Context, kind domain.EntityKind, entityID string) ([]domain.InteractionEvent, error) {
	var models []InteractionModel
	err := r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ?", string(kind), entityID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing interactions: %w", err)
	}

	events := make([]domain.InteractionEvent, len(models))
	for i := range models {
		events[i] = *models[i].ToDomain()
	}

	return events, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"haircare-match-service/internal/domain"
)

// scoreWriteBatchSize bounds a single INSERT during a generation write.
const scoreWriteBatchSize = 500

// ScoreRepository implements domain.MatchScoreRepository using PostgreSQL.
//
// A user's score set is replaced, never patched: each full recompute writes
// a fresh generation and then repoints the (user, kind) generation row in
// one transaction. Readers joining through score_generations only ever see
// a complete set, so a crash mid-write leaves the previous generation
// intact and serving.
type ScoreRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewScoreRepository creates a new PostgreSQL score repository.
func NewScoreRepository(db *gorm.DB, logger *zap.Logger) *ScoreRepository {
	return &ScoreRepository{db: db, logger: logger}
}

// ReplaceForUser writes a full score set as a new generation and swaps the
// generation pointer to it. Older generations are cleaned up best-effort.
func (r *ScoreRepository) ReplaceForUser(ctx context.Context, userID string, kind domain.EntityKind, scores []*domain.MatchScore) error {
	generation := time.Now().UnixNano()

	models := make([]*MatchScoreModel, 0, len(scores))
	for _, s := range scores {
		model, err := MatchScoreFromDomain(userID, generation, s)
		if err != nil {
			return fmt.Errorf("encoding score for entity %s: %w", s.EntityID, err)
		}
		models = append(models, model)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(models) > 0 {
			if err := tx.CreateInBatches(models, scoreWriteBatchSize).Error; err != nil {
				return err
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entity_kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"generation", "updated_at"}),
		}).Create(&ScoreGenerationModel{
			UserID:     userID,
			EntityKind: string(kind),
			Generation: generation,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("replacing scores for user %s: %w", userID, err)
	}

	// Stale generations are invisible already; failure here only leaks rows.
	cleanup := r.db.WithContext(ctx).
		Where("user_id = ? AND entity_kind = ? AND generation < ?", userID, string(kind), generation).
		Delete(&MatchScoreModel{})
	if cleanup.Error != nil {
		r.logger.Warn("stale score generation cleanup failed",
			zap.String("user_id", userID),
			zap.String("entity_kind", string(kind)),
			zap.Error(cleanup.Error),
		)
	}

	return nil
}

// UpsertOne writes or refreshes a single entity's score inside the user's
// current generation. A user with no generation yet gets one seeded so the
// row is visible to readers.
func (r *ScoreRepository) UpsertOne(ctx context.Context, userID string, score *domain.MatchScore) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		generation, err := r.currentGeneration(tx, userID, score.EntityKind)
		if err != nil {
			return err
		}
		if generation == 0 {
			generation = time.Now().UnixNano()
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "entity_kind"}},
				DoNothing: true,
			}).Create(&ScoreGenerationModel{
				UserID:     userID,
				EntityKind: string(score.EntityKind),
				Generation: generation,
			}).Error
			if err != nil {
				return fmt.Errorf("seeding score generation: %w", err)
			}
		}

		model, err := MatchScoreFromDomain(userID, generation, score)
		if err != nil {
			return fmt.Errorf("encoding score for entity %s: %w", score.EntityID, err)
		}

		// Delete-then-insert keeps the table free of partial-update columns.
		err = tx.Where(
			"user_id = ? AND entity_kind = ? AND entity_id = ? AND generation = ?",
			userID, string(score.EntityKind), score.EntityID, generation,
		).Delete(&MatchScoreModel{}).Error
		if err != nil {
			return fmt.Errorf("clearing stale score row: %w", err)
		}

		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("upserting score: %w", err)
		}

		return nil
	})
}

// ListForUser returns the user's current generation of scores for one
// entity kind, best match first.
func (r *ScoreRepository) ListForUser(ctx context.Context, userID string, kind domain.EntityKind) ([]*domain.MatchScore, error) {
	generation, err := r.currentGeneration(r.db.WithContext(ctx), userID, kind)
	if err != nil {
		return nil, err
	}
	if generation == 0 {
		return nil, nil
	}

	var models []MatchScoreModel
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND entity_kind = ? AND generation = ?", userID, string(kind), generation).
		Order("total_score DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing scores for user %s: %w", userID, err)
	}

	scores := make([]*domain.MatchScore, 0, len(models))
	for i := range models {
		score, err := models[i].ToDomain()
		if err != nil {
			r.logger.Warn("skipping undecodable score row",
				zap.String("user_id", userID),
				zap.String("entity_id", models[i].EntityID),
				zap.Error(err),
			)
			continue
		}
		scores = append(scores, score)
	}

	return scores, nil
}

// ListScoredUsers returns the distinct users holding a published score set.
func (r *ScoreRepository) ListScoredUsers(ctx context.Context) ([]string, error) {
	var users []string
	err := r.db.WithContext(ctx).
		Model(&ScoreGenerationModel{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &users).Error
	if err != nil {
		return nil, fmt.Errorf("listing scored users: %w", err)
	}

	return users, nil
}

func (r *ScoreRepository) currentGeneration(db *gorm.DB, userID string, kind domain.EntityKind) (int64, error) {
	var pointer ScoreGenerationModel
	err := db.
		Where("user_id = ? AND entity_kind = ?", userID, string(kind)).
		First(&pointer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, fmt.Errorf("reading score generation: %w", err)
	}

	return pointer.Generation, nil
}

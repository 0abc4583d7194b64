package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createMatchScoreTables creates the versioned match_scores table and the
// score_generations pointer table readers join through.
func createMatchScoreTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "003_create_match_scores",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS match_scores (
					id BIGSERIAL PRIMARY KEY,
					user_id VARCHAR(100) NOT NULL,
					entity_kind VARCHAR(20) NOT NULL,
					entity_id VARCHAR(100) NOT NULL,
					generation BIGINT NOT NULL,

					total_score DECIMAL(6,5) NOT NULL,
					data_quality VARCHAR(30) DEFAULT 'ok',

					breakdown JSONB,
					match_reasons JSONB,
					interactions_by_tier JSONB,

					display_name VARCHAR(300),
					display_brand VARCHAR(150),
					display_category VARCHAR(30),

					scored_at TIMESTAMP NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS score_generations (
					user_id VARCHAR(100) NOT NULL,
					entity_kind VARCHAR(20) NOT NULL,
					generation BIGINT NOT NULL,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					PRIMARY KEY (user_id, entity_kind)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_scores_user_kind_gen ON match_scores(user_id, entity_kind, generation);",
				"CREATE INDEX IF NOT EXISTS idx_scores_total ON match_scores(total_score DESC);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DROP TABLE IF EXISTS score_generations;
				DROP TABLE IF EXISTS match_scores;
			`).Error
		},
	}
}

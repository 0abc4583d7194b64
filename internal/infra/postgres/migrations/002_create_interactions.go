package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createInteractionsTable creates the append-only interactions event log.
func createInteractionsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_interactions",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS interactions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id VARCHAR(100) NOT NULL,
					profile_code VARCHAR(20),
					entity_kind VARCHAR(20) NOT NULL,
					entity_id VARCHAR(100) NOT NULL,
					type VARCHAR(20) NOT NULL,

					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_interactions_entity ON interactions(entity_kind, entity_id);",
				"CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id);",
				"CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions(created_at);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS interactions;").Error
		},
	}
}

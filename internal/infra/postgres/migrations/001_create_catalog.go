package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createCatalogTables creates the products, routines and routine_steps
// tables with their indexes.
func createCatalogTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_catalog",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS products (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(300) NOT NULL,
					brand VARCHAR(150),
					category VARCHAR(30) NOT NULL,
					ingredients TEXT[],
					price DECIMAL(10,2) DEFAULT 0,
					image_url VARCHAR(500),

					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS routines (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(200) NOT NULL,
					owner_id VARCHAR(100) NOT NULL,
					public BOOLEAN DEFAULT FALSE,

					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
				);
			`).Error
			if err != nil {
				return err
			}

			err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS routine_steps (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					routine_id UUID NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
					position INTEGER NOT NULL,
					category VARCHAR(30) NOT NULL,
					product_id UUID,
					frequency_interval INTEGER DEFAULT 1,
					frequency_unit VARCHAR(10) DEFAULT 'week',
					note VARCHAR(500)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);",
				"CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand);",
				"CREATE INDEX IF NOT EXISTS idx_routines_owner ON routines(owner_id);",
				"CREATE INDEX IF NOT EXISTS idx_routines_public ON routines(public);",
				"CREATE INDEX IF NOT EXISTS idx_routine_steps_routine ON routine_steps(routine_id);",
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
				DROP TABLE IF EXISTS routine_steps;
				DROP TABLE IF EXISTS routines;
				DROP TABLE IF EXISTS products;
			`).Error
		},
	}
}

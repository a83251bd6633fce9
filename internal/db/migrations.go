package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password TEXT NOT NULL,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		roles JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_users_roles ON users USING GIN (roles);`,
	`CREATE TABLE IF NOT EXISTS zones (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		color VARCHAR(7) NOT NULL,
		coordinates JSONB NOT NULL,
		technician_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_zones_technician_id ON zones (technician_id);`,
	`CREATE TABLE IF NOT EXISTS intervention_types (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		duration BIGINT NOT NULL,
		starting_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS planning_models (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS model_interventions (
		id BIGSERIAL PRIMARY KEY,
		planning_model_id BIGINT NOT NULL REFERENCES planning_models(id) ON DELETE CASCADE,
		intervention_type_id BIGINT NOT NULL REFERENCES intervention_types(id) ON DELETE CASCADE,
		intervention_time VARCHAR(8) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_model_interventions_planning_model_id ON model_interventions (planning_model_id);`,
	`CREATE TABLE IF NOT EXISTS interventions (
		id BIGSERIAL PRIMARY KEY,
		intervention_type_id BIGINT NOT NULL REFERENCES intervention_types(id),
		technician_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		address TEXT NOT NULL DEFAULT '',
		client_name VARCHAR(255) NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL DEFAULT 0,
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_technician_id ON interventions (technician_id);`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_start_at ON interventions (start_at);`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_intervention_type_id ON interventions (intervention_type_id);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_users_updated_at') THEN
			CREATE TRIGGER trg_users_updated_at
				BEFORE UPDATE ON users
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_zones_updated_at') THEN
			CREATE TRIGGER trg_zones_updated_at
				BEFORE UPDATE ON zones
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_intervention_types_updated_at') THEN
			CREATE TRIGGER trg_intervention_types_updated_at
				BEFORE UPDATE ON intervention_types
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_interventions_updated_at') THEN
			CREATE TRIGGER trg_interventions_updated_at
				BEFORE UPDATE ON interventions
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

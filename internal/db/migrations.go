package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('FOR_DEPLOYMENT', 'ON_GROUND', 'UNDER_MAINTENANCE', 'UNDER_SERVICING');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_speed') THEN
			CREATE TYPE vehicle_speed AS ENUM ('LOW', 'HIGH');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_type') THEN
			CREATE TYPE vehicle_type AS ENUM ('L0', 'L1', 'L2', 'L3', 'L5');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'onboarding_status') THEN
			CREATE TYPE onboarding_status AS ENUM ('REGISTERED', 'UNDER_APPROVAL', 'APPROVED', 'REJECTED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'client_status') THEN
			CREATE TYPE client_status AS ENUM ('ACTIVE', 'INACTIVE', 'ON_HOLD');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'roster_status') THEN
			CREATE TYPE roster_status AS ENUM ('IN_ACTIVE', 'ACTIVE', 'ATTRITION', 'SERVICE');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'roster_type') THEN
			CREATE TYPE roster_type AS ENUM ('RENTAL', 'LOGISTICS_FIXED', 'LOGISTICS_TRIP', 'LOGISTICS_DELIVERY');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'trip_status') THEN
			CREATE TYPE trip_status AS ENUM ('RIDE_STARTED', 'CHECK_IN', 'CHECK_OUT', 'RIDE_COMPLETED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'service_status') THEN
			CREATE TYPE service_status AS ENUM ('OPEN', 'IN_PROGRESS', 'ON_HOLD', 'COMPLETED');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'service_issue_type') THEN
			CREATE TYPE service_issue_type AS ENUM ('OTHER_ISSUE', 'ELECTRICAL', 'MECHANICAL');
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'service_priority') THEN
			CREATE TYPE service_priority AS ENUM ('MEDIUM', 'HIGH');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS stations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(50) NOT NULL,
		code VARCHAR(7) NOT NULL UNIQUE,
		city VARCHAR(50) NOT NULL,
		state VARCHAR(50) NOT NULL,
		address VARCHAR(100) NOT NULL,
		area VARCHAR(50),
		pincode INTEGER NOT NULL,
		lat DOUBLE PRECISION,
		long DOUBLE PRECISION,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(50) NOT NULL,
		gst VARCHAR(15),
		address VARCHAR(200),
		city VARCHAR(50),
		state VARCHAR(50),
		contact_person VARCHAR(50),
		contact_number BIGINT,
		status client_status NOT NULL DEFAULT 'ACTIVE',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS client_stores (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id),
		name VARCHAR(50) NOT NULL,
		lat DOUBLE PRECISION,
		long DOUBLE PRECISION,
		address VARCHAR(100),
		city VARCHAR(50),
		locality VARCHAR(50),
		state VARCHAR(50),
		contact_number BIGINT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_client_stores_client_id ON client_stores (client_id);`,
	`CREATE TABLE IF NOT EXISTS pricing_configurations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(50) NOT NULL,
		description VARCHAR(250),
		client_id UUID NOT NULL REFERENCES clients(id),
		type roster_type NOT NULL DEFAULT 'LOGISTICS_FIXED',
		vehicle_model VARCHAR(50) NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_pricing_configurations_client_id ON pricing_configurations (client_id);`,
	`CREATE TABLE IF NOT EXISTS pricing_client_stores (
		pricing_id UUID NOT NULL REFERENCES pricing_configurations(id),
		client_store_id UUID NOT NULL REFERENCES client_stores(id),
		PRIMARY KEY (pricing_id, client_store_id)
	);`,
	`CREATE TABLE IF NOT EXISTS onboardings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		full_name VARCHAR(50) NOT NULL,
		dob DATE NOT NULL,
		mobile_no BIGINT NOT NULL UNIQUE,
		city VARCHAR(50),
		state VARCHAR(50),
		photo TEXT,
		driver_license_number VARCHAR(50),
		has_driver_license BOOLEAN NOT NULL,
		status onboarding_status NOT NULL DEFAULT 'REGISTERED',
		remarks VARCHAR(250),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS drivers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID,
		onboarding_id UUID UNIQUE REFERENCES onboardings(id),
		doj DATE NOT NULL,
		dol DATE,
		vendor_id UUID,
		remarks VARCHAR(250),
		app_version VARCHAR(8),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		registration_number VARCHAR(50) NOT NULL UNIQUE,
		model VARCHAR(50) NOT NULL,
		type vehicle_type NOT NULL DEFAULT 'L1',
		status vehicle_status NOT NULL DEFAULT 'FOR_DEPLOYMENT',
		speed vehicle_speed NOT NULL,
		station_id UUID NOT NULL REFERENCES stations(id),
		chassis_number VARCHAR(50) NOT NULL UNIQUE,
		engine_number VARCHAR(50),
		rc_document TEXT,
		insurance_document TEXT,
		insurance_start_date DATE,
		insurance_renewal_date DATE,
		is_backup BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		updated_by_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_station_id ON vehicles (station_id);`,
	`CREATE TABLE IF NOT EXISTS rosters (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id),
		client_store_id UUID NOT NULL REFERENCES client_stores(id),
		type roster_type NOT NULL DEFAULT 'LOGISTICS_FIXED',
		status roster_status NOT NULL DEFAULT 'ACTIVE',
		city VARCHAR(50),
		driver_id UUID REFERENCES drivers(id),
		vehicle_id UUID REFERENCES vehicles(id),
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		holiday JSONB,
		slot_start_time VARCHAR(8) NOT NULL,
		slot_end_time VARCHAR(8) NOT NULL,
		lat DOUBLE PRECISION,
		long DOUBLE PRECISION,
		address VARCHAR(200),
		destination_station_id UUID NOT NULL REFERENCES stations(id),
		remarks VARCHAR(250),
		cost DOUBLE PRECISION,
		created_by_id UUID,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_rosters_driver_id ON rosters (driver_id);`,
	`CREATE INDEX IF NOT EXISTS idx_rosters_vehicle_id ON rosters (vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_rosters_client_id ON rosters (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_rosters_client_store_id ON rosters (client_store_id);`,
	`CREATE TABLE IF NOT EXISTS roster_driver_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		roster_id UUID NOT NULL REFERENCES rosters(id),
		old_driver_id UUID,
		new_driver_id UUID,
		status roster_status NOT NULL,
		created_by_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_roster_driver_logs_roster_id ON roster_driver_logs (roster_id);`,
	`CREATE TABLE IF NOT EXISTS roster_vehicle_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		roster_id UUID NOT NULL REFERENCES rosters(id),
		old_vehicle_id UUID,
		new_vehicle_id UUID,
		status roster_status NOT NULL,
		created_by_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_roster_vehicle_logs_roster_id ON roster_vehicle_logs (roster_id);`,
	`CREATE TABLE IF NOT EXISTS roster_status_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		roster_id UUID NOT NULL REFERENCES rosters(id),
		old_status roster_status NOT NULL,
		new_status roster_status NOT NULL,
		remarks VARCHAR(250),
		created_by_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_roster_status_logs_roster_id ON roster_status_logs (roster_id);`,
	`CREATE TABLE IF NOT EXISTS trips (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		roster_id UUID NOT NULL REFERENCES rosters(id),
		status trip_status NOT NULL DEFAULT 'RIDE_STARTED',
		checkin_time TIMESTAMPTZ,
		checkout_time TIMESTAMPTZ,
		ended_at TIMESTAMPTZ,
		start_km DOUBLE PRECISION,
		end_km DOUBLE PRECISION,
		in_latitude DOUBLE PRECISION,
		in_longitude DOUBLE PRECISION,
		out_latitude DOUBLE PRECISION,
		out_longitude DOUBLE PRECISION,
		trip_sheet_photo TEXT,
		vehicle_photos JSONB,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_roster_id ON trips (roster_id);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips (created_at);`,
	`CREATE TABLE IF NOT EXISTS service_tickets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_id UUID NOT NULL REFERENCES vehicles(id),
		status service_status NOT NULL DEFAULT 'OPEN',
		issue_type service_issue_type NOT NULL,
		issue_subtype VARCHAR(50),
		address VARCHAR(250),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		description VARCHAR(250),
		remarks VARCHAR(250),
		priority service_priority NOT NULL DEFAULT 'MEDIUM',
		photos JSONB,
		reportee_id UUID,
		created_by_id UUID,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_service_tickets_vehicle_id ON service_tickets (vehicle_id);`,
	`CREATE TABLE IF NOT EXISTS service_logs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		service_id UUID NOT NULL REFERENCES service_tickets(id),
		old_status service_status NOT NULL,
		new_status service_status NOT NULL,
		remarks VARCHAR(250),
		created_by_id UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_service_logs_service_id ON service_logs (service_id);`,
	`CREATE TABLE IF NOT EXISTS config_entries (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		key VARCHAR(50) NOT NULL UNIQUE,
		value JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE OR REPLACE FUNCTION set_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_rosters_updated_at') THEN
			CREATE TRIGGER trg_rosters_updated_at
				BEFORE UPDATE ON rosters
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_trips_updated_at') THEN
			CREATE TRIGGER trg_trips_updated_at
				BEFORE UPDATE ON trips
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicles_updated_at') THEN
			CREATE TRIGGER trg_vehicles_updated_at
				BEFORE UPDATE ON vehicles
				FOR EACH ROW
				EXECUTE PROCEDURE set_updated_at();
		END IF;
	END
	$$;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_service_tickets_updated_at') THEN
			CREATE TRIGGER trg_service_tickets_updated_at
				BEFORE UPDATE ON service_tickets
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

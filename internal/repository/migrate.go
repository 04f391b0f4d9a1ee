package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the repositories use. On
// postgres it also installs the no-overbooking exclusion constraint the
// conflict resolver relies on as its write-time backstop.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&bookingModel{},
		&memberModel{},
		&scaleModel{},
		&scaleConfirmationModel{},
	); err != nil {
		return err
	}

	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email)",
	).Error; err != nil {
		return err
	}
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_scale_confirmations_scale_user ON scale_confirmations (scale_id, user_id)",
	).Error; err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		// Exclusion constraint over identically-dated bookings of one
		// room; recurring rows (date IS NULL) are guarded by the
		// in-process room lock only.
		return db.Exec(`
			DO $$ BEGIN
				CREATE EXTENSION IF NOT EXISTS btree_gist;
				ALTER TABLE bookings ADD CONSTRAINT idx_no_overbooking
					EXCLUDE USING gist (
						room WITH =,
						date WITH =,
						tsrange(
							(date || ' ' || start_time)::timestamp,
							(date || ' ' || end_time)::timestamp
						) WITH &&
					) WHERE (date IS NOT NULL);
			EXCEPTION
				WHEN duplicate_object THEN NULL;
			END $$;
		`).Error
	}
	return nil
}

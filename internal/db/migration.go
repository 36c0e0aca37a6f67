package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

type migration struct {
	version string
	sql     string
}

// Derived metrics have no table: they are recomputed from profiles and
// body_measurements on every read.
var migrations = []migration{
	{
		version: "000_create_accounts",
		sql: `
			CREATE TABLE IF NOT EXISTS accounts (
				id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				email         VARCHAR(255) NOT NULL UNIQUE,
				password_hash VARCHAR(255) NOT NULL,
				created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			)`,
	},
	{
		version: "001_create_profiles",
		sql: `
			CREATE TABLE IF NOT EXISTS profiles (
				user_id         BIGINT UNSIGNED PRIMARY KEY,
				name            VARCHAR(100),
				gender          VARCHAR(16) NOT NULL DEFAULT '',
				birth_of_date   VARCHAR(20),
				weight_lbs      DOUBLE,
				height_in       DOUBLE,
				goal_weight_lbs DOUBLE,
				activity_level  VARCHAR(16),
				experience      VARCHAR(16),
				units           VARCHAR(16) NOT NULL DEFAULT 'imperial',
				created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES accounts(id) ON DELETE CASCADE
			)`,
	},
	{
		version: "002_create_body_measurements",
		sql: `
			CREATE TABLE IF NOT EXISTS body_measurements (
				id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id    BIGINT UNSIGNED NOT NULL,
				date       VARCHAR(20) NOT NULL,
				chest      DOUBLE,
				waist      DOUBLE,
				hips       DOUBLE,
				arms       DOUBLE,
				thighs     DOUBLE,
				neck       DOUBLE,
				note       VARCHAR(500),
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES accounts(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_body_measurements_user_date ON body_measurements (user_id, date)`,
	},
	{
		version: "003_create_workout_sessions",
		sql: `
			CREATE TABLE IF NOT EXISTS workout_sessions (
				id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id          BIGINT UNSIGNED NOT NULL,
				date             VARCHAR(20) NOT NULL,
				duration_minutes INT,
				note             VARCHAR(500),
				created_at       DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES accounts(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_workout_sessions_user_date ON workout_sessions (user_id, date)`,
	},
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(ctx, db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := executeMigration(ctx, db, m); err != nil {
			return err
		}

		log.WithField("version", m.version).Info("applied migration")
	}

	return nil
}

func isMigrationApplied(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = ?",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return count > 0, nil
}

// splitStatements breaks a migration into the statements the driver can run
// one at a time.
func splitStatements(script string) []string {
	var stmts []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func executeMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", m.version, err)
	}

	for _, stmt := range splitStatements(m.sql) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", m.version, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version) VALUES (?)",
		m.version,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.version, err)
	}

	return tx.Commit()
}

package db

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(120) UNIQUE NOT NULL,
		birth VARCHAR(10),
		password_hash VARCHAR(120) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		description VARCHAR(350),
		team_profile_image VARCHAR(255),
		team_banner_image VARCHAR(255),
		captain_id INTEGER REFERENCES users(id),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		ranking_points INTEGER NOT NULL DEFAULT 0,
		members_count INTEGER NOT NULL DEFAULT 0,
		notes VARCHAR(350),
		create_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		update_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// Membership rows are removed together with their team inside the
	// delete-team transaction, so no ON DELETE CASCADE on team_id.
	`CREATE TABLE IF NOT EXISTS team_players (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		team_id INTEGER NOT NULL REFERENCES teams(id),
		create_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		update_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT unique_user_team UNIQUE (user_id, team_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_team_players_team_id ON team_players(team_id)`,
}

// Migrate applies the schema statements in order. Every statement is
// idempotent, so running at each startup is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}

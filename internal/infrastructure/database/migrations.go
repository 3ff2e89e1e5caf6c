package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS leagues (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description VARCHAR(1000) NOT NULL DEFAULT '',
		region VARCHAR(50) NOT NULL,
		type VARCHAR(50) NOT NULL,
		accepting BOOLEAN NOT NULL DEFAULT TRUE,
		rules TEXT[] NOT NULL DEFAULT '{}',
		owner_id UUID NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS league_memberships (
		id UUID PRIMARY KEY,
		league_id UUID NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		role VARCHAR(20) NOT NULL CHECK (role IN ('owner', 'admin', 'member')),
		joined_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_league_memberships_league_user UNIQUE (league_id, user_id)
	)`,

	// 1リーグにつきownerは1件のみ
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_league_memberships_single_owner
		ON league_memberships(league_id) WHERE role = 'owner'`,

	`CREATE TABLE IF NOT EXISTS join_requests (
		id UUID PRIMARY KEY,
		league_id UUID NOT NULL REFERENCES leagues(id) ON DELETE CASCADE,
		user_id UUID NOT NULL,
		message VARCHAR(500) NOT NULL,
		tier VARCHAR(30) NOT NULL,
		positions TEXT[] NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
		submitted_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		resolved_at TIMESTAMP WITH TIME ZONE,
		resolved_by UUID
	)`,

	// (league, user) ごとに保留中の申請は1件のみ
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_join_requests_pending
		ON join_requests(league_id, user_id) WHERE status = 'pending'`,

	`CREATE TABLE IF NOT EXISTS player_profiles (
		user_id UUID PRIMARY KEY,
		display_name VARCHAR(100) NOT NULL,
		tier VARCHAR(30) NOT NULL DEFAULT '',
		positions TEXT[] NOT NULL DEFAULT '{}',
		avatar_url VARCHAR(500),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_league_memberships_user_id ON league_memberships(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_league_memberships_league_joined ON league_memberships(league_id, joined_at, id)`,
	`CREATE INDEX IF NOT EXISTS idx_join_requests_league_status ON join_requests(league_id, status, submitted_at DESC)`,
}

// Migrate はスキーマを作成する。各ステートメントは冪等
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range migrations {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

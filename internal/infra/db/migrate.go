package db

import (
	"database/sql"
)

// MigrateUp creates the schema. Safe to run repeatedly.
func MigrateUp(pool *sql.DB) error {
	if _, err := pool.Exec(`
CREATE TABLE IF NOT EXISTS podcasts (
    id              SERIAL PRIMARY KEY,
    track_id        BIGINT NOT NULL UNIQUE,
    track_name      TEXT NOT NULL,
    artist_name     TEXT NOT NULL DEFAULT '',
    collection_name TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    artwork_url_100 TEXT NOT NULL DEFAULT '',
    artwork_url_600 TEXT NOT NULL DEFAULT '',
    feed_url        TEXT NOT NULL DEFAULT '',
    track_view_url  TEXT NOT NULL DEFAULT '',
    country         TEXT NOT NULL DEFAULT '',
    track_count     INTEGER NOT NULL DEFAULT 0,
    release_date    TIMESTAMPTZ,
    genres          JSONB,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// リスト取得は挿入順で返すため id 昇順を利用(PKで十分だが明示)
		`CREATE INDEX IF NOT EXISTS idx_podcasts_track_id ON podcasts(track_id)`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm拡張を有効化(ILIKE検索高速化用)
	// エラーを無視(既に存在する場合やスーパーユーザー権限がない場合)
	_, _ = pool.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	_, _ = pool.Exec(`CREATE INDEX IF NOT EXISTS idx_podcasts_track_name_gin ON podcasts USING gin(track_name gin_trgm_ops)`)

	return nil
}

// MigrateDown rolls back the database schema.
// Use with caution: this will delete all stored podcasts.
func MigrateDown(pool *sql.DB) error {
	_, err := pool.Exec(`DROP TABLE IF EXISTS podcasts CASCADE`)
	return err
}

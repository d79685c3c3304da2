package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"vizu/internal/profile"
)

// ProfileRepositoryPG implements profile.Repository backed by PostgreSQL.
// It stores the same single JSON snapshot the file store does, keyed by the
// fixed storage key, which keeps hosted deployments drop-in compatible.
type ProfileRepositoryPG struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewProfileRepository creates a new ProfileRepositoryPG.
func NewProfileRepository(pool *pgxpool.Pool, log zerolog.Logger) *ProfileRepositoryPG {
	return &ProfileRepositoryPG{
		pool: pool,
		log:  log.With().Str("component", "profile_repo").Logger(),
	}
}

const profileSchema = `
CREATE TABLE IF NOT EXISTS profiles (
    storage_key TEXT PRIMARY KEY,
    snapshot    JSONB NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the profiles table when it does not exist yet.
func (r *ProfileRepositoryPG) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, profileSchema); err != nil {
		return fmt.Errorf("repo: ensure profiles schema: %w", err)
	}
	return nil
}

// Load fetches the snapshot under the fixed storage key. A missing row or an
// undecodable payload yields the default anonymous snapshot with found=false.
func (r *ProfileRepositoryPG) Load(ctx context.Context) (profile.Snapshot, bool, error) {
	var raw []byte
	row := r.pool.QueryRow(ctx, `SELECT snapshot FROM profiles WHERE storage_key = $1`, profile.StorageKey)
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.DefaultSnapshot(), false, nil
		}
		return profile.DefaultSnapshot(), false, fmt.Errorf("repo: load profile: %w", err)
	}

	var snap profile.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		r.log.Warn().Err(err).Msg("stored profile malformed, starting anonymous")
		return profile.DefaultSnapshot(), false, nil
	}
	if snap.Profile.Analyzed && (snap.Profile.Season == "" || snap.Profile.FaceShape == "") {
		r.log.Warn().Msg("stored profile inconsistent, starting anonymous")
		return profile.DefaultSnapshot(), false, nil
	}
	return snap, true, nil
}

// Save upserts the snapshot under the fixed storage key.
func (r *ProfileRepositoryPG) Save(ctx context.Context, snap profile.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("repo: marshal profile: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO profiles (storage_key, snapshot)
VALUES ($1, $2)
ON CONFLICT (storage_key) DO UPDATE
SET snapshot = EXCLUDED.snapshot,
    updated_at = NOW();
`, profile.StorageKey, raw)
	if err != nil {
		return fmt.Errorf("repo: save profile: %w", err)
	}
	return nil
}

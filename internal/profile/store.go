package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"vizu/internal/domain"
)

// StorageKey is the fixed identifier under which the single profile snapshot
// lives, regardless of backend.
const StorageKey = "vizu_user"

// Snapshot is the entire durable state: the profile plus the selected plan,
// serialized as one JSON record.
type Snapshot struct {
	Profile domain.UserProfile `json:"profile"`
	Plan    domain.PlanTier    `json:"plan"`
}

// DefaultSnapshot is what startup falls back to when nothing usable is
// stored.
func DefaultSnapshot() Snapshot {
	return Snapshot{Profile: domain.NewProfile(), Plan: domain.PlanFree}
}

// Repository persists the profile snapshot. Load is called once at startup;
// implementations must treat missing or malformed data as the default
// anonymous snapshot (found=false) and must never fail startup over it.
type Repository interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, snap Snapshot) error
}

// FileStore keeps the snapshot as a single JSON file under a base directory.
// It is the default backend for local and single-device deployments.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore initializes the store rooted at basePath.
func NewFileStore(basePath string, log zerolog.Logger) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("profile: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("profile: ensure base path: %w", err)
	}
	return &FileStore{
		path: filepath.Join(basePath, StorageKey+".json"),
		log:  log.With().Str("component", "profile_store").Logger(),
	}, nil
}

// Load reads the snapshot. A missing file or malformed content yields the
// default snapshot with found=false; only unexpected I/O errors propagate.
func (s *FileStore) Load(ctx context.Context) (Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return DefaultSnapshot(), false, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSnapshot(), false, nil
		}
		return DefaultSnapshot(), false, fmt.Errorf("profile: read snapshot: %w", err)
	}
	snap, ok := decodeSnapshot(data)
	if !ok {
		s.log.Warn().Str("path", s.path).Msg("stored profile malformed, starting anonymous")
		return DefaultSnapshot(), false, nil
	}
	return snap, true, nil
}

// Save writes the snapshot atomically (temp file plus rename).
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("profile: marshal snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("profile: write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("profile: commit snapshot: %w", err)
	}
	return nil
}

// decodeSnapshot validates stored JSON. An analyzed profile missing its
// analysis fields is treated as malformed; persisting such a state is
// impossible through the normal flow, so finding one means corruption.
func decodeSnapshot(data []byte) (Snapshot, bool) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false
	}
	if snap.Profile.Name == "" {
		snap.Profile.Name = domain.NewProfile().Name
	}
	if snap.Plan == "" {
		snap.Plan = domain.PlanFree
	} else if _, ok := domain.ParsePlanTier(string(snap.Plan)); !ok {
		return Snapshot{}, false
	}
	if snap.Profile.Analyzed && (snap.Profile.Season == "" || snap.Profile.FaceShape == "") {
		return Snapshot{}, false
	}
	return snap, true
}

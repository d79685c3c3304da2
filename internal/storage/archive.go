package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Archive keeps a local copy of every generated look image so users can
// recover renders after the session-scoped look is replaced. It writes under
// a base directory on the local filesystem; archiving is best-effort and
// never blocks the consulting flow.
type Archive struct {
	basePath string
}

// NewArchive initializes an Archive rooted at basePath.
func NewArchive(basePath string) (*Archive, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &Archive{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (a *Archive) BasePath() string {
	if a == nil {
		return ""
	}
	return a.basePath
}

// SaveLook persists a generated look image under looks/<date>/<id>.png and
// returns the relative key. A nil archive reports an error so callers can
// log and move on.
func (a *Archive) SaveLook(ctx context.Context, lookID string, image []byte) (string, error) {
	if a == nil {
		return "", errors.New("storage: no archive configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := lookKey(lookID)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(a.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, image, 0o644); err != nil {
		return "", fmt.Errorf("storage: write look image: %w", err)
	}
	return key, nil
}

// lookKey builds the relative key, rejecting identifiers that would escape
// the archive root.
func lookKey(lookID string) (string, error) {
	lookID = strings.TrimSpace(lookID)
	if lookID == "" {
		return "", errors.New("storage: look id is required")
	}
	if strings.ContainsAny(lookID, "/\\") || strings.Contains(lookID, "..") {
		return "", errors.New("storage: invalid look id")
	}
	return fmt.Sprintf("looks/%s/%s.png", time.Now().UTC().Format("2006-01-02"), lookID), nil
}

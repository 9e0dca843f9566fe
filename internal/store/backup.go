package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SaveCopy writes a consistent snapshot of the database to dst using
// VACUUM INTO, which is safe while the database is open in WAL mode.
func (s *Store) SaveCopy(ctx context.Context, dst string) error {
	if strings.TrimSpace(dst) == "" {
		return fmt.Errorf("destination path must not be empty")
	}
	if dir := filepath.Dir(dst); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create destination directory: %w", err)
		}
	}
	// VACUUM INTO refuses to overwrite an existing file.
	if _, err := os.Stat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("replace existing copy: %w", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dst); err != nil {
		return fmt.Errorf("vacuum into %s: %w", dst, err)
	}
	return nil
}

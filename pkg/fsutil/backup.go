package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupModeSidecar writes path + BackupSuffix next to the original.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to sidecar backup files.
const BackupSuffix = ".pytidy.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// Active reports whether backups should be written.
func (c BackupConfig) Active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns the sidecar path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup saves original as the sidecar backup of snap.Path. An existing
// backup is left alone so repeated runs keep the oldest content. It returns
// the backup path, or "" when nothing was written.
func Backup(ctx context.Context, snap *Snapshot, original []byte, cfg BackupConfig) (string, error) {
	if !cfg.Active() {
		return "", nil
	}

	backupPath := BackupPath(snap.Path)
	_, err := os.Stat(backupPath)
	switch {
	case err == nil:
		return "", nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, original, snap.Mode); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backupPath, nil
}

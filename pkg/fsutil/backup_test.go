package fsutil_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pytidy/pkg/fsutil"
)

func TestBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("writes sidecar", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "a.py", "v1\n", 0o640)
		original, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		backup, err := fsutil.Backup(ctx, snap, original, enabled)
		require.NoError(t, err)
		assert.Equal(t, path+".pytidy.bak", backup)

		got, err := os.ReadFile(backup)
		require.NoError(t, err)
		assert.Equal(t, "v1\n", string(got))
	})

	t.Run("keeps existing backup", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "a.py", "v2\n", 0o644)
		require.NoError(t, os.WriteFile(fsutil.BackupPath(path), []byte("v1\n"), 0o644))
		original, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		backup, err := fsutil.Backup(ctx, snap, original, enabled)
		require.NoError(t, err)
		assert.Empty(t, backup)

		got, _ := os.ReadFile(fsutil.BackupPath(path))
		assert.Equal(t, "v1\n", string(got))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		for _, cfg := range []fsutil.BackupConfig{
			{Enabled: false, Mode: fsutil.BackupModeSidecar},
			{Enabled: true, Mode: fsutil.BackupModeNone},
		} {
			path := writeTemp(t, "a.py", "v1\n", 0o644)
			original, snap, err := fsutil.ReadFile(ctx, path)
			require.NoError(t, err)

			backup, err := fsutil.Backup(ctx, snap, original, cfg)
			require.NoError(t, err)
			assert.Empty(t, backup)
			assert.NoFileExists(t, fsutil.BackupPath(path))
		}
	})
}

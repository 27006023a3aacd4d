package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/pytidy/pkg/fsutil"
)

func writeTemp(t *testing.T, name, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, "mod.py", "x = 1\n", 0o600)

	content, snap, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))
	assert.Equal(t, path, snap.Path)
	assert.Equal(t, int64(6), snap.Size)
	assert.Equal(t, os.FileMode(0o600), snap.Mode)
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, _, err := fsutil.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.py"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(ctx, t.TempDir())
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.ReadFile(cancelled, writeTemp(t, "a.py", "", 0o644))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSnapshotChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "a.py", "pass\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("content differs with same size and mtime", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "a.py", "pass\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("pazz\n"), 0o644))
		require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("mtime moved", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "a.py", "pass\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		later := snap.ModTime.Add(time.Minute)
		require.NoError(t, os.Chtimes(path, later, later))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "a.py", "pass\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.py")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("a\n"), 0))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should not be left behind")
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope", "out.py")
	require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("a"), 0o644))
}

func TestReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("keeps mode", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "run.py", "if x:\n    y\nz\n", 0o755)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, fsutil.Replace(ctx, snap, []byte("if x:\n    y\n\nz\n")))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	})

	t.Run("refuses modified file", func(t *testing.T) {
		t.Parallel()
		path := writeTemp(t, "run.py", "x\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("edited elsewhere\n"), 0o644))

		err = fsutil.Replace(ctx, snap, []byte("x\n\n"))
		require.ErrorIs(t, err, fsutil.ErrModified)

		got, _ := os.ReadFile(path)
		assert.Equal(t, "edited elsewhere\n", string(got))
	})
}

package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func readAll(t *testing.T, rc io.ReadCloser) []byte {
	t.Helper()
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return b
}

func TestLocalStorage_SaveOpenRoundTrip(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	content := []byte("hello\x00\xffworld")
	n, err := s.Save(ctx, "notes.txt", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	onDisk, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)

	rc, info, err := s.Open(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", info.Name)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.Equal(t, content, readAll(t, rc))
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	s, _ := newLocal(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "a.txt", strings.NewReader("first version"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "a.txt", strings.NewReader("second"))
	require.NoError(t, err)

	rc, info, err := s.Open(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(6), info.Size)
	assert.Equal(t, "second", string(readAll(t, rc)))
}

func TestLocalStorage_ListOnlyRegularFiles(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	files, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = s.Save(ctx, "one.txt", strings.NewReader("1"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "two.bin", strings.NewReader("22"))
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "subdir", "nested.txt"), []byte("x"), 0o644))

	files, err = s.List(ctx)
	require.NoError(t, err)

	sizes := map[string]int64{}
	for _, f := range files {
		sizes[f.Name] = f.Size
	}
	assert.Equal(t, map[string]int64{"one.txt": 1, "two.bin": 2}, sizes)
}

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestLocalStorage_FailedSaveLeavesNothingBehind(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := s.Save(ctx, "partial.txt", &failingReader{data: []byte("half a file"), err: boom})
	require.ErrorIs(t, err, boom)

	_, err = os.Stat(filepath.Join(dir, "partial.txt"))
	assert.True(t, os.IsNotExist(err))

	staged, err := os.ReadDir(filepath.Join(dir, stagingDir))
	require.NoError(t, err)
	assert.Empty(t, staged)

	files, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLocalStorage_FailedSaveKeepsPreviousVersion(t *testing.T) {
	s, _ := newLocal(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "keep.txt", strings.NewReader("original"))
	require.NoError(t, err)

	_, err = s.Save(ctx, "keep.txt", &failingReader{data: []byte("new"), err: errors.New("cut")})
	require.Error(t, err)

	rc, _, err := s.Open(ctx, "keep.txt")
	require.NoError(t, err)
	assert.Equal(t, "original", string(readAll(t, rc)))
}

func TestLocalStorage_SaveRejectsUnsafeNames(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	for _, name := range []string{"", "..", "../escape.txt", "a/b.txt", stagingDir} {
		_, err := s.Save(ctx, name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_OpenMissingAndTraversal(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	secret := filepath.Join(filepath.Dir(dir), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("top secret"), 0o644))

	for _, name := range []string{"missing.txt", "../secret.txt", "..", "", stagingDir, "/etc/passwd"} {
		_, _, err := s.Open(ctx, name)
		assert.ErrorIs(t, err, ErrNotFound, "name %q", name)
	}
}

func TestLocalStorage_DeleteIsIdempotent(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "gone.txt", strings.NewReader("bye"))
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, "gone.txt")
	require.NoError(t, err)
	assert.True(t, deleted)

	for range 3 {
		deleted, err = s.Delete(ctx, "gone.txt")
		require.NoError(t, err)
		assert.False(t, deleted)
	}

	_, err = os.Stat(filepath.Join(dir, "gone.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_DeleteNeverEscapesRoot(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	for _, name := range []string{"../victim.txt", "..", stagingDir} {
		deleted, err := s.Delete(ctx, name)
		require.NoError(t, err)
		assert.False(t, deleted, "name %q", name)
	}

	_, err := os.Stat(outside)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, stagingDir))
	require.NoError(t, err)
}

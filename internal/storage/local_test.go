package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()}, logger)
	require.NoError(t, err)
	return s
}

func TestLocalPutGetRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Put(ctx, "cases/abc/results.csv", strings.NewReader("Status\nPASS\n"), "text/csv")
	require.NoError(t, err)

	rc, info, err := s.Get(ctx, "cases/abc/results.csv")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "Status\nPASS\n", string(data))
	assert.Equal(t, "text/csv", info.ContentType)
	assert.Equal(t, int64(len(data)), info.Size)
}

func TestLocalGetMissing(t *testing.T) {
	s := newTestStorage(t)

	_, _, err := s.Get(context.Background(), "cases/missing/report.docx")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestLocalDeleteIdempotent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a/b.csv", strings.NewReader("x"), ""))
	require.NoError(t, s.Delete(ctx, "a/b.csv"))
	require.NoError(t, s.Delete(ctx, "a/b.csv"))

	exists, err := s.Exists(ctx, "a/b.csv")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalRejectsTraversal(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	for _, key := range []string{"../escape.csv", "/abs.csv", "", "a/../../b.csv"} {
		err := s.Put(ctx, key, strings.NewReader("x"), "")
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestContentTypeForKey(t *testing.T) {
	assert.Equal(t, "text/csv", contentTypeForKey("x/inputs.csv"))
	assert.Equal(t, "application/pdf", contentTypeForKey("report.PDF"))
	assert.Equal(t, "application/octet-stream", contentTypeForKey("blob.bin"))
}

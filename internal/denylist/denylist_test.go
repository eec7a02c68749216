package denylist

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadFromFileExactlyTwoTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "denylist.txt")
	content := "0.0.0.0 ads.example.\n" +
		"just-one-token\n" +
		"0.0.0.0 three tokens here\n" +
		"\n" +
		"0.0.0.0 tracker.example.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store := Load(discardLogger(), []string{path})

	assert.True(t, store.Blocks("ads.example."))
	assert.True(t, store.Blocks("tracker.example."))
	assert.False(t, store.Blocks("three"))
	assert.Equal(t, 2, store.Len())
}

func TestLoadFileURLScheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "denylist.txt")
	require.NoError(t, os.WriteFile(path, []byte("0.0.0.0 ads.example.\n"), 0644))

	store := Load(discardLogger(), []string{"file://" + path})
	assert.True(t, store.Blocks("ads.example."))
}

func TestLoadHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("0.0.0.0 ads.example.\n"))
	}))
	defer srv.Close()

	store := Load(discardLogger(), []string{srv.URL})
	assert.True(t, store.Blocks("ads.example."))
}

func TestLoadSkipsFailingSourceAndContinues(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("0.0.0.0 ads.example.\n"), 0644))

	store := Load(discardLogger(), []string{"/nonexistent/path/does-not-exist.txt", good})
	assert.True(t, store.Blocks("ads.example."))
	assert.Equal(t, 1, store.Len())
}

func TestBlocksIsExactCaseSensitiveMatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "denylist.txt")
	require.NoError(t, os.WriteFile(path, []byte("0.0.0.0 ads.example.\n"), 0644))

	store := Load(discardLogger(), []string{path})
	assert.False(t, store.Blocks("ADS.example."), "matching is case-sensitive on the decoded (already lower-cased) name")
	assert.False(t, store.Blocks("ads.example"), "trailing dot must match exactly")
}

func TestUnsupportedSchemeIsSkipped(t *testing.T) {
	store := Load(discardLogger(), []string{"ftp://example.com/list.txt"})
	assert.Equal(t, 0, store.Len())
}

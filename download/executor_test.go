package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafthub/depcraft/core"
)

func sha1Of(t *testing.T, content string) string {
	t.Helper()
	digest, err := core.HashReader(core.HashFormatSHA1, strings.NewReader(content))
	require.NoError(t, err)
	return digest
}

func fileServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExecuteVerifiedDownload(t *testing.T) {
	content := "jar bytes"
	srv := fileServer(t, map[string]string{"/sodium.jar": content})

	dest := filepath.Join(t.TempDir(), "mods", "sodium.jar")
	e := NewExecutor(srv.Client(), nil)

	var lastDownloaded int64
	progress := func(downloaded, total int64) { lastDownloaded = downloaded }

	err := e.Execute(context.Background(), srv.URL+"/sodium.jar",
		core.HashFormatSHA1, sha1Of(t, content), dest, progress)
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
	assert.Equal(t, int64(len(content)), lastDownloaded)

	_, err = os.Stat(dest + ".part")
	assert.True(t, os.IsNotExist(err), "temp file must not remain")
}

func TestExecuteHashMismatchLeavesNoFile(t *testing.T) {
	srv := fileServer(t, map[string]string{"/sodium.jar": "tampered bytes"})

	dest := filepath.Join(t.TempDir(), "sodium.jar")
	e := NewExecutor(srv.Client(), nil)

	err := e.Execute(context.Background(), srv.URL+"/sodium.jar",
		core.HashFormatSHA1, sha1Of(t, "expected bytes"), dest, nil)
	assert.ErrorIs(t, err, core.ErrHashMismatch)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "mismatched file must not be placed")
	_, statErr = os.Stat(dest + ".part")
	assert.True(t, os.IsNotExist(statErr), "temp file must be cleaned up")
}

func TestExecuteHashComparisonIsCaseInsensitive(t *testing.T) {
	content := "jar bytes"
	srv := fileServer(t, map[string]string{"/a.jar": content})

	dest := filepath.Join(t.TempDir(), "a.jar")
	e := NewExecutor(srv.Client(), nil)

	err := e.Execute(context.Background(), srv.URL+"/a.jar",
		core.HashFormatSHA1, strings.ToUpper(sha1Of(t, content)), dest, nil)
	assert.NoError(t, err)
}

func TestExecuteRejectsMissingHash(t *testing.T) {
	e := NewExecutor(nil, nil)
	err := e.Execute(context.Background(), "http://example.invalid/a.jar",
		"", "", filepath.Join(t.TempDir(), "a.jar"), nil)
	assert.ErrorIs(t, err, core.ErrNoReleaseFile)
}

func TestExecuteHTTPErrorStatus(t *testing.T) {
	srv := fileServer(t, nil)

	e := NewExecutor(srv.Client(), nil)
	err := e.Execute(context.Background(), srv.URL+"/missing.jar",
		core.HashFormatSHA1, "deadbeef", filepath.Join(t.TempDir(), "missing.jar"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

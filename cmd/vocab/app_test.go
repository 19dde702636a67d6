package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	dir      string
	config   string
	snapshot string
	template string
}

func newWorkspace(t *testing.T, snapshotJSON string) workspace {
	t.Helper()
	dir := t.TempDir()

	ws := workspace{
		dir:      dir,
		config:   filepath.Join(dir, "vocab.yaml"),
		snapshot: filepath.Join(dir, "vocab_data.json"),
		template: filepath.Join(dir, "student-version.html"),
	}

	cfg := fmt.Sprintf(`snapshot:
  path: %q
review:
  export_path: %q
publish:
  shard_dir: %q
  templates:
    - %q
log:
  level: error
`, ws.snapshot, filepath.Join(dir, "review.txt"), filepath.Join(dir, "shards"), ws.template)

	require.NoError(t, os.WriteFile(ws.config, []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(ws.snapshot, []byte(snapshotJSON), 0o644))
	require.NoError(t, os.WriteFile(ws.template, []byte("const vocabData = [];\n"), 0o644))
	return ws
}

func run(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	err := newVocabApp(&out).RunContext(context.Background(), append([]string{"vocab"}, args...))
	return exitCode(err), out.String()
}

func TestVocab_Version(t *testing.T) {
	code, out := run(t, "version")
	assert.Equal(t, ExitCodeSuccess, code)
	assert.Contains(t, out, "vocab dev")
}

func TestVocab_UsageErrors(t *testing.T) {
	ws := newWorkspace(t, `[]`)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown command", args: []string{"frobnicate"}},
		{name: "unknown flag", args: []string{"--config", ws.config, "resolve", "--bogus"}},
		{name: "stray argument", args: []string{"--config", ws.config, "verify", "extra"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			code, _ := run(t, tt.args...)
			assert.Equal(t, ExitCodeUsageError, code)
		})
	}
}

func TestVocab_MissingConfig(t *testing.T) {
	code, _ := run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "verify")
	assert.Equal(t, ExitCodeRuntimeError, code)
}

func TestVocab_VerifyFlagged(t *testing.T) {
	ws := newWorkspace(t, `[{"number": "1", "word": "Qwzx", "meaning": "[NEEDS REVIEW] qwzx"}]`)

	code, out := run(t, "--config", ws.config, "verify")
	assert.Equal(t, ExitCodeReviewIncomplete, code)
	assert.Contains(t, out, "markers remaining")
	assert.Contains(t, out, "- Qwzx")
}

func TestVocab_ResolveOfflineThenReview(t *testing.T) {
	ws := newWorkspace(t, `[
  {"number": "1", "word": "Acquire", "meaning": ""},
  {"number": "2", "word": "Zoom", "meaning": ""}
]`)

	code, out := run(t, "--config", ws.config, "resolve", "--no-api")
	require.Equal(t, ExitCodeSuccess, code, out)
	assert.Contains(t, out, "local table")
	assert.Contains(t, out, "- Zoom")

	code, out = run(t, "--config", ws.config, "review")
	require.Equal(t, ExitCodeSuccess, code, out)

	code, out = run(t, "--config", ws.config, "verify")
	assert.Equal(t, ExitCodeSuccess, code, out)
	assert.Contains(t, out, "All words have meanings.")
}

func TestVocab_SnapshotOverride(t *testing.T) {
	ws := newWorkspace(t, `[{"number": "1", "word": "Qwzx", "meaning": ""}]`)

	clean := filepath.Join(ws.dir, "clean.json")
	require.NoError(t, os.WriteFile(clean, []byte(`[{"number": "1", "word": "ant", "meaning": "a small insect"}]`), 0o644))

	code, out := run(t, "--config", ws.config, "--snapshot", clean, "verify")
	assert.Equal(t, ExitCodeSuccess, code, out)
}

func TestVocab_PublishYes(t *testing.T) {
	ws := newWorkspace(t, `[
  {"number": "1", "word": "ant", "meaning": "a small insect"},
  {"number": "2", "word": "bee", "meaning": ""}
]`)

	code, out := run(t, "--config", ws.config, "publish", "--yes")
	require.Equal(t, ExitCodeSuccess, code, out)
	assert.Contains(t, out, "A.json")
	assert.Contains(t, out, "updated")

	_, err := os.Stat(filepath.Join(ws.dir, "shards", "INDEX.md"))
	require.NoError(t, err)

	raw, err := os.ReadFile(ws.template)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `{"number": "1", "word": "ant", "meaning": "a small insect"}`)
}

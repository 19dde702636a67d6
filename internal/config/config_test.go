package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vocab.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// chdirTemp moves the test into an empty directory so ./vocab.yaml is absent.
func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

const validYAML = `
snapshot:
  path: "data/vocab.json"

lookup:
  base_url: "http://127.0.0.1:9999/entries/en"
  timeout: "3s"
  max_attempts: 5
  backoff: "250ms"

resolver:
  checkpoint_every: 20
  pace_every: 10
  pace_delay: "1s"
  max_definition_length: 80

curated:
  local_meanings_path: "tables/local.yaml"

review:
  export_path: "out/review.txt"

publish:
  shard_dir: "out/letters"
  templates:
    - "site/student.html"
    - "site/teacher.html"
  slot_name: "words"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	t.Setenv("VOCAB_CONFIG_PATH", "")
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Snapshot
	if cfg.Snapshot.Path != "data/vocab.json" {
		t.Errorf("snapshot.path = %q", cfg.Snapshot.Path)
	}

	// Lookup
	if cfg.Lookup.Disabled {
		t.Error("lookup.disabled should default to false")
	}
	if cfg.Lookup.BaseURL != "http://127.0.0.1:9999/entries/en" {
		t.Errorf("lookup.base_url = %q", cfg.Lookup.BaseURL)
	}
	if cfg.Lookup.Timeout != 3*time.Second {
		t.Errorf("lookup.timeout = %v, want 3s", cfg.Lookup.Timeout)
	}
	if cfg.Lookup.MaxAttempts != 5 {
		t.Errorf("lookup.max_attempts = %d, want 5", cfg.Lookup.MaxAttempts)
	}
	if cfg.Lookup.Backoff != 250*time.Millisecond {
		t.Errorf("lookup.backoff = %v, want 250ms", cfg.Lookup.Backoff)
	}

	// Resolver
	if cfg.Resolver.CheckpointEvery != 20 {
		t.Errorf("resolver.checkpoint_every = %d, want 20", cfg.Resolver.CheckpointEvery)
	}
	if cfg.Resolver.PaceEvery != 10 {
		t.Errorf("resolver.pace_every = %d, want 10", cfg.Resolver.PaceEvery)
	}
	if cfg.Resolver.PaceDelay != time.Second {
		t.Errorf("resolver.pace_delay = %v, want 1s", cfg.Resolver.PaceDelay)
	}
	if cfg.Resolver.MaxDefinitionLength != 80 {
		t.Errorf("resolver.max_definition_length = %d, want 80", cfg.Resolver.MaxDefinitionLength)
	}

	// Curated
	if cfg.Curated.LocalMeaningsPath != "tables/local.yaml" {
		t.Errorf("curated.local_meanings_path = %q", cfg.Curated.LocalMeaningsPath)
	}
	if cfg.Curated.ReviewMeaningsPath != "" {
		t.Errorf("curated.review_meanings_path = %q, want empty", cfg.Curated.ReviewMeaningsPath)
	}

	// Review
	if cfg.Review.ExportPath != "out/review.txt" {
		t.Errorf("review.export_path = %q", cfg.Review.ExportPath)
	}

	// Publish
	if cfg.Publish.ShardDir != "out/letters" {
		t.Errorf("publish.shard_dir = %q", cfg.Publish.ShardDir)
	}
	if len(cfg.Publish.Templates) != 2 || cfg.Publish.Templates[1] != "site/teacher.html" {
		t.Errorf("publish.templates = %v", cfg.Publish.Templates)
	}
	if cfg.Publish.SlotName != "words" {
		t.Errorf("publish.slot_name = %q", cfg.Publish.SlotName)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("VOCAB_LOOKUP_MAX_ATTEMPTS", "2")
	t.Setenv("VOCAB_LOOKUP_DISABLED", "true")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Lookup.MaxAttempts != 2 {
		t.Errorf("lookup.max_attempts = %d, want 2 (ENV override)", cfg.Lookup.MaxAttempts)
	}
	if !cfg.Lookup.Disabled {
		t.Error("lookup.disabled should be true (ENV override)")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("VOCAB_CONFIG_PATH", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Snapshot.Path != "data/vocab.json" {
		t.Errorf("snapshot.path = %q, want value from VOCAB_CONFIG_PATH file", cfg.Snapshot.Path)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("VOCAB_CONFIG_PATH", "")
	chdirTemp(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Snapshot.Path != "vocab_data.json" {
		t.Errorf("snapshot.path = %q, want default", cfg.Snapshot.Path)
	}
	if cfg.Lookup.BaseURL != "https://api.dictionaryapi.dev/api/v2/entries/en" {
		t.Errorf("lookup.base_url = %q, want default", cfg.Lookup.BaseURL)
	}
	if cfg.Lookup.MaxAttempts != 3 {
		t.Errorf("lookup.max_attempts = %d, want 3", cfg.Lookup.MaxAttempts)
	}
	if cfg.Lookup.Backoff != time.Second {
		t.Errorf("lookup.backoff = %v, want 1s", cfg.Lookup.Backoff)
	}
	if cfg.Resolver.CheckpointEvery != 50 {
		t.Errorf("resolver.checkpoint_every = %d, want 50", cfg.Resolver.CheckpointEvery)
	}
	if cfg.Resolver.PaceEvery != 5 || cfg.Resolver.PaceDelay != 500*time.Millisecond {
		t.Errorf("resolver pacing = %d/%v, want 5/500ms", cfg.Resolver.PaceEvery, cfg.Resolver.PaceDelay)
	}
	if cfg.Resolver.MaxDefinitionLength != 100 {
		t.Errorf("resolver.max_definition_length = %d, want 100", cfg.Resolver.MaxDefinitionLength)
	}
	if cfg.Review.ExportPath != "words_need_review.txt" {
		t.Errorf("review.export_path = %q", cfg.Review.ExportPath)
	}
	if cfg.Publish.ShardDir != "vocab_by_letter" {
		t.Errorf("publish.shard_dir = %q", cfg.Publish.ShardDir)
	}
	want := []string{"student-version.html", "teacher-version.html"}
	if len(cfg.Publish.Templates) != 2 || cfg.Publish.Templates[0] != want[0] || cfg.Publish.Templates[1] != want[1] {
		t.Errorf("publish.templates = %v, want %v", cfg.Publish.Templates, want)
	}
	if cfg.Publish.SlotName != "vocabData" {
		t.Errorf("publish.slot_name = %q", cfg.Publish.SlotName)
	}
	if cfg.Log.Format != "auto" {
		t.Errorf("log.format = %q, want auto", cfg.Log.Format)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	_, err := Load("/nonexistent/vocab.yaml")
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_EnvPathNotFound(t *testing.T) {
	t.Setenv("VOCAB_CONFIG_PATH", "/nonexistent/vocab.yaml")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for missing VOCAB_CONFIG_PATH file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func validConfig() *Config {
	return &Config{
		Snapshot: SnapshotConfig{Path: "vocab_data.json"},
		Lookup: LookupConfig{
			BaseURL:     "https://api.dictionaryapi.dev/api/v2/entries/en",
			Timeout:     10 * time.Second,
			MaxAttempts: 3,
			Backoff:     time.Second,
		},
		Resolver: ResolverConfig{
			CheckpointEvery:     50,
			PaceEvery:           5,
			PaceDelay:           500 * time.Millisecond,
			MaxDefinitionLength: 100,
		},
		Review: ReviewConfig{ExportPath: "words_need_review.txt"},
		Publish: PublishConfig{
			ShardDir:  "vocab_by_letter",
			Templates: []string{"student-version.html", "teacher-version.html"},
			SlotName:  "vocabData",
		},
		Log: LogConfig{Level: "info", Format: "auto"},
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty snapshot path", func(c *Config) { c.Snapshot.Path = "  " }},
		{"zero max attempts", func(c *Config) { c.Lookup.MaxAttempts = 0 }},
		{"zero backoff", func(c *Config) { c.Lookup.Backoff = 0 }},
		{"negative timeout", func(c *Config) { c.Lookup.Timeout = -time.Second }},
		{"enabled without base url", func(c *Config) { c.Lookup.BaseURL = "" }},
		{"zero checkpoint interval", func(c *Config) { c.Resolver.CheckpointEvery = 0 }},
		{"negative pace interval", func(c *Config) { c.Resolver.PaceEvery = -1 }},
		{"zero pace interval", func(c *Config) { c.Resolver.PaceEvery = 0 }},
		{"negative pace delay", func(c *Config) { c.Resolver.PaceDelay = -time.Millisecond }},
		{"definition length too small", func(c *Config) { c.Resolver.MaxDefinitionLength = 3 }},
		{"empty export path", func(c *Config) { c.Review.ExportPath = "" }},
		{"empty shard dir", func(c *Config) { c.Publish.ShardDir = "" }},
		{"slot name with dot", func(c *Config) { c.Publish.SlotName = "window.vocab" }},
		{"slot name starting with digit", func(c *Config) { c.Publish.SlotName = "1data" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_DisabledLookupNeedsNoBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Lookup.Disabled = true
	cfg.Lookup.BaseURL = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TrimsTemplateList(t *testing.T) {
	cfg := validConfig()
	cfg.Publish.Templates = []string{" a.html ", "", "b.html"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Publish.Templates) != 2 || cfg.Publish.Templates[0] != "a.html" || cfg.Publish.Templates[1] != "b.html" {
		t.Errorf("templates = %q, want [a.html b.html]", cfg.Publish.Templates)
	}
}

func TestLoad_SwitchesOffFromYAML(t *testing.T) {
	t.Setenv("VOCAB_LOOKUP_DISABLED", "")
	t.Setenv("VOCAB_PACING_DISABLED", "")
	path := writeYAML(t, t.TempDir(), `
lookup:
  disabled: true
resolver:
  pacing_disabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Lookup.Disabled {
		t.Error("lookup.disabled: true in YAML must survive defaults")
	}
	if !cfg.Resolver.PacingDisabled {
		t.Error("resolver.pacing_disabled: true in YAML must survive defaults")
	}
}

func TestLoad_SwitchesDefaultOn(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lookup.Disabled || cfg.Resolver.PacingDisabled {
		t.Errorf("lookup.disabled=%v pacing_disabled=%v, want both false",
			cfg.Lookup.Disabled, cfg.Resolver.PacingDisabled)
	}
}

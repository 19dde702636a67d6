package config

import "time"

// Config is the root application configuration.
type Config struct {
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Resolver ResolverConfig `yaml:"resolver"`
	Curated  CuratedConfig  `yaml:"curated"`
	Review   ReviewConfig   `yaml:"review"`
	Publish  PublishConfig  `yaml:"publish"`
	Log      LogConfig      `yaml:"log"`
}

// SnapshotConfig holds the location of the vocabulary snapshot.
type SnapshotConfig struct {
	Path string `yaml:"path" env:"VOCAB_SNAPSHOT_PATH" env-default:"vocab_data.json"`
}

// LookupConfig holds remote dictionary settings.
// Switches are phrased as "disabled" so that false, the YAML zero value,
// is also the default.
type LookupConfig struct {
	Disabled    bool          `yaml:"disabled"     env:"VOCAB_LOOKUP_DISABLED"`
	BaseURL     string        `yaml:"base_url"     env:"VOCAB_LOOKUP_BASE_URL"     env-default:"https://api.dictionaryapi.dev/api/v2/entries/en"`
	Timeout     time.Duration `yaml:"timeout"      env:"VOCAB_LOOKUP_TIMEOUT"      env-default:"10s"`
	MaxAttempts int           `yaml:"max_attempts" env:"VOCAB_LOOKUP_MAX_ATTEMPTS" env-default:"3"`
	Backoff     time.Duration `yaml:"backoff"      env:"VOCAB_LOOKUP_BACKOFF"      env-default:"1s"`
}

// ResolverConfig holds resolver pacing and checkpoint parameters.
type ResolverConfig struct {
	CheckpointEvery     int           `yaml:"checkpoint_every"      env:"VOCAB_CHECKPOINT_EVERY"      env-default:"50"`
	PacingDisabled      bool          `yaml:"pacing_disabled"       env:"VOCAB_PACING_DISABLED"`
	PaceEvery           int           `yaml:"pace_every"            env:"VOCAB_PACE_EVERY"            env-default:"5"`
	PaceDelay           time.Duration `yaml:"pace_delay"            env:"VOCAB_PACE_DELAY"            env-default:"500ms"`
	MaxDefinitionLength int           `yaml:"max_definition_length" env:"VOCAB_MAX_DEFINITION_LENGTH" env-default:"100"`
}

// CuratedConfig points at optional overrides of the embedded meaning tables.
// Empty paths select the embedded tables.
type CuratedConfig struct {
	LocalMeaningsPath  string `yaml:"local_meanings_path"  env:"VOCAB_LOCAL_MEANINGS_PATH"`
	ReviewMeaningsPath string `yaml:"review_meanings_path" env:"VOCAB_REVIEW_MEANINGS_PATH"`
}

// ReviewConfig holds reviewer output settings.
type ReviewConfig struct {
	ExportPath string `yaml:"export_path" env:"VOCAB_REVIEW_EXPORT_PATH" env-default:"words_need_review.txt"`
}

// PublishConfig holds shard and template settings.
type PublishConfig struct {
	ShardDir  string   `yaml:"shard_dir" env:"VOCAB_SHARD_DIR" env-default:"vocab_by_letter"`
	Templates []string `yaml:"templates" env:"VOCAB_TEMPLATES" env-default:"student-version.html,teacher-version.html" env-separator:","`
	SlotName  string   `yaml:"slot_name" env:"VOCAB_SLOT_NAME" env-default:"vocabData"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"auto"`
}

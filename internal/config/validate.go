package config

import (
	"fmt"
	"regexp"
	"strings"
)

var slotNameRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Snapshot.Path) == "" {
		return fmt.Errorf("snapshot.path is required")
	}

	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if err := c.Resolver.validate(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}

	if strings.TrimSpace(c.Review.ExportPath) == "" {
		return fmt.Errorf("review.export_path is required")
	}

	if err := c.Publish.validate(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	switch c.Log.Format {
	case "json", "text", "auto":
	default:
		return fmt.Errorf("log.format must be json, text or auto (got %q)", c.Log.Format)
	}

	return nil
}

func (l *LookupConfig) validate() error {
	if l.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", l.MaxAttempts)
	}
	if l.Backoff <= 0 {
		return fmt.Errorf("backoff must be > 0 (got %s)", l.Backoff)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", l.Timeout)
	}
	if !l.Disabled && strings.TrimSpace(l.BaseURL) == "" {
		return fmt.Errorf("base_url is required when lookup is enabled")
	}
	return nil
}

func (r *ResolverConfig) validate() error {
	if r.CheckpointEvery <= 0 {
		return fmt.Errorf("checkpoint_every must be > 0 (got %d)", r.CheckpointEvery)
	}
	if r.PaceEvery <= 0 {
		return fmt.Errorf("pace_every must be > 0 (got %d); set pacing_disabled to turn pacing off", r.PaceEvery)
	}
	if r.PaceDelay < 0 {
		return fmt.Errorf("pace_delay must be >= 0 (got %s)", r.PaceDelay)
	}
	if r.MaxDefinitionLength <= 3 {
		return fmt.Errorf("max_definition_length must be > 3 (got %d)", r.MaxDefinitionLength)
	}
	return nil
}

func (p *PublishConfig) validate() error {
	if strings.TrimSpace(p.ShardDir) == "" {
		return fmt.Errorf("shard_dir is required")
	}
	templates := p.Templates[:0]
	for _, t := range p.Templates {
		if t = strings.TrimSpace(t); t != "" {
			templates = append(templates, t)
		}
	}
	p.Templates = templates
	if !slotNameRe.MatchString(p.SlotName) {
		return fmt.Errorf("slot_name must be a JavaScript identifier (got %q)", p.SlotName)
	}
	return nil
}

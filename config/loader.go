package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SWINGSCAN_CONFIG is set
//  3. env (prefix SWINGSCAN_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SWINGSCAN_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Env keys like SWINGSCAN_SEGMENTATION_MODE map to segmentation_mode;
	// underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("SWINGSCAN_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "swingscan_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Engine != "tesseract" && cfg.Engine != "vision" {
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}
	if cfg.UpscaleHeight <= 0 {
		return nil, fmt.Errorf("upscale_height must be positive, got %d", cfg.UpscaleHeight)
	}
	if cfg.TimeoutMS < 0 {
		return nil, fmt.Errorf("timeout_ms must not be negative, got %d", cfg.TimeoutMS)
	}
	return &cfg, nil
}

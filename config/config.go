// Package config defines process configuration for the shotscan CLI and
// loading from file/env. Library users construct pipelines directly; this
// package only feeds the command-line surface.
package config

import (
	"github.com/fairwaylab/swingscan/ocr"
	"github.com/fairwaylab/swingscan/preprocess"
)

// Config contains process configuration.
type Config struct {
	// Engine selects the recognition provider: "tesseract" or "vision".
	Engine string `koanf:"engine"`

	// Languages lists recognizer trained-data hints.
	Languages []string `koanf:"languages"`

	// Whitelist restricts the recognizer character set.
	Whitelist string `koanf:"whitelist"`

	// SegmentationMode is the Tesseract page segmentation mode.
	SegmentationMode int `koanf:"segmentation_mode"`

	// DPI is the effective capture resolution hint; 0 leaves it unset.
	DPI int `koanf:"dpi"`

	// UpscaleHeight is the minimum preprocessed image height.
	UpscaleHeight int `koanf:"upscale_height"`

	// TimeoutMS bounds one capture's processing; 0 disables the deadline.
	// The pipeline itself never times out, so this is the only latency bound.
	TimeoutMS int `koanf:"timeout_ms"`
}

// New returns the defaults tuned for launch monitor displays.
func New() *Config {
	return &Config{
		Engine:           "tesseract",
		Languages:        []string{"eng"},
		Whitelist:        ocr.DefaultWhitelist,
		SegmentationMode: ocr.DefaultSegmentationMode,
		UpscaleHeight:    preprocess.DefaultTargetHeight,
	}
}

// RecognizeConfig converts the loaded values into the immutable recognizer
// configuration the pipeline carries.
func (c *Config) RecognizeConfig() ocr.RecognizeConfig {
	return ocr.RecognizeConfig{
		Whitelist:        c.Whitelist,
		SegmentationMode: c.SegmentationMode,
		Languages:        append([]string(nil), c.Languages...),
		DPI:              c.DPI,
	}
}

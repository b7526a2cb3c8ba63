package ocr

// DefaultWhitelist covers digits, sign and decimal characters, and the unit
// glyphs printed on launch monitor displays (mph, °, ft, /s).
const DefaultWhitelist = "0123456789.-+mph°ft/s"

// DefaultSegmentationMode is Tesseract PSM 6: assume a single uniform block
// of text.
const DefaultSegmentationMode = 6

// RecognizeConfig is the immutable recognizer configuration built once at
// pipeline construction. It is copied into every Input rather than held as
// process-global state.
type RecognizeConfig struct {
	// Whitelist restricts the recognizer character set. Empty keeps the
	// engine default (not recommended for display readouts).
	Whitelist string
	// SegmentationMode selects the Tesseract page segmentation mode.
	SegmentationMode int
	// Languages lists trained-data hints, e.g. "eng".
	Languages []string
	// DPI is the effective capture resolution; zero means unknown.
	DPI int
}

// DefaultRecognizeConfig returns the configuration tuned for launch monitor
// displays.
func DefaultRecognizeConfig() RecognizeConfig {
	return RecognizeConfig{
		Whitelist:        DefaultWhitelist,
		SegmentationMode: DefaultSegmentationMode,
		Languages:        []string{"eng"},
	}
}

// Options expands the configuration into input options.
func (c RecognizeConfig) Options() []InputOption {
	opts := make([]InputOption, 0, 4)
	if c.Whitelist != "" {
		opts = append(opts, WithTesseractWhitelist(c.Whitelist))
	}
	if c.SegmentationMode > 0 {
		opts = append(opts, WithTesseractPSM(c.SegmentationMode))
	}
	if len(c.Languages) > 0 {
		opts = append(opts, WithLanguages(c.Languages...))
	}
	if c.DPI > 0 {
		opts = append(opts, WithDPI(c.DPI))
	}
	return opts
}

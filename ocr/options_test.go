package ocr

import "testing"

func TestTesseractOptions(t *testing.T) {
	in := Input{}
	WithTesseractPSM(6)(&in)
	if got := in.Metadata["tessedit_pageseg_mode"]; got != "6" {
		t.Fatalf("expected PSM to be set, got %q", got)
	}
	WithTesseractWhitelist("0123456789.")(&in)
	if got := in.Metadata["tessedit_char_whitelist"]; got != "0123456789." {
		t.Fatalf("expected whitelist to be set, got %q", got)
	}
}

func TestRecognizeConfigOptions(t *testing.T) {
	cfg := DefaultRecognizeConfig()
	in := Input{}
	for _, opt := range cfg.Options() {
		opt(&in)
	}
	if got := in.Metadata["tessedit_char_whitelist"]; got != DefaultWhitelist {
		t.Fatalf("unexpected whitelist: %q", got)
	}
	if got := in.Metadata["tessedit_pageseg_mode"]; got != "6" {
		t.Fatalf("unexpected segmentation mode: %q", got)
	}
	if len(in.Languages) != 1 || in.Languages[0] != "eng" {
		t.Fatalf("unexpected languages: %+v", in.Languages)
	}
	if in.DPI != 0 {
		t.Fatalf("default config must not force a dpi, got %d", in.DPI)
	}
}

func TestRecognizeConfigZeroValuesOmitted(t *testing.T) {
	in := Input{}
	for _, opt := range (RecognizeConfig{}).Options() {
		opt(&in)
	}
	if len(in.Metadata) != 0 {
		t.Fatalf("empty config must set no metadata, got %+v", in.Metadata)
	}
	if len(in.Languages) != 0 {
		t.Fatalf("empty config must set no languages, got %+v", in.Languages)
	}
}

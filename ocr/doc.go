package ocr

// Package ocr defines the abstraction layer for plugging OCR engines into
// the capture pipeline. The interfaces are intentionally small and
// transport-agnostic so engines can be backed by native libraries (the
// Tesseract default) or remote APIs (Cloud Vision) without leaking
// provider-specific concerns into callers. The only engine-specific knobs
// (character whitelist, page segmentation) travel as input metadata.

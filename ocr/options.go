package ocr

import "strconv"

// WithTesseractPSM sets the page segmentation mode (PSM) variable for Tesseract.
// Mode 6, a single uniform block, suits compact numeric displays.
func WithTesseractPSM(mode int) InputOption {
	return func(in *Input) {
		if in.Metadata == nil {
			in.Metadata = make(map[string]string)
		}
		in.Metadata["tessedit_pageseg_mode"] = strconv.Itoa(mode)
	}
}

// WithTesseractWhitelist restricts recognition to the provided characters.
// This is the main accuracy lever for display readouts: without it the
// recognizer substitutes visually similar letters for digits.
func WithTesseractWhitelist(chars string) InputOption {
	return func(in *Input) {
		if in.Metadata == nil {
			in.Metadata = make(map[string]string)
		}
		in.Metadata["tessedit_char_whitelist"] = chars
	}
}

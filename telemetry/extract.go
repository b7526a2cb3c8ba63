// Package telemetry turns raw recognizer output into an ordered sequence of
// numeric values.
//
// Extraction is regex driven: unit-suffixed patterns run first in a fixed
// priority order, then a generic signed-decimal pattern over the same text.
// The matches are concatenated in evaluation order, so a number printed with
// a unit appears twice in the sequence (once per pattern family). That
// duplication is part of the contract; callers must not assume uniqueness.
package telemetry

import (
	"regexp"
	"strconv"
	"strings"
)

// confusions undoes the recognizer substitutions seen on seven-segment style
// digits: letter O for zero and l/I for one. With the character whitelist in
// place the only letters in the text belong to unit markers, so the global
// replace is safe. Applying it twice is a no-op.
var confusions = strings.NewReplacer(
	"O", "0",
	"o", "0",
	"l", "1",
	"I", "1",
)

// unitPatterns match a number immediately followed by its unit marker, in
// priority order. Each keeps the number in its sole capture group.
var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*mph`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*ft`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*°`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*rpm`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*/s`),
}

// genericPattern catches any signed decimal without a recognized unit.
var genericPattern = regexp.MustCompile(`-?\d+\.?\d*`)

// Normalize rewrites common recognizer confusions in text. Idempotent.
func Normalize(text string) string {
	return confusions.Replace(text)
}

// ExtractNumbers parses raw recognizer text into the ordered numeric
// sequence. The result is never nil but may be empty. Matches that fail
// float conversion are dropped silently; malformed numbers (two decimal
// points, broken exponents) are excluded rather than repaired.
func ExtractNumbers(text string) []float64 {
	text = Normalize(text)
	nums := make([]float64, 0, 8)
	for _, p := range unitPatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				nums = append(nums, v)
			}
		}
	}
	for _, m := range genericPattern.FindAllString(text, -1) {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			nums = append(nums, v)
		}
	}
	return nums
}

// Package preprocess normalizes display photographs into high-contrast
// binary images suited to character recognition.
//
// The transform is deterministic and stateless: grayscale conversion, an
// edge-preserving bilateral smoothing pass, adaptive Gaussian thresholding
// (display photos have uneven illumination, so a single global threshold
// does not hold across the frame), a small morphological closing to
// reconnect strokes broken by thresholding, and a cubic upscale when the
// capture is too short for reliable glyph shapes.
package preprocess

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageDecode marks input bytes that could not be decoded as an image.
var ErrImageDecode = errors.New("image decode failed")

const (
	// DefaultTargetHeight is the minimum height recognizers handle well;
	// shorter captures are upscaled to it.
	DefaultTargetHeight = 500

	bilateralDiameter = 9
	bilateralSigma    = 75.0
	thresholdBlock    = 11
	thresholdOffset   = 2
	closingKernel     = 2
)

// Preprocessor holds the normalization parameters. The zero value is not
// usable; construct with New.
type Preprocessor struct {
	targetHeight int
}

// New returns a Preprocessor with the default target height.
func New() *Preprocessor {
	return &Preprocessor{targetHeight: DefaultTargetHeight}
}

// NewWithTargetHeight returns a Preprocessor upscaling to the given height.
// Non-positive values fall back to the default.
func NewWithTargetHeight(h int) *Preprocessor {
	if h <= 0 {
		h = DefaultTargetHeight
	}
	return &Preprocessor{targetHeight: h}
}

// Process decodes data and runs the full normalization chain. It is a pure
// transform: nothing is cached between calls and concurrent use is safe.
func (p *Preprocessor) Process(data []byte) (*image.Gray, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	gray := toGray(imaging.Grayscale(img))
	smoothed := bilateral(gray, bilateralDiameter, bilateralSigma, bilateralSigma)
	bin := adaptiveThreshold(smoothed, thresholdBlock, thresholdOffset)
	closed := closing(bin, closingKernel)
	if closed.Bounds().Dy() < p.targetHeight {
		closed = toGray(imaging.Resize(closed, 0, p.targetHeight, imaging.CatmullRom))
	}
	return closed, nil
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g.Set(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return g
}

// bilateral smooths flat regions while leaving intensity edges (digit
// strokes) intact. Weights combine spatial distance and intensity distance;
// pixels across an edge contribute almost nothing to the average.
func bilateral(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	radius := diameter / 2
	space := make([][]float64, 2*radius+1)
	for dy := -radius; dy <= radius; dy++ {
		row := make([]float64, 2*radius+1)
		for dx := -radius; dx <= radius; dx++ {
			row[dx+radius] = math.Exp(-float64(dx*dx+dy*dy) / (2 * sigmaSpace * sigmaSpace))
		}
		space[dy+radius] = row
	}
	var rng [256]float64
	for d := 0; d < 256; d++ {
		rng[d] = math.Exp(-float64(d*d) / (2 * sigmaColor * sigmaColor))
	}

	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := src.GrayAt(x, y).Y
			var sum, norm float64
			for dy := -radius; dy <= radius; dy++ {
				sy := clamp(y+dy, 0, h-1)
				for dx := -radius; dx <= radius; dx++ {
					sx := clamp(x+dx, 0, w-1)
					v := src.GrayAt(sx, sy).Y
					d := int(v) - int(center)
					if d < 0 {
						d = -d
					}
					wgt := space[dy+radius][dx+radius] * rng[d]
					sum += wgt * float64(v)
					norm += wgt
				}
			}
			dst.SetGray(x, y, color.Gray{Y: uint8(sum/norm + 0.5)})
		}
	}
	return dst
}

// adaptiveThreshold binarizes against a Gaussian-weighted local mean rather
// than one global cutoff. A pixel survives (255) when it exceeds its local
// mean minus offset.
func adaptiveThreshold(src *image.Gray, block, offset int) *image.Gray {
	mean := gaussianMean(src, block)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if float64(src.GrayAt(x, y).Y) > mean[y*w+x]-float64(offset) {
				dst.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return dst
}

// gaussianMean computes the local Gaussian-weighted mean with a separable
// block-sized kernel. Sigma follows the usual derivation from kernel size.
func gaussianMean(src *image.Gray, block int) []float64 {
	radius := block / 2
	sigma := 0.3*(float64(block-1)*0.5-1) + 0.8
	kernel := make([]float64, 2*radius+1)
	var ksum float64
	for i := -radius; i <= radius; i++ {
		kernel[i+radius] = math.Exp(-float64(i*i) / (2 * sigma * sigma))
		ksum += kernel[i+radius]
	}
	for i := range kernel {
		kernel[i] /= ksum
	}

	w, h := src.Rect.Dx(), src.Rect.Dy()
	horiz := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i := -radius; i <= radius; i++ {
				sum += kernel[i+radius] * float64(src.GrayAt(clamp(x+i, 0, w-1), y).Y)
			}
			horiz[y*w+x] = sum
		}
	}
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for i := -radius; i <= radius; i++ {
				sum += kernel[i+radius] * horiz[clamp(y+i, 0, h-1)*w+x]
			}
			out[y*w+x] = sum
		}
	}
	return out
}

// closing runs dilate-then-erode with a size×size structuring element,
// bridging single-pixel gaps left in character strokes by thresholding.
func closing(src *image.Gray, size int) *image.Gray {
	return erode(dilate(src, size), size)
}

func dilate(src *image.Gray, size int) *image.Gray {
	return morph(src, size, func(a, b uint8) bool { return a > b })
}

func erode(src *image.Gray, size int) *image.Gray {
	return morph(src, size, func(a, b uint8) bool { return a < b })
}

func morph(src *image.Gray, size int, better func(a, b uint8) bool) *image.Gray {
	lo := -(size / 2)
	hi := (size - 1) / 2
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := src.GrayAt(clamp(x+lo, 0, w-1), clamp(y+lo, 0, h-1)).Y
			for dy := lo; dy <= hi; dy++ {
				for dx := lo; dx <= hi; dx++ {
					v := src.GrayAt(clamp(x+dx, 0, w-1), clamp(y+dy, 0, h-1)).Y
					if better(v, best) {
						best = v
					}
				}
			}
			dst.SetGray(x, y, color.Gray{Y: best})
		}
	}
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

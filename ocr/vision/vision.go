// Package vision provides a Google Cloud Vision backed recognition engine.
// It speaks the same ocr.Engine contract as the Tesseract default, letting
// deployments without a local tesseract installation run recognition against
// the Vision API instead. Tesseract-specific metadata (whitelist, PSM) is
// ignored; the downstream character normalization absorbs the difference.
package vision

import (
	"context"
	"fmt"
	"math"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/fairwaylab/swingscan/ocr"
)

// Engine implements ocr.Engine using the Vision ImageAnnotator API.
type Engine struct {
	client *gvision.ImageAnnotatorClient
}

// Compile-time check that Engine satisfies the provider contract.
var _ ocr.Engine = (*Engine)(nil)

// New creates a Vision engine using application default credentials.
func New(ctx context.Context) (*Engine, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}
	return &Engine{client: client}, nil
}

// Close releases the underlying API client.
func (e *Engine) Close() error {
	return e.client.Close()
}

func (e *Engine) Name() string { return "vision" }

// Recognize submits the capture for text detection.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	imgData, err := ocr.CropToRegion(in.Image, in.Region)
	if err != nil {
		return ocr.Result{}, err
	}
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: imgData},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_TEXT_DETECTION},
				},
				ImageContext: imageContext(in.Languages),
			},
		},
	}
	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return ocr.Result{}, fmt.Errorf("vision API request: %w", err)
	}
	if len(resp.Responses) == 0 {
		return ocr.Result{InputID: in.ID}, nil
	}
	annotated := resp.Responses[0]
	if annotated.Error != nil {
		return ocr.Result{}, fmt.Errorf("vision API error: %s", annotated.Error.Message)
	}
	return resultFromAnnotations(in, annotated.TextAnnotations), nil
}

func imageContext(langs []string) *visionpb.ImageContext {
	if len(langs) == 0 {
		return nil
	}
	return &visionpb.ImageContext{LanguageHints: langs}
}

// resultFromAnnotations maps the Vision response shape onto the engine
// contract. The first annotation carries the full text; the rest are
// individual words with bounding polygons.
func resultFromAnnotations(in ocr.Input, annotations []*visionpb.EntityAnnotation) ocr.Result {
	res := ocr.Result{InputID: in.ID}
	if len(annotations) == 0 {
		return res
	}
	full := annotations[0]
	res.PlainText = full.Description
	res.Language = full.Locale

	words := make([]ocr.TextWord, 0, len(annotations)-1)
	var sum float64
	for _, a := range annotations[1:] {
		w := ocr.TextWord{
			Text:       a.Description,
			Bounds:     regionFromPoly(a.BoundingPoly),
			Confidence: float64(a.Score),
		}
		sum += w.Confidence
		words = append(words, w)
	}
	var avg float64
	if len(words) > 0 {
		avg = sum / float64(len(words))
	}
	bounds := regionFromPoly(full.BoundingPoly)
	res.Blocks = []ocr.TextBlock{{
		Text:       full.Description,
		Bounds:     bounds,
		Lines:      []ocr.TextLine{{Text: full.Description, Bounds: bounds, Words: words, Confidence: avg}},
		Confidence: avg,
	}}
	return res
}

func regionFromPoly(poly *visionpb.BoundingPoly) ocr.Region {
	if poly == nil || len(poly.Vertices) == 0 {
		return ocr.Region{}
	}
	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, v := range poly.Vertices {
		minX = math.Min(minX, float64(v.X))
		minY = math.Min(minY, float64(v.Y))
		maxX = math.Max(maxX, float64(v.X))
		maxY = math.Max(maxY, float64(v.Y))
	}
	return ocr.Region{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

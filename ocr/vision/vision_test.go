package vision

import (
	"testing"

	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/fairwaylab/swingscan/ocr"
)

func poly(x0, y0, x1, y1 int32) *visionpb.BoundingPoly {
	return &visionpb.BoundingPoly{Vertices: []*visionpb.Vertex{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
}

func TestResultFromAnnotations(t *testing.T) {
	in := ocr.Input{ID: "cap-1"}
	annotations := []*visionpb.EntityAnnotation{
		{Description: "85.3 mph\n112 mph", Locale: "en", BoundingPoly: poly(0, 0, 200, 80)},
		{Description: "85.3", Score: 0.9, BoundingPoly: poly(0, 0, 60, 30)},
		{Description: "mph", Score: 0.7, BoundingPoly: poly(70, 0, 110, 30)},
	}
	res := resultFromAnnotations(in, annotations)
	if res.InputID != "cap-1" {
		t.Fatalf("unexpected input id: %s", res.InputID)
	}
	if res.PlainText != "85.3 mph\n112 mph" {
		t.Fatalf("unexpected plain text: %q", res.PlainText)
	}
	if res.Language != "en" {
		t.Fatalf("unexpected language: %s", res.Language)
	}
	if len(res.Blocks) != 1 || len(res.Blocks[0].Lines) != 1 {
		t.Fatalf("expected one block with one line, got %+v", res.Blocks)
	}
	words := res.Blocks[0].Lines[0].Words
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Text != "85.3" || words[0].Bounds.Width != 60 {
		t.Fatalf("unexpected first word: %+v", words[0])
	}
	if got := res.Blocks[0].Confidence; got < 0.79 || got > 0.81 {
		t.Fatalf("unexpected block confidence: %v", got)
	}
}

func TestResultFromAnnotationsEmpty(t *testing.T) {
	res := resultFromAnnotations(ocr.Input{ID: "cap-2"}, nil)
	if res.InputID != "cap-2" {
		t.Fatalf("unexpected input id: %s", res.InputID)
	}
	if res.PlainText != "" || len(res.Blocks) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestRegionFromPoly(t *testing.T) {
	r := regionFromPoly(poly(10, 20, 110, 70))
	want := ocr.Region{X: 10, Y: 20, Width: 100, Height: 50}
	if r != want {
		t.Fatalf("unexpected region: %+v", r)
	}
	if got := regionFromPoly(nil); !got.IsEmpty() {
		t.Fatalf("expected empty region for nil poly, got %+v", got)
	}
}

// Package pipeline orchestrates the capture-to-reading stages: image
// preprocessing, recognition, numeric extraction, and layout mapping.
//
// The pipeline is synchronous and stateless across invocations: each capture
// is processed start to finish on the calling goroutine, and independent
// pipelines (or concurrent calls on one pipeline) need no coordination. The
// recognition step is the sole potentially slow stage; callers needing
// bounded latency wrap ctx with a deadline; the pipeline itself never
// retries and has no internal timeout.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/fairwaylab/swingscan/layout"
	"github.com/fairwaylab/swingscan/observability"
	"github.com/fairwaylab/swingscan/ocr"
	"github.com/fairwaylab/swingscan/preprocess"
	"github.com/fairwaylab/swingscan/telemetry"
)

// ErrEngine marks recognition failures: the engine was unavailable or
// errored. Fatal for the capture being processed; the caller decides whether
// to retry with a fresh image.
var ErrEngine = errors.New("ocr engine failed")

// IsDecodeError reports whether err classifies as an unreadable input image.
func IsDecodeError(err error) bool { return errors.Is(err, preprocess.ErrImageDecode) }

// IsEngineError reports whether err classifies as a recognition engine
// failure.
func IsEngineError(err error) bool { return errors.Is(err, ErrEngine) }

// ShotReading is the pipeline output for one processed capture. It is
// created once per capture and never mutated afterwards; ownership passes
// entirely to the caller.
type ShotReading struct {
	// CaptureID identifies the processed image for correlation with stored
	// originals.
	CaptureID string `json:"capture_id"`
	// Display is the layout the fields were mapped against.
	Display string `json:"display"`
	// Fields maps every field of the requested layout to its value, nil when
	// the sequence ran out before reaching it.
	Fields map[layout.Field]*float64 `json:"fields"`
	// Confidence is the populated-field coverage in [0,1].
	Confidence float64 `json:"confidence"`
	// RawText is the recognizer output verbatim, kept for diagnostics.
	RawText string `json:"raw_text"`
	// Engine names the recognition provider that produced RawText.
	Engine string `json:"engine"`
	// Duration is the end-to-end processing time.
	Duration time.Duration `json:"duration_ns"`
}

// Pipeline wires the stages together. Construct with New; the zero value is
// not usable.
type Pipeline struct {
	pre    *preprocess.Preprocessor
	engine ocr.Engine
	cfg    ocr.RecognizeConfig
	logger observability.Logger
	tracer observability.Tracer
}

// Option configures a Pipeline at construction.
type Option func(*Pipeline)

// WithEngine selects the recognition engine. Default is the process default
// (Tesseract when its package is imported).
func WithEngine(e ocr.Engine) Option {
	return func(p *Pipeline) { p.engine = e }
}

// WithRecognizeConfig replaces the recognizer configuration. The value is
// copied; later mutation of cfg by the caller has no effect.
func WithRecognizeConfig(cfg ocr.RecognizeConfig) Option {
	return func(p *Pipeline) { p.cfg = cfg }
}

// WithPreprocessor replaces the image preprocessor.
func WithPreprocessor(pre *preprocess.Preprocessor) Option {
	return func(p *Pipeline) { p.pre = pre }
}

// WithLogger attaches a logger. Default is a no-op.
func WithLogger(l observability.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithTracer attaches a tracer. Default is a no-op.
func WithTracer(t observability.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}

// New constructs a pipeline with the display-tuned defaults.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		pre:    preprocess.New(),
		engine: ocr.DefaultEngine(),
		cfg:    ocr.DefaultRecognizeConfig(),
		logger: observability.NopLogger{},
		tracer: observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one capture through the full pipeline and maps the extracted
// sequence onto the given display layout. Stage failures abort the remaining
// stages and surface as a single classified error; no partial field mapping
// is produced on failure.
func (p *Pipeline) Process(ctx context.Context, imageData []byte, display layout.DisplayLayout) (*ShotReading, error) {
	start := time.Now()
	captureID := uuid.NewString()
	log := p.logger.With(
		observability.String("capture", captureID),
		observability.String("display", display.Name()),
	)

	ctx, span := p.tracer.StartSpan(ctx, "pipeline.process")
	defer span.Finish()
	span.SetTag("capture", captureID)
	span.SetTag("display", display.Name())

	bin, err := p.preprocessStage(ctx, imageData)
	if err != nil {
		span.SetError(err)
		log.Error("preprocess failed", observability.Error("err", err))
		return nil, err
	}

	raw, err := p.recognizeStage(ctx, captureID, display.Name(), bin)
	if err != nil {
		span.SetError(err)
		log.Error("recognition failed", observability.Error("err", err))
		return nil, err
	}

	seq := p.extractStage(ctx, raw.PlainText)
	fields := layout.Map(seq, display)
	populated := layout.Populated(fields)
	confidence := layout.Confidence(populated, display.Len())

	reading := &ShotReading{
		CaptureID:  captureID,
		Display:    display.Name(),
		Fields:     fields,
		Confidence: confidence,
		RawText:    raw.PlainText,
		Engine:     p.engine.Name(),
		Duration:   time.Since(start),
	}
	log.Info("processed capture",
		observability.Int("tokens", len(seq)),
		observability.Int("fields", populated),
		observability.Float64("confidence", confidence),
	)
	return reading, nil
}

func (p *Pipeline) preprocessStage(ctx context.Context, imageData []byte) (*image.Gray, error) {
	_, span := p.tracer.StartSpan(ctx, "pipeline.preprocess")
	defer span.Finish()
	bin, err := p.pre.Process(imageData)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	return bin, nil
}

func (p *Pipeline) recognizeStage(ctx context.Context, id, display string, img image.Image) (ocr.Result, error) {
	ctx, span := p.tracer.StartSpan(ctx, "pipeline.recognize")
	defer span.Finish()
	opts := append(p.cfg.Options(), ocr.WithDisplay(display))
	in, err := ocr.InputFromCapture(id, img, opts...)
	if err != nil {
		span.SetError(err)
		return ocr.Result{}, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	res, err := p.engine.Recognize(ctx, in)
	if err != nil {
		span.SetError(err)
		return ocr.Result{}, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return res, nil
}

func (p *Pipeline) extractStage(ctx context.Context, raw string) []float64 {
	_, span := p.tracer.StartSpan(ctx, "pipeline.extract")
	defer span.Finish()
	seq := telemetry.ExtractNumbers(raw)
	span.SetTag("tokens", len(seq))
	return seq
}

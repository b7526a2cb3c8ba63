// Command shotscan processes one launch monitor display photograph and
// prints the extracted shot reading as JSON.
//
// Usage:
//
//	shotscan -image shot.jpg -display oled
//	SWINGSCAN_ENGINE=vision shotscan -image tablet.png -display tablet
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fairwaylab/swingscan/config"
	"github.com/fairwaylab/swingscan/layout"
	"github.com/fairwaylab/swingscan/observability"
	"github.com/fairwaylab/swingscan/ocr"
	"github.com/fairwaylab/swingscan/ocr/vision"
	"github.com/fairwaylab/swingscan/pipeline"
	"github.com/fairwaylab/swingscan/preprocess"

	_ "github.com/fairwaylab/swingscan/ocr/tesseract"
)

type options struct {
	imagePath string
	display   string
	engine    string
	timeout   time.Duration
	verbose   bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shotscan: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "shotscan: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: shotscan -image <file> -display <oled|tablet> [flags]\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.imagePath, "image", "", "Path to the display photograph")
	flag.StringVar(&opts.display, "display", "oled", "Display surface: oled or tablet")
	flag.StringVar(&opts.engine, "engine", "", "Recognition engine override: tesseract or vision")
	flag.DurationVar(&opts.timeout, "timeout", 0, "Processing deadline (e.g. 30s); 0 uses the configured timeout_ms")
	flag.BoolVar(&opts.verbose, "v", false, "Log pipeline stages to stderr")
	flag.Parse()

	if opts.imagePath == "" {
		return options{}, fmt.Errorf("missing -image")
	}
	if _, ok := layout.ByName(opts.display); !ok {
		return options{}, fmt.Errorf("unknown display %q", opts.display)
	}
	return opts, nil
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.engine != "" {
		cfg.Engine = opts.engine
	}

	data, err := os.ReadFile(opts.imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	ctx := context.Background()
	timeout := opts.timeout
	if timeout == 0 && cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	engine, cleanup, err := buildEngine(ctx, cfg.Engine)
	if err != nil {
		return err
	}
	defer cleanup()

	popts := []pipeline.Option{
		pipeline.WithEngine(engine),
		pipeline.WithRecognizeConfig(cfg.RecognizeConfig()),
		pipeline.WithPreprocessor(preprocess.NewWithTargetHeight(cfg.UpscaleHeight)),
	}
	if opts.verbose {
		popts = append(popts, pipeline.WithLogger(observability.NewWriterLogger(os.Stderr)))
	}
	p := pipeline.New(popts...)

	display, _ := layout.ByName(opts.display)
	reading, err := p.Process(ctx, data, display)
	if err != nil {
		switch {
		case pipeline.IsDecodeError(err):
			return fmt.Errorf("image not decodable: %w", err)
		case pipeline.IsEngineError(err):
			return fmt.Errorf("recognition failed: %w", err)
		}
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(reading)
}

func buildEngine(ctx context.Context, name string) (ocr.Engine, func(), error) {
	switch name {
	case "vision":
		eng, err := vision.New(ctx)
		if err != nil {
			return nil, nil, err
		}
		return eng, func() { _ = eng.Close() }, nil
	default:
		// Tesseract is the registered process default.
		return ocr.DefaultEngine(), func() {}, nil
	}
}

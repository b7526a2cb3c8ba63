// Package observability defines the logging and tracing hooks the pipeline
// emits through. Defaults are no-ops; callers inject real implementations.
package observability

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type float64Field struct {
	key string
	val float64
}

func (f float64Field) Key() string        { return f.key }
func (f float64Field) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field      { return stringField{key, value} }
func Int(key string, value int) Field     { return intField{key, value} }
func Float64(key string, v float64) Field { return float64Field{key, v} }
func Error(key string, err error) Field   { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// WriterLogger is a minimal Logger writing one line per entry. Useful for
// the CLI; services wire their own implementation.
type WriterLogger struct {
	mu   sync.Mutex
	w    io.Writer
	base []Field
}

// NewWriterLogger returns a Logger appending formatted lines to w.
func NewWriterLogger(w io.Writer) *WriterLogger {
	return &WriterLogger{w: w}
}

func (l *WriterLogger) log(level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s", level, msg)
	for _, f := range l.base {
		fmt.Fprintf(l.w, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(l.w, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(l.w)
}

func (l *WriterLogger) Debug(msg string, fields ...Field) { l.log("DEBUG", msg, fields) }
func (l *WriterLogger) Info(msg string, fields ...Field)  { l.log("INFO", msg, fields) }
func (l *WriterLogger) Warn(msg string, fields ...Field)  { l.log("WARN", msg, fields) }
func (l *WriterLogger) Error(msg string, fields ...Field) { l.log("ERROR", msg, fields) }

func (l *WriterLogger) With(fields ...Field) Logger {
	base := append(append([]Field(nil), l.base...), fields...)
	return &WriterLogger{w: l.w, base: base}
}

// Tracer provides tracing hooks for pipeline stages.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a tracing span.
type Span interface {
	SetTag(key string, value interface{})
	SetError(err error)
	Finish()
}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, nopSpan{}
}

// NopTracer returns a tracer that does nothing.
func NopTracer() Tracer { return nopTracer{} }

type nopSpan struct{}

func (nopSpan) SetTag(string, interface{}) {}
func (nopSpan) SetError(error)             {}
func (nopSpan) Finish()                    {}

// Standard metric names emitted by the pipeline.
const (
	MetricPreprocessTime = "capture.preprocess.duration"
	MetricRecognizeTime  = "capture.recognize.duration"
	MetricExtractTime    = "capture.extract.duration"
	MetricTokenCount     = "capture.tokens.count"
	MetricFieldCount     = "capture.fields.count"
)

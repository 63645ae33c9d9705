// Package vqc provides a Go library for broadcast delivery quality checks.
//
// vqc probes a video with ffprobe, validates it against delivery standards,
// samples keyframes for on-screen text, runs the text through Tesseract OCR,
// and checks the result for spelling and grammar defects. The two analysis
// tracks are fused into a single pass/fail report.
//
// Basic usage:
//
//	checker, err := vqc.New(
//	    vqc.WithVocabulary([]string{"iconik", "mediasilo"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := checker.Check(ctx, "delivery_master.mp4", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s: %s (%d errors)\n",
//	    result.Filename, result.Status, result.TotalErrors)
package vqc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jerald6111/video-quality-checker/internal/config"
	"github.com/jerald6111/video-quality-checker/internal/discovery"
	"github.com/jerald6111/video-quality-checker/internal/ffprobe"
	"github.com/jerald6111/video-quality-checker/internal/lingo"
	"github.com/jerald6111/video-quality-checker/internal/ocr"
	"github.com/jerald6111/video-quality-checker/internal/processing"
	"github.com/jerald6111/video-quality-checker/internal/report"
	"github.com/jerald6111/video-quality-checker/internal/reporter"
	"github.com/jerald6111/video-quality-checker/internal/sampler"
)

// Re-exported types so callers can supply their own implementations without
// reaching into internal packages.
type (
	// Standards are the technical delivery requirements a file is checked
	// against.
	Standards = config.Standards

	// Reporter receives progress events during a check.
	Reporter = reporter.Reporter

	// Prober extracts stream metadata from a video file.
	Prober = ffprobe.Prober

	// OCREngine recognizes text in a grayscale frame.
	OCREngine = ocr.Engine

	// Segmenter splits extracted text into sentences for the grammar pass.
	Segmenter = lingo.Segmenter

	// SourceFactory opens a frame source for a video file.
	SourceFactory = sampler.SourceFactory
)

// DefaultStandards returns the broadcast delivery standards checked by
// default: 1080p minimum, standard frame rates, H.264 or ProRes.
func DefaultStandards() Standards {
	return config.DefaultStandards()
}

// Checker is the main entry point for quality checks.
type Checker struct {
	config *config.Config
	deps   processing.Deps
}

// Issue is one report error in caller-facing form.
type Issue struct {
	Type       string
	Timestamp  string
	Error      string
	Word       string
	Suggestion string
	Context    string
}

// Result contains the outcome of a single file check.
type Result struct {
	Filename        string
	Status          string
	Passed          bool
	TechnicalPassed bool
	ContentPassed   bool
	SpellingErrors  int
	GrammarErrors   int
	TotalErrors     int
	Issues          []Issue
	Recommendations []string

	// ReportJSON is the full fused report, serialized the way the HTTP API
	// returns it.
	ReportJSON json.RawMessage
}

// BatchResult contains the result of checking multiple files.
type BatchResult struct {
	Results     []Result
	PassedCount int
	FailedCount int
	TotalFiles  int
}

// Option configures the checker.
type Option func(*Checker)

// New creates a Checker with the given options.
func New(opts ...Option) (*Checker, error) {
	c := &Checker{config: config.NewConfig()}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// WithVocabulary supplies project terms the spelling pass accepts
// unconditionally. Matching is case-insensitive.
func WithVocabulary(words []string) Option {
	return func(c *Checker) {
		c.config.Vocabulary = words
	}
}

// WithMaxKeyframes bounds how many frames are sampled for text analysis.
func WithMaxKeyframes(n int) Option {
	return func(c *Checker) {
		c.config.MaxKeyframes = n
	}
}

// WithMinWordConfidence sets the OCR confidence cutoff. Words at or below
// it are discarded.
func WithMinWordConfidence(conf int) Option {
	return func(c *Checker) {
		c.config.MinWordConfidence = conf
	}
}

// WithStandards replaces the technical delivery standards.
func WithStandards(std Standards) Option {
	return func(c *Checker) {
		c.config.Standards = std
	}
}

// WithLogDirectory enables per-run file logging in dir.
func WithLogDirectory(dir string) Option {
	return func(c *Checker) {
		c.config.LogDir = dir
	}
}

// WithProber replaces the ffprobe-backed metadata prober.
func WithProber(p Prober) Option {
	return func(c *Checker) {
		c.deps.Prober = p
	}
}

// WithOCREngine replaces the Tesseract-backed OCR engine.
func WithOCREngine(e OCREngine) Option {
	return func(c *Checker) {
		c.deps.Engine = e
	}
}

// WithSegmenter replaces the rule-based sentence segmenter used by the
// grammar pass. Passing nil disables grammar checking entirely.
func WithSegmenter(s Segmenter) Option {
	return func(c *Checker) {
		if s == nil {
			s = lingo.NopSegmenter{}
		}
		c.deps.Segmenter = s
	}
}

// WithSourceFactory replaces the ffmpeg-backed frame source.
func WithSourceFactory(f SourceFactory) Option {
	return func(c *Checker) {
		c.deps.OpenSource = f
	}
}

// Check runs the full quality check on a single video file. rep may be nil
// to discard progress events.
func (c *Checker) Check(ctx context.Context, input string, rep Reporter) (*Result, error) {
	outcomes, err := processing.CheckVideos(ctx, c.config, c.deps, []string{input}, rep)
	if err != nil {
		return nil, err
	}
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("no files were checked")
	}
	return newResult(outcomes[0])
}

// CheckBatch runs quality checks over multiple files, continuing past
// per-file failures.
func (c *Checker) CheckBatch(ctx context.Context, inputs []string, rep Reporter) (*BatchResult, error) {
	outcomes, err := processing.CheckVideos(ctx, c.config, c.deps, inputs, rep)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{TotalFiles: len(inputs)}
	for _, o := range outcomes {
		r, err := newResult(o)
		if err != nil {
			return nil, err
		}
		batch.Results = append(batch.Results, *r)
		if r.Passed {
			batch.PassedCount++
		} else {
			batch.FailedCount++
		}
	}
	return batch, nil
}

// FindVideos expands a file or directory path into the video files it
// refers to.
func FindVideos(path string) ([]string, error) {
	result, err := discovery.Resolve(path)
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

func newResult(o processing.FileOutcome) (*Result, error) {
	raw, err := json.Marshal(o.Report)
	if err != nil {
		return nil, fmt.Errorf("serializing report: %w", err)
	}

	issues := make([]Issue, len(o.Report.Errors))
	spelling, grammar := 0, 0
	for i, e := range o.Report.Errors {
		issues[i] = Issue{
			Type:       e.Type,
			Timestamp:  e.Timestamp,
			Error:      e.Error,
			Word:       e.Word,
			Suggestion: e.Suggestion,
			Context:    e.Context,
		}
		switch e.Type {
		case report.TypeSpelling:
			spelling++
		case report.TypeGrammar:
			grammar++
		}
	}

	recs := make([]string, len(o.Report.Recommendations))
	for i, r := range o.Report.Recommendations {
		recs[i] = fmt.Sprintf("%s: %s", r.Issue, r.Recommendation)
	}

	return &Result{
		Filename:        o.Filename,
		Status:          o.Report.Status,
		Passed:          o.Report.Passed(),
		TechnicalPassed: o.Report.Summary.TechnicalPassed,
		ContentPassed:   o.Report.Summary.ContentPassed,
		SpellingErrors:  spelling,
		GrammarErrors:   grammar,
		TotalErrors:     o.Report.Summary.TotalErrors,
		Issues:          issues,
		Recommendations: recs,
		ReportJSON:      raw,
	}, nil
}

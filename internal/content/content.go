// Package content runs the on-screen text pipeline for one video: sample
// frames, extract text, check the text for defects. The pipeline degrades
// rather than fails: missing keyframes or absent text are warnings on a
// passing result, not errors.
package content

import (
	"context"
	"strings"

	"github.com/jerald6111/video-quality-checker/internal/lingo"
	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/ocr"
	"github.com/jerald6111/video-quality-checker/internal/sampler"
	"github.com/jerald6111/video-quality-checker/internal/util"
)

// Status values for a content check.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Extraction is the text recovered from one analyzed frame.
type Extraction struct {
	ocr.Result
	// Timestamp is the frame position in seconds.
	Timestamp float64
}

// Result is the outcome of the content pipeline for one video.
type Result struct {
	Status             string
	Errors             []lingo.Defect
	TextFound          bool
	ExtractedTextCount int
	TotalKeyframes     int
	Warnings           []string
}

// Passed reports whether the content check passed.
func (r *Result) Passed() bool { return r.Status == StatusPass }

// Pipeline wires the sampler, extractor and checker together.
type Pipeline struct {
	sampler    *sampler.Sampler
	extractor  *ocr.Extractor
	checker    *lingo.Checker
	openSource sampler.SourceFactory
	logger     *logging.Logger

	// OnFrame, when set, is called after each frame's text extraction with
	// the frame's ordinal, the total frame count and the extraction result.
	OnFrame func(analyzed, total int, ext Extraction)
}

// NewPipeline builds a content pipeline from its stages.
func NewPipeline(s *sampler.Sampler, e *ocr.Extractor, c *lingo.Checker, open sampler.SourceFactory, logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Global()
	}
	return &Pipeline{sampler: s, extractor: e, checker: c, openSource: open, logger: logger}
}

// Check runs the full pipeline over one video file. It never returns an
// error: a video that cannot be opened or yields no analyzable frames passes
// with a warning, matching the review-queue expectation that only confirmed
// text defects block delivery.
func (p *Pipeline) Check(ctx context.Context, path string) Result {
	frames := p.sampleFrames(ctx, path)
	if len(frames) == 0 {
		return Result{
			Status:   StatusPass,
			Warnings: []string{"No keyframes extracted for text analysis"},
		}
	}

	var extractions []Extraction
	for i, f := range frames {
		r := p.extractor.Extract(ctx, f.Image)
		ext := Extraction{Result: r, Timestamp: f.Timestamp}
		if p.OnFrame != nil {
			p.OnFrame(i+1, len(frames), ext)
		}
		if strings.TrimSpace(r.Text) != "" {
			extractions = append(extractions, ext)
		}
	}
	if len(extractions) == 0 {
		return Result{
			Status:         StatusPass,
			TotalKeyframes: len(frames),
			Warnings:       []string{"No text detected in video frames"},
		}
	}

	var defects []lingo.Defect
	for _, ext := range extractions {
		ts := util.FormatTimestamp(ext.Timestamp)
		defects = append(defects, p.checker.Check(ext.Text, ts)...)
	}

	status := StatusPass
	if len(defects) > 0 {
		status = StatusFail
	}
	p.logger.Info("content check completed",
		"status", status,
		"defects", len(defects),
		"frames_analyzed", len(frames),
		"frames_with_text", len(extractions))

	return Result{
		Status:             status,
		Errors:             defects,
		TextFound:          true,
		ExtractedTextCount: len(extractions),
		TotalKeyframes:     len(frames),
	}
}

// sampleFrames opens the source and samples frames, containing open failures
// to an empty slice.
func (p *Pipeline) sampleFrames(ctx context.Context, path string) []sampler.Frame {
	src, err := p.openSource(ctx, path)
	if err != nil {
		p.logger.Warn("could not open video for frame sampling", "path", path, "error", err)
		return nil
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			p.logger.Warn("failed to release frame source", "error", cerr)
		}
	}()
	return p.sampler.Sample(ctx, src)
}

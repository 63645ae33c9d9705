// Package report fuses the technical and content check results into a single
// quality report with an overall verdict, a merged error list and
// per-category recommendations. This is the shape the HTTP API serves and
// the CLI renders.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/jerald6111/video-quality-checker/internal/content"
	"github.com/jerald6111/video-quality-checker/internal/ffprobe"
	"github.com/jerald6111/video-quality-checker/internal/lingo"
	"github.com/jerald6111/video-quality-checker/internal/technical"
	"github.com/jerald6111/video-quality-checker/internal/util"
)

// Overall report status values.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Error entry type tags.
const (
	TypeTechnical = "technical"
	TypeSpelling  = "spelling"
	TypeGrammar   = "grammar"
)

// ErrorEntry is one merged error. Technical entries carry Error and a "N/A"
// timestamp; spelling entries carry Word/Suggestion/Context; grammar entries
// carry Error/Suggestion.
type ErrorEntry struct {
	Type       string `json:"type"`
	Timestamp  string `json:"timestamp"`
	Error      string `json:"error,omitempty"`
	Word       string `json:"word,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Context    string `json:"context,omitempty"`
}

// TechnicalMetadata is the human-oriented view of the probed stream.
type TechnicalMetadata struct {
	Resolution   string           `json:"resolution"`
	FrameRate    float64          `json:"frame_rate"`
	Codec        string           `json:"codec"`
	CodecProfile string           `json:"codec_profile"`
	Duration     float64          `json:"duration"`
	BitRate      string           `json:"bit_rate"`
	FileSize     string           `json:"file_size"`
	PixelFormat  string           `json:"pixel_format"`
	Format       string           `json:"format"`
	Validation   technical.Checks `json:"validation_details"`
}

// ContentAnalysis summarizes the content pipeline's findings.
type ContentAnalysis struct {
	TextDetected           bool     `json:"text_detected"`
	TotalKeyframesAnalyzed int      `json:"total_keyframes_analyzed"`
	FramesWithText         int      `json:"frames_with_text"`
	SpellingErrors         int      `json:"spelling_errors"`
	GrammarErrors          int      `json:"grammar_errors"`
	Warnings               []string `json:"warnings"`
}

// Recommendation is one actionable fix suggestion tied to a failed check
// category.
type Recommendation struct {
	Category       string `json:"category"`
	Issue          string `json:"issue"`
	Recommendation string `json:"recommendation"`
}

// Summary carries the counts the dashboard sorts by.
type Summary struct {
	TotalErrors     int  `json:"total_errors"`
	TechnicalErrors int  `json:"technical_errors"`
	ContentErrors   int  `json:"content_errors"`
	TechnicalPassed bool `json:"technical_passed"`
	ContentPassed   bool `json:"content_passed"`
}

// Report is the complete quality report for one video.
type Report struct {
	Status            string            `json:"status"`
	TechnicalStatus   string            `json:"technical_status"`
	ContentStatus     string            `json:"content_status"`
	Timestamp         string            `json:"timestamp"`
	TechnicalMetadata TechnicalMetadata `json:"technical_metadata"`
	ContentAnalysis   ContentAnalysis   `json:"content_analysis"`
	Errors            []ErrorEntry      `json:"errors"`
	Summary           Summary           `json:"summary"`
	Recommendations   []Recommendation  `json:"recommendations,omitempty"`
}

// Passed reports the overall verdict.
func (r *Report) Passed() bool { return r.Status == StatusPass }

// Fuse merges the two check results into one report. It is total: any
// internal fault is converted into a fail-status report with a single
// synthetic error, so callers always get a well-formed report back.
func Fuse(tech *technical.Result, cont *content.Result) (out *Report) {
	defer func() {
		if r := recover(); r != nil {
			out = &Report{
				Status:          StatusFail,
				TechnicalStatus: StatusFail,
				ContentStatus:   StatusFail,
				Timestamp:       now(),
				Errors: []ErrorEntry{{
					Type:      TypeTechnical,
					Timestamp: "N/A",
					Error:     fmt.Sprintf("Report generation failed: %v", r),
				}},
				Summary: Summary{TotalErrors: 1, TechnicalErrors: 1},
			}
		}
	}()

	overall := StatusFail
	if tech.Passed() && cont.Passed() {
		overall = StatusPass
	}

	errors := make([]ErrorEntry, 0, len(tech.Errors)+len(cont.Errors))
	for _, e := range tech.Errors {
		errors = append(errors, ErrorEntry{Type: TypeTechnical, Timestamp: "N/A", Error: e})
	}
	for _, d := range cont.Errors {
		errors = append(errors, defectEntry(d))
	}

	rep := &Report{
		Status:            overall,
		TechnicalStatus:   tech.Status,
		ContentStatus:     cont.Status,
		Timestamp:         now(),
		TechnicalMetadata: buildTechnicalMetadata(tech),
		ContentAnalysis:   buildContentAnalysis(cont),
		Errors:            errors,
		Summary: Summary{
			TotalErrors:     len(errors),
			TechnicalErrors: len(tech.Errors),
			ContentErrors:   len(cont.Errors),
			TechnicalPassed: tech.Passed(),
			ContentPassed:   cont.Passed(),
		},
	}
	if len(errors) > 0 {
		rep.Recommendations = buildRecommendations(tech, cont)
	}
	return rep
}

func defectEntry(d lingo.Defect) ErrorEntry {
	switch d := d.(type) {
	case lingo.SpellingDefect:
		return ErrorEntry{
			Type:       TypeSpelling,
			Timestamp:  d.Timestamp,
			Word:       d.Word,
			Suggestion: d.Suggestion,
			Context:    d.Context,
		}
	case lingo.GrammarDefect:
		return ErrorEntry{
			Type:       TypeGrammar,
			Timestamp:  d.Timestamp,
			Error:      d.Description,
			Suggestion: d.Suggestion,
		}
	default:
		panic(fmt.Sprintf("unhandled defect type %T", d))
	}
}

func buildTechnicalMetadata(tech *technical.Result) TechnicalMetadata {
	m := tech.Metadata
	if m == nil {
		m = &ffprobe.Metadata{}
	}
	return TechnicalMetadata{
		Resolution:   fmt.Sprintf("%dx%d", m.Width, m.Height),
		FrameRate:    round(m.FrameRate, 3),
		Codec:        orUnknown(m.CodecName),
		CodecProfile: orUnknown(m.Profile),
		Duration:     round(m.Duration, 2),
		BitRate:      util.FormatBitRate(m.BitRate),
		FileSize:     util.FormatBytes(m.FileSize),
		PixelFormat:  orUnknown(m.PixelFormat),
		Format:       orUnknown(m.FormatName),
		Validation:   tech.Checks,
	}
}

func buildContentAnalysis(cont *content.Result) ContentAnalysis {
	spelling, grammar := countDefects(cont.Errors)
	return ContentAnalysis{
		TextDetected:           cont.TextFound,
		TotalKeyframesAnalyzed: cont.TotalKeyframes,
		FramesWithText:         cont.ExtractedTextCount,
		SpellingErrors:         spelling,
		GrammarErrors:          grammar,
		Warnings:               cont.Warnings,
	}
}

// buildRecommendations emits one recommendation per failed check category,
// never one per individual error.
func buildRecommendations(tech *technical.Result, cont *content.Result) []Recommendation {
	var recs []Recommendation

	if !tech.Passed() {
		if !tech.Checks.Resolution.Passed {
			recs = append(recs, Recommendation{
				Category:       "technical",
				Issue:          "Resolution too low",
				Recommendation: "Ensure video resolution is at least 1920x1080 (1080p)",
			})
		}
		if !tech.Checks.FrameRate.Passed {
			recs = append(recs, Recommendation{
				Category:       "technical",
				Issue:          "Invalid frame rate",
				Recommendation: "Use standard frame rates: 23.976, 24, 25, 29.97, 30, 50, or 60 FPS",
			})
		}
		if !tech.Checks.Codec.Passed {
			recs = append(recs, Recommendation{
				Category:       "technical",
				Issue:          "Unsupported codec",
				Recommendation: "Encode video using H.264 or ProRes codec",
			})
		}
	}

	if !cont.Passed() {
		spelling, grammar := countDefects(cont.Errors)
		if spelling > 0 {
			recs = append(recs, Recommendation{
				Category:       "content",
				Issue:          fmt.Sprintf("%d spelling error(s) found", spelling),
				Recommendation: "Review and correct spelling errors in video text content",
			})
		}
		if grammar > 0 {
			recs = append(recs, Recommendation{
				Category:       "content",
				Issue:          fmt.Sprintf("%d grammar issue(s) found", grammar),
				Recommendation: "Review and correct grammar issues in video text content",
			})
		}
	}
	return recs
}

func countDefects(defects []lingo.Defect) (spelling, grammar int) {
	for _, d := range defects {
		switch d.(type) {
		case lingo.SpellingDefect:
			spelling++
		case lingo.GrammarDefect:
			grammar++
		}
	}
	return spelling, grammar
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events for machine consumers that tail the
// check's progress.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) CheckStarted(info CheckStartInfo) {
	r.write(map[string]interface{}{
		"type":       "check_started",
		"input_file": info.InputFile,
		"file_size":  info.FileSize,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) StageProgress(update StageProgress) {
	r.write(map[string]interface{}{
		"type":      "stage_progress",
		"stage":     update.Stage,
		"message":   update.Message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) TechnicalComplete(summary TechnicalSummary) {
	steps := make([]map[string]interface{}, len(summary.Steps))
	for i, step := range summary.Steps {
		steps[i] = map[string]interface{}{
			"step":    step.Name,
			"passed":  step.Passed,
			"details": step.Details,
		}
	}

	r.write(map[string]interface{}{
		"type":             "technical_complete",
		"technical_passed": summary.Passed,
		"resolution":       summary.Resolution,
		"frame_rate":       summary.FrameRate,
		"codec":            summary.Codec,
		"bit_rate":         summary.BitRate,
		"duration":         summary.Duration,
		"validation_steps": steps,
		"warnings":         summary.Warnings,
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) AnalysisStarted(totalFrames int) {
	r.write(map[string]interface{}{
		"type":         "analysis_started",
		"total_frames": totalFrames,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) FrameAnalyzed(progress FrameProgress) {
	r.write(map[string]interface{}{
		"type":         "frame_analyzed",
		"analyzed":     progress.Analyzed,
		"total_frames": progress.Total,
		"word_count":   progress.WordCount,
		"confidence":   progress.Confidence,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) ContentComplete(summary ContentSummary) {
	r.write(map[string]interface{}{
		"type":               "content_complete",
		"content_passed":     summary.Passed,
		"text_detected":      summary.TextDetected,
		"keyframes_analyzed": summary.KeyframesAnalyzed,
		"frames_with_text":   summary.FramesWithText,
		"spelling_defects":   summary.SpellingDefects,
		"grammar_defects":    summary.GrammarDefects,
		"warnings":           summary.Warnings,
		"timestamp":          r.timestamp(),
	})
}

func (r *JSONReporter) ReportComplete(summary ReportSummary) {
	errors := make([]map[string]interface{}, len(summary.Errors))
	for i, e := range summary.Errors {
		errors[i] = map[string]interface{}{
			"error_type": e.Type,
			"at":         e.Timestamp,
			"detail":     e.Detail,
		}
	}

	r.write(map[string]interface{}{
		"type":             "report_complete",
		"overall_passed":   summary.OverallPassed,
		"technical_passed": summary.TechnicalPassed,
		"content_passed":   summary.ContentPassed,
		"errors":           errors,
		"recommendations":  summary.Recommendations,
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]interface{}{
		"type":        "batch_started",
		"total_files": info.TotalFiles,
		"file_list":   info.FileList,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) FileProgress(context FileProgressContext) {
	r.write(map[string]interface{}{
		"type":         "file_progress",
		"current_file": context.CurrentFile,
		"total_files":  context.TotalFiles,
		"timestamp":    r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	r.write(map[string]interface{}{
		"type":                   "batch_complete",
		"passed_count":           summary.PassedCount,
		"failed_count":           summary.FailedCount,
		"total_files":            summary.TotalFiles,
		"total_duration_seconds": int64(summary.TotalDuration.Seconds()),
		"timestamp":              r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(string) {}

// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// CheckStartInfo describes the file about to be checked.
type CheckStartInfo struct {
	InputFile string
	FileSize  string
}

// StageProgress represents a generic stage update.
type StageProgress struct {
	Stage   string
	Message string
}

// CheckStep represents a single technical validation dimension.
type CheckStep struct {
	Name    string
	Passed  bool
	Details string
}

// TechnicalSummary contains technical validation results.
type TechnicalSummary struct {
	Passed     bool
	Resolution string
	FrameRate  float64
	Codec      string
	BitRate    string
	Duration   string
	Steps      []CheckStep
	Warnings   []string
}

// FrameProgress contains per-frame text extraction progress.
type FrameProgress struct {
	Analyzed   int
	Total      int
	WordCount  int
	Confidence float64
}

// ContentSummary contains content analysis results.
type ContentSummary struct {
	Passed            bool
	TextDetected      bool
	KeyframesAnalyzed int
	FramesWithText    int
	SpellingDefects   int
	GrammarDefects    int
	Warnings          []string
}

// ErrorLine is one merged report error for display.
type ErrorLine struct {
	Type      string
	Timestamp string
	Detail    string
}

// ReportSummary contains the fused verdict for one file.
type ReportSummary struct {
	OverallPassed   bool
	TechnicalPassed bool
	ContentPassed   bool
	Errors          []ErrorLine
	Recommendations []string
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalFiles int
	FileList   []string
}

// FileProgressContext contains current file index within a batch.
type FileProgressContext struct {
	CurrentFile int
	TotalFiles  int
}

// FileResult contains a per-file verdict.
type FileResult struct {
	Filename   string
	Passed     bool
	ErrorCount int
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	PassedCount   int
	FailedCount   int
	TotalFiles    int
	TotalDuration time.Duration
	FileResults   []FileResult
}

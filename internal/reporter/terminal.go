package reporter

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/jerald6111/video-quality-checker/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu        sync.Mutex
	progress  *progressbar.ProgressBar
	lastStage string
	cyan      *color.Color
	green     *color.Color
	yellow    *color.Color
	red       *color.Color
	magenta   *color.Color
	bold      *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) CheckStarted(info CheckStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("VIDEO")
	r.printLabel(10, "File:", info.InputFile)
	r.printLabel(10, "Size:", info.FileSize)
}

func (r *TerminalReporter) StageProgress(update StageProgress) {
	r.mu.Lock()
	if r.lastStage != update.Stage {
		r.mu.Unlock()
		fmt.Println()
		_, _ = r.cyan.Println(strings.ToUpper(update.Stage))
		r.mu.Lock()
		r.lastStage = update.Stage
	}
	r.mu.Unlock()
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), update.Message)
}

func (r *TerminalReporter) TechnicalComplete(summary TechnicalSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("TECHNICAL")
	if summary.Passed {
		fmt.Printf("  %s\n", r.green.Add(color.Bold).Sprint("All checks passed"))
	} else {
		fmt.Printf("  %s\n", r.red.Sprint("Validation failed"))
	}

	const w = 12
	r.printLabel(w, "Resolution:", summary.Resolution)
	r.printLabel(w, "Frame rate:", fmt.Sprintf("%.3f fps", summary.FrameRate))
	r.printLabel(w, "Codec:", summary.Codec)
	r.printLabel(w, "Bit rate:", summary.BitRate)
	r.printLabel(w, "Duration:", summary.Duration)

	// Find the longest step name for alignment
	maxLen := 0
	for _, step := range summary.Steps {
		if len(step.Name) > maxLen {
			maxLen = len(step.Name)
		}
	}
	for _, step := range summary.Steps {
		var status string
		if step.Passed {
			status = r.green.Sprint("✓")
		} else {
			status = r.red.Sprint("✗")
		}
		paddedName := fmt.Sprintf("%-*s", maxLen, step.Name)
		fmt.Printf("  - %s: %s (%s)\n", paddedName, status, step.Details)
	}

	for _, warning := range summary.Warnings {
		fmt.Printf("  %s %s\n", r.yellow.Sprint("!"), warning)
	}
}

func (r *TerminalReporter) AnalysisStarted(totalFrames int) {
	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions(
		totalFrames,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Analyzing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FrameAnalyzed(progress FrameProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}
	_ = r.progress.Set(progress.Analyzed)
	desc := fmt.Sprintf("frame %d/%d, %d words, conf %.0f%%",
		progress.Analyzed, progress.Total, progress.WordCount, progress.Confidence)
	r.progress.Describe(desc)
}

func (r *TerminalReporter) ContentComplete(summary ContentSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("CONTENT")
	if summary.Passed {
		fmt.Printf("  %s\n", r.green.Add(color.Bold).Sprint("No text defects found"))
	} else {
		fmt.Printf("  %s\n", r.red.Sprintf("%d text defect(s) found",
			summary.SpellingDefects+summary.GrammarDefects))
	}

	const w = 11
	if summary.TextDetected {
		r.printLabel(w, "Keyframes:", fmt.Sprintf("%d analyzed", summary.KeyframesAnalyzed))
		r.printLabel(w, "With text:", fmt.Sprintf("%d", summary.FramesWithText))
		r.printLabel(w, "Spelling:", fmt.Sprintf("%d defect(s)", summary.SpellingDefects))
		r.printLabel(w, "Grammar:", fmt.Sprintf("%d defect(s)", summary.GrammarDefects))
	}
	for _, warning := range summary.Warnings {
		fmt.Printf("  %s %s\n", r.yellow.Sprint("!"), warning)
	}
}

func (r *TerminalReporter) ReportComplete(summary ReportSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("VERDICT")
	if summary.OverallPassed {
		fmt.Printf("  %s\n", r.green.Add(color.Bold).Sprint("PASS"))
	} else {
		fmt.Printf("  %s\n", r.red.Sprint("FAIL"))
	}
	r.printLabel(10, "Technical:", passFail(summary.TechnicalPassed))
	r.printLabel(10, "Content:", passFail(summary.ContentPassed))

	if len(summary.Errors) > 0 {
		fmt.Println()
		_, _ = r.cyan.Println("ERRORS")
		for _, e := range summary.Errors {
			fmt.Printf("  - [%s] %s %s\n", e.Type, r.bold.Sprint(e.Timestamp), e.Detail)
		}
	}
	if len(summary.Recommendations) > 0 {
		fmt.Println()
		_, _ = r.cyan.Println("RECOMMENDATIONS")
		for _, rec := range summary.Recommendations {
			fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), rec)
		}
	}
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Checking %d files\n", info.TotalFiles)
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

func (r *TerminalReporter) FileProgress(context FileProgressContext) {
	fmt.Printf("\nFile %s of %d\n",
		r.bold.Sprint(context.CurrentFile),
		context.TotalFiles)
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d passed", summary.PassedCount, summary.TotalFiles))
	fmt.Printf("  Verdict: %s passed, %s failed\n",
		r.green.Sprint(summary.PassedCount),
		r.red.Sprint(summary.FailedCount))
	fmt.Printf("  Time: %s\n", util.FormatDuration(summary.TotalDuration.Seconds()))

	for _, result := range summary.FileResults {
		var status string
		if result.Passed {
			status = r.green.Sprint("pass")
		} else {
			status = r.red.Sprintf("fail, %d error(s)", result.ErrorCount)
		}
		fmt.Printf("  - %s (%s)\n", result.Filename, status)
	}
}

func (r *TerminalReporter) Verbose(string) {}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

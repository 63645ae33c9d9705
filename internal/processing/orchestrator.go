// Package processing orchestrates quality checks for a list of video files,
// driving the reporter with progress events and recording metrics.
package processing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jerald6111/video-quality-checker/internal/config"
	"github.com/jerald6111/video-quality-checker/internal/content"
	"github.com/jerald6111/video-quality-checker/internal/ffprobe"
	"github.com/jerald6111/video-quality-checker/internal/lingo"
	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/metrics"
	"github.com/jerald6111/video-quality-checker/internal/ocr"
	"github.com/jerald6111/video-quality-checker/internal/report"
	"github.com/jerald6111/video-quality-checker/internal/reporter"
	"github.com/jerald6111/video-quality-checker/internal/sampler"
	"github.com/jerald6111/video-quality-checker/internal/technical"
	"github.com/jerald6111/video-quality-checker/internal/util"
)

// Deps are the external collaborators a check run needs. Zero values are
// filled with the production implementations.
type Deps struct {
	Prober     ffprobe.Prober
	Engine     ocr.Engine
	Segmenter  lingo.Segmenter
	OpenSource sampler.SourceFactory
	Logger     *logging.Logger
}

func (d *Deps) fill() {
	if d.Prober == nil {
		d.Prober = &ffprobe.CommandProber{}
	}
	if d.Engine == nil {
		d.Engine = &ocr.TesseractEngine{}
	}
	if d.Segmenter == nil {
		d.Segmenter = lingo.RuleSegmenter{}
	}
	if d.OpenSource == nil {
		prober := d.Prober
		d.OpenSource = func(ctx context.Context, path string) (sampler.Source, error) {
			return sampler.NewFFmpegSource(ctx, path, prober)
		}
	}
	if d.Logger == nil {
		d.Logger = logging.Global()
	}
}

// FileOutcome pairs a checked file with its fused report.
type FileOutcome struct {
	Filename string
	Report   *report.Report
}

// CheckVideos runs the full quality check over each file in order, emitting
// reporter events along the way. Per-file faults are reported and skipped;
// only context cancellation stops the batch early.
func CheckVideos(ctx context.Context, cfg *config.Config, deps Deps, files []string, rep reporter.Reporter) ([]FileOutcome, error) {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	deps.fill()

	if len(files) > 1 {
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = util.GetFilename(f)
		}
		rep.BatchStarted(reporter.BatchStartInfo{
			TotalFiles: len(files),
			FileList:   names,
		})
	}

	batchStart := time.Now()
	var outcomes []FileOutcome
	var fileResults []reporter.FileResult

	for i, path := range files {
		if ctx.Err() != nil {
			rep.Warning(fmt.Sprintf("Check cancelled: %v", ctx.Err()))
			break
		}
		if len(files) > 1 {
			rep.FileProgress(reporter.FileProgressContext{
				CurrentFile: i + 1,
				TotalFiles:  len(files),
			})
		}

		rpt := CheckVideo(ctx, cfg, deps, path, rep)
		outcomes = append(outcomes, FileOutcome{Filename: path, Report: rpt})
		fileResults = append(fileResults, reporter.FileResult{
			Filename:   util.GetFilename(path),
			Passed:     rpt.Passed(),
			ErrorCount: rpt.Summary.TotalErrors,
		})
	}

	if len(files) > 1 {
		summary := reporter.BatchSummary{
			TotalFiles:    len(files),
			TotalDuration: time.Since(batchStart),
			FileResults:   fileResults,
		}
		for _, r := range fileResults {
			if r.Passed {
				summary.PassedCount++
			} else {
				summary.FailedCount++
			}
		}
		rep.BatchComplete(summary)
	}
	return outcomes, nil
}

// CheckVideo runs the technical and content checks for one file. The two
// checks are independent and run concurrently; the fuser waits for both.
func CheckVideo(ctx context.Context, cfg *config.Config, deps Deps, path string, rep reporter.Reporter) *report.Report {
	if rep == nil {
		rep = reporter.NullReporter{}
	}
	deps.fill()

	start := time.Now()
	metrics.ActiveChecks.Inc()
	defer func() {
		metrics.ActiveChecks.Dec()
		metrics.CheckDuration.Observe(time.Since(start).Seconds())
	}()

	size, _ := util.GetFileSize(path)
	rep.CheckStarted(reporter.CheckStartInfo{
		InputFile: util.GetFilename(path),
		FileSize:  util.FormatBytes(size),
	})

	var (
		wg      sync.WaitGroup
		techRes *technical.Result
		contRes content.Result
	)

	rep.StageProgress(reporter.StageProgress{Stage: "technical", Message: "Probing stream metadata"})
	rep.StageProgress(reporter.StageProgress{Stage: "content", Message: "Sampling keyframes"})

	// The two checks share nothing; only the content side emits reporter
	// events while both are in flight.
	wg.Add(2)
	go func() {
		defer wg.Done()
		techRes = technical.CheckFile(ctx, deps.Prober, path, cfg.Standards)
	}()
	go func() {
		defer wg.Done()
		pipeline := buildPipeline(cfg, deps, rep)
		contRes = pipeline.Check(ctx, path)
	}()
	wg.Wait()

	rep.TechnicalComplete(technicalSummary(techRes))
	rep.ContentComplete(contentSummary(&contRes))

	rpt := report.Fuse(techRes, &contRes)
	rep.ReportComplete(reportSummary(rpt))

	metrics.RecordVerdict(rpt.Status)
	metrics.RecordDefects("spelling", rpt.ContentAnalysis.SpellingErrors)
	metrics.RecordDefects("grammar", rpt.ContentAnalysis.GrammarErrors)
	deps.Logger.Info("quality check finished",
		"file", util.GetFilename(path),
		"status", rpt.Status,
		"errors", rpt.Summary.TotalErrors,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return rpt
}

func buildPipeline(cfg *config.Config, deps Deps, rep reporter.Reporter) *content.Pipeline {
	s := sampler.New(cfg.MaxKeyframes, deps.Logger)
	e := ocr.NewExtractor(deps.Engine, float64(cfg.MinWordConfidence), deps.Logger)
	c := lingo.NewChecker(cfg.VocabularySet(), deps.Segmenter)

	pipeline := content.NewPipeline(s, e, c, deps.OpenSource, deps.Logger)
	started := false
	pipeline.OnFrame = func(analyzed, total int, ext content.Extraction) {
		if !started {
			rep.AnalysisStarted(total)
			started = true
		}
		metrics.FramesAnalyzed.Inc()
		rep.FrameAnalyzed(reporter.FrameProgress{
			Analyzed:   analyzed,
			Total:      total,
			WordCount:  ext.WordCount(),
			Confidence: ext.Confidence,
		})
	}
	return pipeline
}

func technicalSummary(res *technical.Result) reporter.TechnicalSummary {
	m := res.Metadata
	if m == nil {
		m = &ffprobe.Metadata{}
	}
	return reporter.TechnicalSummary{
		Passed:     res.Passed(),
		Resolution: m.Resolution(),
		FrameRate:  m.FrameRate,
		Codec:      m.CodecName,
		BitRate:    util.FormatBitRate(m.BitRate),
		Duration:   util.FormatDuration(m.Duration),
		Steps: []reporter.CheckStep{
			{Name: "Resolution", Passed: res.Checks.Resolution.Passed, Details: res.Checks.Resolution.Current},
			{Name: "Frame rate", Passed: res.Checks.FrameRate.Passed, Details: fmt.Sprintf("%.3f fps", res.Checks.FrameRate.Current)},
			{Name: "Codec", Passed: res.Checks.Codec.Passed, Details: res.Checks.Codec.Current},
		},
		Warnings: res.Warnings,
	}
}

func contentSummary(res *content.Result) reporter.ContentSummary {
	spelling, grammar := 0, 0
	for _, d := range res.Errors {
		switch d.(type) {
		case lingo.SpellingDefect:
			spelling++
		case lingo.GrammarDefect:
			grammar++
		}
	}
	return reporter.ContentSummary{
		Passed:            res.Passed(),
		TextDetected:      res.TextFound,
		KeyframesAnalyzed: res.TotalKeyframes,
		FramesWithText:    res.ExtractedTextCount,
		SpellingDefects:   spelling,
		GrammarDefects:    grammar,
		Warnings:          res.Warnings,
	}
}

func reportSummary(rpt *report.Report) reporter.ReportSummary {
	lines := make([]reporter.ErrorLine, len(rpt.Errors))
	for i, e := range rpt.Errors {
		detail := e.Error
		if e.Type == report.TypeSpelling {
			detail = fmt.Sprintf("%s (%s)", e.Suggestion, e.Context)
		}
		lines[i] = reporter.ErrorLine{Type: e.Type, Timestamp: e.Timestamp, Detail: detail}
	}
	recs := make([]string, len(rpt.Recommendations))
	for i, r := range rpt.Recommendations {
		recs[i] = fmt.Sprintf("%s: %s", r.Issue, r.Recommendation)
	}
	return reporter.ReportSummary{
		OverallPassed:   rpt.Passed(),
		TechnicalPassed: rpt.Summary.TechnicalPassed,
		ContentPassed:   rpt.Summary.ContentPassed,
		Errors:          lines,
		Recommendations: recs,
	}
}

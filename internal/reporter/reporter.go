package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	CheckStarted(info CheckStartInfo)
	StageProgress(update StageProgress)
	TechnicalComplete(summary TechnicalSummary)
	AnalysisStarted(totalFrames int)
	FrameAnalyzed(progress FrameProgress)
	ContentComplete(summary ContentSummary)
	ReportComplete(summary ReportSummary)
	Warning(message string)
	Error(err ReporterError)
	BatchStarted(info BatchStartInfo)
	FileProgress(context FileProgressContext)
	BatchComplete(summary BatchSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) CheckStarted(CheckStartInfo)        {}
func (NullReporter) StageProgress(StageProgress)        {}
func (NullReporter) TechnicalComplete(TechnicalSummary) {}
func (NullReporter) AnalysisStarted(int)                {}
func (NullReporter) FrameAnalyzed(FrameProgress)        {}
func (NullReporter) ContentComplete(ContentSummary)     {}
func (NullReporter) ReportComplete(ReportSummary)       {}
func (NullReporter) Warning(string)                     {}
func (NullReporter) Error(ReporterError)                {}
func (NullReporter) BatchStarted(BatchStartInfo)        {}
func (NullReporter) FileProgress(FileProgressContext)   {}
func (NullReporter) BatchComplete(BatchSummary)         {}
func (NullReporter) Verbose(string)                     {}

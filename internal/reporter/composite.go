package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) CheckStarted(info CheckStartInfo) {
	for _, r := range c.reporters {
		r.CheckStarted(info)
	}
}

func (c *CompositeReporter) StageProgress(update StageProgress) {
	for _, r := range c.reporters {
		r.StageProgress(update)
	}
}

func (c *CompositeReporter) TechnicalComplete(summary TechnicalSummary) {
	for _, r := range c.reporters {
		r.TechnicalComplete(summary)
	}
}

func (c *CompositeReporter) AnalysisStarted(totalFrames int) {
	for _, r := range c.reporters {
		r.AnalysisStarted(totalFrames)
	}
}

func (c *CompositeReporter) FrameAnalyzed(progress FrameProgress) {
	for _, r := range c.reporters {
		r.FrameAnalyzed(progress)
	}
}

func (c *CompositeReporter) ContentComplete(summary ContentSummary) {
	for _, r := range c.reporters {
		r.ContentComplete(summary)
	}
}

func (c *CompositeReporter) ReportComplete(summary ReportSummary) {
	for _, r := range c.reporters {
		r.ReportComplete(summary)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) BatchStarted(info BatchStartInfo) {
	for _, r := range c.reporters {
		r.BatchStarted(info)
	}
}

func (c *CompositeReporter) FileProgress(context FileProgressContext) {
	for _, r := range c.reporters {
		r.FileProgress(context)
	}
}

func (c *CompositeReporter) BatchComplete(summary BatchSummary) {
	for _, r := range c.reporters {
		r.BatchComplete(summary)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}

package vqc

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"testing"

	"github.com/jerald6111/video-quality-checker/internal/ffprobe"
	"github.com/jerald6111/video-quality-checker/internal/lingo"
	"github.com/jerald6111/video-quality-checker/internal/ocr"
	"github.com/jerald6111/video-quality-checker/internal/sampler"
)

type stubProber struct {
	meta *ffprobe.Metadata
}

func (p *stubProber) Probe(ctx context.Context, path string) (*ffprobe.Metadata, error) {
	return p.meta, nil
}

type stubSource struct {
	frames []*image.Gray
}

func (s *stubSource) TotalFrames() int { return len(s.frames) }

func (s *stubSource) Extract(ctx context.Context, indexes []int) ([]sampler.Frame, error) {
	var out []sampler.Frame
	for _, idx := range indexes {
		if idx < len(s.frames) {
			out = append(out, sampler.Frame{Index: idx, Timestamp: float64(idx), Image: s.frames[idx]})
		}
	}
	return out, nil
}

func (s *stubSource) Close() error { return nil }

type stubEngine struct {
	words []ocr.Word
}

func (e *stubEngine) Recognize(ctx context.Context, img *image.Gray) ([]ocr.Word, error) {
	return e.words, nil
}

func textFrame() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, 320, 120))
	for blob := 0; blob < 5; blob++ {
		x0 := 10 + blob*60
		for y := 50; y < 62; y++ {
			for x := x0; x < x0+40; x++ {
				g.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return g
}

func testOptions(meta *ffprobe.Metadata, words []ocr.Word, extra ...Option) []Option {
	opts := []Option{
		WithProber(&stubProber{meta: meta}),
		WithOCREngine(&stubEngine{words: words}),
		WithSegmenter(lingo.RuleSegmenter{}),
		WithSourceFactory(func(ctx context.Context, path string) (sampler.Source, error) {
			return &stubSource{frames: []*image.Gray{textFrame()}}, nil
		}),
	}
	return append(opts, extra...)
}

func compliantMetadata() *ffprobe.Metadata {
	return &ffprobe.Metadata{
		Width: 1920, Height: 1080, CodecName: "h264",
		FrameRate: 29.97, Duration: 60, BitRate: 8_000_000,
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero keyframes", []Option{WithMaxKeyframes(0)}},
		{"keyframes over limit", []Option{WithMaxKeyframes(10_000)}},
		{"negative confidence", []Option{WithMinWordConfidence(-1)}},
		{"blank vocabulary entry", []Option{WithVocabulary([]string{"iconik", "  "})}},
		{"empty codec list", []Option{WithStandards(Standards{MinWidth: 1920, MinHeight: 1080, FrameRates: []float64{24}})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); err == nil {
				t.Error("New() accepted invalid configuration")
			}
		})
	}
}

func TestCheckCompliantFile(t *testing.T) {
	checker, err := New(testOptions(compliantMetadata(), []ocr.Word{
		{Text: "This", Confidence: 95},
		{Text: "is", Confidence: 95},
		{Text: "here.", Confidence: 95},
	})...)
	if err != nil {
		t.Fatal(err)
	}

	result, err := checker.Check(context.Background(), "master.mp4", nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.Passed || result.Status != "pass" {
		t.Errorf("status = %s, issues = %v", result.Status, result.Issues)
	}
	if result.TotalErrors != 0 || len(result.Issues) != 0 {
		t.Errorf("errors = %d, issues = %d, want 0", result.TotalErrors, len(result.Issues))
	}
	if !json.Valid(result.ReportJSON) {
		t.Error("ReportJSON is not valid JSON")
	}
}

func TestCheckFlagsDefects(t *testing.T) {
	meta := compliantMetadata()
	meta.CodecName = "vp9"
	checker, err := New(testOptions(meta, []ocr.Word{
		{Text: "Exampl", Confidence: 95},
		{Text: "of", Confidence: 95},
		{Text: "the", Confidence: 95},
	})...)
	if err != nil {
		t.Fatal(err)
	}

	result, err := checker.Check(context.Background(), "master.mp4", nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.Passed || result.TechnicalPassed || result.ContentPassed {
		t.Fatalf("expected full fail, got %+v", result)
	}
	if result.SpellingErrors == 0 {
		t.Error("expected a spelling error for 'Exampl'")
	}
	if result.TotalErrors != len(result.Issues) {
		t.Errorf("TotalErrors %d != %d issues", result.TotalErrors, len(result.Issues))
	}
	if len(result.Recommendations) == 0 {
		t.Error("expected recommendations for the failed checks")
	}
}

func TestCheckVocabularyExemptsTerms(t *testing.T) {
	checker, err := New(testOptions(compliantMetadata(), []ocr.Word{
		{Text: "Iconik", Confidence: 95},
		{Text: "is", Confidence: 95},
		{Text: "here.", Confidence: 95},
	}, WithVocabulary([]string{"Iconik"}))...)
	if err != nil {
		t.Fatal(err)
	}

	result, err := checker.Check(context.Background(), "master.mp4", nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.SpellingErrors != 0 {
		t.Errorf("spelling errors = %d, want 0 with vocabulary entry", result.SpellingErrors)
	}
}

func TestCheckRunsGrammarPassByDefault(t *testing.T) {
	// No WithSegmenter: the rule-based segmenter applies, so unterminated
	// on-screen text yields a grammar defect.
	checker, err := New(
		WithProber(&stubProber{meta: compliantMetadata()}),
		WithOCREngine(&stubEngine{words: []ocr.Word{
			{Text: "This", Confidence: 95},
			{Text: "is", Confidence: 95},
			{Text: "where", Confidence: 95},
			{Text: "these", Confidence: 95},
			{Text: "are", Confidence: 95},
		}}),
		WithSourceFactory(func(ctx context.Context, path string) (sampler.Source, error) {
			return &stubSource{frames: []*image.Gray{textFrame()}}, nil
		}),
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := checker.Check(context.Background(), "master.mp4", nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.GrammarErrors == 0 {
		t.Error("expected a grammar defect for unterminated text without WithSegmenter")
	}
	if result.SpellingErrors != 0 {
		t.Errorf("spelling errors = %d, want 0 for closed-class words", result.SpellingErrors)
	}
}

func TestCheckNilSegmenterDisablesGrammarPass(t *testing.T) {
	checker, err := New(testOptions(compliantMetadata(), []ocr.Word{
		{Text: "This", Confidence: 95},
		{Text: "is", Confidence: 95},
		{Text: "where", Confidence: 95},
		{Text: "these", Confidence: 95},
		{Text: "are", Confidence: 95},
	}, WithSegmenter(nil))...)
	if err != nil {
		t.Fatal(err)
	}

	result, err := checker.Check(context.Background(), "master.mp4", nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.GrammarErrors != 0 {
		t.Errorf("grammar errors = %d, want 0 with grammar checking disabled", result.GrammarErrors)
	}
	if !result.Passed {
		t.Errorf("status = %s, want pass", result.Status)
	}
}

func TestCheckBatchCountsVerdicts(t *testing.T) {
	checker, err := New(testOptions(compliantMetadata(), nil)...)
	if err != nil {
		t.Fatal(err)
	}

	batch, err := checker.CheckBatch(context.Background(), []string{"a.mp4", "b.mp4"}, nil)
	if err != nil {
		t.Fatalf("CheckBatch: %v", err)
	}
	if batch.TotalFiles != 2 || len(batch.Results) != 2 {
		t.Fatalf("batch = %+v, want 2 results", batch)
	}
	if batch.PassedCount != 2 || batch.FailedCount != 0 {
		t.Errorf("counts = %d/%d, want 2/0", batch.PassedCount, batch.FailedCount)
	}
}

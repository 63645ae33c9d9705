package ocr

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/jerald6111/video-quality-checker/internal/logging"
)

type stubEngine struct {
	words []Word
	err   error
}

func (s *stubEngine) Recognize(context.Context, *image.Gray) ([]Word, error) {
	return s.words, s.err
}

func testFrame() *image.Gray {
	return image.NewGray(image.Rect(0, 0, 64, 32))
}

func discardLogger() *logging.Logger {
	return logging.New(logging.Config{Enabled: false})
}

func TestExtractFiltersByConfidence(t *testing.T) {
	engine := &stubEngine{words: []Word{
		{Text: "LOWER", Confidence: 96},
		{Text: "THIRD", Confidence: 88},
		{Text: "noise", Confidence: 30},
		{Text: "smudge", Confidence: 12},
	}}
	e := NewExtractor(engine, 30, discardLogger())

	r := e.Extract(context.Background(), testFrame())
	if r.Text != "LOWER THIRD" {
		t.Errorf("text = %q, want %q", r.Text, "LOWER THIRD")
	}
	if r.WordCount() != 2 {
		t.Errorf("word count = %d, want 2", r.WordCount())
	}
	if math.Abs(r.Confidence-92) > 1e-9 {
		t.Errorf("confidence = %v, want 92", r.Confidence)
	}
}

func TestExtractTrimsAndDropsEmptyWords(t *testing.T) {
	engine := &stubEngine{words: []Word{
		{Text: "  Breaking ", Confidence: 80},
		{Text: "   ", Confidence: 91},
	}}
	r := NewExtractor(engine, 30, discardLogger()).Extract(context.Background(), testFrame())
	if r.Text != "Breaking" || r.WordCount() != 1 {
		t.Errorf("got %q (%d words), want %q (1 word)", r.Text, r.WordCount(), "Breaking")
	}
}

func TestExtractEmptyResultOnEngineFailure(t *testing.T) {
	engine := &stubEngine{err: errors.New("binary not found")}
	r := NewExtractor(engine, 30, discardLogger()).Extract(context.Background(), testFrame())
	if r.Text != "" || r.WordCount() != 0 || r.Confidence != 0 {
		t.Errorf("expected zero result on engine failure, got %+v", r)
	}
}

func TestExtractNoSurvivingWords(t *testing.T) {
	engine := &stubEngine{words: []Word{{Text: "blur", Confidence: 5}}}
	r := NewExtractor(engine, 30, discardLogger()).Extract(context.Background(), testFrame())
	if r.Confidence != 0 {
		t.Errorf("confidence = %v with no surviving words, want 0", r.Confidence)
	}
}

func TestParseTSV(t *testing.T) {
	data := "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
		"1\t1\t0\t0\t0\t0\t0\t0\t640\t360\t-1\t\n" +
		"5\t1\t1\t1\t1\t1\t10\t20\t80\t24\t96.43\tFinal\n" +
		"5\t1\t1\t1\t1\t2\t100\t20\t70\t24\t88\tCut\n" +
		"5\t1\t1\t1\t1\t3\t180\t20\t10\t24\t41\t \n"

	words := parseTSV([]byte(data))
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2", len(words))
	}
	if words[0].Text != "Final" || math.Abs(words[0].Confidence-96.43) > 1e-9 {
		t.Errorf("first word = %+v", words[0])
	}
	if words[1].Text != "Cut" || words[1].Confidence != 88 {
		t.Errorf("second word = %+v", words[1])
	}
}

func TestParseTSVMalformedRows(t *testing.T) {
	data := "header\nshort\trow\n5\t1\t1\t1\t1\t1\t0\t0\t0\t0\tnot-a-number\tword\n"
	if words := parseTSV([]byte(data)); len(words) != 0 {
		t.Errorf("got %d words from malformed rows, want 0", len(words))
	}
}

func TestPreprocessProducesBinaryImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range g.Pix {
		g.Pix[i] = uint8(i % 251)
	}
	out := Preprocess(g)
	for i, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pix[%d] = %d, preprocessed frame should be binary", i, v)
		}
	}
}

// Package ocr extracts on-screen text from video frames using the tesseract
// command line tool. Frames are preprocessed to isolate glyph strokes before
// recognition, and low-confidence words are discarded.
package ocr

import (
	"context"
	"image"
	"strings"

	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/raster"
)

// Word is a single recognized word with tesseract's confidence for it.
type Word struct {
	Text       string
	Confidence float64
}

// Result is the text recovered from one frame.
type Result struct {
	// Text is the surviving words joined by single spaces.
	Text string
	// Words are the surviving words in reading order.
	Words []Word
	// Confidence is the mean confidence of the surviving words, 0 when no
	// word survived.
	Confidence float64
}

// WordCount returns the number of surviving words.
func (r Result) WordCount() int { return len(r.Words) }

// Engine recognizes words in a preprocessed frame.
type Engine interface {
	Recognize(ctx context.Context, img *image.Gray) ([]Word, error)
}

// Preprocess prepares a grayscale frame for recognition: a light blur to
// knock out compression noise, adaptive thresholding to separate glyphs from
// uneven backgrounds, and a morphological close to heal broken strokes.
func Preprocess(g *image.Gray) *image.Gray {
	return raster.MorphClose2(raster.AdaptiveThreshold(raster.GaussianBlur5(g), 2))
}

// Extractor runs the preprocess-recognize-filter chain for single frames.
type Extractor struct {
	engine  Engine
	minConf float64
	logger  *logging.Logger
}

// NewExtractor builds an Extractor. Words at or below minConf are dropped.
func NewExtractor(engine Engine, minConf float64, logger *logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.Global()
	}
	return &Extractor{engine: engine, minConf: minConf, logger: logger}
}

// Extract recognizes text in one frame. Recognition faults are contained to
// the frame: the caller gets an empty Result, never an error, so one bad
// frame cannot sink a whole content check.
func (e *Extractor) Extract(ctx context.Context, frame *image.Gray) Result {
	words, err := e.engine.Recognize(ctx, Preprocess(frame))
	if err != nil {
		e.logger.Warn("text recognition failed for frame", "error", err)
		return Result{}
	}

	var (
		kept  []Word
		texts []string
		sum   float64
	)
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" || w.Confidence <= e.minConf {
			continue
		}
		kept = append(kept, Word{Text: text, Confidence: w.Confidence})
		texts = append(texts, text)
		sum += w.Confidence
	}
	if len(kept) == 0 {
		return Result{}
	}
	return Result{
		Text:       strings.Join(texts, " "),
		Words:      kept,
		Confidence: sum / float64(len(kept)),
	}
}

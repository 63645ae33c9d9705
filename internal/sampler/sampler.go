// Package sampler selects a bounded set of frames from a video for content
// analysis. Sampling is stride based over the full duration, and a cheap
// text-likelihood filter discards frames that are unlikely to contain any
// on-screen text before they reach OCR.
package sampler

import (
	"context"
	"image"

	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/raster"
)

// Frame is a single sampled grayscale frame with its position in the video.
type Frame struct {
	// Index is the frame number within the source video.
	Index int
	// Timestamp is the frame's position in seconds.
	Timestamp float64
	// Image is the decoded grayscale frame.
	Image *image.Gray
}

// FilterParams tune the text-likelihood pre-filter. A frame passes when more
// than MinComponents connected regions of the binarized frame fall inside the
// area and aspect ratio windows, which is a rough signature of glyph clusters.
type FilterParams struct {
	BinarizeThreshold uint8
	MinArea           int
	MaxArea           int
	MinAspect         float64
	MaxAspect         float64
	MinComponents     int
}

// DefaultFilterParams returns the filter tuning used in production.
func DefaultFilterParams() FilterParams {
	return FilterParams{
		BinarizeThreshold: 127,
		MinArea:           100,
		MaxArea:           10000,
		MinAspect:         0.2,
		MaxAspect:         10,
		MinComponents:     3,
	}
}

// LikelyContainsText reports whether a frame shows the component signature of
// rendered text. It errs on the cheap side; OCR makes the final call.
func LikelyContainsText(img *image.Gray, p FilterParams) bool {
	bin := raster.Binarize(img, p.BinarizeThreshold)
	count := 0
	for _, c := range raster.Components(bin) {
		if c.Area <= p.MinArea || c.Area >= p.MaxArea {
			continue
		}
		ar := c.AspectRatio()
		if ar <= p.MinAspect || ar >= p.MaxAspect {
			continue
		}
		count++
		if count > p.MinComponents {
			return true
		}
	}
	return false
}

// Sampler selects up to MaxFrames frames from a Source.
type Sampler struct {
	MaxFrames int
	Filter    FilterParams

	logger *logging.Logger
}

// New returns a Sampler with the given frame budget and default filter
// parameters.
func New(maxFrames int, logger *logging.Logger) *Sampler {
	if logger == nil {
		logger = logging.Global()
	}
	return &Sampler{
		MaxFrames: maxFrames,
		Filter:    DefaultFilterParams(),
		logger:    logger,
	}
}

// Sample extracts evenly strided frames from the source and returns those
// that pass the text-likelihood filter. A source that cannot report its
// length, or a wholesale extraction failure, yields an empty slice rather
// than an error: content analysis degrades to "no keyframes" instead of
// failing the whole check.
func (s *Sampler) Sample(ctx context.Context, src Source) []Frame {
	total := src.TotalFrames()
	if total <= 0 || s.MaxFrames <= 0 {
		return nil
	}

	stride := total / s.MaxFrames
	if stride < 1 {
		stride = 1
	}
	// Candidates cover the full duration; rejected frames do not consume
	// the budget, only kept frames count against MaxFrames.
	indexes := make([]int, 0, total/stride+1)
	for idx := 0; idx < total; idx += stride {
		indexes = append(indexes, idx)
	}

	frames, err := src.Extract(ctx, indexes)
	if err != nil {
		s.logger.Warn("frame extraction failed", "error", err)
		return nil
	}

	kept := frames[:0]
	for _, f := range frames {
		if f.Image == nil {
			continue
		}
		if LikelyContainsText(f.Image, s.Filter) {
			kept = append(kept, f)
			if len(kept) == s.MaxFrames {
				break
			}
		}
	}
	s.logger.Debug("sampled frames", "requested", len(indexes), "extracted", len(frames), "kept", len(kept))
	return kept
}

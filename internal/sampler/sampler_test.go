package sampler

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/jerald6111/video-quality-checker/internal/logging"
)

// textFrame draws several word-sized white blobs on black, enough to pass
// the component filter.
func textFrame() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, 320, 120))
	for i := 0; i < 5; i++ {
		x0 := 10 + i*60
		for y := 50; y < 62; y++ {
			for x := x0; x < x0+40; x++ {
				g.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return g
}

// blankFrame is uniform black with nothing resembling text.
func blankFrame() *image.Gray {
	return image.NewGray(image.Rect(0, 0, 320, 120))
}

type stubSource struct {
	total      int
	frames     map[int]*image.Gray
	extractErr error
	gotIndexes []int
	closed     bool
}

func (s *stubSource) TotalFrames() int { return s.total }

func (s *stubSource) Extract(_ context.Context, indexes []int) ([]Frame, error) {
	s.gotIndexes = indexes
	if s.extractErr != nil {
		return nil, s.extractErr
	}
	var out []Frame
	for _, idx := range indexes {
		img, ok := s.frames[idx]
		if !ok {
			continue
		}
		out = append(out, Frame{Index: idx, Timestamp: float64(idx) / 25, Image: img})
	}
	return out, nil
}

func (s *stubSource) Close() error {
	s.closed = true
	return nil
}

func discardLogger() *logging.Logger {
	return logging.New(logging.Config{Enabled: false})
}

func TestLikelyContainsText(t *testing.T) {
	p := DefaultFilterParams()
	if !LikelyContainsText(textFrame(), p) {
		t.Error("frame with word-sized blobs should pass the filter")
	}
	if LikelyContainsText(blankFrame(), p) {
		t.Error("blank frame should not pass the filter")
	}
}

func TestLikelyContainsTextRejectsOversizedRegions(t *testing.T) {
	// One giant white region: a bright sky, not text.
	g := image.NewGray(image.Rect(0, 0, 320, 120))
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	if LikelyContainsText(g, DefaultFilterParams()) {
		t.Error("single oversized region should not pass the filter")
	}
}

func TestSampleStrideAndBudget(t *testing.T) {
	frames := map[int]*image.Gray{}
	for i := 0; i < 3000; i += 100 {
		frames[i] = textFrame()
	}
	src := &stubSource{total: 3000, frames: frames}

	s := New(30, discardLogger())
	got := s.Sample(context.Background(), src)

	if len(src.gotIndexes) != 30 {
		t.Fatalf("requested %d indexes, want 30", len(src.gotIndexes))
	}
	if src.gotIndexes[0] != 0 || src.gotIndexes[1] != 100 || src.gotIndexes[29] != 2900 {
		t.Errorf("unexpected stride: first=%d second=%d last=%d",
			src.gotIndexes[0], src.gotIndexes[1], src.gotIndexes[29])
	}
	if len(got) != 30 {
		t.Errorf("got %d frames, want 30", len(got))
	}
}

func TestSampleScansFullDurationWhenStrideDoesNotDivide(t *testing.T) {
	// total=100 with budget 30 gives stride 3: candidates run 0,3,...,99.
	// Frames rejected by the filter must not consume the budget, so the
	// tail of the video is still visited.
	frames := map[int]*image.Gray{}
	for i := 0; i < 100; i += 3 {
		if i < 36 {
			frames[i] = blankFrame()
		} else {
			frames[i] = textFrame()
		}
	}
	src := &stubSource{total: 100, frames: frames}

	got := New(30, discardLogger()).Sample(context.Background(), src)

	if len(src.gotIndexes) != 34 {
		t.Fatalf("requested %d indexes, want 34", len(src.gotIndexes))
	}
	if last := src.gotIndexes[len(src.gotIndexes)-1]; last != 99 {
		t.Errorf("last candidate index = %d, want 99", last)
	}
	if len(got) != 22 {
		t.Fatalf("got %d frames, want the 22 text frames past the blank run", len(got))
	}
	if got[0].Index != 36 || got[len(got)-1].Index != 99 {
		t.Errorf("kept range %d..%d, want 36..99", got[0].Index, got[len(got)-1].Index)
	}
}

func TestSampleCapsKeptFramesAtBudget(t *testing.T) {
	frames := map[int]*image.Gray{}
	for i := 0; i < 100; i += 3 {
		frames[i] = textFrame()
	}
	src := &stubSource{total: 100, frames: frames}

	got := New(30, discardLogger()).Sample(context.Background(), src)
	if len(got) != 30 {
		t.Fatalf("got %d frames, want budget cap of 30", len(got))
	}
	if got[29].Index != 87 {
		t.Errorf("last kept index = %d, want 87 (first 30 accepted in order)", got[29].Index)
	}
}

func TestSampleShortVideoUsesEveryFrame(t *testing.T) {
	frames := map[int]*image.Gray{}
	for i := 0; i < 8; i++ {
		frames[i] = textFrame()
	}
	src := &stubSource{total: 8, frames: frames}

	got := New(30, discardLogger()).Sample(context.Background(), src)
	if len(src.gotIndexes) != 8 {
		t.Fatalf("requested %d indexes, want 8", len(src.gotIndexes))
	}
	if len(got) != 8 {
		t.Errorf("got %d frames, want 8", len(got))
	}
}

func TestSampleFiltersTextlessFrames(t *testing.T) {
	src := &stubSource{
		total: 3,
		frames: map[int]*image.Gray{
			0: textFrame(),
			1: blankFrame(),
			2: textFrame(),
		},
	}
	got := New(3, discardLogger()).Sample(context.Background(), src)
	if len(got) != 2 {
		t.Fatalf("got %d frames after filtering, want 2", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 2 {
		t.Errorf("kept indexes %d,%d, want 0,2", got[0].Index, got[1].Index)
	}
}

func TestSampleEmptyOnExtractFailure(t *testing.T) {
	src := &stubSource{total: 100, extractErr: errors.New("stream truncated")}
	got := New(30, discardLogger()).Sample(context.Background(), src)
	if len(got) != 0 {
		t.Errorf("got %d frames on extraction failure, want 0", len(got))
	}
}

func TestSampleEmptyOnUnknownLength(t *testing.T) {
	src := &stubSource{total: 0}
	got := New(30, discardLogger()).Sample(context.Background(), src)
	if got != nil {
		t.Errorf("got %v for zero-length source, want nil", got)
	}
	if src.gotIndexes != nil {
		t.Error("Extract should not be called for zero-length source")
	}
}

package sampler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/jerald6111/video-quality-checker/internal/ffprobe"
	"github.com/jerald6111/video-quality-checker/internal/raster"
	"github.com/jerald6111/video-quality-checker/internal/vqcerr"
)

// Source yields individual frames from a video.
type Source interface {
	// TotalFrames returns the number of frames in the video, or 0 when
	// unknown.
	TotalFrames() int
	// Extract decodes the frames at the given indexes. Indexes must be
	// ascending. Missing frames (indexes past the real end of the stream)
	// are silently omitted from the result.
	Extract(ctx context.Context, indexes []int) ([]Frame, error)
	// Close releases any scratch resources held by the source.
	Close() error
}

// SourceFactory opens a Source for a video path.
type SourceFactory func(ctx context.Context, path string) (Source, error)

// FFmpegSource extracts frames by running ffmpeg with a select filter and
// decoding the exported images. All scratch files live in a private temp
// directory removed on Close.
type FFmpegSource struct {
	path       string
	frameRate  float64
	total      int
	scratchDir string
}

// NewFFmpegSource probes the video to size the frame index space and
// prepares a scratch directory for exports.
func NewFFmpegSource(ctx context.Context, path string, prober ffprobe.Prober) (*FFmpegSource, error) {
	meta, err := prober.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	rate := meta.FrameRate
	if rate <= 0 {
		rate = meta.AvgFrameRate
	}
	if rate <= 0 || meta.Duration <= 0 {
		return nil, vqcerr.NewDecodeError(fmt.Sprintf("cannot size frame index space for %s", path), nil)
	}

	dir, err := os.MkdirTemp("", "vqc-frames-")
	if err != nil {
		return nil, vqcerr.NewIOError("failed to create frame scratch directory", err)
	}

	return &FFmpegSource{
		path:       path,
		frameRate:  rate,
		total:      int(math.Floor(meta.Duration * rate)),
		scratchDir: dir,
	}, nil
}

// TotalFrames returns the frame count derived from duration and frame rate.
func (s *FFmpegSource) TotalFrames() int { return s.total }

// Extract exports the requested frames in a single ffmpeg run and decodes
// them.
func (s *FFmpegSource) Extract(ctx context.Context, indexes []int) ([]Frame, error) {
	if len(indexes) == 0 {
		return nil, nil
	}

	terms := make([]string, len(indexes))
	for i, idx := range indexes {
		terms[i] = fmt.Sprintf(`eq(n\,%d)`, idx)
	}
	pattern := filepath.Join(s.scratchDir, "frame_%05d.png")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-v", "error",
		"-i", s.path,
		"-vf", fmt.Sprintf("select='%s'", strings.Join(terms, "+")),
		"-vsync", "0",
		"-y",
		pattern,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, vqcerr.NewDecodeError(fmt.Sprintf("ffmpeg frame extraction failed: %s", msg), err)
	}

	// Exports are numbered sequentially in the order the select filter
	// matched, which follows the ascending index order.
	frames := make([]Frame, 0, len(indexes))
	for i, idx := range indexes {
		file := filepath.Join(s.scratchDir, fmt.Sprintf("frame_%05d.png", i+1))
		img, err := decodeImage(file)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return frames, vqcerr.NewDecodeError(fmt.Sprintf("failed to decode exported frame %d", idx), err)
		}
		frames = append(frames, Frame{
			Index:     idx,
			Timestamp: float64(idx) / s.frameRate,
			Image:     raster.Grayscale(img),
		})
	}
	return frames, nil
}

// Close removes the scratch directory and all exported frames.
func (s *FFmpegSource) Close() error {
	if s.scratchDir == "" {
		return nil
	}
	err := os.RemoveAll(s.scratchDir)
	s.scratchDir = ""
	return err
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

package ffprobe

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jerald6111/video-quality-checker/internal/vqcerr"
)

// loadTestData loads a JSON fixture from the testdata directory.
func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to load test data %s: %v", filename, err)
	}
	return data
}

func parseFixture(t *testing.T, filename string) (*Metadata, error) {
	t.Helper()
	probe, err := parseFFprobeOutput(loadTestData(t, filename))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}
	return parseMetadata(probe)
}

func TestParseMetadata_1080pDelivery(t *testing.T) {
	meta, err := parseFixture(t, "video_1080p_delivery.json")
	if err != nil {
		t.Fatalf("parseMetadata() error = %v", err)
	}

	if meta.Width != 1920 || meta.Height != 1080 {
		t.Errorf("resolution = %s, want 1920x1080", meta.Resolution())
	}
	if meta.CodecName != "h264" {
		t.Errorf("CodecName = %q, want h264", meta.CodecName)
	}
	if meta.Profile != "High" {
		t.Errorf("Profile = %q, want High", meta.Profile)
	}
	if math.Abs(meta.FrameRate-29.97) > 0.001 {
		t.Errorf("FrameRate = %v, want ~29.97", meta.FrameRate)
	}
	if meta.Duration != 120.5204 {
		t.Errorf("Duration = %v, want 120.5204 (stream value preferred)", meta.Duration)
	}
	if meta.BitRate != 8250000 {
		t.Errorf("BitRate = %d, want 8250000", meta.BitRate)
	}
	if meta.FileSize != 124780544 {
		t.Errorf("FileSize = %d, want 124780544", meta.FileSize)
	}
	if meta.PixelFormat != "yuv420p" {
		t.Errorf("PixelFormat = %q, want yuv420p", meta.PixelFormat)
	}
}

func TestParseMetadata_FormatLevelFallbacks(t *testing.T) {
	// The webm fixture carries duration and bit rate only at format level.
	meta, err := parseFixture(t, "video_720p_screener.json")
	if err != nil {
		t.Fatalf("parseMetadata() error = %v", err)
	}

	if meta.Duration != 45.1 {
		t.Errorf("Duration = %v, want 45.1 from format fallback", meta.Duration)
	}
	if meta.BitRate != 930000 {
		t.Errorf("BitRate = %d, want 930000 from format fallback", meta.BitRate)
	}
	if meta.FrameRate != 15 {
		t.Errorf("FrameRate = %v, want 15", meta.FrameRate)
	}
	if meta.FormatName != "matroska,webm" {
		t.Errorf("FormatName = %q", meta.FormatName)
	}
}

func TestParseMetadata_NoVideoStream(t *testing.T) {
	_, err := parseFixture(t, "audio_only.json")
	if err == nil {
		t.Fatal("parseMetadata() on audio-only input should fail")
	}
	if !vqcerr.IsProbe(err) {
		t.Errorf("error kind = %v, want probe error", err)
	}
}

func TestParseFFprobeOutput_Malformed(t *testing.T) {
	_, err := parseFFprobeOutput([]byte("{not json"))
	if err == nil {
		t.Fatal("parseFFprobeOutput() on garbage should fail")
	}
	if !vqcerr.IsProbe(err) {
		t.Errorf("error kind = %v, want probe error", err)
	}
}

func TestResolution(t *testing.T) {
	m := &Metadata{Width: 3840, Height: 2160}
	if got := m.Resolution(); got != "3840x2160" {
		t.Errorf("Resolution() = %q, want 3840x2160", got)
	}
}

// Package ffprobe extracts media metadata using ffprobe.
package ffprobe

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"

	"github.com/jerald6111/video-quality-checker/internal/util"
	"github.com/jerald6111/video-quality-checker/internal/vqcerr"
)

// Metadata contains the probed stream and container properties of a video.
// It is produced once per assessment and read-only thereafter.
type Metadata struct {
	Width         int
	Height        int
	CodecName     string
	CodecLongName string
	FrameRate     float64
	AvgFrameRate  float64
	Duration      float64
	BitRate       uint64
	Profile       string
	PixelFormat   string
	FileSize      uint64
	FormatName    string
}

// Resolution returns the probed resolution as "WxH".
func (m *Metadata) Resolution() string {
	return strconv.Itoa(m.Width) + "x" + strconv.Itoa(m.Height)
}

// Prober extracts metadata from a video file. The single-method interface
// lets the validator and facade be tested without the ffprobe binary.
type Prober interface {
	Probe(ctx context.Context, path string) (*Metadata, error)
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

type ffprobeStream struct {
	CodecType     string `json:"codec_type"`
	CodecName     string `json:"codec_name"`
	CodecLongName string `json:"codec_long_name"`
	Profile       string `json:"profile"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	RFrameRate    string `json:"r_frame_rate"`
	AvgFrameRate  string `json:"avg_frame_rate"`
	Duration      string `json:"duration"`
	BitRate       string `json:"bit_rate"`
	PixFmt        string `json:"pix_fmt"`
}

// CommandProber implements Prober by executing the ffprobe binary.
type CommandProber struct{}

// NewCommandProber creates a Prober backed by the ffprobe binary.
func NewCommandProber() *CommandProber {
	return &CommandProber{}
}

// Probe runs ffprobe on the given file and returns parsed metadata.
func (p *CommandProber) Probe(ctx context.Context, path string) (*Metadata, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, vqcerr.NewProbeError("ffprobe failed for "+path, err)
	}

	probe, err := parseFFprobeOutput(output)
	if err != nil {
		return nil, err
	}

	return parseMetadata(probe)
}

// parseFFprobeOutput decodes raw ffprobe JSON.
func parseFFprobeOutput(data []byte) (*ffprobeOutput, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, vqcerr.NewProbeError("failed to parse ffprobe output", err)
	}
	return &probe, nil
}

// parseMetadata maps raw ffprobe output onto Metadata, selecting the first
// video stream.
func parseMetadata(probe *ffprobeOutput) (*Metadata, error) {
	var video *ffprobeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			video = &probe.Streams[i]
			break
		}
	}

	if video == nil {
		return nil, vqcerr.NewProbeError("no video stream found in file", nil)
	}

	meta := &Metadata{
		Width:         video.Width,
		Height:        video.Height,
		CodecName:     strings.ToLower(video.CodecName),
		CodecLongName: video.CodecLongName,
		Profile:       video.Profile,
		PixelFormat:   video.PixFmt,
		FrameRate:     util.ParseRational(video.RFrameRate),
		AvgFrameRate:  util.ParseRational(video.AvgFrameRate),
		FormatName:    probe.Format.FormatName,
	}

	// Duration and bit rate live on the stream for most containers, but some
	// (notably MKV) only report them at the format level.
	meta.Duration = parseFloat(video.Duration)
	if meta.Duration == 0 {
		meta.Duration = parseFloat(probe.Format.Duration)
	}

	meta.BitRate = parseUint(video.BitRate)
	if meta.BitRate == 0 {
		meta.BitRate = parseUint(probe.Format.BitRate)
	}

	meta.FileSize = parseUint(probe.Format.Size)

	return meta, nil
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseUint(s string) uint64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Package technical validates probed video metadata against delivery standards.
package technical

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jerald6111/video-quality-checker/internal/config"
	"github.com/jerald6111/video-quality-checker/internal/ffprobe"
)

// Status values for a technical check result.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// ResolutionCheck records the resolution comparison.
type ResolutionCheck struct {
	Current  string `json:"current"`
	Required string `json:"required"`
	Passed   bool   `json:"pass"`
}

// FrameRateCheck records the frame rate comparison.
type FrameRateCheck struct {
	Current    float64   `json:"current"`
	ValidRates []float64 `json:"valid_rates"`
	Passed     bool      `json:"pass"`
}

// CodecCheck records the codec comparison.
type CodecCheck struct {
	Current     string   `json:"current"`
	ValidCodecs []string `json:"valid_codecs"`
	Passed      bool     `json:"pass"`
}

// Checks groups the three validation dimensions.
type Checks struct {
	Resolution ResolutionCheck `json:"resolution_check"`
	FrameRate  FrameRateCheck  `json:"frame_rate_check"`
	Codec      CodecCheck      `json:"codec_check"`
}

// Result contains the outcome of a technical validation.
type Result struct {
	Status   string
	Metadata *ffprobe.Metadata
	Checks   Checks
	Errors   []string
	Warnings []string
}

// Passed reports whether all checks passed.
func (r *Result) Passed() bool {
	return r.Status == StatusPass
}

// Validate checks metadata against the given standards. Pure function of its
// inputs; error strings are built eagerly so the report fuser never needs to
// recompute them.
func Validate(meta *ffprobe.Metadata, std config.Standards) *Result {
	result := &Result{Metadata: meta}

	result.Checks.Resolution = ResolutionCheck{
		Current:  meta.Resolution(),
		Required: fmt.Sprintf("%dx%d", std.MinWidth, std.MinHeight),
		Passed:   meta.Width >= std.MinWidth && meta.Height >= std.MinHeight,
	}
	if !result.Checks.Resolution.Passed {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Resolution %s is below minimum requirement of %dx%d",
			meta.Resolution(), std.MinWidth, std.MinHeight))
	}

	result.Checks.FrameRate = FrameRateCheck{
		Current:    math.Round(meta.FrameRate*1000) / 1000,
		ValidRates: std.FrameRates,
		Passed:     frameRateApproved(meta.FrameRate, std),
	}
	if !result.Checks.FrameRate.Passed {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Frame rate %.3f FPS is not in approved list: %v",
			meta.FrameRate, std.FrameRates))
	}

	result.Checks.Codec = CodecCheck{
		Current:     meta.CodecName,
		ValidCodecs: std.Codecs,
		Passed:      codecApproved(meta.CodecName, std),
	}
	if !result.Checks.Codec.Passed {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Codec '%s' is not in approved list: %v",
			meta.CodecName, std.Codecs))
	}

	if meta.BitRate > 0 && meta.BitRate < std.MinBitRate {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Low bit rate detected: %.2f Mbps", float64(meta.BitRate)/1_000_000))
	}
	if meta.Duration <= 0 {
		result.Warnings = append(result.Warnings, "Could not determine video duration")
	}

	result.Status = StatusFail
	if len(result.Errors) == 0 {
		result.Status = StatusPass
	}
	return result
}

// CheckFile probes the file and validates it. Total: a probe failure yields a
// fail result with a single descriptive error rather than propagating.
func CheckFile(ctx context.Context, prober ffprobe.Prober, path string, std config.Standards) *Result {
	meta, err := prober.Probe(ctx, path)
	if err != nil {
		return &Result{
			Status:   StatusFail,
			Metadata: &ffprobe.Metadata{},
			Errors:   []string{fmt.Sprintf("Technical analysis failed: %v", err)},
		}
	}
	return Validate(meta, std)
}

// frameRateApproved reports whether rate is within tolerance of any approved
// rate. The tolerance absorbs NTSC rational rounding (30000/1001 vs 29.97).
func frameRateApproved(rate float64, std config.Standards) bool {
	for _, valid := range std.FrameRates {
		if math.Abs(rate-valid) < std.FrameRateTol {
			return true
		}
	}
	return false
}

// codecApproved matches by case-insensitive substring containment, since
// codec-name vendors vary format strings.
func codecApproved(codec string, std config.Standards) bool {
	lowered := strings.ToLower(codec)
	for _, valid := range std.Codecs {
		if strings.Contains(lowered, strings.ToLower(valid)) {
			return true
		}
	}
	return false
}

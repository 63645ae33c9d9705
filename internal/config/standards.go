package config

// Broadcast delivery standards defaults.
const (
	// DefaultMinWidth is the minimum accepted horizontal resolution.
	DefaultMinWidth = 1920

	// DefaultMinHeight is the minimum accepted vertical resolution.
	DefaultMinHeight = 1080

	// FrameRateTolerance absorbs NTSC rational rounding (30000/1001 vs 29.97).
	FrameRateTolerance = 0.1

	// LowBitRateThreshold is the bit rate below which a warning is emitted.
	LowBitRateThreshold = 1_000_000
)

// DefaultFrameRates is the approved delivery frame rate list in fps.
var DefaultFrameRates = []float64{23.976, 24, 25, 29.97, 30, 50, 60}

// DefaultCodecs is the approved codec identifier list. Identifiers are matched
// by case-insensitive substring containment against the probed codec name,
// since codec-name vendors vary format strings.
var DefaultCodecs = []string{"h264", "prores", "h.264"}

// Standards holds the delivery standards a video is validated against.
// A Standards value is immutable once constructed; concurrent assessments
// share it read-only.
type Standards struct {
	MinWidth     int
	MinHeight    int
	FrameRates   []float64
	FrameRateTol float64
	Codecs       []string
	MinBitRate   uint64
}

// DefaultStandards returns the fixed broadcast delivery standards.
func DefaultStandards() Standards {
	return Standards{
		MinWidth:     DefaultMinWidth,
		MinHeight:    DefaultMinHeight,
		FrameRates:   DefaultFrameRates,
		FrameRateTol: FrameRateTolerance,
		Codecs:       DefaultCodecs,
		MinBitRate:   LowBitRateThreshold,
	}
}

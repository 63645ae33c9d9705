package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidMaxKeyframes indicates a keyframe bound outside the valid range.
	ErrInvalidMaxKeyframes = errors.New("max keyframes out of range")

	// ErrInvalidConfidence indicates an OCR confidence cutoff outside 0-99.
	ErrInvalidConfidence = errors.New("word confidence cutoff out of range")

	// ErrInvalidStandards indicates a malformed delivery standards block.
	ErrInvalidStandards = errors.New("delivery standards invalid")

	// ErrInvalidVocabulary indicates a malformed custom vocabulary entry.
	ErrInvalidVocabulary = errors.New("custom vocabulary invalid")
)

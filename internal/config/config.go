// Package config provides configuration types and defaults for the quality checker.
package config

import (
	"fmt"
	"strings"
)

// Default constants
const (
	// DefaultMaxKeyframes bounds how many frames are selected for OCR.
	DefaultMaxKeyframes = 30

	// DefaultMinWordConfidence is the OCR confidence threshold; words at or
	// below it are discarded.
	DefaultMinWordConfidence = 30

	// MaxKeyframeLimit is the upper bound accepted for MaxKeyframes.
	MaxKeyframeLimit = 500

	// MaxConfidence is the upper bound of the OCR confidence scale.
	MaxConfidence = 100
)

// Config holds all configuration for a quality assessment run.
// Each assessment receives its own Config value; nothing here is shared
// mutable state across requests.
type Config struct {
	// LogDir receives the per-run log file. Empty disables file logging.
	LogDir string

	// Standards the technical validator checks against.
	Standards Standards

	// MaxKeyframes bounds the frame sampler.
	MaxKeyframes int

	// MinWordConfidence is the OCR word confidence cutoff (exclusive).
	MinWordConfidence int

	// Vocabulary is the caller-supplied word list the spelling pass accepts
	// unconditionally. Matching is case-insensitive.
	Vocabulary []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Standards:         DefaultStandards(),
		MaxKeyframes:      DefaultMaxKeyframes,
		MinWordConfidence: DefaultMinWordConfidence,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxKeyframes <= 0 || c.MaxKeyframes > MaxKeyframeLimit {
		return fmt.Errorf("%w: must be 1-%d, got %d", ErrInvalidMaxKeyframes, MaxKeyframeLimit, c.MaxKeyframes)
	}

	if c.MinWordConfidence < 0 || c.MinWordConfidence >= MaxConfidence {
		return fmt.Errorf("%w: must be 0-%d, got %d", ErrInvalidConfidence, MaxConfidence-1, c.MinWordConfidence)
	}

	if c.Standards.MinWidth <= 0 || c.Standards.MinHeight <= 0 {
		return fmt.Errorf("%w: minimum resolution %dx%d", ErrInvalidStandards, c.Standards.MinWidth, c.Standards.MinHeight)
	}

	if len(c.Standards.FrameRates) == 0 {
		return fmt.Errorf("%w: approved frame rate list is empty", ErrInvalidStandards)
	}

	if len(c.Standards.Codecs) == 0 {
		return fmt.Errorf("%w: approved codec list is empty", ErrInvalidStandards)
	}

	for _, word := range c.Vocabulary {
		if strings.TrimSpace(word) == "" {
			return fmt.Errorf("%w: vocabulary contains a blank entry", ErrInvalidVocabulary)
		}
	}

	return nil
}

// VocabularySet returns the vocabulary lowered into a set for the spelling pass.
func (c *Config) VocabularySet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Vocabulary))
	for _, word := range c.Vocabulary {
		set[strings.ToLower(strings.TrimSpace(word))] = struct{}{}
	}
	return set
}

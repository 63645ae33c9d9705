package config

import (
	"errors"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.MaxKeyframes != DefaultMaxKeyframes {
		t.Errorf("MaxKeyframes = %d, want %d", cfg.MaxKeyframes, DefaultMaxKeyframes)
	}
	if cfg.MinWordConfidence != DefaultMinWordConfidence {
		t.Errorf("MinWordConfidence = %d, want %d", cfg.MinWordConfidence, DefaultMinWordConfidence)
	}
	if cfg.Standards.MinWidth != 1920 || cfg.Standards.MinHeight != 1080 {
		t.Errorf("Standards resolution = %dx%d, want 1920x1080", cfg.Standards.MinWidth, cfg.Standards.MinHeight)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v, want nil", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "zero max keyframes",
			mutate:  func(c *Config) { c.MaxKeyframes = 0 },
			wantErr: ErrInvalidMaxKeyframes,
		},
		{
			name:    "excessive max keyframes",
			mutate:  func(c *Config) { c.MaxKeyframes = MaxKeyframeLimit + 1 },
			wantErr: ErrInvalidMaxKeyframes,
		},
		{
			name:    "negative confidence",
			mutate:  func(c *Config) { c.MinWordConfidence = -1 },
			wantErr: ErrInvalidConfidence,
		},
		{
			name:    "confidence at scale ceiling",
			mutate:  func(c *Config) { c.MinWordConfidence = 100 },
			wantErr: ErrInvalidConfidence,
		},
		{
			name:    "empty frame rate list",
			mutate:  func(c *Config) { c.Standards.FrameRates = nil },
			wantErr: ErrInvalidStandards,
		},
		{
			name:    "empty codec list",
			mutate:  func(c *Config) { c.Standards.Codecs = nil },
			wantErr: ErrInvalidStandards,
		},
		{
			name:    "blank vocabulary entry",
			mutate:  func(c *Config) { c.Vocabulary = []string{"Iconik", "  "} },
			wantErr: ErrInvalidVocabulary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVocabularySet(t *testing.T) {
	cfg := NewConfig()
	cfg.Vocabulary = []string{"Iconik", "PRORES", " Avid "}

	set := cfg.VocabularySet()
	for _, want := range []string{"iconik", "prores", "avid"} {
		if _, ok := set[want]; !ok {
			t.Errorf("VocabularySet() missing %q", want)
		}
	}
	if _, ok := set["Iconik"]; ok {
		t.Error("VocabularySet() kept original casing")
	}
}

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DOWNLOAD_DIR", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	srv := LoadServer()
	if srv.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", srv.Port, DefaultPort)
	}
	if srv.DownloadDir != DefaultDownloadDir {
		t.Errorf("DownloadDir = %q, want %q", srv.DownloadDir, DefaultDownloadDir)
	}
	if len(srv.AllowedOrigins) == 0 {
		t.Error("AllowedOrigins is empty")
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://qa.example.com, https://qa2.example.com")

	srv := LoadServer()
	if srv.Port != "9090" {
		t.Errorf("Port = %q, want 9090", srv.Port)
	}
	if len(srv.AllowedOrigins) != 2 || srv.AllowedOrigins[1] != "https://qa2.example.com" {
		t.Errorf("AllowedOrigins = %v", srv.AllowedOrigins)
	}
}

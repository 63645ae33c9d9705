package vqcerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindIO, "I/O error"},
		{KindCommand, "Command error"},
		{KindProbe, "Probe error"},
		{KindDecode, "Decode error"},
		{KindOCR, "OCR error"},
		{KindDownload, "Download error"},
		{KindConfig, "Configuration error"},
		{KindReport, "Report error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorError(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Kind:       KindProbe,
		Message:    "test message",
		Underlying: underlying,
	}

	got := err.Error()
	expected := "Probe error: test message: underlying error"
	if got != expected {
		t.Errorf("Error() = %v, want %v", got, expected)
	}

	err2 := &Error{Kind: KindConfig, Message: "config issue"}
	got2 := err2.Error()
	expected2 := "Configuration error: config issue"
	if got2 != expected2 {
		t.Errorf("Error() = %v, want %v", got2, expected2)
	}
}

func TestErrorUnwrap(t *testing.T) {
	underlying := errors.New("root cause")
	err := NewProbeError("probe failed", underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find the underlying error")
	}
}

func TestIsKind(t *testing.T) {
	err := NewDownloadError("fetch failed", nil)

	if !IsKind(err, KindDownload) {
		t.Error("IsKind(KindDownload) = false, want true")
	}
	if IsKind(err, KindProbe) {
		t.Error("IsKind(KindProbe) = true, want false")
	}
	if IsKind(errors.New("plain"), KindDownload) {
		t.Error("IsKind on plain error = true, want false")
	}

	// Wrapped errors still match by kind.
	wrapped := fmt.Errorf("context: %w", err)
	if !IsDownload(wrapped) {
		t.Error("IsDownload on wrapped error = false, want true")
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsProbe(NewProbeError("x", nil)) {
		t.Error("IsProbe = false, want true")
	}
	if !IsDecode(NewDecodeError("x", nil)) {
		t.Error("IsDecode = false, want true")
	}
	if IsProbe(NewDecodeError("x", nil)) {
		t.Error("IsProbe on decode error = true, want false")
	}
}

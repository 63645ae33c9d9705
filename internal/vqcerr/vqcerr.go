// Package vqcerr provides structured error types for quality check operations.
package vqcerr

import (
	"errors"
	"fmt"
)

// Kind represents the category of an error.
type Kind int

const (
	// KindIO represents I/O errors.
	KindIO Kind = iota
	// KindCommand represents external command execution errors.
	KindCommand
	// KindProbe represents metadata extraction errors.
	KindProbe
	// KindDecode represents frame decoding errors.
	KindDecode
	// KindOCR represents text recognition errors.
	KindOCR
	// KindDownload represents share-link download errors.
	KindDownload
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindReport represents report aggregation errors.
	KindReport
)

// String returns a string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindCommand:
		return "Command error"
	case KindProbe:
		return "Probe error"
	case KindDecode:
		return "Decode error"
	case KindOCR:
		return "OCR error"
	case KindDownload:
		return "Download error"
	case KindConfig:
		return "Configuration error"
	case KindReport:
		return "Report error"
	default:
		return "Unknown error"
	}
}

// Error is the main error type for quality check operations.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *Error {
	return &Error{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, underlying error) *Error {
	return &Error{Kind: KindCommand, Message: fmt.Sprintf("failed to execute %s", cmd), Underlying: underlying}
}

// NewProbeError creates a new metadata extraction error.
func NewProbeError(message string, underlying error) *Error {
	return &Error{Kind: KindProbe, Message: message, Underlying: underlying}
}

// NewDecodeError creates a new frame decoding error.
func NewDecodeError(message string, underlying error) *Error {
	return &Error{Kind: KindDecode, Message: message, Underlying: underlying}
}

// NewOCRError creates a new text recognition error.
func NewOCRError(message string, underlying error) *Error {
	return &Error{Kind: KindOCR, Message: message, Underlying: underlying}
}

// NewDownloadError creates a new download error.
func NewDownloadError(message string, underlying error) *Error {
	return &Error{Kind: KindDownload, Message: message, Underlying: underlying}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// NewReportError creates a new report aggregation error.
func NewReportError(message string, underlying error) *Error {
	return &Error{Kind: KindReport, Message: message, Underlying: underlying}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsProbe checks if the error is a metadata extraction error.
func IsProbe(err error) bool {
	return IsKind(err, KindProbe)
}

// IsDownload checks if the error is a download error.
func IsDownload(err error) bool {
	return IsKind(err, KindDownload)
}

// IsDecode checks if the error is a frame decoding error.
func IsDecode(err error) bool {
	return IsKind(err, KindDecode)
}

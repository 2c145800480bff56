package checklist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTrack is returned when a track ID is not in the catalog.
	ErrUnknownTrack = errors.New("unknown track")

	// ErrUnknownDocumentType is returned when an attachment targets a
	// document type the selected track has no requirement for.
	ErrUnknownDocumentType = errors.New("unknown document type for track")

	// ErrAlreadySubmitted is returned when a finalized submission is mutated.
	ErrAlreadySubmitted = errors.New("submission already finalized")
)

// Reason classifies why a file was rejected for a checklist slot.
type Reason string

const (
	ReasonUnsupportedFormat Reason = "unsupported_format"
	ReasonFileTooLarge      Reason = "file_too_large"
)

// ValidationError reports a per-slot file rejection. It carries the
// offending document type and the violated constraint so callers can point
// at the exact slot.
type ValidationError struct {
	DocumentType    DocumentType
	Reason          Reason
	FileName        string
	AcceptedFormats []string
	MaxSizeBytes    int64
	SizeBytes       int64
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonUnsupportedFormat:
		return fmt.Sprintf("%s: file %q has unsupported format, accepted: %s",
			e.DocumentType, e.FileName, strings.Join(e.AcceptedFormats, ", "))
	case ReasonFileTooLarge:
		return fmt.Sprintf("%s: file %q is %d bytes, limit is %d bytes",
			e.DocumentType, e.FileName, e.SizeBytes, e.MaxSizeBytes)
	default:
		return fmt.Sprintf("%s: file %q rejected", e.DocumentType, e.FileName)
	}
}

// IncompleteError reports a submit attempt while required slots are empty
// or hold attachments that no longer satisfy their requirement.
type IncompleteError struct {
	Missing []DocumentType
}

func (e *IncompleteError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, t := range e.Missing {
		parts[i] = string(t)
	}
	return "submission incomplete, missing: " + strings.Join(parts, ", ")
}

package checklist

import (
	"path/filepath"
	"strings"
)

// DocumentType identifies one slot in a track's document checklist.
type DocumentType string

const (
	DocumentTypePhoto      DocumentType = "photo"
	DocumentTypeIDCard     DocumentType = "id_card"
	DocumentTypeTranscript DocumentType = "transcript"
	DocumentTypeNameChange DocumentType = "name_change"
)

// Requirement is one immutable rule of a track's checklist: which document
// type is expected, whether it is mandatory, and the file constraints an
// attachment must satisfy.
type Requirement struct {
	Type            DocumentType `yaml:"type"`
	Label           string       `yaml:"label"`
	Required        bool         `yaml:"required"`
	AcceptedFormats []string     `yaml:"accepted_formats"`
	MaxSizeBytes    int64        `yaml:"max_size_bytes"`
}

// Track is an enrollment schedule variant with its ordered requirement list.
type Track struct {
	ID           string        `yaml:"id"`
	Name         string        `yaml:"name"`
	Requirements []Requirement `yaml:"requirements"`
}

// AcceptsFormat reports whether the file name's extension is one of the
// requirement's accepted formats. Matching is case-insensitive and ignores
// the leading dot.
func (r Requirement) AcceptsFormat(fileName string) bool {
	ext := FileExtension(fileName)
	for _, f := range r.AcceptedFormats {
		if strings.ToLower(f) == ext {
			return true
		}
	}
	return false
}

// FileExtension returns the lowercase extension of fileName without the dot.
func FileExtension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

package checklist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultMaxSizeBytes is the per-file cap applied when a requirement in a
// catalog file omits max_size_bytes.
const defaultMaxSizeBytes = 200 << 20 // 200 MB

// Catalog holds the track definitions loaded at startup. It is immutable
// after construction.
type Catalog struct {
	tracks []Track
	byID   map[string]int
}

// NewCatalog builds a catalog from track definitions, preserving order.
func NewCatalog(tracks []Track) (*Catalog, error) {
	if len(tracks) == 0 {
		return nil, fmt.Errorf("catalog has no tracks")
	}

	byID := make(map[string]int, len(tracks))
	for i, track := range tracks {
		if track.ID == "" {
			return nil, fmt.Errorf("track %d has empty id", i)
		}
		if _, ok := byID[track.ID]; ok {
			return nil, fmt.Errorf("duplicate track id %q", track.ID)
		}
		if len(track.Requirements) == 0 {
			return nil, fmt.Errorf("track %q has no requirements", track.ID)
		}

		seen := make(map[DocumentType]bool, len(track.Requirements))
		for j, req := range track.Requirements {
			if req.Type == "" {
				return nil, fmt.Errorf("track %q requirement %d has empty type", track.ID, j)
			}
			if seen[req.Type] {
				return nil, fmt.Errorf("track %q has duplicate requirement %q", track.ID, req.Type)
			}
			seen[req.Type] = true
			if len(req.AcceptedFormats) == 0 {
				return nil, fmt.Errorf("track %q requirement %q accepts no formats", track.ID, req.Type)
			}
			if req.MaxSizeBytes <= 0 {
				track.Requirements[j].MaxSizeBytes = defaultMaxSizeBytes
			}
		}
		byID[track.ID] = i
	}

	return &Catalog{tracks: tracks, byID: byID}, nil
}

// LoadCatalog reads track definitions from a YAML file. When the file does
// not exist the built-in default catalog is returned, so deployments only
// ship a tracks file to override the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("failed to read tracks file: %w", err)
	}

	var file struct {
		Tracks []Track `yaml:"tracks"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tracks file: %w", err)
	}

	return NewCatalog(file.Tracks)
}

// DefaultCatalog returns the built-in track set: the general program and the
// two Cyber Security schedule variants, each requiring an applicant photo,
// an ID card copy and a transcript copy, with an optional name-change
// certificate slot.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultTracks())
	if err != nil {
		// Default definitions are compiled in; construction cannot fail.
		panic(err)
	}
	return catalog
}

func defaultTracks() []Track {
	requirements := func() []Requirement {
		return []Requirement{
			{
				Type:            DocumentTypePhoto,
				Label:           "Applicant photo",
				Required:        true,
				AcceptedFormats: []string{"jpg", "jpeg", "png"},
				MaxSizeBytes:    defaultMaxSizeBytes,
			},
			{
				Type:            DocumentTypeIDCard,
				Label:           "Citizen ID card copy",
				Required:        true,
				AcceptedFormats: []string{"pdf", "jpg", "jpeg", "png"},
				MaxSizeBytes:    defaultMaxSizeBytes,
			},
			{
				Type:            DocumentTypeTranscript,
				Label:           "Transcript copy",
				Required:        true,
				AcceptedFormats: []string{"pdf", "jpg", "jpeg", "png"},
				MaxSizeBytes:    defaultMaxSizeBytes,
			},
			{
				Type:            DocumentTypeNameChange,
				Label:           "Name change certificate",
				Required:        false,
				AcceptedFormats: []string{"pdf", "jpg", "jpeg", "png"},
				MaxSizeBytes:    defaultMaxSizeBytes,
			},
		}
	}

	return []Track{
		{ID: "general", Name: "General program", Requirements: requirements()},
		{ID: "cyber-security-weekday", Name: "Cyber Security (Mon-Fri)", Requirements: requirements()},
		{ID: "cyber-security-weekend", Name: "Cyber Security (Sat-Sun)", Requirements: requirements()},
	}
}

// Tracks returns all tracks in catalog order.
func (c *Catalog) Tracks() []Track {
	out := make([]Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// Requirements returns the ordered requirement list for a track. The result
// is deterministic for a given catalog.
func (c *Catalog) Requirements(trackID string) ([]Requirement, error) {
	i, ok := c.byID[trackID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrack, trackID)
	}
	reqs := make([]Requirement, len(c.tracks[i].Requirements))
	copy(reqs, c.tracks[i].Requirements)
	return reqs, nil
}

// HasTrack reports whether trackID is defined.
func (c *Catalog) HasTrack(trackID string) bool {
	_, ok := c.byID[trackID]
	return ok
}

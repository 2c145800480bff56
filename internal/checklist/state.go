package checklist

import "fmt"

// Phase is the coarse progress of one submission session.
type Phase string

const (
	PhaseEmpty     Phase = "empty"
	PhasePartial   Phase = "partial"
	PhaseReady     Phase = "ready"
	PhaseSubmitted Phase = "submitted"
)

// Attachment is one file accepted into a checklist slot.
type Attachment struct {
	Type      DocumentType
	FileName  string
	SizeBytes int64
}

// State is the submission state of one applicant session: which slots hold
// attachments and whether the submission was finalized. State is a value;
// Attach and Detach return a new state and leave the receiver untouched,
// so a failed validation never changes what the caller holds.
type State struct {
	attachments map[DocumentType]Attachment
	submitted   bool
}

// NewState returns an empty submission state.
func NewState() State {
	return State{}
}

// RestoreState rebuilds a state from persisted attachments. Attachments are
// taken as-is; requirement checks happen lazily in Ready and Missing, so a
// catalog change after upload is still caught before submission.
func RestoreState(attachments []Attachment, submitted bool) State {
	s := State{submitted: submitted}
	if len(attachments) > 0 {
		s.attachments = make(map[DocumentType]Attachment, len(attachments))
		for _, a := range attachments {
			s.attachments[a.Type] = a
		}
	}
	return s
}

func (s State) clone() State {
	next := State{submitted: s.submitted}
	if len(s.attachments) > 0 {
		next.attachments = make(map[DocumentType]Attachment, len(s.attachments))
		for k, v := range s.attachments {
			next.attachments[k] = v
		}
	}
	return next
}

// Attach validates the file against the matching requirement and returns a
// new state with the attachment in place, replacing any prior attachment of
// the same type. On any error the returned state equals the receiver.
func (s State) Attach(reqs []Requirement, att Attachment) (State, error) {
	if s.submitted {
		return s, ErrAlreadySubmitted
	}

	req, ok := findRequirement(reqs, att.Type)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownDocumentType, att.Type)
	}

	if err := ValidateFile(req, att.FileName, att.SizeBytes); err != nil {
		return s, err
	}

	next := s.clone()
	if next.attachments == nil {
		next.attachments = make(map[DocumentType]Attachment, len(reqs))
	}
	next.attachments[att.Type] = att
	return next, nil
}

// Detach removes the attachment for a document type, if any.
func (s State) Detach(docType DocumentType) (State, error) {
	if s.submitted {
		return s, ErrAlreadySubmitted
	}
	if _, ok := s.attachments[docType]; !ok {
		return s, nil
	}
	next := s.clone()
	delete(next.attachments, docType)
	return next, nil
}

// Submit finalizes the state. It fails with *IncompleteError unless every
// required slot is satisfied. A finalized state is terminal.
func (s State) Submit(reqs []Requirement) (State, error) {
	if s.submitted {
		return s, ErrAlreadySubmitted
	}
	if missing := s.Missing(reqs); len(missing) > 0 {
		return s, &IncompleteError{Missing: missing}
	}
	next := s.clone()
	next.submitted = true
	return next, nil
}

// Ready reports whether every required requirement holds a satisfying
// attachment. Pure; the state is not modified.
func (s State) Ready(reqs []Requirement) bool {
	return len(s.Missing(reqs)) == 0
}

// Missing returns the required document types that have no satisfying
// attachment, in requirement order.
func (s State) Missing(reqs []Requirement) []DocumentType {
	var missing []DocumentType
	for _, req := range reqs {
		if !req.Required {
			continue
		}
		att, ok := s.attachments[req.Type]
		if !ok || ValidateFile(req, att.FileName, att.SizeBytes) != nil {
			missing = append(missing, req.Type)
		}
	}
	return missing
}

// Phase classifies the state against a requirement list.
func (s State) Phase(reqs []Requirement) Phase {
	switch {
	case s.submitted:
		return PhaseSubmitted
	case s.Ready(reqs):
		return PhaseReady
	case len(s.attachments) > 0:
		return PhasePartial
	default:
		return PhaseEmpty
	}
}

// Submitted reports whether the state is terminal.
func (s State) Submitted() bool {
	return s.submitted
}

// Attachment returns the attachment for a document type, if present.
func (s State) Attachment(docType DocumentType) (Attachment, bool) {
	att, ok := s.attachments[docType]
	return att, ok
}

// Attachments returns the attachments ordered by the requirement list;
// attachments for types absent from reqs are dropped.
func (s State) Attachments(reqs []Requirement) []Attachment {
	out := make([]Attachment, 0, len(s.attachments))
	for _, req := range reqs {
		if att, ok := s.attachments[req.Type]; ok {
			out = append(out, att)
		}
	}
	return out
}

// ValidateFile checks a candidate file against one requirement and returns
// a *ValidationError describing the violated constraint, or nil.
func ValidateFile(req Requirement, fileName string, sizeBytes int64) error {
	if !req.AcceptsFormat(fileName) {
		return &ValidationError{
			DocumentType:    req.Type,
			Reason:          ReasonUnsupportedFormat,
			FileName:        fileName,
			AcceptedFormats: req.AcceptedFormats,
		}
	}
	if sizeBytes > req.MaxSizeBytes {
		return &ValidationError{
			DocumentType: req.Type,
			Reason:       ReasonFileTooLarge,
			FileName:     fileName,
			MaxSizeBytes: req.MaxSizeBytes,
			SizeBytes:    sizeBytes,
		}
	}
	return nil
}

func findRequirement(reqs []Requirement, docType DocumentType) (Requirement, bool) {
	for _, req := range reqs {
		if req.Type == docType {
			return req, true
		}
	}
	return Requirement{}, false
}

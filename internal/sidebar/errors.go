package sidebar

import (
	"errors"
	"fmt"
	"slices"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrMalformedSpec   = errors.New("malformed sidebar specification")
	ErrDuplicateLabel  = errors.New("duplicate category label")
	ErrEmptyIdentifier = errors.New("empty document identifier")
)

// MalformedSpecError reports a node that is neither a well-formed category
// nor a well-formed document reference.
type MalformedSpecError struct {
	Section string
	Path    []string // labels of the enclosing categories
	Index   int      // position among siblings, -1 when not applicable
	Reason  string
}

func (e *MalformedSpecError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("sidebar %q: %s: item %d: %s", e.Section, FormatPath(e.Path), e.Index, e.Reason)
	}
	return fmt.Sprintf("sidebar %q: %s: %s", e.Section, FormatPath(e.Path), e.Reason)
}

func (e *MalformedSpecError) Is(target error) bool { return target == ErrMalformedSpec }

// DuplicateLabelError reports two sibling categories sharing a label. Path
// names the parent category.
type DuplicateLabelError struct {
	Section string
	Path    []string
	Label   string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("sidebar %q: %s: duplicate category label %q", e.Section, FormatPath(e.Path), e.Label)
}

func (e *DuplicateLabelError) Is(target error) bool { return target == ErrDuplicateLabel }

// EmptyIdentifierError reports a document reference that is empty or only
// whitespace.
type EmptyIdentifierError struct {
	Section string
	Path    []string
	Index   int
}

func (e *EmptyIdentifierError) Error() string {
	return fmt.Sprintf("sidebar %q: %s: item %d: empty document identifier", e.Section, FormatPath(e.Path), e.Index)
}

func (e *EmptyIdentifierError) Is(target error) bool { return target == ErrEmptyIdentifier }

func clonePath(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	return slices.Clone(path)
}

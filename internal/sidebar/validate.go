package sidebar

import (
	"errors"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// ViolationKind classifies a broken invariant.
type ViolationKind string

const (
	KindMalformed       ViolationKind = "malformed"
	KindDuplicateLabel  ViolationKind = "duplicate_label"
	KindEmptyIdentifier ViolationKind = "empty_identifier"
	KindCycle           ViolationKind = "cycle"
)

// Violation is a single invariant failure found by Validate.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Section string        `json:"sidebar"`
	Path    []string      `json:"path"`
	Index   int           `json:"index"`
	Label   string        `json:"label,omitempty"`
	Message string        `json:"message"`
}

// Err converts the violation into the matching typed error.
func (v Violation) Err() error {
	switch v.Kind {
	case KindDuplicateLabel:
		return &DuplicateLabelError{Section: v.Section, Path: v.Path, Label: v.Label}
	case KindEmptyIdentifier:
		return &EmptyIdentifierError{Section: v.Section, Path: v.Path, Index: v.Index}
	default:
		return &MalformedSpecError{Section: v.Section, Path: v.Path, Index: v.Index, Reason: v.Message}
	}
}

// Violations is the result of Validate, in traversal order.
type Violations []Violation

// Err joins all violations into one error, nil when there are none.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	errs := make([]error, 0, len(vs))
	for _, v := range vs {
		errs = append(errs, v.Err())
	}
	return errors.Join(errs...)
}

// Count returns how many violations have the given kind.
func (vs Violations) Count(kind ViolationKind) int {
	n := 0
	for _, v := range vs {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

// Validate checks every invariant of s and returns all violations instead of
// stopping at the first. It never modifies s. Sibling labels are compared
// the way Build or Decode compared them for s; opts override that.
func Validate(s *Sidebar, opts ...Option) Violations {
	if s == nil {
		return nil
	}
	base := defaultOptions()
	base.normalizeLabels = !s.exactLabels
	v := &validator{opts: newOptions(base, opts)}
	names := sets.New[string]()
	for i, sec := range s.Sections {
		v.section = sec.Name
		if strings.TrimSpace(sec.Name) == "" {
			v.add(KindMalformed, nil, i, "", "empty sidebar name")
		} else if !names.Insert(sec.Name) {
			v.add(KindMalformed, nil, i, "", fmt.Sprintf("sidebar %q declared twice", sec.Name))
		}
		v.items(sec.Items, nil, sets.New[*Category]())
	}
	return v.out
}

type validator struct {
	opts    options
	section string
	out     Violations
}

func (v *validator) add(kind ViolationKind, path []string, index int, label, msg string) {
	v.out = append(v.out, Violation{
		Kind:    kind,
		Section: v.section,
		Path:    clonePath(path),
		Index:   index,
		Label:   label,
		Message: msg,
	})
}

func (v *validator) items(items []Node, path []string, ancestors sets.Set[*Category]) {
	seen := sets.New[string]()
	for i, n := range items {
		switch n := n.(type) {
		case nil:
			v.add(KindMalformed, path, i, "", "nil node")
		case DocRef:
			if strings.TrimSpace(n.ID) == "" {
				v.add(KindEmptyIdentifier, path, i, "", "empty document identifier")
			}
		case *Category:
			v.category(n, path, i, seen, ancestors)
		default:
			v.add(KindMalformed, path, i, "", fmt.Sprintf("unsupported node type %T", n))
		}
	}
}

func (v *validator) category(c *Category, path []string, index int, seen sets.Set[string], ancestors sets.Set[*Category]) {
	if c == nil {
		v.add(KindMalformed, path, index, "", "nil category")
		return
	}
	if ancestors.Has(c) {
		v.add(KindCycle, path, index, c.Label, fmt.Sprintf("category %q contains itself", c.Label))
		return
	}
	if strings.TrimSpace(c.Label) == "" {
		v.add(KindMalformed, path, index, "", "category missing label")
	} else if !seen.Insert(v.opts.labelKey(c.Label)) {
		v.add(KindDuplicateLabel, path, index, c.Label, fmt.Sprintf("duplicate category label %q", c.Label))
	}

	ancestors.Insert(c)
	v.items(c.Items, append(path, c.Label), ancestors)
	ancestors.Delete(c)
}

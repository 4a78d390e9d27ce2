// Package sidebar builds and validates documentation navigation trees.
//
// A Sidebar is constructed once from a declarative specification (see Spec),
// validated, and then handed to a renderer. Nothing in this package performs
// I/O; loading specifications from disk lives in internal/specload.
package sidebar

import "strings"

// Node is one entry of a navigation tree: either a *Category or a DocRef.
type Node interface {
	isNode()
}

// Category is a labeled, collapsible group of nodes.
type Category struct {
	Label     string
	Collapsed bool
	Items     []Node
}

// DocRef names one documentation page. The identifier is resolved by the
// site renderer, not here.
type DocRef struct {
	ID string
}

func (*Category) isNode() {}
func (DocRef) isNode()    {}

// Section is one named sidebar (e.g. "docs") and its top-level items.
type Section struct {
	Name  string
	Items []Node
}

// Sidebar holds every section of a built specification, ordered by name.
type Sidebar struct {
	Sections []Section

	// exactLabels records that the tree was built without label
	// normalization, so Validate compares labels the same way.
	exactLabels bool
}

// Section returns the section with the given name.
func (s *Sidebar) Section(name string) (Section, bool) {
	if s == nil {
		return Section{}, false
	}
	for _, sec := range s.Sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return Section{}, false
}

// Names returns section names in order.
func (s *Sidebar) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Sections))
	for _, sec := range s.Sections {
		names = append(names, sec.Name)
	}
	return names
}

// WalkFunc is called for every node in depth-first pre-order. path holds the
// labels of the enclosing categories, root first, and must not be retained.
type WalkFunc func(section string, path []string, n Node) error

// Walk visits every node in declaration order. Returning an error from fn
// stops the walk and returns that error. s must not contain category cycles;
// trees edited by hand should pass Validate first.
func (s *Sidebar) Walk(fn WalkFunc) error {
	if s == nil {
		return nil
	}
	for _, sec := range s.Sections {
		if err := walkNodes(sec.Name, nil, sec.Items, fn); err != nil {
			return err
		}
	}
	return nil
}

func walkNodes(section string, path []string, items []Node, fn WalkFunc) error {
	for _, n := range items {
		if err := fn(section, path, n); err != nil {
			return err
		}
		if c, ok := n.(*Category); ok && c != nil {
			if err := walkNodes(section, append(path, c.Label), c.Items, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// DocIDs returns every document identifier referenced by the sidebar, in
// traversal order. Duplicates are kept.
func (s *Sidebar) DocIDs() []string {
	var ids []string
	_ = s.Walk(func(_ string, _ []string, n Node) error {
		if d, ok := n.(DocRef); ok {
			ids = append(ids, d.ID)
		}
		return nil
	})
	return ids
}

// Counts reports the number of categories and document references.
func (s *Sidebar) Counts() (categories, docs int) {
	_ = s.Walk(func(_ string, _ []string, n Node) error {
		switch n.(type) {
		case *Category:
			categories++
		case DocRef:
			docs++
		}
		return nil
	})
	return categories, docs
}

// FormatPath renders a label path for diagnostics.
func FormatPath(path []string) string {
	if len(path) == 0 {
		return "(root)"
	}
	return strings.Join(path, " > ")
}

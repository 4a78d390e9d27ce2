// Package outline converts between Markdown outlines (SUMMARY.md style
// nested lists) and sidebar specifications.
//
// Outline format:
//
//	# docs
//
//	- Getting Started
//	  - [getting-started/introduction](getting-started/introduction)
//	  - `getting-started/quick-start`
//	- [roadmap](roadmap.md)
//
// A level-1 heading names the sidebar that following lists belong to. A list
// item that is a single link or code span is a document reference; any other
// item is a category whose nested list holds its items. Collapse state is not
// expressed, so the builder's default policy applies.
package outline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	// ErrNoOutline is returned when a document contains no list items.
	ErrNoOutline = errors.New("markdown contains no outline list")
	// ErrUnrepresentable is returned by Render for names, labels or ids
	// that cannot survive a round trip through Markdown.
	ErrUnrepresentable = errors.New("value cannot be written as an outline")
)

// Parse reads a Markdown outline into a Spec. Lists that appear before any
// level-1 heading belong to defaultName.
func Parse(src []byte, defaultName string) (sidebar.Spec, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	spec := sidebar.Spec{}
	name := defaultName
	found := false
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 {
				name = inlineText(node, src)
			}
		case *gmast.List:
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("outline list at line %d has no sidebar name", lineOf(node, src))
			}
			items := listItems(node, src)
			existing, _ := spec[name].([]any)
			spec[name] = append(existing, items...)
			found = true
		}
	}
	if !found {
		return nil, ErrNoOutline
	}
	return spec, nil
}

func listItems(list *gmast.List, src []byte) []any {
	var out []any
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		if item, ok := listItem(li, src); ok {
			out = append(out, item)
		}
	}
	return out
}

func listItem(li gmast.Node, src []byte) (any, bool) {
	var (
		label    string
		docID    string
		isDoc    bool
		children []any
		hasText  bool
	)
	for c := li.FirstChild(); c != nil; c = c.NextSibling() {
		switch block := c.(type) {
		case *gmast.TextBlock, *gmast.Paragraph:
			if hasText {
				continue
			}
			hasText = true
			docID, isDoc = docReference(block, src)
			if !isDoc {
				label = inlineText(block, src)
			}
		case *gmast.List:
			children = append(children, listItems(block, src)...)
		}
	}

	switch {
	case isDoc && len(children) == 0:
		return docID, true
	case isDoc:
		// A linked item with children becomes a category labeled by the link.
		label = docID
	case !hasText && len(children) == 0:
		return nil, false
	}

	category := map[string]any{"label": label}
	if len(children) > 0 {
		category["items"] = children
	}
	return category, true
}

// docReference reports whether block consists of a single link or code span.
func docReference(block gmast.Node, src []byte) (string, bool) {
	if block.ChildCount() != 1 {
		return "", false
	}
	switch n := block.FirstChild().(type) {
	case *gmast.Link:
		return trimDocExt(unescapePunct(n.Destination)), true
	case *gmast.CodeSpan:
		return inlineText(n, src), true
	default:
		return "", false
	}
}

func trimDocExt(dest string) string {
	for _, ext := range []string{".markdown", ".md"} {
		if strings.HasSuffix(dest, ext) {
			return strings.TrimSuffix(dest, ext)
		}
	}
	return dest
}

func inlineText(n gmast.Node, src []byte) string {
	var b strings.Builder
	_ = gmast.Walk(n, func(c gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gmast.Text:
			if t.IsRaw() {
				b.Write(t.Segment.Value(src))
			} else {
				b.WriteString(unescapePunct(t.Segment.Value(src)))
			}
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(t.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func lineOf(n gmast.Node, src []byte) int {
	for c := n; c != nil; c = c.FirstChild() {
		if c.Type() == gmast.TypeBlock && c.Lines().Len() > 0 {
			return strings.Count(string(src[:c.Lines().At(0).Start]), "\n") + 1
		}
	}
	return 0
}

// unescapePunct resolves backslash escapes of ASCII punctuation, which
// goldmark leaves in text segments and link destinations.
func unescapePunct(raw []byte) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) && util.IsPunct(raw[i+1]) {
			i++
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

// Render writes s as a Markdown outline that Parse reads back into the same
// tree. Names and labels are escaped so Markdown syntax in them stays
// literal; values with line breaks, and names or labels with surrounding
// whitespace, fail with ErrUnrepresentable.
func Render(w io.Writer, s *sidebar.Sidebar) error {
	for i, sec := range s.Sections {
		if err := checkText("sidebar name", sec.Name, true); err != nil {
			return err
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# %s\n\n", escapeText(sec.Name)); err != nil {
			return err
		}
		if err := renderItems(w, sec.Items, 0); err != nil {
			return err
		}
	}
	return nil
}

func renderItems(w io.Writer, items []sidebar.Node, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, n := range items {
		switch n := n.(type) {
		case *sidebar.Category:
			if err := checkText("category label", n.Label, true); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s- %s\n", indent, escapeText(n.Label)); err != nil {
				return err
			}
			if err := renderItems(w, n.Items, depth+1); err != nil {
				return err
			}
		case sidebar.DocRef:
			if err := checkText("document id", n.ID, false); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s- [%s](%s)\n", indent, escapeText(n.ID), linkDestination(n.ID)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkText(what, v string, trimmed bool) error {
	if strings.ContainsAny(v, "\r\n") {
		return fmt.Errorf("%w: %s %q contains a line break", ErrUnrepresentable, what, v)
	}
	if trimmed && strings.TrimSpace(v) != v {
		return fmt.Errorf("%w: %s %q has surrounding whitespace", ErrUnrepresentable, what, v)
	}
	return nil
}

// inlineSpecial lists characters that start inline constructs anywhere in
// a line: emphasis, code spans, links, autolinks, raw HTML and entities.
const inlineSpecial = "\\`*_[]<>!&~#|()"

// escapeText backslash-escapes v so goldmark reads it as plain text. The
// first character and a period or parenthesis after leading digits are
// also escaped so v never opens a block (list, heading, quote, fence).
func escapeText(v string) string {
	var b strings.Builder
	leadingDigits := true
	for i := 0; i < len(v); i++ {
		c := v[i]
		if (i == 0 && util.IsPunct(c)) ||
			(leadingDigits && (c == '.' || c == ')')) ||
			strings.IndexByte(inlineSpecial, c) >= 0 {
			b.WriteByte('\\')
		}
		if c < '0' || c > '9' {
			leadingDigits = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// linkDestination writes id so the parser's destination handling returns
// it unchanged. Ids that already end in a Markdown extension get another
// one, since Parse strips a single extension.
func linkDestination(id string) string {
	dest := id
	if trimDocExt(id) != id {
		dest += ".md"
	}
	if !strings.ContainsAny(dest, " \t()<>\\") {
		return dest
	}
	var b strings.Builder
	b.WriteByte('<')
	for i := 0; i < len(dest); i++ {
		if c := dest[i]; c == '<' || c == '>' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(dest[i])
	}
	b.WriteByte('>')
	return b.String()
}

package specload

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"gopkg.in/yaml.v3"
)

type categoryDoc struct {
	Type      string `yaml:"type"`
	Label     string `yaml:"label"`
	Collapsed bool   `yaml:"collapsed"`
	Items     []any  `yaml:"items,omitempty"`
}

// Write encodes s as a YAML specification that Parse reads back into the
// same tree. Categories are written in long form with an explicit collapsed
// flag; documents are bare identifiers.
func Write(w io.Writer, s *sidebar.Sidebar) error {
	doc := make(map[string][]any, len(s.Sections))
	for _, sec := range s.Sections {
		doc[sec.Name] = encodeItems(sec.Items)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode sidebar specification: %w", err)
	}
	return enc.Close()
}

func encodeItems(items []sidebar.Node) []any {
	out := make([]any, 0, len(items))
	for _, n := range items {
		switch n := n.(type) {
		case *sidebar.Category:
			out = append(out, categoryDoc{
				Type:      "category",
				Label:     n.Label,
				Collapsed: n.Collapsed,
				Items:     encodeItems(n.Items),
			})
		case sidebar.DocRef:
			out = append(out, n.ID)
		}
	}
	return out
}

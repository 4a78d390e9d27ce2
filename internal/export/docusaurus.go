package export

import (
	"encoding/json"
	"fmt"
	"io"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
)

// docusaurusCategory keeps field order stable in the encoded output.
type docusaurusCategory struct {
	Type      string `json:"type"`
	Label     string `json:"label"`
	Collapsed bool   `json:"collapsed"`
	Items     []any  `json:"items"`
}

// Docusaurus converts s into the sidebars.js object shape: sidebar name to a
// list of category objects and bare document id strings.
func Docusaurus(s *sidebar.Sidebar) map[string][]any {
	out := make(map[string][]any, len(s.Sections))
	for _, sec := range s.Sections {
		out[sec.Name] = docusaurusItems(sec.Items)
	}
	return out
}

func docusaurusItems(items []sidebar.Node) []any {
	out := make([]any, 0, len(items))
	for _, n := range items {
		switch n := n.(type) {
		case *sidebar.Category:
			out = append(out, docusaurusCategory{
				Type:      "category",
				Label:     n.Label,
				Collapsed: n.Collapsed,
				Items:     docusaurusItems(n.Items),
			})
		case sidebar.DocRef:
			out = append(out, n.ID)
		}
	}
	return out
}

// WriteDocusaurusJSON encodes s as indented JSON.
func WriteDocusaurusJSON(w io.Writer, s *sidebar.Sidebar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Docusaurus(s)); err != nil {
		return fmt.Errorf("encode docusaurus sidebars: %w", err)
	}
	return nil
}

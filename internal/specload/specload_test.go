package specload

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docsYAML = `
docs:
  - type: category
    label: Getting Started
    collapsed: false
    items:
      - getting-started/introduction
      - getting-started/quick-start
  # - type: category
  #   label: Components
  #   items:
  #     - proof-service/ps-intro
  - type: category
    label: Rest API
    items: [rest-api/proofservice-api, rest-api/kvservice-api]
  - roadmap
`

func TestParse_YAMLDropsCommentedSections(t *testing.T) {
	spec, err := Parse([]byte(docsYAML))
	require.NoError(t, err)

	sb, err := sidebar.Build(spec)
	require.NoError(t, err)

	docs, ok := sb.Section("docs")
	require.True(t, ok)
	require.Len(t, docs.Items, 3)
	assert.Equal(t, "Getting Started", docs.Items[0].(*sidebar.Category).Label)
	assert.False(t, docs.Items[0].(*sidebar.Category).Collapsed)
	assert.Equal(t, "Rest API", docs.Items[1].(*sidebar.Category).Label)
	assert.True(t, docs.Items[1].(*sidebar.Category).Collapsed)
	assert.Equal(t, sidebar.DocRef{ID: "roadmap"}, docs.Items[2])
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{"docs": [{"type": "category", "label": "A", "items": ["a", {"type": "doc", "id": "b"}]}, "c"]}`)

	spec, err := Parse(data)
	require.NoError(t, err)
	sb, err := sidebar.Build(spec)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, sb.DocIDs())
}

func TestParse_UnwrapsSidebarsKey(t *testing.T) {
	spec, err := Parse([]byte("sidebars:\n  docs: [a]\n  api: [b]\n"))
	require.NoError(t, err)
	assert.Len(t, spec, 2)
	assert.Contains(t, spec, "docs")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		empty bool
	}{
		{"blank", "   \n", true},
		{"only comments", "# docs:\n#   - a\n", true},
		{"empty mapping", "{}", true},
		{"top level list", "- a\n- b\n", false},
		{"invalid yaml", "docs: [a\n", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			require.Error(t, err)
			if tc.empty {
				assert.ErrorIs(t, err, ErrEmptySpec)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sidebars.yaml")
	require.NoError(t, os.WriteFile(path, []byte(docsYAML), 0o600))

	spec, err := LoadFile(path)
	require.NoError(t, err)
	assert.Contains(t, spec, "docs")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite_RoundTrip(t *testing.T) {
	original, err := sidebar.Build(sidebar.Spec{
		"docs": []any{
			map[string]any{"label": "Getting Started", "collapsed": false, "items": []any{"a", "b"}},
			map[string]any{"label": "Empty"},
			"roadmap",
		},
		"api": []any{"api/reference"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, original))
	assert.Contains(t, buf.String(), "type: category\n")

	spec, err := Parse(buf.Bytes())
	require.NoError(t, err)
	rebuilt, err := sidebar.Build(spec, sidebar.WithDefaultCollapsed(false))
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt)
}

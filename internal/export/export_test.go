package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildSidebar(t *testing.T) *sidebar.Sidebar {
	t.Helper()
	sb, err := sidebar.Build(sidebar.Spec{
		"docs": []any{
			map[string]any{"label": "Getting Started", "collapsed": false, "items": []any{"getting-started/introduction", "getting-started/quick-start"}},
			map[string]any{"label": "Core Concepts V2", "collapsed": false, "items": []any{
				map[string]any{"label": "ProofService", "items": []any{"ps-intro", "ps-intro"}},
			}},
			"roadmap",
		},
	})
	require.NoError(t, err)
	return sb
}

func TestHugoMenu_EntriesAndParents(t *testing.T) {
	cfg := HugoMenu(buildSidebar(t), HugoMenuOptions{})

	entries := cfg.Menu["docs"]
	require.Len(t, entries, 8)

	assert.Equal(t, MenuEntry{
		Identifier: "Getting Started",
		Name:       "Getting Started",
		Weight:     10,
		Params:     map[string]any{"collapsed": false},
	}, entries[0])
	assert.Equal(t, MenuEntry{
		Identifier: "Getting Started/getting-started/introduction",
		PageRef:    "getting-started/introduction",
		Parent:     "Getting Started",
		Weight:     10,
	}, entries[1])
	assert.Equal(t, 20, entries[2].Weight)

	ps := entries[4]
	assert.Equal(t, "Core Concepts V2/ProofService", ps.Identifier)
	assert.Equal(t, "Core Concepts V2", ps.Parent)
	assert.Equal(t, true, ps.Params["collapsed"])

	// The same document twice under one category still gets unique identifiers.
	assert.Equal(t, "Core Concepts V2/ProofService/ps-intro", entries[5].Identifier)
	assert.Equal(t, "Core Concepts V2/ProofService/ps-intro#2", entries[6].Identifier)

	assert.Equal(t, MenuEntry{Identifier: "roadmap", PageRef: "roadmap", Weight: 30}, entries[7])
}

func TestHugoMenu_MenuNameOverride(t *testing.T) {
	cfg := HugoMenu(buildSidebar(t), HugoMenuOptions{MenuName: "main"})
	assert.Contains(t, cfg.Menu, "main")
	assert.NotContains(t, cfg.Menu, "docs")
}

func TestWriteHugoMenu_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHugoMenu(&buf, buildSidebar(t), HugoMenuOptions{}))

	var decoded HugoMenuConfig
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Menu["docs"], 8)
	assert.Contains(t, buf.String(), "pageRef: roadmap")
}

func TestDocusaurusJSON_RoundTripsThroughBuilder(t *testing.T) {
	original := buildSidebar(t)

	var buf bytes.Buffer
	require.NoError(t, WriteDocusaurusJSON(&buf, original))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	rebuilt, err := sidebar.Build(sidebar.Spec(raw))
	require.NoError(t, err)
	assert.Equal(t, original, rebuilt)
}

func TestDocusaurusJSON_Shape(t *testing.T) {
	sb, err := sidebar.Build(sidebar.Spec{"docs": []any{
		map[string]any{"label": "A", "collapsed": false, "items": []any{"a"}},
		"roadmap",
	}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDocusaurusJSON(&buf, sb))
	assert.JSONEq(t,
		`{"docs":[{"type":"category","label":"A","collapsed":false,"items":["a"]},"roadmap"]}`,
		buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	boom := errors.New("boom")
	err = WriteFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data), "failed render must not replace the file")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"git.home.luguber.info/inful/docnav/internal/sidebar"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invalidSidebar(t *testing.T) (*sidebar.Sidebar, sidebar.Violations) {
	t.Helper()
	sb, err := sidebar.Decode(sidebar.Spec{"docs": []any{
		map[string]any{"label": "X", "items": []any{
			map[string]any{"label": "Y", "items": []any{"a"}},
			map[string]any{"label": "Y", "items": []any{""}},
		}},
	}})
	require.NoError(t, err)
	vs := sidebar.Validate(sb)
	require.Len(t, vs, 2)
	return sb, vs
}

func TestNew_CountsAndRunID(t *testing.T) {
	sb, vs := invalidSidebar(t)
	r := New("sidebars.yaml", sb, vs)

	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs"}, r.Sections)
	assert.Equal(t, 3, r.Categories)
	assert.Equal(t, 2, r.Docs)
	assert.False(t, r.OK())

	assert.NotEqual(t, r.RunID, New("sidebars.yaml", sb, vs).RunID)
}

func TestTextFormatter(t *testing.T) {
	sb, vs := invalidSidebar(t)
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("text").Format(&buf, New("sidebars.yaml", sb, vs)))

	out := buf.String()
	assert.Contains(t, out, "Validating sidebars in: sidebars.yaml")
	assert.Contains(t, out, "✗ docs: X\n  duplicate_label: duplicate category label \"Y\"")
	assert.Contains(t, out, "✗ docs: X > Y\n  empty_identifier")
	assert.Contains(t, out, "1 sidebar, 3 categories, 2 documents")
	assert.Contains(t, out, "2 violations")
}

func TestTextFormatter_Valid(t *testing.T) {
	sb, err := sidebar.Build(sidebar.Spec{"docs": []any{"a"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(&buf, New("s.yaml", sb, nil)))
	assert.Contains(t, buf.String(), "0 categories, 1 document\n")
	assert.Contains(t, buf.String(), "Sidebar specification is valid")
}

func TestJSONFormatter(t *testing.T) {
	sb, vs := invalidSidebar(t)
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("json").Format(&buf, New("sidebars.yaml", sb, vs)))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.False(t, out.Valid)
	assert.Equal(t, 2, out.ViolationCount)
	assert.Equal(t, sidebar.KindDuplicateLabel, out.Violations[0].Kind)
	assert.Equal(t, []string{"X"}, out.Violations[0].Path)
}

func TestJSONFormatter_EmptyArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, New("s.yaml", nil, nil)))
	assert.Contains(t, buf.String(), `"violations": []`)
	assert.Contains(t, buf.String(), `"sidebars": []`)
}

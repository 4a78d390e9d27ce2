package sidebar

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

// Spec is the declarative input: sidebar name to an ordered item list, as
// produced by a generic YAML/JSON decoder or written as a Go literal.
//
// Items are either strings (document references) or objects:
//
//	{type: category, label: "Getting Started", collapsed: false, items: [...]}
//	{type: doc, id: "roadmap"}
//
// type may be omitted; objects with only an id are documents, everything
// else is a category. Omitting items is the same as an empty list.
type Spec map[string]any

const (
	typeCategory = "category"
	typeDoc      = "doc"

	keyType      = "type"
	keyLabel     = "label"
	keyCollapsed = "collapsed"
	keyItems     = "items"
	keyID        = "id"
)

var (
	categoryKeys = sets.New(keyType, keyLabel, keyCollapsed, keyItems)
	docKeys      = sets.New(keyType, keyID)
)

// Build constructs a validated Sidebar from spec. It fails fast with
// *MalformedSpecError, *DuplicateLabelError or *EmptyIdentifierError.
func Build(spec Spec, opts ...Option) (*Sidebar, error) {
	return construct(spec, true, newOptions(defaultOptions(), opts))
}

// Decode constructs a Sidebar checking only the shape of spec. Invariants
// such as label uniqueness are left to Validate so every problem can be
// reported at once.
func Decode(spec Spec, opts ...Option) (*Sidebar, error) {
	return construct(spec, false, newOptions(defaultOptions(), opts))
}

func construct(spec Spec, strict bool, o options) (*Sidebar, error) {
	names := slices.Sorted(maps.Keys(spec))
	sb := &Sidebar{Sections: make([]Section, 0, len(names)), exactLabels: !o.normalizeLabels}
	for _, name := range names {
		b := &builder{
			opts:      o,
			strict:    strict,
			section:   name,
			ancestors: sets.New[identity](),
		}
		if strings.TrimSpace(name) == "" {
			return nil, b.malformed(nil, -1, "empty sidebar name")
		}
		items, err := b.items(spec[name], nil, -1)
		if err != nil {
			return nil, err
		}
		sb.Sections = append(sb.Sections, Section{Name: name, Items: items})
	}
	return sb, nil
}

// identity distinguishes a map or list value of the input so self-containing
// values are rejected instead of recursing forever.
type identity struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
}

type builder struct {
	opts      options
	strict    bool
	section   string
	ancestors sets.Set[identity]
}

func (b *builder) malformed(path []string, index int, format string, args ...any) error {
	return &MalformedSpecError{
		Section: b.section,
		Path:    clonePath(path),
		Index:   index,
		Reason:  fmt.Sprintf(format, args...),
	}
}

// enter records raw as being on the current descent path. The returned
// function must be called when the descent leaves raw.
func (b *builder) enter(raw any) (leave func(), ok bool) {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Map, reflect.Slice:
	default:
		return func() {}, true
	}
	if v.IsNil() || (v.Kind() == reflect.Slice && v.Len() == 0) {
		return func() {}, true
	}
	id := identity{kind: v.Kind(), ptr: v.Pointer(), len: v.Len()}
	if !b.ancestors.Insert(id) {
		return nil, false
	}
	return func() { b.ancestors.Delete(id) }, true
}

// items converts a list value. index is the position of the owning node
// among its siblings, used only for error reporting.
func (b *builder) items(raw any, path []string, index int) ([]Node, error) {
	leave, ok := b.enter(raw)
	if !ok {
		return nil, b.malformed(path, index, "items list contains itself")
	}
	defer leave()

	list, ok := asList(raw)
	if !ok {
		return nil, b.malformed(path, index, "items must be a list, got %T", raw)
	}

	nodes := make([]Node, 0, len(list))
	seen := sets.New[string]()
	for i, item := range list {
		n, err := b.node(item, path, i)
		if err != nil {
			return nil, err
		}
		if c, ok := n.(*Category); ok && b.strict && !seen.Insert(b.opts.labelKey(c.Label)) {
			return nil, &DuplicateLabelError{Section: b.section, Path: clonePath(path), Label: c.Label}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (b *builder) node(raw any, path []string, index int) (Node, error) {
	switch v := raw.(type) {
	case nil:
		return nil, b.malformed(path, index, "empty item")
	case string:
		return b.docRef(v, path, index)
	case map[string]any:
		return b.object(v, v, path, index)
	case map[any]any:
		obj := make(map[string]any, len(v))
		for k, val := range v {
			key, ok := k.(string)
			if !ok {
				return nil, b.malformed(path, index, "object key %v is not a string", k)
			}
			obj[key] = val
		}
		return b.object(v, obj, path, index)
	default:
		return nil, b.malformed(path, index, "item must be a string or an object, got %T", raw)
	}
}

func (b *builder) docRef(id string, path []string, index int) (Node, error) {
	if b.strict && strings.TrimSpace(id) == "" {
		return nil, &EmptyIdentifierError{Section: b.section, Path: clonePath(path), Index: index}
	}
	return DocRef{ID: id}, nil
}

// object converts a category or doc object. raw is the original value,
// used for cycle detection when obj is a converted copy.
func (b *builder) object(raw any, obj map[string]any, path []string, index int) (Node, error) {
	leave, ok := b.enter(raw)
	if !ok {
		return nil, b.malformed(path, index, "object contains itself")
	}
	defer leave()

	kind, err := b.objectType(obj, path, index)
	if err != nil {
		return nil, err
	}

	allowed := categoryKeys
	if kind == typeDoc {
		allowed = docKeys
	}
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		if !allowed.Has(k) {
			return nil, b.malformed(path, index, "unknown %s field %q", kind, k)
		}
	}

	if kind == typeDoc {
		id, ok := obj[keyID].(string)
		if !ok {
			return nil, b.malformed(path, index, "doc id must be a string")
		}
		return b.docRef(id, path, index)
	}
	return b.category(obj, path, index)
}

func (b *builder) objectType(obj map[string]any, path []string, index int) (string, error) {
	rawType, present := obj[keyType]
	if !present {
		_, hasID := obj[keyID]
		_, hasLabel := obj[keyLabel]
		_, hasItems := obj[keyItems]
		if hasID && !hasLabel && !hasItems {
			return typeDoc, nil
		}
		return typeCategory, nil
	}
	t, ok := rawType.(string)
	if !ok {
		return "", b.malformed(path, index, "type must be a string")
	}
	switch t {
	case typeCategory, typeDoc:
		return t, nil
	default:
		return "", b.malformed(path, index, "unsupported item type %q", t)
	}
}

func (b *builder) category(obj map[string]any, path []string, index int) (Node, error) {
	rawLabel, present := obj[keyLabel]
	if !present {
		return nil, b.malformed(path, index, "category missing label")
	}
	label, ok := rawLabel.(string)
	if !ok {
		return nil, b.malformed(path, index, "category label must be a string")
	}
	if strings.TrimSpace(label) == "" {
		return nil, b.malformed(path, index, "category missing label")
	}

	collapsed := b.opts.defaultCollapsed
	if rawCollapsed, present := obj[keyCollapsed]; present {
		v, ok := rawCollapsed.(bool)
		if !ok {
			return nil, b.malformed(path, index, "category %q: collapsed must be a boolean", label)
		}
		collapsed = v
	}

	if _, ok := asList(obj[keyItems]); !ok {
		return nil, b.malformed(path, index, "category %q: items must be a list, got %T", label, obj[keyItems])
	}
	children, err := b.items(obj[keyItems], append(path, label), index)
	if err != nil {
		return nil, err
	}
	return &Category{Label: label, Collapsed: collapsed, Items: children}, nil
}

func asList(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

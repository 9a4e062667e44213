package docsearch

import (
	"bytes"
	"encoding/json"
	"strings"
)

// OutlineNode is a normalized node of the documentation outline.
type OutlineNode struct {
	// Path uniquely identifies the node. It joins the parent path with Prop
	// using "." or with ArrayItemType using "-".
	Path          string          `json:"path"`
	Prop          string          `json:"prop,omitempty"`
	ArrayItemType string          `json:"arrayItemType,omitempty"`
	Type          []string        `json:"type"`
	Default       json.RawMessage `json:"default,omitempty"`
	Children      []*OutlineNode  `json:"children,omitempty"`
	IsRoot        bool            `json:"isRoot,omitempty"`
}

// rawNode is an outline node as it appears in the outline document.
type rawNode struct {
	Prop          string          `json:"prop"`
	ArrayItemType string          `json:"arrayItemType"`
	Default       json.RawMessage `json:"default"`
	Type          json.RawMessage `json:"type"`
	Children      []*rawNode      `json:"children"`
}

// Outline is a normalized outline tree together with its path lookup and
// the ordered set of page-partition roots. It is never mutated after
// ParseOutline returns.
type Outline struct {
	root     *OutlineNode
	nodes    map[string]*OutlineNode
	pages    map[string]*OutlineNode
	pageKeys []string
}

// ParseOutline decodes and normalizes an outline document of the shape
// {"children": [...]}.
func ParseOutline(data []byte) (*Outline, error) {
	var doc struct {
		Children []*rawNode `json:"children"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, Errorf(EINVALID, "failed to decode outline: %v", err)
	}
	if doc.Children == nil {
		return nil, Errorf(EINVALID, "outline has no children")
	}

	o := &Outline{
		root:  &OutlineNode{IsRoot: true, Type: []string{"object"}},
		nodes: make(map[string]*OutlineNode),
		pages: make(map[string]*OutlineNode),
	}
	for _, raw := range doc.Children {
		node, err := o.process(raw, "")
		if err != nil {
			return nil, err
		}
		o.root.Children = append(o.root.Children, node)
	}
	return o, nil
}

// process normalizes raw and its subtree. The node's path is set before
// its children are visited.
func (o *Outline) process(raw *rawNode, parentPath string) (*OutlineNode, error) {
	if raw == nil {
		return nil, Errorf(EINVALID, "null outline node under %q", parentPath)
	}

	types, err := normalizeType(raw.Type, raw.Default)
	if err != nil {
		return nil, Errorf(EINVALID, "outline node under %q: %v", parentPath, err)
	}

	node := &OutlineNode{
		Prop:          raw.Prop,
		ArrayItemType: raw.ArrayItemType,
		Type:          types,
		Default:       raw.Default,
	}

	switch {
	case raw.ArrayItemType != "":
		node.Path = joinPath(parentPath, raw.ArrayItemType, "-")
	case raw.Prop != "":
		node.Path = joinPath(parentPath, raw.Prop, ".")
	default:
		return nil, Errorf(EINVALID, "outline node under %q has neither prop nor arrayItemType", parentPath)
	}

	if len(raw.Children) > 0 {
		// Array families such as series stay in the root partition; their
		// items with children, like series-bar, are pages.
		first := raw.Children[0]
		if !strings.Contains(node.Path, ".") && (first == nil || first.ArrayItemType == "") {
			o.registerPage(node)
		}

		node.Children = make([]*OutlineNode, 0, len(raw.Children))
		for _, rc := range raw.Children {
			child, err := o.process(rc, node.Path)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}

	o.nodes[node.Path] = node
	return node, nil
}

func (o *Outline) registerPage(node *OutlineNode) {
	if _, ok := o.pages[node.Path]; !ok {
		o.pageKeys = append(o.pageKeys, node.Path)
	}
	o.pages[node.Path] = node
}

func joinPath(parent, name, connector string) string {
	if parent == "" {
		return name
	}
	return parent + connector + name
}

// normalizeType returns the declared type list, or one inferred from the
// JSON kind of def when no type is declared. "*" is normalized to "any".
func normalizeType(declared, def json.RawMessage) ([]string, error) {
	var types []string

	trimmed := bytes.TrimSpace(declared)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)):
		types = []string{jsonKind(def)}
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &types); err != nil {
			return nil, err
		}
	default:
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		types = []string{s}
	}

	for i, t := range types {
		if t == "*" {
			types[i] = "any"
		}
	}
	return types, nil
}

// jsonKind names the kind of a raw JSON value the way a JavaScript typeof
// check would.
func jsonKind(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "undefined"
	}
	switch v[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case '{', '[', 'n':
		return "object"
	default:
		return "number"
	}
}

// Root returns the outline root. Its path is empty and IsRoot is set.
func (o *Outline) Root() *OutlineNode {
	return o.root
}

// Node returns the node with the given path, or nil.
func (o *Outline) Node(path string) *OutlineNode {
	return o.nodes[path]
}

// Len returns the number of distinct paths in the outline.
func (o *Outline) Len() int {
	return len(o.nodes)
}

// Pages returns the page-partition keys in registration order.
func (o *Outline) Pages() []string {
	return append([]string(nil), o.pageKeys...)
}

// Page returns the page-partition root registered under key, or nil.
func (o *Outline) Page(key string) *OutlineNode {
	return o.pages[key]
}

// PagePath returns the segment of path before its first ".".
func PagePath(path string) string {
	page, _, _ := strings.Cut(path, ".")
	return page
}

// PageOutline returns the page root governing path. Paths outside any
// registered page, like top-level scalars, resolve to the outline root.
func (o *Outline) PageOutline(path string) *OutlineNode {
	if page, ok := o.pages[PagePath(path)]; ok {
		return page
	}
	return o.root
}

// DefaultPage returns the page to show for a path that does not resolve.
// Without a hint it returns the first registered page; otherwise the first
// page key contained in wrongPath, falling back to the first page.
// It returns "" if no pages are registered.
func (o *Outline) DefaultPage(wrongPath string) string {
	if len(o.pageKeys) == 0 {
		return ""
	}
	if wrongPath == "" {
		return o.pageKeys[0]
	}
	for _, key := range o.pageKeys {
		if strings.Contains(wrongPath, key) {
			return key
		}
	}
	return o.pageKeys[0]
}

// Search returns nodes whose path contains query, in depth-first pre-order.
// Traversal stops once limit matches are collected; limit <= 0 is unbounded.
func (o *Outline) Search(query string, limit int) []*OutlineNode {
	var matches []*OutlineNode
	var walk func(node *OutlineNode) bool
	walk = func(node *OutlineNode) bool {
		if limit > 0 && len(matches) >= limit {
			return false
		}
		if node.Path != "" && strings.Contains(node.Path, query) {
			matches = append(matches, node)
		}
		for _, child := range node.Children {
			if !walk(child) {
				return false
			}
		}
		return true
	}
	walk(o.root)
	return matches
}

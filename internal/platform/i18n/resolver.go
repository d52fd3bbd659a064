package i18n

import (
	"fmt"
	"sort"
	"strings"
)

type node struct {
	value    string
	leaf     bool
	children map[string]*node
}

// Table maps each language to a tree of translation strings addressed by
// dotted paths such as "hero.title". A Table is built once and then only
// read, so concurrent Resolve calls are safe.
type Table struct {
	roots map[Code]*node
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{roots: map[Code]*node{}}
}

// TableFromTree builds a table from nested maps whose leaves are strings.
func TableFromTree(tree map[Code]map[string]any) (*Table, error) {
	table := NewTable()
	for code, subtree := range tree {
		if err := table.addTree(code, "", subtree); err != nil {
			return nil, err
		}
		if _, ok := table.roots[code]; !ok {
			table.roots[code] = &node{children: map[string]*node{}}
		}
	}
	return table, nil
}

func (t *Table) addTree(code Code, prefix string, subtree map[string]any) error {
	for key, raw := range subtree {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch value := raw.(type) {
		case string:
			if err := t.Add(code, path, value); err != nil {
				return err
			}
		case map[string]any:
			if err := t.addTree(code, path, value); err != nil {
				return err
			}
		default:
			return fmt.Errorf("translation %s %q: unsupported value type %T", code, path, raw)
		}
	}
	return nil
}

// Add stores value at path for code. Paths may not have empty segments and a
// path cannot be both a string and a parent of other strings.
func (t *Table) Add(code Code, path string, value string) error {
	if strings.TrimSpace(string(code)) == "" {
		return fmt.Errorf("translation %q: language is required", path)
	}
	if value == "" {
		return fmt.Errorf("translation %s %q: value is required", code, path)
	}
	segments, err := splitPath(path)
	if err != nil {
		return fmt.Errorf("translation %s: %w", code, err)
	}
	root, ok := t.roots[code]
	if !ok {
		root = &node{children: map[string]*node{}}
		t.roots[code] = root
	}
	current := root
	for i, segment := range segments {
		child, exists := current.children[segment]
		last := i == len(segments)-1
		switch {
		case !exists && last:
			current.children[segment] = &node{value: value, leaf: true}
			return nil
		case !exists:
			child = &node{children: map[string]*node{}}
			current.children[segment] = child
		case last && child.leaf:
			return fmt.Errorf("translation %s %q: duplicate key", code, path)
		case last:
			return fmt.Errorf("translation %s %q: key is a parent of other keys", code, path)
		case child.leaf:
			return fmt.Errorf("translation %s %q: %q is already a string", code, path, strings.Join(segments[:i+1], "."))
		}
		current = child
	}
	return nil
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("path %q has an empty segment", path)
		}
	}
	return segments, nil
}

// Resolve returns the string stored at path for code. Whenever that fails
// (unknown language, missing segment, path ending on a subtree or running
// past a string) it returns path unchanged, so callers can always display
// the result.
func (t *Table) Resolve(code Code, path string) string {
	if value, ok := t.lookup(code, path); ok {
		return value
	}
	return path
}

// Has reports whether path resolves to a string for code.
func (t *Table) Has(code Code, path string) bool {
	_, ok := t.lookup(code, path)
	return ok
}

func (t *Table) lookup(code Code, path string) (string, bool) {
	if t == nil || path == "" {
		return "", false
	}
	current, ok := t.roots[code]
	if !ok {
		return "", false
	}
	for _, segment := range strings.Split(path, ".") {
		if current.leaf {
			return "", false
		}
		child, ok := current.children[segment]
		if !ok {
			return "", false
		}
		current = child
	}
	if !current.leaf || current.value == "" {
		return "", false
	}
	return current.value, true
}

// Keys returns every string path defined for code, sorted.
func (t *Table) Keys(code Code) []string {
	if t == nil {
		return nil
	}
	root, ok := t.roots[code]
	if !ok {
		return nil
	}
	var keys []string
	var walk func(prefix string, n *node)
	walk = func(prefix string, n *node) {
		if n.leaf {
			keys = append(keys, prefix)
			return
		}
		for segment, child := range n.children {
			path := segment
			if prefix != "" {
				path = prefix + "." + segment
			}
			walk(path, child)
		}
	}
	walk("", root)
	sort.Strings(keys)
	return keys
}

// Languages returns the languages present in the table, sorted.
func (t *Table) Languages() []Code {
	if t == nil {
		return nil
	}
	out := make([]Code, 0, len(t.roots))
	for code := range t.roots {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

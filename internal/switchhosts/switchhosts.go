// Package switchhosts imports profiles from SwitchHosts exports.
//
// Two layouts are recognised by their shape. Version 4 and later nest the
// folder/leaf tree under data.list.tree and keep contents in a separate
// table at data.collection.hosts.data. Older exports are either a bare
// array of nodes or an object with a "list" array, with content inline.
package switchhosts

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ruminaider/hostly/internal/profiles"
)

// MaxDepth bounds folder nesting.
const MaxDepth = 64

var (
	// ErrMalformedInput is returned when the document is not JSON.
	ErrMalformedInput = errors.New("invalid JSON")
	// ErrUnrecognizedFormat is returned when the document matches no known layout.
	ErrUnrecognizedFormat = errors.New("unrecognized SwitchHosts format")
	// ErrTooDeep is returned when folders nest deeper than MaxDepth.
	ErrTooDeep = errors.New("SwitchHosts tree too deep")
)

const (
	defaultTitle = "Unknown"
	defaultType  = "local"
	folderType   = "folder"
)

type node map[string]any

func (n node) str(key, def string) string {
	if s, ok := n[key].(string); ok {
		return s
	}
	return def
}

func (n node) children() []any {
	c, _ := n["children"].([]any)
	return c
}

// Parse walks the export and returns one entry per leaf, depth-first in
// document order. Nothing is written.
func Parse(data []byte) ([]profiles.Entry, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	if obj, ok := raw.(map[string]any); ok {
		if d, ok := obj["data"].(map[string]any); ok {
			if tree, ok := v4Tree(d); ok {
				var out []profiles.Entry
				if err := walkV4(tree, v4Contents(d), 0, &out); err != nil {
					return nil, err
				}
				return out, nil
			}
		}
	}

	list, err := legacyList(raw)
	if err != nil {
		return nil, err
	}
	var out []profiles.Entry
	if err := walkLegacy(list, 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func v4Tree(data map[string]any) ([]any, bool) {
	list, ok := data["list"].(map[string]any)
	if !ok {
		return nil, false
	}
	tree, ok := list["tree"].([]any)
	return tree, ok
}

func v4Contents(data map[string]any) map[string]string {
	out := make(map[string]string)
	coll, _ := data["collection"].(map[string]any)
	hosts, _ := coll["hosts"].(map[string]any)
	items, _ := hosts["data"].([]any)
	for _, it := range items {
		h, ok := it.(map[string]any)
		if !ok {
			continue
		}
		id, idOK := h["id"].(string)
		content, contentOK := h["content"].(string)
		if idOK && contentOK {
			out[id] = content
		}
	}
	return out
}

func legacyList(raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case map[string]any:
		l, present := v["list"]
		if !present {
			break
		}
		list, ok := l.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: 'list' is not an array", ErrUnrecognizedFormat)
		}
		return list, nil
	}
	return nil, fmt.Errorf("%w: expected a v4 data tree or a list of hosts", ErrUnrecognizedFormat)
}

func walkV4(items []any, contents map[string]string, depth int, out *[]profiles.Entry) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	for _, it := range items {
		n, ok := it.(map[string]any)
		if !ok {
			n = node{}
		}
		item := node(n)
		title := item.str("title", defaultTitle)

		if item.str("type", defaultType) == folderType {
			if err := walkV4(item.children(), contents, depth+1, out); err != nil {
				return err
			}
			continue
		}

		content, found := contents[item.str("id", "")]
		if !found {
			content = item.str("content", "")
		}
		*out = append(*out, profiles.Entry{Name: title, Content: content})
	}
	return nil
}

func walkLegacy(items []any, depth int, out *[]profiles.Entry) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	for _, it := range items {
		n, ok := it.(map[string]any)
		if !ok {
			n = node{}
		}
		item := node(n)
		title := item.str("title", defaultTitle)

		if isLegacyFolder(item) {
			if err := walkLegacy(item.children(), depth+1, out); err != nil {
				return err
			}
			continue
		}
		*out = append(*out, profiles.Entry{Name: title, Content: item.str("content", "")})
	}
	return nil
}

func isLegacyFolder(n node) bool {
	if f, ok := n["folder"].(bool); ok {
		return f
	}
	if t, ok := n["type"]; ok {
		s, _ := t.(string)
		return s == folderType
	}
	return false
}

// Import parses data and upserts every leaf into s, re-rendering the hosts
// file once. It returns the number of leaves imported.
func Import(s *profiles.Store, data []byte) (int, error) {
	entries, err := Parse(data)
	if err != nil {
		return 0, err
	}
	return s.UpsertAll(entries)
}

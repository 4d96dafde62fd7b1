// Package markup wraps the x/net/html fragment parser and serialiser used by
// the snapshot and element packages. Fragments are parsed in a body context,
// so anything legal inside <body> round-trips.
package markup

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses raw markup into a list of parentless nodes.
func ParseFragment(raw string) ([]*html.Node, error) {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	nodes, err := html.ParseFragment(strings.NewReader(raw), container)
	if err != nil {
		return nil, fmt.Errorf("markup: parse fragment: %w", err)
	}
	return nodes, nil
}

// Render serialises a node list back into markup.
func Render(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if err := html.Render(&buf, node); err != nil {
			return "", fmt.Errorf("markup: render node: %w", err)
		}
	}
	return buf.String(), nil
}

// Clone deep-copies a node and its subtree. The clone carries no parent or
// sibling links, so it can be attached anywhere.
func Clone(node *html.Node) *html.Node {
	if node == nil {
		return nil
	}

	out := &html.Node{
		Type:      node.Type,
		DataAtom:  node.DataAtom,
		Data:      node.Data,
		Namespace: node.Namespace,
	}
	if len(node.Attr) > 0 {
		out.Attr = make([]html.Attribute, len(node.Attr))
		copy(out.Attr, node.Attr)
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		out.AppendChild(Clone(child))
	}
	return out
}

// CloneAll deep-copies every node in the list.
func CloneAll(nodes []*html.Node) []*html.Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*html.Node, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		out = append(out, Clone(node))
	}
	return out
}

// BuildElement assembles an element node from a tag, an attribute map, and
// content nodes. Attributes are emitted in sorted order so serialisation is
// deterministic. Content nodes are cloned, never re-parented.
func BuildElement(tag string, attrs map[string]string, content []*html.Node) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	if len(attrs) > 0 {
		keys := make([]string, 0, len(attrs))
		for key := range attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		node.Attr = make([]html.Attribute, 0, len(keys))
		for _, key := range keys {
			node.Attr = append(node.Attr, html.Attribute{Key: key, Val: attrs[key]})
		}
	}

	for _, child := range CloneAll(content) {
		node.AppendChild(child)
	}
	return node
}

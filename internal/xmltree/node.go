// Package xmltree provides a lightweight namespace-aware DOM over
// encoding/xml for walking SPL documents. Lookups ignore namespace
// prefixes and match on local element names only, since SPL files use a
// single fixed namespace (urn:hl7-org:v3).
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Attr is one element attribute. Attributes keep document order so that
// serialization is deterministic across runs.
type Attr struct {
	Name  string
	Value string
}

// Node is one element in the parsed document tree.
type Node struct {
	// Name is the local element name without namespace prefix.
	Name string

	// Attrs holds attributes in document order, keyed by local name.
	Attrs []Attr

	// Text is the character data directly inside this element,
	// before any child element.
	Text string

	// Tail is the character data following this element's close tag,
	// inside the parent element.
	Tail string

	// Children are child elements in document order.
	Children []*Node
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Parse decodes an XML document into a Node tree. It fails only when the
// document is not well-formed or has no root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{
				Name:  t.Name.Local,
				Attrs: make([]Attr, 0, len(t.Attr)),
			}
			for _, a := range t.Attr {
				// Drop namespace declarations; they are noise once
				// prefixes are stripped.
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("decode xml: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			} else {
				last := cur.Children[len(cur.Children)-1]
				last.Tail += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("decode xml: no root element")
	}
	return root, nil
}

// Attr returns the named attribute value, or "" when absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present, even when empty.
func (n *Node) HasAttr(name string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Find returns the first descendant matching the exact child path, or nil.
// Each path segment must be a direct child of the previous one.
func (n *Node) Find(path ...string) *Node {
	if n == nil || len(path) == 0 {
		return nil
	}
	cur := n
	for _, name := range path {
		var next *Node
		for _, c := range cur.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// FindAll returns all direct children at the given path whose name matches
// the final segment, in document order. Intermediate segments resolve to
// the first matching child, like Find.
func (n *Node) FindAll(path ...string) []*Node {
	if n == nil || len(path) == 0 {
		return nil
	}
	parent := n
	if len(path) > 1 {
		parent = n.Find(path[:len(path)-1]...)
	}
	if parent == nil {
		return nil
	}
	var out []*Node
	for _, c := range parent.Children {
		if c.Name == path[len(path)-1] {
			out = append(out, c)
		}
	}
	return out
}

// FindDeep returns the first descendant with the given name at any depth,
// in document order, or nil.
func (n *Node) FindDeep(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
		if found := c.FindDeep(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAllDeep returns every descendant with the given name at any depth,
// in document order.
func (n *Node) FindAllDeep(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, c.FindAllDeep(name)...)
	}
	return out
}

// FindAllDeepAttr returns descendants with the given name whose attribute
// matches the given value.
func (n *Node) FindAllDeepAttr(name, attr, value string) []*Node {
	var out []*Node
	for _, c := range n.FindAllDeep(name) {
		if c.Attr(attr) == value {
			out = append(out, c)
		}
	}
	return out
}

// TextContent returns the node's own text plus all descendant text and
// tail text, with whitespace runs collapsed to single spaces and the
// result trimmed. This is the only normalization applied to plain text
// surfaced from a document.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.collectText(&b)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
}

func (n *Node) collectText(b *strings.Builder) {
	b.WriteString(n.Text)
	b.WriteByte(' ')
	for _, c := range n.Children {
		c.collectText(b)
		b.WriteString(c.Tail)
		b.WriteByte(' ')
	}
}

// XHTML serializes the subtree with namespace prefixes stripped and
// character data escaped. Attributes keep document order, so repeated
// runs over the same input produce identical output.
func (n *Node) XHTML() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeXHTML(&b)
	return b.String()
}

func (n *Node) writeXHTML(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}

	if n.Text == "" && len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	b.WriteString(escapeText(n.Text))
	for _, c := range n.Children {
		c.writeXHTML(b)
		b.WriteString(escapeText(c.Tail))
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }

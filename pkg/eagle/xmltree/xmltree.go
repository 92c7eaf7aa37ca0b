// Package xmltree reads an XML document into a navigable in-memory tree.
//
// The decoder is hardened for untrusted input: document type declarations
// are rejected outright (no entity definitions, so expansion bombs and
// external entity references fail as undefined entities), element nesting
// depth and per-element attribute counts are capped, and the total number
// of bytes consumed from the source is limited.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	// MaxDepth is the maximum element nesting depth accepted by Parse.
	MaxDepth = 256
	// MaxAttrs is the maximum number of attributes accepted on one element.
	MaxAttrs = 256
	// MaxDocumentSize is the maximum number of bytes Parse reads from the source.
	MaxDocumentSize = 64 << 20
)

// Node is one element of the parsed document: its tag, attributes, text
// content and child elements in document order.
type Node struct {
	Tag      string
	Text     string
	Children []*Node

	attrs map[string]string
	order []string
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute, preserving first-set order for serialization.
func (n *Node) SetAttr(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	if _, ok := n.attrs[name]; !ok {
		n.order = append(n.order, name)
	}
	n.attrs[name] = value
}

// AttrNames returns the attribute names in document order.
func (n *Node) AttrNames() []string {
	return n.order
}

// Find descends one path segment at a time, taking the first child whose tag
// matches each segment. It returns nil if any segment has no match.
func (n *Node) Find(path ...string) *Node {
	cur := n
	for _, tag := range path {
		var next *Node
		for _, c := range cur.Children {
			if c.Tag == tag {
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

// FindAll descends to the parent of the final path segment via Find, then
// returns every child matching the final segment, in document order.
func (n *Node) FindAll(path ...string) []*Node {
	if len(path) == 0 {
		return nil
	}
	parent := n
	if len(path) > 1 {
		parent = n.Find(path[:len(path)-1]...)
		if parent == nil {
			return nil
		}
	}
	var out []*Node
	for _, c := range parent.Children {
		if c.Tag == path[len(path)-1] {
			out = append(out, c)
		}
	}
	return out
}

// Parse reads a complete XML document from r and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(&cappedReader{r: r, remaining: MaxDocumentSize})

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) >= MaxDepth {
				return nil, fmt.Errorf("element nesting exceeds %d levels", MaxDepth)
			}
			if len(t.Attr) > MaxAttrs {
				return nil, fmt.Errorf("element <%s> has more than %d attributes", t.Name.Local, MaxAttrs)
			}
			n := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				n.SetAttr(a.Name.Local, a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			// Drop inter-element whitespace, keep real text content.
			if len(top.Children) > 0 && strings.TrimSpace(top.Text) == "" {
				top.Text = ""
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}

		case xml.Directive:
			return nil, fmt.Errorf("document type declarations are not allowed")
		}
	}

	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

// Encode serializes the subtree rooted at n as an indented XML document,
// preserving attribute order.
func (n *Node) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := n.encode(enc); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (n *Node) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, name := range n.order {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: n.attrs[name]})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := c.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

// cappedReader fails once more than a fixed number of bytes has been read.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		return 0, fmt.Errorf("document exceeds %d bytes", int64(MaxDocumentSize))
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	read, err := c.r.Read(p)
	c.remaining -= int64(read)
	return read, err
}

package eagle

import (
	"fmt"

	"github.com/drakedevel/eagle-tools/pkg/eagle/xmltree"
)

// decodeBool maps the format's boolean tokens onto bool. Only the exact
// tokens "no" and "yes" are accepted. An absent value falls back to fallback
// when one is supplied.
func decodeBool(value string, present bool, fallback *bool) (bool, error) {
	if !present {
		if fallback != nil {
			return *fallback, nil
		}
		return false, fmt.Errorf("%w: boolean value absent with no default", ErrInvalidEncoding)
	}
	switch value {
	case "no":
		return false, nil
	case "yes":
		return true, nil
	}
	return false, fmt.Errorf("%w: boolean token %q", ErrInvalidEncoding, value)
}

// textAt returns the text content of the first element at path below n, or
// nil when no such element exists. A present element with empty content
// yields a pointer to "", which is distinct from absence.
func textAt(n *xmltree.Node, path ...string) *string {
	found := n.Find(path...)
	if found == nil {
		return nil
	}
	text := found.Text
	return &text
}

// requireAttr reads an attribute that the format guarantees to be present.
func requireAttr(n *xmltree.Node, name string) (string, error) {
	v, ok := n.Attr(name)
	if !ok {
		return "", fmt.Errorf("%w: %q on <%s>", ErrMissingAttribute, name, n.Tag)
	}
	return v, nil
}

// parseMap builds a mapping keyed by each child's name attribute from the
// elements at path below n. Children are visited in document order; by
// default a repeated name keeps the last entry, in strict mode it is an
// error.
func parseMap[T any](cfg config, n *xmltree.Node, path []string, decode func(*xmltree.Node) (T, error)) (map[string]T, error) {
	nodes := n.FindAll(path...)
	out := make(map[string]T, len(nodes))
	for _, c := range nodes {
		name, err := requireAttr(c, "name")
		if err != nil {
			return nil, err
		}
		if cfg.strictNames {
			if _, dup := out[name]; dup {
				return nil, fmt.Errorf("%w: <%s> %q", ErrDuplicateName, c.Tag, name)
			}
		}
		v, err := decode(c)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// rawNode is a parseMap decoder that keeps the element itself. Used for the
// scopes this package treats as opaque (packages, symbols, gates).
func rawNode(n *xmltree.Node) (*xmltree.Node, error) {
	return n, nil
}

// attrMap collects <attribute name value> children of n into a plain map.
// The value attribute defaults to the empty string.
func attrMap(cfg config, n *xmltree.Node) (map[string]string, error) {
	return parseMap(cfg, n, []string{"attribute"}, func(c *xmltree.Node) (string, error) {
		v, _ := c.Attr("value")
		return v, nil
	})
}

func boolPtr(b bool) *bool { return &b }

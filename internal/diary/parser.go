package diary

import (
	"fmt"
	"io"
	"strings"

	xhtml "golang.org/x/net/html"
)

// markerClass identifies the per-entry "edit review" link on a diary page.
// Each such link carries the entry's data as data-* attributes.
const markerClass = "edit-review-button"

// Marker is one diary-entry element extracted from a page.
type Marker struct {
	attrs map[string]string
}

// NewMarker builds a marker from an attribute set.
func NewMarker(attrs map[string]string) Marker {
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return Marker{attrs: cp}
}

// Attr returns the attribute value and whether it was present.
func (m Marker) Attr(name string) (string, bool) {
	v, ok := m.attrs[name]
	return v, ok
}

// ParseMarkers parses an HTML document and returns its entry markers in
// document order.
func ParseMarkers(r io.Reader) ([]Marker, error) {
	doc, err := xhtml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diary HTML: %w", err)
	}

	var markers []Marker
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.Data == "a" && nodeHasClass(n, markerClass) {
			markers = append(markers, markerFromNode(n))
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return markers, nil
}

func markerFromNode(n *xhtml.Node) Marker {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		if _, seen := attrs[a.Key]; seen {
			continue // first occurrence wins, as in the DOM
		}
		attrs[a.Key] = a.Val
	}
	return Marker{attrs: attrs}
}

func nodeHasClass(n *xhtml.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, part := range strings.Fields(attr.Val) {
			if part == class {
				return true
			}
		}
		return false
	}
	return false
}

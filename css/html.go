package css

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

func ParseHTML(r io.Reader) (*Node, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromHTML(n), nil
}

// FromHTML converts the element nodes of an html tree.
// The converted root keeps its type - a document node becomes a tagless root -
// text, comment and doctype nodes are dropped.
func FromHTML(h *html.Node) *Node {
	if h == nil {
		return nil
	}
	type pair struct {
		h *html.Node
		n *Node
	}
	root := newNode(h)
	for stack := []pair{{h, root}}; len(stack) != 0; {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := p.h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			n := newNode(c)
			p.n.Children = append(p.n.Children, n)
			stack = append(stack, pair{c, n})
		}
	}
	return root
}

func newNode(h *html.Node) *Node {
	n := &Node{HTML: h, Attributes: make(map[string]string, len(h.Attr))}
	if h.Type == html.ElementNode {
		n.Tag = h.Data
	}
	for _, a := range h.Attr {
		if _, ok := n.Attributes[a.Key]; !ok {
			n.Attributes[a.Key] = a.Val
		}
	}
	return n
}

func render(h *html.Node) string {
	var s strings.Builder
	if err := html.Render(&s, h); err != nil {
		panic(fmt.Sprintf("Could not render html: %s", err))
	}
	return s.String()
}

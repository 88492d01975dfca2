package css

import (
	"strings"

	"golang.org/x/exp/slices"
)

type Matcher interface {
	Match(*Node) bool
	String() string
}

// Selector is a flat tag#id.class... predicate.
// Empty Tag / ID and nil Classes mean unconstrained; all Classes are required.
type Selector struct {
	Tag     string
	ID      string
	Classes []string
}

// SelectorList matches a node if any of its selectors does.
type SelectorList []*Selector

func (s *Selector) Match(n *Node) bool {
	if s.Tag != "" && n.Tag != s.Tag {
		return false
	} else if s.ID != "" && n.Attribute("id") != s.ID {
		return false
	} else if len(s.Classes) == 0 {
		return true
	}
	classes := n.Classes()
	for _, c := range s.Classes {
		if !slices.Contains(classes, c) {
			return false
		}
	}
	return true
}

func (ss SelectorList) Match(n *Node) bool {
	for _, s := range ss {
		if s.Match(n) {
			return true
		}
	}
	return false
}

func (s *Selector) String() string {
	out := s.Tag
	if s.ID != "" {
		out += "#" + s.ID
	}
	for _, c := range s.Classes {
		out += "." + c
	}
	return out
}

func (ss SelectorList) String() string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.String()
	}
	return strings.Join(out, ", ")
}

//css implements a flat tag#id.class selector engine over a plain node tree.

package css

import "golang.org/x/net/html"

type Node struct {
	Tag        string
	Attributes map[string]string
	Children   []*Node
	// HTML is the node this one was converted from (see FromHTML), if any.
	HTML *html.Node
}

// QuerySelectorAll returns all nodes below and including root that match any
// of the comma separated selectors in text - in pre-order and without duplicates.
func QuerySelectorAll(root *Node, text string) []*Node {
	return All(ParseList(text), root)
}

func First(s Matcher, n *Node) *Node {
	var first *Node
	walk(n, func(n *Node) bool {
		if s.Match(n) {
			first = n
		}
		return first == nil
	})
	return first
}

func All(s Matcher, n *Node) []*Node {
	var ns []*Node
	walk(n, func(n *Node) bool {
		if s.Match(n) {
			ns = append(ns, n)
		}
		return true
	})
	return ns
}

// walk visits n and its descendants in pre-order until f returns false.
// It uses an explicit stack rather than recursion so that the depth of the tree
// is not bounded by the goroutine stack; nodes reachable more than once
// (shared children, cycles) are only visited the first time.
// The visited set grows with the number of nodes, not the depth.
func walk(n *Node, f func(*Node) bool) {
	if n == nil {
		return
	}
	seen := map[*Node]bool{}
	for stack := []*Node{n}; len(stack) != 0; {
		n, stack = stack[len(stack)-1], stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		if !f(n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			if c := n.Children[i]; c != nil && !seen[c] {
				stack = append(stack, c)
			}
		}
	}
}

package css

import (
	"strings"
)

func (n *Node) All(text string) []*Node { return All(ParseList(text), n) }
func (n *Node) First(text string) *Node { return First(ParseList(text), n) }

// Attribute returns the value for key or "" if n does not have it.
func (n *Node) Attribute(key string) string {
	if n == nil {
		return ""
	}
	return n.Attributes[key]
}

func (n *Node) Classes() []string {
	return strings.Fields(n.Attribute("class"))
}

func (n *Node) OuterHTML() string {
	if n == nil || n.HTML == nil {
		return ""
	}
	return render(n.HTML)
}

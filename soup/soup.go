package soup

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/niklasfasching/qualifier/css"
	"golang.org/x/net/html"
)

func Parse(r io.Reader) (*Node, error) {
	htmlNode, err := html.Parse(r)
	return AsNode(htmlNode), err
}

func MustParse(r io.Reader) *Node {
	n, err := Parse(r)
	if err != nil {
		panic(err)
	}
	return n
}

func Load(client *http.Client, url string) (*Node, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return LoadReq(client, req)
}

func LoadReq(client *http.Client, req *http.Request) (*Node, error) {
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: status: %d", req.URL, res.StatusCode)
	}
	return Parse(res.Body)
}

func MustLoad(client *http.Client, url string) *Node {
	n, err := Load(client, url)
	if err != nil {
		panic(err)
	}
	return n
}

// Tree converts n into a css.Node tree. Converted nodes point back into n via css.Node.HTML.
func (n *Node) Tree() *css.Node {
	if n == nil {
		return nil
	}
	return css.FromHTML(AsHTMLNode(n))
}

func (n *Node) First(s string) *Node { return n.FirstSel(css.ParseList(s)) }
func (n *Node) FirstSel(s css.Matcher) *Node {
	if n == nil {
		return nil
	}
	if f := css.First(s, n.Tree()); f != nil {
		return AsNode(f.HTML)
	}
	return nil
}

func (n *Node) All(s string) Nodes { return n.AllSel(css.ParseList(s)) }
func (n *Node) AllSel(s css.Matcher) Nodes {
	if n == nil {
		return nil
	}
	return fromTree(css.All(s, n.Tree()))
}

func (n *Node) Text() string {
	var out strings.Builder
	appendText(&out, AsHTMLNode(n))
	return out.String()
}

func (n *Node) TrimmedText() string {
	return trimmed(n.Text())
}

func (n *Node) OuterHTML() string {
	if n == nil {
		return ""
	}
	var out strings.Builder
	if err := html.Render(&out, AsHTMLNode(n)); err != nil {
		panic(fmt.Sprintf("Could not render html: %s", err))
	}
	return out.String()
}

func (n *Node) HTML() string {
	if n == nil {
		return ""
	}
	var out strings.Builder
	for n := n.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&out, n); err != nil {
			panic(fmt.Sprintf("Could not render html: %s", err))
		}
	}
	return out.String()
}

func (n *Node) Attribute(key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (ns Nodes) Eq(i int) *Node {
	if i < 0 || i >= len(ns) {
		return nil
	}
	return ns[i]
}

func (ns Nodes) Len() int {
	return len(ns)
}

func (ns Nodes) Text(sep string) string {
	ss := make([]string, len(ns))
	for i, n := range ns {
		ss[i] = n.TrimmedText()
	}
	return strings.Join(ss, sep)
}

func (ns Nodes) Attribute(key string) []string {
	as := make([]string, len(ns))
	for i, n := range ns {
		as[i] = n.Attribute(key)
	}
	return as
}

func (ns Nodes) Tags() []string {
	ts := make([]string, len(ns))
	for i, n := range ns {
		ts[i] = n.Data
	}
	return ts
}

func (ns Nodes) HTML() string {
	ss := make([]string, len(ns))
	for i, n := range ns {
		ss[i] = n.OuterHTML()
	}
	return strings.Join(ss, "\n")
}

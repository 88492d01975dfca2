package sqlite

import (
	"strings"

	"github.com/niklasfasching/qualifier/soup"
)

func parseDocument(document string) (*soup.Node, error) {
	return soup.Parse(strings.NewReader(document))
}

func cssCount(document, selector string) (int, error) {
	n, err := parseDocument(document)
	if err != nil {
		return 0, err
	}
	return n.All(selector).Len(), nil
}

// cssFirst returns the trimmed text of the first match or "".
func cssFirst(document, selector string) (string, error) {
	n, err := parseDocument(document)
	if err != nil {
		return "", err
	}
	return n.First(selector).TrimmedText(), nil
}

func cssAll(document, selector, sep string) (string, error) {
	n, err := parseDocument(document)
	if err != nil {
		return "", err
	}
	return n.All(selector).Text(sep), nil
}

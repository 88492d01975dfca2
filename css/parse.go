package css

import (
	"fmt"
	"strings"
)

type SyntaxError struct {
	Selector string
	Index    int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid selector %q at %d: %s", e.Selector, e.Index, e.Msg)
}

// Parse converts a single (already trimmed) selector fragment into a Selector.
// It never fails: characters that do not form a tag, #id or .class are skipped,
// so malformed input yields an under-constrained selector - "" matches everything.
func Parse(fragment string) *Selector {
	s, _ := parse(lex(fragment))
	return s
}

// ParseList splits text on commas and parses each trimmed piece.
func ParseList(text string) SelectorList {
	fragments := strings.Split(text, ",")
	ss := make(SelectorList, len(fragments))
	for i, fragment := range fragments {
		ss[i] = Parse(strings.TrimSpace(fragment))
	}
	return ss
}

// Compile is the strict variant of ParseList. Where ParseList silently skips
// characters, Compile returns a *SyntaxError - this includes whitespace inside
// a fragment (no descendant combinator) and empty fragments.
func Compile(text string) (SelectorList, error) {
	ss, offset := SelectorList{}, 0
	for _, fragment := range strings.Split(text, ",") {
		trimmed := strings.TrimSpace(fragment)
		if trimmed == "" {
			return nil, &SyntaxError{text, offset, "empty selector"}
		}
		s, skipped := parse(lex(trimmed))
		if skipped != nil {
			index := offset + strings.Index(fragment, trimmed) + skipped.index
			return nil, &SyntaxError{text, index, fmt.Sprintf("unexpected %q", skipped.string)}
		}
		ss, offset = append(ss, s), offset+len(fragment)+1
	}
	return ss, nil
}

func MustCompile(text string) SelectorList {
	ss, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return ss
}

// parse folds tokens into a Selector. The first skipped token is returned
// so that strict callers can report it.
func parse(tokens []token) (*Selector, *token) {
	s, skipped := &Selector{}, (*token)(nil)
	for i, t := range tokens {
		switch t.category {
		case tokenTag:
			s.Tag = t.string
		case tokenID:
			s.ID = t.string
		case tokenClass:
			s.Classes = append(s.Classes, t.string)
		case tokenSkip:
			if skipped == nil {
				skipped = &tokens[i]
			}
		}
	}
	return s, skipped
}

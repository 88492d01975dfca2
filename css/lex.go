/*
selector := tag? (id | class)*
tag      := [a-zA-Z] name*   -- only at index 0
id       := "#" name+
class    := "." name+
name     := unicode letter | unicode digit | "_" | "-"
anything else is emitted as tokenSkip and ignored by the parser
*/
package css

import (
	"unicode"
	"unicode/utf8"
)

type token struct {
	category tokenCategory
	string   string
	index    int
}

type tokenCategory int

const (
	tokenEOF tokenCategory = iota
	tokenTag
	tokenID
	tokenClass
	tokenSkip
)

const eof = -1

type stateFn func(*lexer) stateFn

type lexer struct {
	input  string
	index  int
	start  int
	width  int
	tokens []token
}

func lex(input string) []token {
	l := &lexer{input: input}
	for state := lexTag; state != nil; state = state(l) {
	}
	return l.tokens
}

func (l *lexer) next() rune {
	if l.index >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.index:])
	l.width = w
	l.index += l.width
	return r
}

func (l *lexer) peek() rune {
	if l.index >= len(l.input) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.index:])
	return r
}

func (l *lexer) backup() {
	l.index -= l.width
}

func (l *lexer) emit(c tokenCategory) {
	l.tokens = append(l.tokens, token{c, l.input[l.start:l.index], l.start})
	l.start = l.index
}

func (l *lexer) ignore() {
	l.start = l.index
}

func (l *lexer) acceptRun(f func(rune) bool) {
	for f(l.next()) {
	}
	l.backup()
}

// lexTag only runs at index 0 - a name anywhere else is not a tag.
func lexTag(l *lexer) stateFn {
	if isLetter(l.peek()) {
		l.acceptRun(isNameChar)
		l.emit(tokenTag)
	}
	return lexFragment
}

func lexFragment(l *lexer) stateFn {
	switch r := l.next(); {
	case r == eof:
		l.emit(tokenEOF)
		return nil
	case r == '#' && isNameChar(l.peek()):
		l.ignore()
		return lexName(tokenID)
	case r == '.' && isNameChar(l.peek()):
		l.ignore()
		return lexName(tokenClass)
	default:
		l.emit(tokenSkip)
		return lexFragment
	}
}

func lexName(c tokenCategory) stateFn {
	return func(l *lexer) stateFn {
		l.acceptRun(isNameChar)
		l.emit(c)
		return lexFragment
	}
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// isNameChar checks whether rune r may continue a tag or follow a # or .
// Only the first rune of a tag is restricted to ASCII.
func isNameChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-'
}

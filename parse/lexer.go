// Package parse turns pseudo-English phrases and C/C++ declarations into
// ASTs, driving the ast package's builder combinators. It is the host-side
// realization of the grammar the core expects a parser to provide.
package parse

import (
	"fmt"
	"strings"

	"github.com/appsworld/go-cdecl/types"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	loc  types.Loc
}

// trigraphs maps each ISO trigraph to its plain spelling. Trigraphs are
// replaced everywhere before tokenization, as a real C translator would.
var trigraphs = []struct{ from, to string }{
	{"??=", "#"},
	{"??(", "["},
	{"??)", "]"},
	{"??<", "{"},
	{"??>", "}"},
	{"??/", "\\"},
	{"??'", "^"},
	{"??!", "|"},
	{"??-", "~"},
}

// digraphs maps digraph punctuators to their plain spellings; unlike
// trigraphs these are full tokens.
var digraphs = map[string]string{
	"<%": "{",
	"%>": "}",
	"<:": "[",
	":>": "]",
	"%:": "#",
}

// altTokens maps the C++ alternative tokens the declarator grammar can
// meet to their punctuator spellings.
var altTokens = map[string]string{
	"bitand": "&",
	"and":    "&&",
	"compl":  "~",
}

// lex tokenizes input. When alt is true the C++ alternative tokens are
// recognized as punctuators.
func lex(input string, alt bool) []token {
	for _, tg := range trigraphs {
		input = strings.ReplaceAll(input, tg.from, tg.to)
	}

	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case isIdentStart(c):
			start := i
			i = scanIdent(input, i)
			text := input[start:i]
			if alt {
				if p, ok := altTokens[text]; ok {
					toks = append(toks, token{tokPunct, p, types.Loc{First: start, Last: i}})
					continue
				}
			}
			toks = append(toks, token{tokIdent, text, types.Loc{First: start, Last: i}})

		case c >= '0' && c <= '9':
			start := i
			for i < len(input) && (input[i] >= '0' && input[i] <= '9' ||
				input[i] == 'x' || input[i] == 'X' ||
				input[i] >= 'a' && input[i] <= 'f' ||
				input[i] >= 'A' && input[i] <= 'F') {
				i++
			}
			toks = append(toks, token{tokNumber, input[start:i], types.Loc{First: start, Last: i}})

		default:
			start := i
			text := ""
			if i+2 < len(input) && input[i:i+3] == "..." {
				text = "..."
				i += 3
			}
			if text == "" && i+1 < len(input) {
				two := input[i : i+2]
				if plain, ok := digraphs[two]; ok {
					text = plain
					i += 2
				} else {
					switch two {
					case "::", "->", "&&", "^^":
						text = two
						i += 2
					}
				}
			}
			if text == "" {
				text = string(c)
				i++
			}
			toks = append(toks, token{tokPunct, text, types.Loc{First: start, Last: i}})
		}
	}
	return toks
}

// scanIdent returns the end of the identifier starting at i. Hyphens
// joining two words are part of English identifiers like "non-member";
// "->" stays a punctuator.
func scanIdent(input string, i int) int {
	for i < len(input) {
		if isIdentCont(input[i]) {
			i++
			continue
		}
		if input[i] == '-' && i+1 < len(input) && isIdentStart(input[i+1]) {
			i += 2
			continue
		}
		break
	}
	return i
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// cursor walks a token slice with arbitrary lookahead.
type cursor struct {
	toks []token
	pos  int
}

func (c *cursor) peek() token { return c.at(0) }

func (c *cursor) at(n int) token {
	if c.pos+n >= len(c.toks) {
		end := 0
		if len(c.toks) > 0 {
			end = c.toks[len(c.toks)-1].loc.Last
		}
		return token{kind: tokEOF, loc: types.Loc{First: end, Last: end}}
	}
	return c.toks[c.pos+n]
}

func (c *cursor) next() token {
	t := c.peek()
	if t.kind != tokEOF {
		c.pos++
	}
	return t
}

func (c *cursor) eof() bool { return c.peek().kind == tokEOF }

// acceptPunct consumes the next token if it is the punctuator p.
func (c *cursor) acceptPunct(p string) bool {
	if t := c.peek(); t.kind == tokPunct && t.text == p {
		c.pos++
		return true
	}
	return false
}

// acceptIdent consumes the next token if it is the identifier word.
func (c *cursor) acceptIdent(word string) bool {
	if t := c.peek(); t.kind == tokIdent && t.text == word {
		c.pos++
		return true
	}
	return false
}

func (c *cursor) expectPunct(p string) error {
	if !c.acceptPunct(p) {
		return fmt.Errorf("expected %q but got %q", p, c.peek().text)
	}
	return nil
}

// UnknownNameError reports an identifier that is neither a keyword nor a
// registered type name; callers can build "did you mean" hints from it.
type UnknownNameError struct {
	Name string
	Loc  types.Loc
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("%q: unknown name", e.Name)
}

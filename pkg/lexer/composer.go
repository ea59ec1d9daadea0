package lexer

import "strings"

// composer is an incremental state machine fed one classified character at
// a time. put reports whether the character was accepted; after the first
// rejection compose turns the accumulated state into a token, given the
// class of the character that follows it.
type composer interface {
	put(c Class, r rune) bool
	compose(follow Class) (Token, bool)
}

// trieNode is one state of the reserved word recogniser.
type trieNode struct {
	next map[rune]*trieNode
	word string // non-empty when a reserved word ends here
}

var wordTrie = func() *trieNode {
	root := &trieNode{}
	for w := range keywords {
		n := root
		for _, r := range w {
			if n.next == nil {
				n.next = make(map[rune]*trieNode)
			}
			c, ok := n.next[r]
			if !ok {
				c = &trieNode{}
				n.next[r] = c
			}
			n = c
		}
		n.word = w
	}
	return root
}()

// wordComposer walks the reserved word trie. It runs next to the
// identifierComposer over the same characters and wins when it matches.
type wordComposer struct {
	node *trieNode
}

func newWordComposer() *wordComposer { return &wordComposer{node: wordTrie} }

func (w *wordComposer) put(_ Class, r rune) bool {
	if w.node == nil {
		return false
	}
	w.node = w.node.next[r]
	return w.node != nil
}

func (w *wordComposer) compose(follow Class) (Token, bool) {
	if w.node == nil || w.node.word == "" {
		return Token{}, false
	}
	switch follow {
	case IdentifierHead, IdentifierFollow, Digit, Underscore:
		return Token{}, false
	}
	k := keywords[w.node.word]
	if k == BOOLEAN_LITERAL {
		return Token{Kind: BOOLEAN_LITERAL, Bool: w.node.word == "true"}, true
	}
	return Token{Kind: k, Text: w.node.word}, true
}

type identifierState int

const (
	identStart identifierState = iota
	identPlain
	identQuoteOpen  // inside `...`
	identQuoteClose // closing backquote seen
	identDollar
	identImplicit
	identFailed
)

// identifierComposer accepts plain identifiers, backquoted identifiers and
// implicit parameter names ($0, $1, ...).
type identifierComposer struct {
	state identifierState
	buf   strings.Builder
	index int64
}

func newIdentifierComposer() *identifierComposer { return &identifierComposer{} }

func (ic *identifierComposer) put(c Class, r rune) bool {
	switch ic.state {
	case identStart:
		switch c {
		case IdentifierHead:
			ic.state = identPlain
			ic.buf.WriteRune(r)
			return true
		case BackQuote:
			ic.state = identQuoteOpen
			return true
		case Dollar:
			ic.state = identDollar
			return true
		}
	case identPlain:
		switch c {
		case IdentifierHead, IdentifierFollow, Digit, Underscore:
			ic.buf.WriteRune(r)
			return true
		}
		return false
	case identQuoteOpen:
		switch c {
		case IdentifierHead, IdentifierFollow, Digit, Underscore:
			if ic.buf.Len() == 0 && c != IdentifierHead && c != Underscore {
				break
			}
			ic.buf.WriteRune(r)
			return true
		case BackQuote:
			if ic.buf.Len() == 0 {
				break
			}
			ic.state = identQuoteClose
			return true
		}
	case identDollar, identImplicit:
		if c == Digit {
			ic.state = identImplicit
			ic.index = ic.index*10 + int64(r-'0')
			if ic.index > 1<<31 {
				break
			}
			return true
		}
		return false
	case identQuoteClose:
		return false
	}
	ic.state = identFailed
	return false
}

func (ic *identifierComposer) compose(follow Class) (Token, bool) {
	switch ic.state {
	case identPlain, identQuoteClose:
		return Token{Kind: IDENTIFIER, Text: ic.buf.String()}, true
	case identImplicit:
		return Token{Kind: IMPLICIT_PARAMETER, Int: ic.index}, true
	}
	return Token{}, false
}

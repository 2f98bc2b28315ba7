/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"fmt"

	"devt.de/krotik/common/datautil"
)

/*
TreeKind distinguishes a plain token from a bracketed group in a TokenTree.
*/
type TreeKind int

/*
Tree node kinds.
*/
const (
	LeafNode TreeKind = iota
	GroupNode
)

/*
TokenTree is a bracket-paired view of a token stream. Building one is a
dedicated validation pass which runs before the Pratt parser ever sees the
tokens: a program with a stray, missing or mismatched bracket is rejected
here with a precise SyntaxError instead of surfacing as a confusing parse
failure deep inside an expression.
*/
type TokenTree struct {
	Kind     TreeKind
	Token    LexToken   // the token itself (LeafNode), or the opening bracket (GroupNode)
	Close    LexToken   // the matching closing bracket (GroupNode only)
	Children []*TokenTree
}

var openBrackets = map[LexTokenID]LexTokenID{
	TokenLPAREN: TokenRPAREN,
	TokenLBRACE: TokenRBRACE,
}

var closeBrackets = map[LexTokenID]bool{
	TokenRPAREN: true,
	TokenRBRACE: true,
}

/*
BuildTokenTree consumes a flat token list and folds matching bracket pairs
into GroupNode subtrees, reporting the first mismatched or unterminated
bracket it finds.
*/
func BuildTokenTree(source string, tokens []LexToken) (*TokenTree, error) {
	root := &TokenTree{Kind: GroupNode}

	nodes, rest, err := buildTokenTree(source, tokens)
	if err != nil {
		return nil, err
	}

	if len(rest) > 0 {

		// Only an unmatched close bracket stops the top-level scan early

		return nil, newSyntaxError(source, fmt.Sprintf("Unexpected token: %v", rest[0]), rest[0])
	}

	root.Children = nodes
	return root, nil
}

func buildTokenTree(source string, tokens []LexToken) ([]*TokenTree, []LexToken, error) {
	var nodes []*TokenTree

	for len(tokens) > 0 {
		tok := tokens[0]

		if tok.ID == TokenEOF {
			nodes = append(nodes, &TokenTree{Kind: LeafNode, Token: tok})
			return nodes, tokens[1:], nil
		}

		if tok.ID == TokenError {
			return nil, nil, newSyntaxError(source, tok.Val, tok)
		}

		if closeID, isOpen := openBrackets[tok.ID]; isOpen {
			children, rest, err := buildTokenTree(source, tokens[1:])
			if err != nil {
				return nil, nil, err
			}

			if len(rest) == 0 {
				return nil, nil, newSyntaxError(source, "Unterminated bracket", tok)
			}

			closeTok := rest[0]
			if closeTok.ID != closeID {
				if closeBrackets[closeTok.ID] {
					return nil, nil, newSyntaxError(source,
						fmt.Sprintf("Mismatched bracket: expected %v, found %v",
							closeID, closeTok.ID), closeTok)
				}
				return nil, nil, newSyntaxError(source, "Unterminated bracket", tok)
			}

			nodes = append(nodes, &TokenTree{Kind: GroupNode, Token: tok, Close: closeTok, Children: children})
			tokens = rest[1:]
			continue
		}

		if closeBrackets[tok.ID] {

			// An unmatched close bracket ends the enclosing group (or, at
			// top level, is itself the error)

			return nodes, tokens, nil
		}

		nodes = append(nodes, &TokenTree{Kind: LeafNode, Token: tok})
		tokens = tokens[1:]
	}

	return nodes, tokens, nil
}

func newSyntaxError(source string, detail string, tok LexToken) error {
	return &ParseError{source, detail, tok.Lline, tok.Lpos}
}

/*
Flatten walks a TokenTree back into a flat token slice - brackets are
emitted along with their contents in original order - so the Pratt parser
can read a bracket-validated stream through the same Cursor interface it
would use for a flat lexer channel.
*/
func (t *TokenTree) Flatten() []LexToken {
	var out []LexToken
	t.flattenInto(&out)
	return out
}

func (t *TokenTree) flattenInto(out *[]LexToken) {
	if t.Kind == LeafNode {
		*out = append(*out, t.Token)
		return
	}

	// The synthetic root group has no opening token of its own
	isRoot := t.Token.Lsource == "" && t.Close.Lsource == ""

	if !isRoot {
		*out = append(*out, t.Token)
	}

	for _, c := range t.Children {
		c.flattenInto(out)
	}

	if !isRoot {
		*out = append(*out, t.Close)
	}
}

// Cursor
// ======

/*
Cursor is a bounded-lookahead view over a token stream, used by the Pratt
parser in place of reading directly off the lexer channel. It is backed by
a ring buffer over an already-validated (bracket-paired) token slice instead
of a channel, since BuildTokenTree already consumed the whole stream once.
*/
type Cursor struct {
	tokens []LexToken
	pos    int
	buffer *datautil.RingBuffer
}

/*
NewCursor creates a new Cursor with the given lookahead size.
*/
func NewCursor(tokens []LexToken, lookahead int) *Cursor {
	if lookahead < 1 {
		lookahead = 1
	}

	c := &Cursor{tokens: tokens, buffer: datautil.NewRingBuffer(lookahead)}

	for c.buffer.Size() < lookahead && c.pos < len(c.tokens) {
		c.buffer.Add(c.tokens[c.pos])
		c.pos++
	}

	return c
}

/*
Next returns the next item.
*/
func (c *Cursor) Next() (LexToken, bool) {
	ret := c.buffer.Poll()

	if c.pos < len(c.tokens) {
		c.buffer.Add(c.tokens[c.pos])
		c.pos++
	}

	if ret == nil {
		return LexToken{ID: TokenEOF}, false
	}

	return ret.(LexToken), true
}

/*
Peek looks inside the buffer starting with 0 as the next item.
*/
func (c *Cursor) Peek(pos int) (LexToken, bool) {
	if pos >= c.buffer.Size() {
		return LexToken{ID: TokenEOF}, false
	}

	return c.buffer.Get(pos).(LexToken), true
}

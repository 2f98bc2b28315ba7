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
	"testing"
)

func TestNextItem(t *testing.T) {

	l := &lexer{"Test", "1234", 0, 0, 0, 0, 0, make(chan LexToken)}

	r := l.next(1)

	if r != '1' {
		t.Errorf("Unexpected token: %q", r)
		return
	}

	if r := l.next(0); r != '1' {
		t.Errorf("Unexpected token: %q", r)
		return
	}

	if r := l.next(0); r != '2' {
		t.Errorf("Unexpected token: %q", r)
		return
	}

	if r := l.next(1); r != '3' {
		t.Errorf("Unexpected token: %q", r)
		return
	}

	if r := l.next(2); r != '4' {
		t.Errorf("Unexpected token: %q", r)
		return
	}

	if r := l.next(0); r != '3' {
		t.Errorf("Unexpected token: %q", r)
		return
	}

	if r := l.next(0); r != '4' {
		t.Errorf("Unexpected token: %q", r)
		return
	}

	if r := l.next(0); r != RuneEOF {
		t.Errorf("Unexpected token: %q", r)
		return
	}
}

func TestTokenEquals(t *testing.T) {
	l := LexToList("mytest", "a bb")

	if ok, msg := l[0].Equals(l[1], false); ok ||
		msg != "Val is different a vs bb\nPosition is different 1:1 vs 1:3\n" {
		t.Error("Unexpected result:", msg)
		return
	}

	if ok, _ := l[0].Equals(l[0], false); !ok {
		t.Error("A token should equal itself")
		return
	}
}

func TestBasicTokenLexing(t *testing.T) {

	// Whitespace only input produces just the EOF token

	if res := fmt.Sprint(LexToList("mytest", "   \t  ")); res != "[EOF  null]" {
		t.Error("Unexpected lexer result:\n  ", res)
		return
	}

	// Arithmetic operators and number literals

	input := "1 + 2 * 3"
	if res := LexToList("mytest", input); fmt.Sprint(res) !=
		"[NUMBER 1 1.0 PLUS + null NUMBER 2 2.0 STAR * null NUMBER 3 3.0 EOF  null]" {
		t.Error("Unexpected lexer result:\n  ", res)
		return
	}

	// Identifiers and reserved words

	input = "foo and true"
	if res := LexToList("mytest", input); fmt.Sprint(res) !=
		"[IDENTIFIER foo null AND and null TRUE true null EOF  null]" {
		t.Error("Unexpected lexer result:\n  ", res)
		return
	}

	// String literals

	input = `"hi";`
	if res := LexToList("mytest", input); fmt.Sprint(res) !=
		`[STRING "hi" hi SEMICOLON ; null EOF  null]` {
		t.Error("Unexpected lexer result:\n  ", res)
		return
	}

	// Unknown character - lexing resumes after the error instead of aborting

	input = "a@b"
	if res := LexToList("mytest", input); fmt.Sprint(res) !=
		`[IDENTIFIER a null Error: Unexpected character: '@' (Line 1, Pos 2) IDENTIFIER b null EOF  null]` {
		t.Error("Unexpected lexer result:\n  ", res)
		return
	}
}

func TestStringLexing(t *testing.T) {

	// Unterminated string

	input := `"hi`
	if res := LexToList("mytest", input); fmt.Sprint(res) !=
		"[Error: Unterminated string (Line 1, Pos 1)]" {
		t.Error("Unexpected lexer result:", res)
		return
	}

	// Lox strings do not support escape sequences - backslashes are literal

	input = `"hi\n"`
	if res := LexToList("mytest", input); fmt.Sprint(res) != `[STRING "hi\\n" hi\n EOF  null]` {
		t.Error("Unexpected lexer result:", res)
		return
	}
}

func TestCommentLexing(t *testing.T) {

	// Line comment consumed, the newline is treated like any other whitespace

	input := "// leading comment\na;"
	if res := LexToList("mytest", input); fmt.Sprint(res) !=
		"[IDENTIFIER a null SEMICOLON ; null EOF  null]" {
		t.Error("Unexpected lexer result:", res)
		return
	}

	// A comment with nothing following it still terminates cleanly

	input = "// just a comment"
	if res := LexToList("mytest", input); fmt.Sprint(res) != "[EOF  null]" {
		t.Error("Unexpected lexer result:", res)
		return
	}

	// A single slash is division, not the start of a comment

	input = "1 / 2;"
	if res := LexToList("mytest", input); fmt.Sprint(res) !=
		"[NUMBER 1 1.0 SLASH / null NUMBER 2 2.0 SEMICOLON ; null EOF  null]" {
		t.Error("Unexpected lexer result:", res)
		return
	}
}

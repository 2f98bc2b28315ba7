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

func TestStatementParsing(t *testing.T) {

	input := `var a = 1; a; print a;`
	expectedOutput := `PROGRAM
  VARDECL
    NUMBER: 1
  IDENTIFIER: a
  PRINT
    IDENTIFIER: a
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestIdentifierParsing(t *testing.T) {

	input := `a.b.c = 1;
	a.b();
	`
	expectedOutput := `PROGRAM
  SET
    GET
      IDENTIFIER: a
    NUMBER: 1
  CALL
    GET
      IDENTIFIER: a
    ARGS
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestCommentParsing(t *testing.T) {

	// Line comments are consumed by the lexer and never reach the parser

	input := `// leading comment
	a; // trailing comment
	`
	expectedOutput := `PROGRAM
  IDENTIFIER: a
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestErrorConditions(t *testing.T) {

	input := `"foo`
	if ast, err := Parse("test", input); err == nil ||
		err.Error() != "lox syntax error in test: Unterminated string (Line:1 Pos:1)" {
		t.Errorf("Unexpected result: %v\nAST:\n%v", err, ast)
		return
	}

	input = `)`
	if ast, err := Parse("test", input); err == nil ||
		err.Error() != "lox syntax error in test: Unexpected token: RIGHT_PAREN ) null (Line:1 Pos:1)" {
		t.Errorf("Unexpected result: %v\nAST:\n%v", err, ast)
		return
	}

	input = `var a = 1 var b = 2;`
	if ast, err := Parse("test", input); err == nil ||
		err.Error() != "lox syntax error in test: Unexpected token: VAR var null (Line:1 Pos:11)" {
		t.Errorf("Unexpected result: %v\nAST:\n%v", err, ast)
		return
	}

	tokenStringEntry := astNodeMap[TokenSTRING]
	delete(astNodeMap, TokenSTRING)
	defer func() {
		astNodeMap[TokenSTRING] = tokenStringEntry
	}()

	input = `"foo";`
	if ast, err := Parse("test", input); err == nil ||
		err.Error() != `lox syntax error in test: Unknown token: STRING "foo" foo (Line:1 Pos:1)` {
		t.Errorf("Unexpected result: %v\nAST:\n%v", err, ast)
		return
	}

	// Test parser functions directly

	input = `a and b`

	p := &parser{"test", nil, NewCursor(LexToList("test", input), 3), nil}
	node, _ := p.next()
	p.node = node

	if err := skipToken(p, TokenAND); err == nil ||
		err.Error() != "lox syntax error in test: Unexpected token: IDENTIFIER a null (Line:1 Pos:1)" {
		t.Errorf("Unexpected result: %v", err)
		return
	}
}

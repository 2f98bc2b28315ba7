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

func TestVarDeclParsing(t *testing.T) {
	input := "var a; var b = 1 + 2;"
	expectedOutput := `PROGRAM
  VARDECL
  VARDECL
    PLUS
      NUMBER: 1
      NUMBER: 2
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestBlockParsing(t *testing.T) {
	input := "{ var a = 1; print a; }"
	expectedOutput := `PROGRAM
  BLOCK
    VARDECL
      NUMBER: 1
    PRINT
      IDENTIFIER: a
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestIfParsing(t *testing.T) {
	input := "if (a) print 1; else print 2;"
	expectedOutput := `PROGRAM
  IF
    IDENTIFIER: a
    PRINT
      NUMBER: 1
    PRINT
      NUMBER: 2
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}

	input = "if (a) print 1;"
	expectedOutput = `PROGRAM
  IF
    IDENTIFIER: a
    PRINT
      NUMBER: 1
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestWhileParsing(t *testing.T) {
	input := "while (a) { print a; }"
	expectedOutput := `PROGRAM
  WHILE
    IDENTIFIER: a
    BLOCK
      PRINT
        IDENTIFIER: a
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestForParsing(t *testing.T) {
	input := "for (var i = 0; i < 10; i = i + 1) print i;"
	expectedOutput := `PROGRAM
  FOR
    VARDECL
      NUMBER: 0
    LT
      IDENTIFIER: i
      NUMBER: 10
    ASSIGN
      PLUS
        IDENTIFIER: i
        NUMBER: 1
    PRINT
      IDENTIFIER: i
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}

	// All three clauses may be omitted

	input = "for (;;) print 1;"
	expectedOutput = `PROGRAM
  FOR
    NIL
    TRUE
    NIL
    PRINT
      NUMBER: 1
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestAssignmentParsing(t *testing.T) {
	input := "a = 1; b.c = 2;"
	expectedOutput := `PROGRAM
  ASSIGN
    NUMBER: 1
  SET
    IDENTIFIER: b
    NUMBER: 2
`

	if res, err := UnitTestParse("mytest", input); err != nil || fmt.Sprint(res) != expectedOutput {
		t.Error("Unexpected parser output:\n", res, "expected was:\n", expectedOutput, "Error:", err)
		return
	}
}

func TestStatementErrorConditions(t *testing.T) {

	input := "1 = 2;"
	if _, err := Parse("mytest", input); err == nil ||
		err.Error() != "lox syntax error in mytest: Invalid assignment target (Line:1 Pos:3)" {
		t.Error(err)
		return
	}

	input = "if a { print 1; }"
	if _, err := Parse("mytest", input); err == nil ||
		err.Error() != "lox syntax error in mytest: Unexpected token: IDENTIFIER a null (Line:1 Pos:4)" {
		t.Error(err)
		return
	}
}

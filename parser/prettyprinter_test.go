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
	"testing"
)

func TestNilNodeHandling(t *testing.T) {

	input := "a + b;"

	astres, err := ParseWithRuntime("mytest", input, &DummyRuntimeProvider{})
	if err != nil {
		t.Errorf("Unexpected parser output:\n%vError: %v", astres, err)
		return
	}

	// Corrupt the tree - the PLUS statement's right operand

	astres.Children[0].Children[1] = nil

	if _, err := PrettyPrint(astres); err == nil || err.Error() != "Nil pointer in AST" {
		t.Errorf("Unexpected result, error: %v", err)
		return
	}
}

func TestArithmeticExpressionPrinting(t *testing.T) {

	if _, err := UnitTestParseWithPPResult("mytest", "1 + 2 - 3;", "1 + 2 - 3"); err != nil {
		t.Error(err)
		return
	}

	if _, err := UnitTestParseWithPPResult("mytest", "(1 + 2) * 3;", "(1 + 2) * 3"); err != nil {
		t.Error(err)
		return
	}

	if _, err := UnitTestParseWithPPResult("mytest", "-a + b;", "-a + b"); err != nil {
		t.Error(err)
		return
	}
}

func TestStatementPrinting(t *testing.T) {

	if _, err := UnitTestParseWithPPResult("mytest", `print "hi";`, `print "hi";`); err != nil {
		t.Error(err)
		return
	}

	if _, err := UnitTestParseWithPPResult("mytest", "if (a) print 1; else print 2;",
		"if (a) print 1; else print 2;"); err != nil {
		t.Error(err)
		return
	}
}

func TestLogicalExpressionPrinting(t *testing.T) {

	if _, err := UnitTestParseWithPPResult("mytest", "a and b or c and d;",
		"a and b or c and d"); err != nil {
		t.Error(err)
		return
	}

	if _, err := UnitTestParseWithPPResult("mytest", "!a and b;", "!a and b"); err != nil {
		t.Error(err)
		return
	}
}

/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package interpreter

import "testing"

func TestPrint(t *testing.T) {
	_, out, err := UnitTestEvalAndASTAndOutput(`print "hello";`, "")
	if err != nil || out != "hello\n" {
		t.Error("Unexpected result: ", out, err)
		return
	}

	_, out, err = UnitTestEvalAndASTAndOutput(`print 1 + 2;`, "")
	if err != nil || out != "3\n" {
		t.Error("Unexpected result: ", out, err)
		return
	}
}

func TestIf(t *testing.T) {
	_, out, err := UnitTestEvalAndASTAndOutput(
		`if (1 < 2) print "yes"; else print "no";`, "")
	if err != nil || out != "yes\n" {
		t.Error("Unexpected result: ", out, err)
		return
	}

	_, out, err = UnitTestEvalAndASTAndOutput(
		`if (1 > 2) print "yes"; else print "no";`, "")
	if err != nil || out != "no\n" {
		t.Error("Unexpected result: ", out, err)
		return
	}
}

func TestWhile(t *testing.T) {
	_, out, err := UnitTestEvalAndASTAndOutput(`
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`, "")
	if err != nil || out != "0\n1\n2\n" {
		t.Error("Unexpected result: ", out, err)
		return
	}
}

func TestFor(t *testing.T) {
	_, out, err := UnitTestEvalAndASTAndOutput(`
for (var i = 0; i < 3; i = i + 1) {
  print i;
}
`, "")
	if err != nil || out != "0\n1\n2\n" {
		t.Error("Unexpected result: ", out, err)
		return
	}
}

func TestBlockScoping(t *testing.T) {
	_, out, err := UnitTestEvalAndASTAndOutput(`
var a = "outer";
{
  var a = "inner";
  print a;
}
print a;
`, "")
	if err != nil || out != "inner\nouter\n" {
		t.Error("Unexpected result: ", out, err)
		return
	}
}

func TestForLoopClosurePerIteration(t *testing.T) {

	// Each loop-body scope must be freshly allocated per iteration so a
	// closure created inside the loop captures its own `captured`, not one
	// shared binding mutated by later iterations.

	_, out, err := UnitTestEvalAndASTAndOutput(`
var last = nil;
for (var i = 0; i < 3; i = i + 1) {
  var captured = i;
  fun show() { print captured; }
  last = show;
}
last();
`, "")
	if err != nil || out != "2\n" {
		t.Error("Unexpected result: ", out, err)
		return
	}
}

func TestVarAccessError(t *testing.T) {
	if _, err := UnitTestEval(`print undefinedVar;`); err == nil {
		t.Error("Accessing an undefined variable should be a runtime error")
	}
}

/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package resolver

import (
	"strings"
	"testing"

	"devt.de/krotik/lox/parser"
)

func mustParse(t *testing.T, src string) *parser.ASTNode {
	ast, err := parser.Parse("ResolverTest", src)
	if err != nil {
		t.Fatal(err)
	}
	return ast
}

func TestResolveLocalDistance(t *testing.T) {
	ast := mustParse(t, `
var a = 1;
{
  var b = 2;
  print a + b;
}
`)

	locals, err := Resolve("ResolverTest", ast)
	if err != nil {
		t.Fatal(err)
	}

	// The PRINT statement is inside one block; `a` is one scope up (the
	// global scope isn't tracked, so it gets no entry) and `b` is in the
	// current (distance 0) scope.
	block := ast.Children[1]
	printStmt := block.Children[1]
	plus := printStmt.Children[0]
	useA := plus.Children[0]
	useB := plus.Children[1]

	if _, ok := locals[useA.Id]; ok {
		t.Error("Global variable use should not get a distance entry")
	}
	if d, ok := locals[useB.Id]; !ok || d != 0 {
		t.Error("Unexpected distance for local use:", d, ok)
	}
}

func TestDuplicateVarDeclarationIsCompileError(t *testing.T) {
	ast := mustParse(t, `
{
  var a = 1;
  var a = 2;
}
`)

	if _, err := Resolve("ResolverTest", ast); err == nil {
		t.Error("Redeclaring a local in the same scope should be a compile error")
	}
}

func TestSelfReferenceInInitialiserIsCompileError(t *testing.T) {
	ast := mustParse(t, `
{
  var a = a;
}
`)

	if _, err := Resolve("ResolverTest", ast); err == nil {
		t.Error("Using a variable in its own initialiser should be a compile error")
	}
}

func TestReturnOutsideFunctionIsCompileError(t *testing.T) {
	ast := mustParse(t, `return 1;`)

	if _, err := Resolve("ResolverTest", ast); err == nil {
		t.Error("A top-level return should be a compile error")
	}
}

func TestReturnValueFromInitialiserIsCompileError(t *testing.T) {
	ast := mustParse(t, `
class Foo {
  init() {
    return 1;
  }
}
`)

	if _, err := Resolve("ResolverTest", ast); err == nil {
		t.Error("Returning a value from init() should be a compile error")
	}
}

func TestThisOutsideClassIsCompileError(t *testing.T) {
	ast := mustParse(t, `print this;`)

	if _, err := Resolve("ResolverTest", ast); err == nil {
		t.Error("Using 'this' outside a class method should be a compile error")
	}
}

func TestSuperWithoutSuperclassIsCompileError(t *testing.T) {
	ast := mustParse(t, `
class Foo {
  bar() {
    super.bar();
  }
}
`)

	if _, err := Resolve("ResolverTest", ast); err == nil {
		t.Error("Using 'super' in a class with no superclass should be a compile error")
	}
}

func TestClassInheritingFromItselfIsCompileError(t *testing.T) {
	ast := mustParse(t, `class Foo < Foo {}`)

	if _, err := Resolve("ResolverTest", ast); err == nil {
		t.Error("A class inheriting from itself should be a compile error")
	}
}

func TestValidClassWithSuperResolves(t *testing.T) {
	ast := mustParse(t, `
class Animal {
  speak() { print "..."; }
}
class Dog < Animal {
  speak() {
    super.speak();
  }
}
`)

	if _, err := Resolve("ResolverTest", ast); err != nil {
		t.Error("Unexpected error:", err)
	}
}

func TestErrorMessageNamesVariable(t *testing.T) {
	ast := mustParse(t, `
{
  var shadowed = 1;
  var shadowed = 2;
}
`)

	_, err := Resolve("ResolverTest", ast)
	if err == nil || !strings.Contains(err.Error(), "shadowed") {
		t.Error("Expected compile error to name the offending variable:", err)
	}
}

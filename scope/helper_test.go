/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package scope

import (
	"testing"

	"devt.de/krotik/lox/parser"
)

func TestNameFromASTNode(t *testing.T) {
	n, _ := parser.Parse("", "foo;")

	if res := NameFromASTNode(n.Children[0]); res != "block: IDENTIFIER (Line:1 Pos:1)" {
		t.Error("Unexpected result:", res)
		return
	}

	n.Children[0].Token = nil

	if res := NameFromASTNode(n.Children[0]); res != "block: IDENTIFIER" {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestEvalToString(t *testing.T) {
	if res := EvalToString("foo"); res != "foo" {
		t.Error("Unexpected result:", res)
		return
	}
}

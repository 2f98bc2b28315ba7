/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package scope contains the block scope implementation for the Lox tree-walking
interpreter.
*/
package scope

import (
	"fmt"

	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/lox/parser"
)

/*
Default scope names.
*/
const (
	GlobalScope = "GlobalScope"
	FuncPrefix  = "func:"
)

/*
NameFromASTNode returns a scope name from a given ASTNode, used to label a
block's or a function call's scope for debug dumps.
*/
func NameFromASTNode(node *parser.ASTNode) string {
	if node.Token == nil {
		return fmt.Sprintf("block: %v", node.Name)
	}
	return fmt.Sprintf("block: %v (Line:%d Pos:%d)", node.Name, node.Token.Lline, node.Token.Lpos)
}

/*
EvalToString should be used if a value should be converted into a string for
a scope dump (not for `print` or `Stringify`, which follow Lox's own
conversion rules).
*/
func EvalToString(v interface{}) string {
	return stringutil.ConvertToString(v)
}

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

import "fmt"

/*
UnitTestParse parses a given input and returns the resulting AST. Tests
print the result with fmt.Sprint, which renders it through ASTNode.String.
*/
func UnitTestParse(name string, input string) (*ASTNode, error) {
	return Parse(name, input)
}

/*
UnitTestParseWithPPResult parses a given input, checks that pretty printing
the result matches expectedPP and returns the parsed AST.
*/
func UnitTestParseWithPPResult(name string, input string, expectedPP string) (*ASTNode, error) {
	ast, err := Parse(name, input)
	if err != nil {
		return nil, err
	}

	pp, err := PrettyPrint(ast)
	if err != nil {
		return nil, err
	}

	if pp != expectedPP {
		return ast, fmt.Errorf("Unexpected pretty printed result:\n%v\nexpected was:\n%v", pp, expectedPP)
	}

	return ast, nil
}

/*
DummyRuntimeProvider is a RuntimeProvider which attaches a no-op Runtime to
every node, used by tests which only care about the parse tree shape.
*/
type DummyRuntimeProvider struct {
}

func (d *DummyRuntimeProvider) Runtime(node *ASTNode) Runtime {
	return &DummyRuntime{node}
}

/*
DummyRuntime is a Runtime which does nothing.
*/
type DummyRuntime struct {
	node *ASTNode
}

func (rt *DummyRuntime) Validate() error {
	return nil
}

func (rt *DummyRuntime) Eval(vs Scope) (interface{}, error) {
	return nil, nil
}

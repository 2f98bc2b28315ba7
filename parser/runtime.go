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

/*
RuntimeProvider provides runtime components for a parse tree.
*/
type RuntimeProvider interface {

	/*
		Runtime returns a runtime component for a given ASTNode.
	*/
	Runtime(node *ASTNode) Runtime
}

/*
Runtime provides the runtime for an ASTNode.
*/
type Runtime interface {

	/*
		Validate this runtime component and all its child components.
	*/
	Validate() error

	/*
		Eval evaluates this runtime component against a variable scope.
	*/
	Eval(Scope) (interface{}, error)
}

/*
Scope models an environment which stores variable bindings. This Scope only
ever holds flat name -> value bindings; Lox property access on instances is
a distinct AST node (NodeGET/NodeSET), not scope syntax.
*/
type Scope interface {

	/*
		Name returns the name of this scope.
	*/
	Name() string

	/*
		NewChild creates a new child scope.
	*/
	NewChild(name string) Scope

	/*
		Parent returns the parent scope or nil.
	*/
	Parent() Scope

	/*
		Declare introduces a new binding in this scope, shadowing any binding
		of the same name in a parent scope.
	*/
	Declare(varName string, varValue interface{})

	/*
		SetValue assigns to an existing binding for a variable, walking up the
		scope chain to find it. It declares the variable in this scope if no
		existing binding is found.
	*/
	SetValue(varName string, varValue interface{}) error

	/*
		GetValue gets the current value of a variable, walking up the scope
		chain.
	*/
	GetValue(varName string) (interface{}, bool)

	/*
		GetValueAt gets the value of a variable which is known (by the
		resolver) to be declared exactly `distance` scopes above this one.
	*/
	GetValueAt(distance int, varName string) (interface{}, bool)

	/*
		SetValueAt assigns a variable which is known to be declared exactly
		`distance` scopes above this one.
	*/
	SetValueAt(distance int, varName string, varValue interface{}) error

	/*
		String returns a string representation of this scope.
	*/
	String() string
}

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

import (
	"devt.de/krotik/lox/parser"
	"devt.de/krotik/lox/scope"
)

// Program
// =======

/*
programRuntime evaluates the top-level statement list in the global scope.
*/
type programRuntime struct {
	*baseRuntime
}

func programRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &programRuntime{newBaseRuntime(erp, node)}
}

func (rt *programRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	var res interface{}
	var err error

	for _, child := range rt.node.Children {
		if res, err = child.Runtime.Eval(vs); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Block
// =====

/*
blockRuntime evaluates a `{ ... }` statement list in a fresh child scope.
*/
type blockRuntime struct {
	*baseRuntime
}

func blockRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &blockRuntime{newBaseRuntime(erp, node)}
}

func (rt *blockRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	bvs := vs.NewChild(scope.NameFromASTNode(rt.node))

	var res interface{}
	var err error

	for _, child := range rt.node.Children {
		if res, err = child.Runtime.Eval(bvs); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// Print
// =====

/*
printRuntime implements the `print` statement - it writes to the runtime
provider's configured output, not to the diagnostic Logger, since print is a
language feature rather than a host-facing log message.
*/
type printRuntime struct {
	*baseRuntime
}

func printRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &printRuntime{newBaseRuntime(erp, node)}
}

func (rt *printRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	v, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	rt.erp.Printf("%s\n", Stringify(v))

	return nil, nil
}

// If
// ==

type ifRuntime struct {
	*baseRuntime
}

func ifRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &ifRuntime{newBaseRuntime(erp, node)}
}

func (rt *ifRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	cond, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	if isTruthy(cond) {
		return rt.node.Children[1].Runtime.Eval(vs)
	}

	if len(rt.node.Children) == 3 {
		return rt.node.Children[2].Runtime.Eval(vs)
	}

	return nil, nil
}

// While
// =====

type whileRuntime struct {
	*baseRuntime
}

func whileRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &whileRuntime{newBaseRuntime(erp, node)}
}

func (rt *whileRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	for {
		cond, err := rt.node.Children[0].Runtime.Eval(vs)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}

		if _, err := rt.node.Children[1].Runtime.Eval(vs); err != nil {
			return nil, err
		}
	}
}

// For
// ===

/*
forRuntime evaluates a C-style `for`. Children are always [init, cond,
incr, body] - omitted clauses are filled in by the parser with synthetic
NIL/TRUE nodes so this runtime never has to special-case a missing clause.
The whole construct shares one scope, pushed once and popped on every exit
path; a block body still gets its own fresh scope per iteration via
blockRuntime, which is what gives closures created inside the loop body
their own per-iteration binding.
*/
type forRuntime struct {
	*baseRuntime
}

func forRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &forRuntime{newBaseRuntime(erp, node)}
}

func (rt *forRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	fvs := vs.NewChild(scope.NameFromASTNode(rt.node))

	if _, err := rt.node.Children[0].Runtime.Eval(fvs); err != nil {
		return nil, err
	}

	for {
		cond, err := rt.node.Children[1].Runtime.Eval(fvs)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}

		if _, err := rt.node.Children[3].Runtime.Eval(fvs); err != nil {
			return nil, err
		}

		if _, err := rt.node.Children[2].Runtime.Eval(fvs); err != nil {
			return nil, err
		}
	}
}

// Return
// ======

/*
returnSignal is not a real error - it unwinds the Go call stack back to the
enclosing Function.Call, carrying the returned value. Every statement and
block runtime treats it like any other error for propagation purposes; only
Function.Call knows to unwrap it.
*/
type returnSignal struct {
	value interface{}
}

func (r *returnSignal) Error() string {
	return "return outside of a function call"
}

type returnRuntime struct {
	*baseRuntime
}

func returnRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &returnRuntime{newBaseRuntime(erp, node)}
}

func (rt *returnRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	var v interface{}

	if len(rt.node.Children) > 0 {
		var err error
		if v, err = rt.node.Children[0].Runtime.Eval(vs); err != nil {
			return nil, err
		}
	}

	return nil, &returnSignal{v}
}

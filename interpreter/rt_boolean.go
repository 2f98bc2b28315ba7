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
)

// Logical operators - short-circuiting, unlike the arithmetic operators
// =======================================================================

type orRuntime struct {
	*baseRuntime
}

func orRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &orRuntime{newBaseRuntime(erp, node)}
}

func (rt *orRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	left, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}
	if isTruthy(left) {
		return left, nil
	}

	return rt.node.Children[1].Runtime.Eval(vs)
}

type andRuntime struct {
	*baseRuntime
}

func andRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &andRuntime{newBaseRuntime(erp, node)}
}

func (rt *andRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	left, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}
	if !isTruthy(left) {
		return false, nil
	}

	return rt.node.Children[1].Runtime.Eval(vs)
}

// Unary not
// =========

type notRuntime struct {
	*baseRuntime
}

func notRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &notRuntime{newBaseRuntime(erp, node)}
}

func (rt *notRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	v, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	return !isTruthy(v), nil
}

// Equality operators - defined for every type via tag-then-value equality
// ==========================================================================

type equalRuntime struct {
	*baseRuntime
}

func equalRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &equalRuntime{newBaseRuntime(erp, node)}
}

func (rt *equalRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	res1, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}
	res2, err := rt.node.Children[1].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	return isEqual(res1, res2), nil
}

type notequalRuntime struct {
	*baseRuntime
}

func notequalRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &notequalRuntime{newBaseRuntime(erp, node)}
}

func (rt *notequalRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	res1, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}
	res2, err := rt.node.Children[1].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	return !isEqual(res1, res2), nil
}

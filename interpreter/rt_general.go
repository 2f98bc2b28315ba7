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
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/lox/parser"
	"devt.de/krotik/lox/util"
)

// Base Runtime
// ============

/*
baseRuntime models a base runtime component which provides the essential
fields and functions shared by every node kind.
*/
type baseRuntime struct {
	erp       *LoxRuntimeProvider
	node      *parser.ASTNode
	validated bool
}

/*
Validate this node and all its child nodes.
*/
func (rt *baseRuntime) Validate() error {
	rt.validated = true

	for _, child := range rt.node.Children {
		if child.Runtime == nil {
			continue
		}
		if err := child.Runtime.Validate(); err != nil {
			return err
		}
	}

	return nil
}

/*
Eval evaluates this runtime component. Embedders call this first to get the
validation-state assertion, then override with their own behaviour.
*/
func (rt *baseRuntime) Eval(vs parser.Scope) (interface{}, error) {
	errorutil.AssertTrue(rt.validated,
		"Runtime component has not been validated - please call Validate() before Eval()")
	return nil, nil
}

/*
newBaseRuntime returns a new instance of baseRuntime.
*/
func newBaseRuntime(erp *LoxRuntimeProvider, node *parser.ASTNode) *baseRuntime {
	return &baseRuntime{erp, node, false}
}

// Void Runtime
// ============

/*
voidRuntime is a special runtime for constructs which are only ever
evaluated as part of another component (parameter lists, argument lists,
method lists).
*/
type voidRuntime struct {
	*baseRuntime
}

func voidRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &voidRuntime{newBaseRuntime(erp, node)}
}

func (rt *voidRuntime) Eval(vs parser.Scope) (interface{}, error) {
	return rt.baseRuntime.Eval(vs)
}

// Not Implemented Runtime
// =======================

/*
invalidRuntime is a special runtime for constructs the provider has no
mapping for - should not be reachable for a well-formed AST.
*/
type invalidRuntime struct {
	*baseRuntime
}

func invalidRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &invalidRuntime{newBaseRuntime(erp, node)}
}

func (rt *invalidRuntime) Eval(vs parser.Scope) (interface{}, error) {
	_, err := rt.baseRuntime.Eval(vs)
	if err == nil {
		err = rt.erp.NewRuntimeError(util.ErrRuntimeError,
			fmt.Sprintf("Unknown node: %s", rt.node.Name), rt.node)
	}
	return nil, err
}

// General Operator Runtime
// ========================

/*
operatorRuntime is embedded by every arithmetic/comparison/boolean operator
runtime; it supplies the "evaluate both operands, then typecheck" pattern
shared by all of them.
*/
type operatorRuntime struct {
	*baseRuntime
}

/*
numOp evaluates both children and requires both results be numbers.
*/
func (rt *operatorRuntime) numOp(vs parser.Scope, op func(float64, float64) interface{}) (interface{}, error) {
	errorutil.AssertTrue(len(rt.node.Children) == 2, "Operation requires 2 operands")

	res1, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}
	res2, err := rt.node.Children[1].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	res1Num, ok := res1.(float64)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrNotANumber, "", rt.node.Children[0])
	}
	res2Num, ok := res2.(float64)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrNotANumber, "", rt.node.Children[1])
	}

	return op(res1Num, res2Num), nil
}

/*
numUnary evaluates the single child and requires a number result.
*/
func (rt *operatorRuntime) numUnary(vs parser.Scope, op func(float64) interface{}) (interface{}, error) {
	errorutil.AssertTrue(len(rt.node.Children) == 1, "Operation requires 1 operand")

	res, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	resNum, ok := res.(float64)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrNotANumber, "", rt.node.Children[0])
	}

	return op(resNum), nil
}

// Literal Runtimes
// ================

/*
numberValueRuntime is the runtime component for constant numeric values.
The lexeme is parsed once, at Validate time.
*/
type numberValueRuntime struct {
	*baseRuntime
	numValue float64
}

func numberValueRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &numberValueRuntime{newBaseRuntime(erp, node), 0}
}

func (rt *numberValueRuntime) Validate() error {
	err := rt.baseRuntime.Validate()
	if err == nil {
		rt.numValue, err = strconv.ParseFloat(rt.node.Token.Val, 64)
	}
	return err
}

func (rt *numberValueRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numValue, nil
}

/*
stringValueRuntime is the runtime component for constant string values.
*/
type stringValueRuntime struct {
	*baseRuntime
}

func stringValueRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &stringValueRuntime{newBaseRuntime(erp, node)}
}

func (rt *stringValueRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.node.Token.Val, nil
}

/*
trueRuntime, falseRuntime and nilRuntime are the runtime components for the
three keyword literals.
*/
type trueRuntime struct{ *baseRuntime }

func trueRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &trueRuntime{newBaseRuntime(erp, node)}
}

func (rt *trueRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return true, nil
}

type falseRuntime struct{ *baseRuntime }

func falseRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &falseRuntime{newBaseRuntime(erp, node)}
}

func (rt *falseRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return false, nil
}

type nilRuntime struct{ *baseRuntime }

func nilRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &nilRuntime{newBaseRuntime(erp, node)}
}

func (rt *nilRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return nil, nil
}

/*
groupRuntime evaluates a parenthesised expression - the grouping itself
carries no semantics once parsed, it exists only so `(a + b) * c` resolves
the way the bracket-pairing pass intended.
*/
type groupRuntime struct{ *baseRuntime }

func groupRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &groupRuntime{newBaseRuntime(erp, node)}
}

func (rt *groupRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.node.Children[0].Runtime.Eval(vs)
}

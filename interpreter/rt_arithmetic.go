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
	"devt.de/krotik/lox/util"
)

// Plus operator - the only arithmetic operator with a second overload
// =====================================================================

type plusRuntime struct {
	*operatorRuntime
}

func plusRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &plusRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *plusRuntime) Eval(vs parser.Scope) (interface{}, error) {
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

	if n1, ok := res1.(float64); ok {
		if n2, ok := res2.(float64); ok {
			return n1 + n2, nil
		}
		return nil, rt.erp.NewRuntimeError(util.ErrNotANumber, "", rt.node.Children[1])
	}

	if s1, ok := res1.(string); ok {
		if s2, ok := res2.(string); ok {
			return s1 + s2, nil
		}
		return nil, rt.erp.NewRuntimeError(util.ErrNotAString, "", rt.node.Children[1])
	}

	return nil, rt.erp.NewRuntimeError(util.ErrNotANumber,
		"Operands must be two numbers or two strings", rt.node.Children[0])
}

// Remaining arithmetic operators
// ==============================

type minusRuntime struct{ *operatorRuntime }

func minusRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &minusRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *minusRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numOp(vs, func(a, b float64) interface{} { return a - b })
}

type starRuntime struct{ *operatorRuntime }

func starRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &starRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *starRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numOp(vs, func(a, b float64) interface{} { return a * b })
}

type slashRuntime struct{ *operatorRuntime }

func slashRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &slashRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *slashRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numOp(vs, func(a, b float64) interface{} { return a / b })
}

type negateRuntime struct{ *operatorRuntime }

func negateRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &negateRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *negateRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numUnary(vs, func(a float64) interface{} { return -a })
}

// Comparison operators
// =====================

type greaterRuntime struct{ *operatorRuntime }

func greaterRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &greaterRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *greaterRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numOp(vs, func(a, b float64) interface{} { return a > b })
}

type greaterequalRuntime struct{ *operatorRuntime }

func greaterequalRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &greaterequalRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *greaterequalRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numOp(vs, func(a, b float64) interface{} { return a >= b })
}

type lessRuntime struct{ *operatorRuntime }

func lessRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &lessRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *lessRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numOp(vs, func(a, b float64) interface{} { return a < b })
}

type lessequalRuntime struct{ *operatorRuntime }

func lessequalRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &lessequalRuntime{&operatorRuntime{newBaseRuntime(erp, node)}}
}

func (rt *lessequalRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return rt.numOp(vs, func(a, b float64) interface{} { return a <= b })
}

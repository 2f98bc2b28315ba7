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

/*
funDeclRuntime is the runtime component for `fun name(params) { body }`
declarations. A function expression captures a reference to the scope that
was active at declaration time - see Function.Call in value.go for how that
closure is reparented onto a fresh call scope.
*/
type funDeclRuntime struct {
	*baseRuntime
}

func funDeclRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &funDeclRuntime{newBaseRuntime(erp, node)}
}

func (rt *funDeclRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	fn := &Function{
		name:          rt.node.Token.Val,
		declaration:   rt.node,
		declarationVS: vs,
	}

	vs.Declare(fn.name, fn)

	return fn, nil
}

/*
callRuntime evaluates a call expression: the callee, then every argument
left-to-right, then dispatches to whatever util.Callable the callee
produced (a native function, a *Function, or a *Class acting as its own
constructor).
*/
type callRuntime struct {
	*baseRuntime
}

func callRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &callRuntime{newBaseRuntime(erp, node)}
}

func (rt *callRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	callee, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	argNodes := rt.node.Children[1].Children
	args := make([]interface{}, len(argNodes))
	for i, a := range argNodes {
		if args[i], err = a.Runtime.Eval(vs); err != nil {
			return nil, err
		}
	}

	callable, ok := callee.(util.Callable)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrNotCallable, "", rt.node.Children[0])
	}

	if callable.Arity() != len(args) {
		return nil, rt.erp.NewRuntimeError(util.ErrWrongArity, "", rt.node)
	}

	if err := rt.erp.enterCall(rt.node); err != nil {
		return nil, err
	}
	res, err := callable.Call(args)
	rt.erp.exitCall()
	if err != nil {
		if tr, ok := err.(util.TraceableRuntimeError); ok {
			tr.AddTrace(rt.node)
		}
		return nil, err
	}

	return res, nil
}

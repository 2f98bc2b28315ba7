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
getVariable reads a variable by the resolver's distance annotation on use,
falling back to a global lookup (the whole scope chain, up to and including
the global scope, is just one more parent hop away) when the resolver found
no local binding.
*/
func getVariable(erp *LoxRuntimeProvider, vs parser.Scope, node *parser.ASTNode, name string) (interface{}, error) {
	if d, ok := erp.Locals[node.Id]; ok {
		if v, ok := vs.GetValueAt(d, name); ok {
			return v, nil
		}
	} else if v, ok := vs.GetValue(name); ok {
		return v, nil
	}

	return nil, erp.NewRuntimeError(util.ErrVarAccess, name, node)
}

/*
setVariable assigns a variable by the resolver's distance annotation,
erroring rather than implicitly declaring a global when no binding exists.
Scope.SetValue itself auto-declares on a miss, so an unresolved name is
looked up with GetValue before SetValue is called.
*/
func setVariable(erp *LoxRuntimeProvider, vs parser.Scope, node *parser.ASTNode, name string, value interface{}) error {
	if d, ok := erp.Locals[node.Id]; ok {
		return vs.SetValueAt(d, name, value)
	}

	if _, ok := vs.GetValue(name); !ok {
		return erp.NewRuntimeError(util.ErrVarAccess, name, node)
	}

	return vs.SetValue(name, value)
}

/*
identifierRuntime is the runtime component for a variable-use expression.
*/
type identifierRuntime struct {
	*baseRuntime
}

func identifierRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &identifierRuntime{newBaseRuntime(erp, node)}
}

func (rt *identifierRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return getVariable(rt.erp, vs, rt.node, rt.node.Token.Val)
}

/*
assignRuntime is the runtime component for `name = value`. The parser
stores the target name on the ASSIGN node's own token (see ldAssign in
parser.go) and the value expression as its single child.
*/
type assignRuntime struct {
	*baseRuntime
}

func assignRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &assignRuntime{newBaseRuntime(erp, node)}
}

func (rt *assignRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	v, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	if err := setVariable(rt.erp, vs, rt.node, rt.node.Token.Val, v); err != nil {
		return nil, err
	}

	return v, nil
}

/*
varDeclRuntime is the runtime component for `var name [= init];`. Unlike
assignment this always declares in the current scope - the resolver relies
on this to compute distances, and it's also what makes re-declaring a
global variable legal in Lox (shadowing its own earlier self). A duplicate
declaration in a local scope is rejected earlier by the resolver.
*/
type varDeclRuntime struct {
	*baseRuntime
}

func varDeclRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &varDeclRuntime{newBaseRuntime(erp, node)}
}

func (rt *varDeclRuntime) Eval(vs parser.Scope) (interface{}, error) {
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

	vs.Declare(rt.node.Token.Val, v)

	return nil, nil
}

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
classDeclRuntime is the runtime component for `class name [< super] { ... }`.
Evaluating it builds a *Class descriptor; every method closes over a scope
that already has `super` bound (if there is a superclass) so a method body
can resolve a `super.m` use the same way it resolves any other variable.
*/
type classDeclRuntime struct {
	*baseRuntime
}

func classDeclRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &classDeclRuntime{newBaseRuntime(erp, node)}
}

func (rt *classDeclRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	superclassNode := rt.node.Children[0]

	var superclass *Class
	classScope := vs

	if superclassNode.Name != parser.NodeNIL {
		v, err := superclassNode.Runtime.Eval(vs)
		if err != nil {
			return nil, err
		}

		sc, ok := v.(*Class)
		if !ok {
			return nil, rt.erp.NewRuntimeError(util.ErrNotASuperclass, "", superclassNode)
		}

		superclass = sc
		classScope = vs.NewChild("super")
		classScope.Declare("super", superclass)
	}

	methodNodes := rt.node.Children[1].Children
	methods := make(map[string]*Function, len(methodNodes))

	for _, m := range methodNodes {
		name := m.Token.Val
		methods[name] = &Function{
			name:          name,
			declaration:   m,
			declarationVS: classScope,
			isInitializer: name == "init",
		}
	}

	class := &Class{
		name:       rt.node.Token.Val,
		superclass: superclass,
		methods:    methods,
	}

	vs.Declare(class.name, class)

	return class, nil
}

/*
getRuntime evaluates `e.p` - the only container over a property is an
Instance; anything else is a runtime error.
*/
type getRuntime struct {
	*baseRuntime
}

func getRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &getRuntime{newBaseRuntime(erp, node)}
}

func (rt *getRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	obj, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	inst, ok := obj.(*Instance)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrNotAnInstance, "", rt.node)
	}

	v, ok := inst.Get(rt.node.Token.Val)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrUndefinedProp, rt.node.Token.Val, rt.node)
	}

	return v, nil
}

/*
setRuntime evaluates `e.p = v`.
*/
type setRuntime struct {
	*baseRuntime
}

func setRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &setRuntime{newBaseRuntime(erp, node)}
}

func (rt *setRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	obj, err := rt.node.Children[0].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	inst, ok := obj.(*Instance)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrNotAnInstance, "", rt.node)
	}

	val, err := rt.node.Children[1].Runtime.Eval(vs)
	if err != nil {
		return nil, err
	}

	inst.Set(rt.node.Token.Val, val)

	return val, nil
}

/*
thisRuntime resolves the pseudo-variable `this` exactly like any other
local - the resolver records a scope distance for it the same way.
*/
type thisRuntime struct {
	*baseRuntime
}

func thisRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &thisRuntime{newBaseRuntime(erp, node)}
}

func (rt *thisRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}
	return getVariable(rt.erp, vs, rt.node, "this")
}

/*
superRuntime resolves `super.m`: `super` itself is looked up as a normal
resolved local (it was bound to the superclass *Class when the subclass was
declared), the method is found on that class's chain, then bound to the
instance currently held by `this`.
*/
type superRuntime struct {
	*baseRuntime
}

func superRuntimeInst(erp *LoxRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &superRuntime{newBaseRuntime(erp, node)}
}

func (rt *superRuntime) Eval(vs parser.Scope) (interface{}, error) {
	if _, err := rt.baseRuntime.Eval(vs); err != nil {
		return nil, err
	}

	superVal, err := getVariable(rt.erp, vs, rt.node, "super")
	if err != nil {
		return nil, err
	}

	superclass, ok := superVal.(*Class)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrNotASuperclass, "", rt.node)
	}

	methodName := rt.node.Children[0].Token.Val

	method, ok := superclass.findMethod(methodName)
	if !ok {
		return nil, rt.erp.NewRuntimeError(util.ErrUndefinedProp, methodName, rt.node)
	}

	thisVal, _ := vs.GetValue("this")
	inst, _ := thisVal.(*Instance)

	return method.bind(inst), nil
}

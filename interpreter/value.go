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
	"strings"

	"devt.de/krotik/common/sortutil"
	"devt.de/krotik/lox/parser"
	"devt.de/krotik/lox/scope"
)

/*
Function is a user-defined Lox function or method. It carries the
declaration AST and the scope it closed over at definition time. Lox
resolves `super` as an ordinary lexical binding rather than a dedicated
field (see rt_class.go).
*/
type Function struct {
	name          string
	declaration   *parser.ASTNode // NodeFUNDECL
	declarationVS parser.Scope    // captured closure scope
	isInitializer bool
}

/*
Arity returns the number of declared parameters.
*/
func (f *Function) Arity() int {
	return len(f.declaration.Children[0].Children)
}

/*
Call runs the function body in a fresh scope reparented onto the closure it
captured, binding each parameter to its argument.
*/
func (f *Function) Call(args []interface{}) (interface{}, error) {
	params := f.declaration.Children[0].Children
	body := f.declaration.Children[1]

	fvs := f.declarationVS.NewChild(scope.FuncPrefix + f.name)

	for i, p := range params {
		var val interface{}
		if i < len(args) {
			val = args[i]
		}
		fvs.Declare(p.Token.Val, val)
	}

	var res interface{}
	var err error

	for _, stmt := range body.Children {
		if res, err = stmt.Runtime.Eval(fvs); err != nil {
			break
		}
	}

	if rs, ok := err.(*returnSignal); ok {
		res, err = rs.value, nil
	}

	if err == nil && f.isInitializer {
		res, _ = f.declarationVS.GetValue("this")
	}

	return res, err
}

/*
String returns a human readable representation, used by `print`.
*/
func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.name)
}

/*
bind returns a copy of this function whose closure adds a `this` binding for
the given instance - used both when an instance is constructed (own methods)
and when a `super.m` lookup reaches across to an ancestor's method.
*/
func (f *Function) bind(instance *Instance) *Function {
	s := f.declarationVS.NewChild("this")
	s.Declare("this", instance)
	return &Function{f.name, f.declaration, s, f.isInitializer}
}

/*
Class is a Lox class descriptor: a name, an optional superclass and its own
(unbound) methods. Constructing an instance of a Class is a call expression
whose callee evaluates to a *Class.
*/
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
}

/*
findMethod looks up a method by name on this class, then its superclass
chain - the recursive half of "search self then super" from the Get rule.
*/
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

/*
Arity is the arity of the class's `init` method, or 0 if it has none.
*/
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

/*
Call constructs a new instance, running `init` (if the class defines one)
with the given arguments.
*/
func (c *Class) Call(args []interface{}) (interface{}, error) {
	inst := &Instance{class: c, fields: make(map[string]interface{})}

	if init, ok := c.findMethod("init"); ok {
		if _, err := init.bind(inst).Call(args); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

/*
String returns a human readable representation, used by `print`.
*/
func (c *Class) String() string {
	return c.name
}

/*
Instance is a runtime object created by calling a Class. Field assignment
always lands in its own property map, so assigning over a method name
simply shadows it for that instance - the Get rule checks fields first.
*/
type Instance struct {
	class  *Class
	fields map[string]interface{}
}

/*
Get returns a property: an own field if set, else a method from the class
chain bound to this instance.
*/
func (i *Instance) Get(name string) (interface{}, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m, ok := i.class.findMethod(name); ok {
		return m.bind(i), true
	}
	return nil, false
}

/*
Set assigns an instance field.
*/
func (i *Instance) Set(name string, value interface{}) {
	i.fields[name] = value
}

/*
String returns a human readable representation, used by `print`.
*/
func (i *Instance) String() string {
	return fmt.Sprintf("%s instance", i.class.name)
}

/*
Debug returns a deterministic dump of this instance's own fields, one
`name = value` pair per line sorted by field name - used by the `debug`
native so repeated runs of the same program produce byte-identical output
regardless of Go's randomized map iteration order.
*/
func (i *Instance) Debug() string {
	keys := make([]interface{}, 0, len(i.fields))
	for k := range i.fields {
		keys = append(keys, k)
	}
	sortutil.InterfaceStrings(keys)

	var b strings.Builder
	b.WriteString(i.class.name)
	b.WriteString(" instance {\n")
	for _, k := range keys {
		name := k.(string)
		fmt.Fprintf(&b, "  %s = %s\n", name, Stringify(i.fields[name]))
	}
	b.WriteString("}")

	return b.String()
}

/*
isTruthy implements Lox's truthiness rule: everything is truthy except
`false` and `nil`.
*/
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

/*
isEqual implements tag-then-value equality: operands of different dynamic
types are never equal, except that `nil == nil` holds.
*/
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	if an, ok := a.(float64); ok {
		bn, ok := b.(float64)
		return ok && an == bn
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}

	return a == b
}

/*
Stringify formats a value the way `print` and the `debug` native do.
Numbers use the shortest round-tripping decimal form, with no trailing
".0" for integral values.
*/
func Stringify(v interface{}) string {
	if v == nil {
		return "nil"
	}

	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return t.String()
	}

	return fmt.Sprint(v)
}

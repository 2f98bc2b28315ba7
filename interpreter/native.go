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
	"time"

	"devt.de/krotik/lox/parser"
	"devt.de/krotik/lox/util"
)

/*
nativeFunc adapts a plain Go function to util.Callable so it can be
declared into the global scope alongside user-defined functions and
classes.
*/
type nativeFunc struct {
	name  string
	arity int
	fn    func(args []interface{}) (interface{}, error)
}

func (n *nativeFunc) Arity() int {
	return n.arity
}

func (n *nativeFunc) Call(args []interface{}) (interface{}, error) {
	return n.fn(args)
}

func (n *nativeFunc) String() string {
	return "<native fn " + n.name + ">"
}

/*
clock implements the `clock()` native function: seconds since the Unix
epoch, as a float so it composes with every other Lox number operation.
*/
var clock = &nativeFunc{
	name:  "clock",
	arity: 0,
	fn: func(args []interface{}) (interface{}, error) {
		return float64(time.Now().UnixNano()) / 1e9, nil
	},
}

/*
debug implements the `debug(value)` native function: a sorted, deterministic
field dump for a class instance, or the plain Stringify otherwise.
*/
var debug = &nativeFunc{
	name:  "debug",
	arity: 1,
	fn: func(args []interface{}) (interface{}, error) {
		if len(args) == 1 {
			if inst, ok := args[0].(*Instance); ok {
				return inst.Debug(), nil
			}
		}
		var v interface{}
		if len(args) == 1 {
			v = args[0]
		}
		return Stringify(v), nil
	},
}

/*
DeclareGlobals declares every native function into the given (global) scope.
*/
func DeclareGlobals(vs parser.Scope) {
	vs.Declare("clock", clock)
	vs.Declare("debug", debug)
}

var _ util.Callable = clock
var _ util.Callable = debug

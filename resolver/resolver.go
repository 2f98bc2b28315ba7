/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package resolver implements the static analysis pass which runs between
parsing and evaluation: it annotates every variable-use node with the
lexical distance to its declaring scope, and rejects a handful of
structurally illegal programs (self-reference in an initialiser,
duplicate bindings, `return`/`this`/`super` outside their legal context,
a class inheriting from itself) before the evaluator ever runs.

Variable names are otherwise resolved dynamically by walking the live
scope chain at every evaluation; this package is a depth-first
`*parser.ASTNode` walker in that same idiom (methods on a struct, `error`
returns, no generics), grounded on `lox-interpreter/src/resolver.rs`'s
`Vec<HashMap<Ident,bool>>` scope stack and its declare/define/resolve_local
discipline.
*/
package resolver

import (
	"fmt"

	"devt.de/krotik/lox/parser"
	"devt.de/krotik/lox/util"
)

/*
Resolver walks an AST and records, for every variable-use node, how many
scopes up the chain its binding lives.
*/
type Resolver struct {
	source string

	/*
		Locals maps a variable-use node's id to the number of scopes between
		that use and the scope which declares it. A use missing from this map
		is a reference to a global.
	*/
	Locals map[uint64]int

	scopes []map[string]bool

	withinFunction    bool
	withinInitializer bool
	inClass           bool
	classHasSuper     bool
}

/*
Resolve runs the resolver over a parsed program and returns the
node-id-to-scope-distance table the evaluator needs.
*/
func Resolve(source string, program *parser.ASTNode) (map[uint64]int, error) {
	r := &Resolver{source: source, Locals: make(map[uint64]int)}

	if err := r.resolve(program); err != nil {
		return nil, err
	}

	return r.Locals, nil
}

func (r *Resolver) compileError(detail string, node *parser.ASTNode) error {
	return util.NewCompileError(r.source, detail, node)
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

/*
declare inserts a name into the top scope as not-yet-defined. A duplicate
binding within the same scope is a compile error; the global scope (the
empty stack) tracks nothing, so redeclaring a global is always legal.
*/
func (r *Resolver) declare(name string, node *parser.ASTNode) error {
	if len(r.scopes) == 0 {
		return nil
	}

	top := r.scopes[len(r.scopes)-1]

	if _, exists := top[name]; exists {
		return r.compileError(fmt.Sprintf("Already a variable named %q in this scope", name), node)
	}

	top[name] = false
	return nil
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

/*
declareDefine declares and defines a synthetic binding (`this`, `super`)
which can never collide, skipping the duplicate check.
*/
func (r *Resolver) declareDefine(name string) {
	r.scopes[len(r.scopes)-1][name] = true
}

/*
resolveLocal scans the scope stack from the top down for name, and on a
hit records the distance for node. A hit in state "declared but not
defined" means the use appears in its own initialiser.
*/
func (r *Resolver) resolveLocal(node *parser.ASTNode, name string) error {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		defined, ok := r.scopes[i][name]
		if !ok {
			continue
		}

		if !defined {
			return r.compileError(
				fmt.Sprintf("Cannot read local variable %q in its own initialiser", name), node)
		}

		r.Locals[node.Id] = len(r.scopes) - 1 - i
		return nil
	}

	// Not found in any tracked scope: assumed global, no entry recorded.
	return nil
}

/*
resolve is the single dispatch point for both statements and expressions -
this tree has no separate statement/expression type, so one recursive
walker covers both, falling through to "resolve every child" for the
plain operator nodes that need no special scoping behaviour.
*/
func (r *Resolver) resolve(node *parser.ASTNode) error {
	if node == nil {
		return nil
	}

	switch node.Name {

	case parser.NodePROGRAM:
		return r.resolveChildren(node)

	case parser.NodeBLOCK:
		r.beginScope()
		err := r.resolveChildren(node)
		r.endScope()
		return err

	case parser.NodeVARDECL:
		if err := r.declare(node.Token.Val, node); err != nil {
			return err
		}
		if len(node.Children) > 0 {
			if err := r.resolve(node.Children[0]); err != nil {
				return err
			}
		}
		r.define(node.Token.Val)
		return nil

	case parser.NodeIDENTIFIER:
		return r.resolveLocal(node, node.Token.Val)

	case parser.NodeASSIGN:
		if err := r.resolve(node.Children[0]); err != nil {
			return err
		}
		return r.resolveLocal(node, node.Token.Val)

	case parser.NodeTHIS:
		if !r.inClass {
			return r.compileError("Can't use 'this' outside of a class method", node)
		}
		return r.resolveLocal(node, "this")

	case parser.NodeSUPER:
		if !r.inClass {
			return r.compileError("Can't use 'super' outside of a class method", node)
		}
		if !r.classHasSuper {
			return r.compileError("Can't use 'super' in a class with no superclass", node)
		}
		return r.resolveLocal(node, "super")

	case parser.NodeFUNDECL:
		if err := r.declare(node.Token.Val, node); err != nil {
			return err
		}
		r.define(node.Token.Val)
		return r.resolveFunction(node, false)

	case parser.NodeCLASSDECL:
		return r.resolveClass(node)

	case parser.NodeIF:
		if err := r.resolve(node.Children[0]); err != nil {
			return err
		}
		if err := r.resolve(node.Children[1]); err != nil {
			return err
		}
		if len(node.Children) == 3 {
			return r.resolve(node.Children[2])
		}
		return nil

	case parser.NodeWHILE:
		if err := r.resolve(node.Children[0]); err != nil {
			return err
		}
		return r.resolve(node.Children[1])

	case parser.NodeFOR:
		r.beginScope()
		err := r.resolveChildren(node)
		r.endScope()
		return err

	case parser.NodeRETURN:
		if !r.withinFunction {
			return r.compileError("Can't return from top-level code", node)
		}
		if len(node.Children) > 0 {
			if r.withinInitializer {
				return r.compileError("Can't return a value from an initialiser", node)
			}
			return r.resolve(node.Children[0])
		}
		return nil

	default:

		// Literals (NUMBER, STRING, TRUE, FALSE, NIL), operators (NEGATE,
		// NOT, PLUS, MINUS, STAR, SLASH, EQ, NEQ, GT, GEQ, LT, LEQ, AND, OR),
		// GROUP, PRINT, GET, SET, CALL, ARGS, PARAMS and METHODS all just
		// need their children resolved in order.

		return r.resolveChildren(node)
	}
}

func (r *Resolver) resolveChildren(node *parser.ASTNode) error {
	for _, c := range node.Children {
		if err := r.resolve(c); err != nil {
			return err
		}
	}
	return nil
}

/*
resolveFunction resolves a function's parameter list and body in a single
scope (the function scope doubles as the parameter scope, per the
traversal rule that the body does not get its own nested scope on top of
the parameters). Used for both `fun` declarations and class methods -
methods reach this directly from resolveClass without going through the
NodeFUNDECL case, since a method's name is not itself a variable binding.
*/
func (r *Resolver) resolveFunction(fn *parser.ASTNode, isInitializer bool) error {
	enclosingFunction := r.withinFunction
	enclosingInitializer := r.withinInitializer

	r.withinFunction = true
	r.withinInitializer = isInitializer

	restore := func() {
		r.withinFunction = enclosingFunction
		r.withinInitializer = enclosingInitializer
	}

	r.beginScope()

	params := fn.Children[0]
	for _, p := range params.Children {
		if err := r.declare(p.Token.Val, p); err != nil {
			r.endScope()
			restore()
			return err
		}
		r.define(p.Token.Val)
	}

	body := fn.Children[1]
	for _, stmt := range body.Children {
		if err := r.resolve(stmt); err != nil {
			r.endScope()
			restore()
			return err
		}
	}

	r.endScope()
	restore()

	return nil
}

/*
resolveClass declares the class name, resolves its superclass reference
(if any) as a variable use, then walks its methods in a scope that
pre-declares `this` (and `super`, if there is a superclass).
*/
func (r *Resolver) resolveClass(node *parser.ASTNode) error {
	className := node.Token.Val

	if err := r.declare(className, node); err != nil {
		return err
	}
	r.define(className)

	superclassNode := node.Children[0]
	hasSuper := superclassNode.Name != parser.NodeNIL

	if hasSuper {
		if superclassNode.Token.Val == className {
			return r.compileError("A class can't inherit from itself", node)
		}
		if err := r.resolveLocal(superclassNode, superclassNode.Token.Val); err != nil {
			return err
		}
	}

	enclosingClass := r.inClass
	enclosingHasSuper := r.classHasSuper
	r.inClass = true
	r.classHasSuper = hasSuper

	restore := func() {
		r.inClass = enclosingClass
		r.classHasSuper = enclosingHasSuper
	}

	if hasSuper {
		r.beginScope()
		r.declareDefine("super")
	}

	r.beginScope()
	r.declareDefine("this")

	methods := node.Children[1]
	for _, m := range methods.Children {
		isInit := m.Token.Val == "init"
		if err := r.resolveFunction(m, isInit); err != nil {
			r.endScope()
			if hasSuper {
				r.endScope()
			}
			restore()
			return err
		}
	}

	r.endScope()
	if hasSuper {
		r.endScope()
	}
	restore()

	return nil
}

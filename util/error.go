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
Package util contains utility definitions and functions for the Lox
tree-walking interpreter.
*/
package util

import (
	"errors"
	"fmt"

	"devt.de/krotik/lox/parser"
)

/*
The error kinds of the interpreter's pipeline stages are kept distinct so a
host can map them to the right exit code (syntax/compile -> 65, runtime ->
70).
*/

/*
SyntaxError is a syntax error with a source position. The lexer, the token
tree builder and the parser do not return this type: they report syntax
errors as *parser.ParseError.
*/
type SyntaxError struct {
	Source string // Name of the source which was given to the parser
	Detail string // Details of this error
	Line   int    // Line of the error
	Pos    int    // Position of the error
}

/*
NewSyntaxError creates a new SyntaxError.
*/
func NewSyntaxError(source string, detail string, line int, pos int) error {
	return &SyntaxError{source, detail, line, pos}
}

func (se *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error in %s: %v (Line:%d Pos:%d)", se.Source, se.Detail, se.Line, se.Pos)
}

/*
CompileError is raised by the resolver.
*/
type CompileError struct {
	Source string          // Name of the source which was given to the parser
	Detail string          // Details of this error
	Node   *parser.ASTNode // AST node where the error occurred
	Line   int             // Line of the error
	Pos    int             // Position of the error
}

/*
NewCompileError creates a new CompileError object for a given AST node.
*/
func NewCompileError(source string, detail string, node *parser.ASTNode) error {
	if node != nil && node.Token != nil {
		return &CompileError{source, detail, node, node.Token.Lline, node.Token.Lpos}
	}
	return &CompileError{source, detail, node, 0, 0}
}

func (ce *CompileError) Error() string {
	ret := fmt.Sprintf("Compile error in %s: %v", ce.Source, ce.Detail)
	if ce.Line != 0 {
		ret = fmt.Sprintf("%s (Line:%d Pos:%d)", ret, ce.Line, ce.Pos)
	}
	return ret
}

/*
TraceableRuntimeError can record and show a stack trace.
*/
type TraceableRuntimeError interface {
	error

	/*
		AddTrace adds a trace step.
	*/
	AddTrace(*parser.ASTNode)

	/*
		GetTrace returns the current stacktrace.
	*/
	GetTrace() []*parser.ASTNode

	/*
		GetTraceString returns the current stacktrace as a string.
	*/
	GetTraceString() []string
}

/*
RuntimeError is raised by the evaluator.
*/
type RuntimeError struct {
	Source string            // Name of the source which was given to the parser
	Type   error              // Error type (to be used for equal checks)
	Detail string             // Details of this error
	Node   *parser.ASTNode    // AST node where the error occurred
	Line   int                // Line of the error
	Pos    int                // Position of the error
	Trace  []*parser.ASTNode  // Stacktrace
}

/*
Runtime related error types.
*/
var (
	ErrRuntimeError    = errors.New("Runtime error")
	ErrVarAccess       = errors.New("Undefined variable")
	ErrNotANumber      = errors.New("Operand must be a number")
	ErrNotAString      = errors.New("Operand must be a string")
	ErrNotCallable     = errors.New("Can only call functions and classes")
	ErrWrongArity      = errors.New("Wrong number of arguments")
	ErrNotAnInstance   = errors.New("Only instances have properties")
	ErrUndefinedProp   = errors.New("Undefined property")
	ErrNotASuperclass  = errors.New("Superclass must be a class")
	ErrStackOverflow   = errors.New("Call stack exceeded")

	/*
		ErrReturn is not a real error. It unwinds the call stack back to
		the enclosing function call, carrying the returned value.
	*/
	ErrReturn = errors.New("*** return ***")
)

/*
NewRuntimeError creates a new RuntimeError object.
*/
func NewRuntimeError(source string, t error, d string, node *parser.ASTNode) error {
	if node != nil && node.Token != nil {
		return &RuntimeError{source, t, d, node, node.Token.Lline, node.Token.Lpos, nil}
	}
	return &RuntimeError{source, t, d, node, 0, 0, nil}
}

/*
Error returns a human-readable string representation of this error.
*/
func (re *RuntimeError) Error() string {
	ret := fmt.Sprintf("Runtime error in %s: %v (%v)", re.Source, re.Type, re.Detail)

	if re.Line != 0 {
		ret = fmt.Sprintf("%s (Line:%d Pos:%d)", ret, re.Line, re.Pos)
	}

	return ret
}

/*
AddTrace adds a trace step.
*/
func (re *RuntimeError) AddTrace(n *parser.ASTNode) {
	re.Trace = append(re.Trace, n)
}

/*
GetTrace returns the current stacktrace.
*/
func (re *RuntimeError) GetTrace() []*parser.ASTNode {
	return re.Trace
}

/*
GetTraceString returns the current stacktrace as a string.
*/
func (re *RuntimeError) GetTraceString() []string {
	var res []string
	for _, t := range re.GetTrace() {
		pp, _ := parser.PrettyPrint(t)
		line := 0
		if t.Token != nil {
			line = t.Token.Lline
		}
		res = append(res, fmt.Sprintf("%v (line %v)", pp, line))
	}
	return res
}

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
	"io"
	"os"

	"devt.de/krotik/lox/config"
	"devt.de/krotik/lox/parser"
	"devt.de/krotik/lox/util"
)

/*
loxRuntimeNew is used to instantiate Lox runtime components.
*/
type loxRuntimeNew func(*LoxRuntimeProvider, *parser.ASTNode) parser.Runtime

/*
providerMap contains the mapping of AST nodes to runtime components.
*/
var providerMap = map[string]loxRuntimeNew{

	parser.NodeEOF: invalidRuntimeInst,

	// Literals

	parser.NodeSTRING:     stringValueRuntimeInst,
	parser.NodeNUMBER:     numberValueRuntimeInst,
	parser.NodeIDENTIFIER: identifierRuntimeInst,
	parser.NodeTRUE:       trueRuntimeInst,
	parser.NodeFALSE:      falseRuntimeInst,
	parser.NodeNIL:        nilRuntimeInst,
	parser.NodeTHIS:       thisRuntimeInst,
	parser.NodeSUPER:      superRuntimeInst,

	// Structural

	parser.NodePROGRAM: programRuntimeInst,
	parser.NodeBLOCK:    blockRuntimeInst,
	parser.NodePARAMS:   voidRuntimeInst,
	parser.NodeARGS:     voidRuntimeInst,
	parser.NodeMETHODS:  voidRuntimeInst,
	parser.NodeGROUP:    groupRuntimeInst,

	// Declarations

	parser.NodeVARDECL:   varDeclRuntimeInst,
	parser.NodeFUNDECL:   funDeclRuntimeInst,
	parser.NodeCLASSDECL: classDeclRuntimeInst,

	// Calls and properties

	parser.NodeCALL: callRuntimeInst,
	parser.NodeGET:  getRuntimeInst,
	parser.NodeSET:  setRuntimeInst,

	// Arithmetic operators

	parser.NodePLUS:   plusRuntimeInst,
	parser.NodeMINUS:  minusRuntimeInst,
	parser.NodeSTAR:   starRuntimeInst,
	parser.NodeSLASH:  slashRuntimeInst,
	parser.NodeNEGATE: negateRuntimeInst,

	// Comparison operators

	parser.NodeGT:  greaterRuntimeInst,
	parser.NodeGEQ: greaterequalRuntimeInst,
	parser.NodeLT:  lessRuntimeInst,
	parser.NodeLEQ: lessequalRuntimeInst,
	parser.NodeEQ:  equalRuntimeInst,
	parser.NodeNEQ: notequalRuntimeInst,

	// Boolean operators

	parser.NodeAND: andRuntimeInst,
	parser.NodeOR:  orRuntimeInst,
	parser.NodeNOT: notRuntimeInst,

	// Assignment

	parser.NodeASSIGN: assignRuntimeInst,

	// Statements

	parser.NodePRINT:  printRuntimeInst,
	parser.NodeIF:     ifRuntimeInst,
	parser.NodeWHILE:  whileRuntimeInst,
	parser.NodeFOR:    forRuntimeInst,
	parser.NodeRETURN: returnRuntimeInst,
}

/*
LoxRuntimeProvider is the factory object producing runtime objects for Lox
ASTs. It also carries the resolver's scope-distance annotations and the
stdout sink `print` writes to.
*/
type LoxRuntimeProvider struct {
	Name         string         // Name to identify the input, used in error messages
	Locals       map[uint64]int // Scope distance per resolved AST node, see resolver.Resolve
	Logger       util.Logger    // Logger object for host-facing diagnostic messages
	Out          io.Writer      // Destination for `print` statements
	maxCallDepth int            // Guard against Go stack overflow from deep Lox recursion
	callDepth    int
}

/*
NewLoxRuntimeProvider returns a new instance of a Lox runtime provider.
*/
func NewLoxRuntimeProvider(name string, locals map[uint64]int, logger util.Logger, out io.Writer) *LoxRuntimeProvider {

	if logger == nil {
		logger = util.NewMemoryLogger(100)
	}

	if out == nil {
		out = os.Stdout
	}

	return &LoxRuntimeProvider{
		Name:         name,
		Locals:       locals,
		Logger:       logger,
		Out:          out,
		maxCallDepth: config.Int(config.MaxCallDepth),
	}
}

/*
Runtime returns a runtime component for a given ASTNode.
*/
func (erp *LoxRuntimeProvider) Runtime(node *parser.ASTNode) parser.Runtime {

	if instFunc, ok := providerMap[node.Name]; ok {
		return instFunc(erp, node)
	}

	return invalidRuntimeInst(erp, node)
}

/*
NewRuntimeError creates a new RuntimeError object.
*/
func (erp *LoxRuntimeProvider) NewRuntimeError(t error, d string, node *parser.ASTNode) error {
	return util.NewRuntimeError(erp.Name, t, d, node)
}

/*
Printf writes a `print` statement's output to the configured sink.
*/
func (erp *LoxRuntimeProvider) Printf(format string, args ...interface{}) {
	fmt.Fprintf(erp.Out, format, args...)
}

/*
enterCall increments the active call depth, rejecting the call outright
once MaxCallDepth is exceeded so a runaway recursive Lox function fails
with a runtime error instead of crashing the host process with a Go stack
overflow.
*/
func (erp *LoxRuntimeProvider) enterCall(node *parser.ASTNode) error {
	erp.callDepth++
	if erp.callDepth > erp.maxCallDepth {
		erp.callDepth--
		return erp.NewRuntimeError(util.ErrStackOverflow, "", node)
	}
	return nil
}

/*
exitCall decrements the active call depth on the way back out, whether the
call succeeded or failed.
*/
func (erp *LoxRuntimeProvider) exitCall() {
	erp.callDepth--
}

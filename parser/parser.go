/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"fmt"
)

/*
ParseError is a syntax error raised by the lexer, the token tree builder or
the parser. The host maps this to exit code 65.
*/
type ParseError struct {
	Source string
	Detail string
	Line   int
	Pos    int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lox syntax error in %s: %v (Line:%d Pos:%d)", e.Source, e.Detail, e.Line, e.Pos)
}

func (p *parser) newParserError(detail string, tok LexToken) error {
	return &ParseError{p.name, detail, tok.Lline, tok.Lpos}
}

/*
Map of AST nodes corresponding to lexer tokens. The map determines how a
given sequence of lexer tokens are organized into an AST - each entry's
nullDenotation and leftDenotation functions form a Pratt dispatch table
keyed by token kind.
*/
var astNodeMap map[LexTokenID]*ASTNode

func init() {
	astNodeMap = map[LexTokenID]*ASTNode{
		TokenEOF: {Name: NodeEOF, nullDenotation: ndTerm},

		// Value tokens

		TokenSTRING:     {Name: NodeSTRING, nullDenotation: ndTerm},
		TokenNUMBER:     {Name: NodeNUMBER, nullDenotation: ndTerm},
		TokenIDENTIFIER: {Name: NodeIDENTIFIER, nullDenotation: ndTerm},

		// Constant terminals

		TokenTRUE:  {Name: NodeTRUE, nullDenotation: ndTerm},
		TokenFALSE: {Name: NodeFALSE, nullDenotation: ndTerm},
		TokenNIL:   {Name: NodeNIL, nullDenotation: ndTerm},
		TokenTHIS:  {Name: NodeTHIS, nullDenotation: ndTerm},
		TokenSUPER: {Name: NodeSUPER, nullDenotation: ndSuper},

		// Constructed tokens

		TokenPROGRAM:   {Name: NodePROGRAM},
		TokenBLOCK:     {Name: NodeBLOCK},
		TokenPARAMS:    {Name: NodePARAMS},
		TokenARGS:      {Name: NodeARGS},
		TokenCALL:      {Name: NodeCALL},
		TokenGET:       {Name: NodeGET},
		TokenSET:       {Name: NodeSET},
		TokenGROUP:     {Name: NodeGROUP},
		TokenVARDECL:   {Name: NodeVARDECL},
		TokenFUNDECL:   {Name: NodeFUNDECL},
		TokenCLASSDECL: {Name: NodeCLASSDECL},
		TokenMETHODS:   {Name: NodeMETHODS},

		// Grouping symbols

		TokenLPAREN: {Name: NodeGROUP, binding: 80, nullDenotation: ndGroup, leftDenotation: ldCall},
		TokenRPAREN: {},
		TokenLBRACE: {Name: NodeBLOCK, nullDenotation: ndBlock},
		TokenRBRACE: {},

		// Separators

		TokenDOT:       {Name: NodeGET, binding: 80, leftDenotation: ldGet},
		TokenCOMMA:     {},
		TokenSEMICOLON: {},

		// Arithmetic operators

		TokenMINUS: {Name: NodeMINUS, binding: 60, nullDenotation: ndNegate, leftDenotation: ldInfixL(NodeMINUS)},
		TokenPLUS:  {Name: NodePLUS, binding: 60, leftDenotation: ldInfixL(NodePLUS)},
		TokenSTAR:  {Name: NodeSTAR, binding: 70, leftDenotation: ldInfixL(NodeSTAR)},
		TokenSLASH: {Name: NodeSLASH, binding: 70, leftDenotation: ldInfixL(NodeSLASH)},
		TokenBANG:  {Name: NodeNOT, nullDenotation: ndNot},

		// Comparison operators

		TokenEQUALEQUAL:   {Name: NodeEQ, binding: 40, leftDenotation: ldInfixL(NodeEQ)},
		TokenBANGEQUAL:    {Name: NodeNEQ, binding: 40, leftDenotation: ldInfixL(NodeNEQ)},
		TokenGREATER:      {Name: NodeGT, binding: 50, leftDenotation: ldInfixL(NodeGT)},
		TokenGREATEREQUAL: {Name: NodeGEQ, binding: 50, leftDenotation: ldInfixL(NodeGEQ)},
		TokenLESS:         {Name: NodeLT, binding: 50, leftDenotation: ldInfixL(NodeLT)},
		TokenLESSEQUAL:    {Name: NodeLEQ, binding: 50, leftDenotation: ldInfixL(NodeLEQ)},

		// Boolean operators

		TokenAND: {Name: NodeAND, binding: 30, leftDenotation: ldInfixL(NodeAND)},
		TokenOR:  {Name: NodeOR, binding: 20, leftDenotation: ldInfixL(NodeOR)},

		// Assignment

		TokenEQUAL: {Name: NodeASSIGN, binding: 10, leftDenotation: ldAssign},

		// Declarations and statements

		TokenVAR:    {Name: NodeVARDECL, nullDenotation: ndVarDecl},
		TokenFUN:    {Name: NodeFUNDECL, nullDenotation: ndFunDecl},
		TokenCLASS:  {Name: NodeCLASSDECL, nullDenotation: ndClassDecl},
		TokenPRINT:  {Name: NodePRINT, nullDenotation: ndPrint},
		TokenIF:     {Name: NodeIF, nullDenotation: ndIf},
		TokenWHILE:  {Name: NodeWHILE, nullDenotation: ndWhile},
		TokenFOR:    {Name: NodeFOR, nullDenotation: ndFor},
		TokenRETURN: {Name: NodeRETURN, nullDenotation: ndReturn},

		TokenELSE: {},
	}
}

// Parser
// ======

/*
parser data structure.
*/
type parser struct {
	name   string          // Name to identify the input
	node   *ASTNode        // Current ast node
	tokens *Cursor         // Bounded-lookahead cursor over a bracket-validated token stream
	rp     RuntimeProvider // Runtime provider which creates runtime components
}

/*
Parse parses a given input string and returns an AST.
*/
func Parse(name string, input string) (*ASTNode, error) {
	return ParseWithRuntime(name, input, nil)
}

/*
ParseWithRuntime parses a given input string and returns an AST decorated
with runtime components. The pipeline is: lex -> build+validate a
bracket-paired token tree -> flatten into a cursor -> Pratt-parse a
sequence of declarations.
*/
func ParseWithRuntime(name string, input string, rp RuntimeProvider) (*ASTNode, error) {
	tokens := LexToList(name, input)

	for _, t := range tokens {
		if t.ID == TokenError {
			return nil, &ParseError{name, t.Val, t.Lline, t.Lpos}
		}
	}

	tree, err := BuildTokenTree(name, tokens)
	if err != nil {
		return nil, err
	}

	p := &parser{name, nil, NewCursor(tree.Flatten(), 3), rp}

	if p.node, err = p.next(); err != nil {
		return nil, err
	}

	program := astNodeMap[TokenPROGRAM].instance(p, nil)

	for p.node != nil && p.node.Token.ID != TokenEOF {
		stmt, err := parseStatement(p)
		if err != nil {
			return nil, err
		}
		program.Children = append(program.Children, stmt)
	}

	return program, nil
}

/*
run models the main parser function: the Pratt expression loop.
*/
func (p *parser) run(rightBinding int) (*ASTNode, error) {
	var err error

	n := p.node

	p.node, err = p.next()
	if err != nil {
		return nil, err
	}

	if n.nullDenotation == nil {
		return nil, p.newParserError(fmt.Sprintf("Unexpected token: %v", n.Token), *n.Token)
	}

	left, err := n.nullDenotation(p, n)
	if err != nil {
		return nil, err
	}

	for rightBinding < p.node.binding {
		var nleft *ASTNode

		n = p.node

		if n.leftDenotation == nil {
			return nil, p.newParserError(fmt.Sprintf("Unexpected token: %v", n.Token), *n.Token)
		}

		p.node, err = p.next()
		if err != nil {
			return nil, err
		}

		if nleft, err = n.leftDenotation(p, n, left); err != nil {
			return nil, err
		}

		left = nleft
	}

	return left, nil
}

/*
next retrieves the next token as an ASTNode instance.
*/
func (p *parser) next() (*ASTNode, error) {
	token, more := p.tokens.Next()

	if !more {
		return nil, p.newParserError("Unexpected end of input", token)
	}

	node, ok := astNodeMap[token.ID]
	if !ok {
		return nil, p.newParserError(fmt.Sprintf("Unknown token: %v", token), token)
	}

	return node.instance(p, &token), nil
}

// Statement sequencing
// ====================

/*
selfTerminatingNodes never require (and never consume) a trailing semicolon.
*/
var selfTerminatingNodes = map[string]bool{
	NodeBLOCK:     true,
	NodeIF:        true,
	NodeWHILE:     true,
	NodeFOR:       true,
	NodeFUNDECL:   true,
	NodeCLASSDECL: true,
}

/*
parseStatement parses exactly one declaration/statement, consuming its
trailing semicolon if the grammar requires one.
*/
func parseStatement(p *parser) (*ASTNode, error) {
	n, err := p.run(0)
	if err != nil {
		return nil, err
	}

	if !selfTerminatingNodes[n.Name] {
		if err = skipToken(p, TokenSEMICOLON); err != nil {
			return nil, err
		}
	}

	return n, nil
}

// Null denotation functions
// =========================

/*
ndTerm is used for terminals.
*/
func ndTerm(p *parser, self *ASTNode) (*ASTNode, error) {
	return self, nil
}

/*
ndGroup parses a parenthesized expression.
*/
func ndGroup(p *parser, self *ASTNode) (*ASTNode, error) {
	exp, err := p.run(0)
	if err != nil {
		return nil, err
	}
	self.Children = append(self.Children, exp)
	return self, skipToken(p, TokenRPAREN)
}

/*
ndNegate and ndNot parse the two unary prefix operators.
*/
func ndNegate(p *parser, self *ASTNode) (*ASTNode, error) {
	self.Name = NodeNEGATE
	val, err := p.run(90)
	if err != nil {
		return nil, err
	}
	self.Children = append(self.Children, val)
	return self, nil
}

func ndNot(p *parser, self *ASTNode) (*ASTNode, error) {
	val, err := p.run(90)
	if err != nil {
		return nil, err
	}
	self.Children = append(self.Children, val)
	return self, nil
}

/*
ndSuper parses `super . IDENTIFIER`.
*/
func ndSuper(p *parser, self *ASTNode) (*ASTNode, error) {
	if err := skipToken(p, TokenDOT); err != nil {
		return nil, err
	}
	if p.node.Token.ID != TokenIDENTIFIER {
		return nil, p.newParserError("Expect superclass method name", *p.node.Token)
	}
	self.Children = append(self.Children, p.node)

	var err error
	p.node, err = p.next()

	return self, err
}

/*
ndVarDecl parses `var IDENTIFIER ( "=" expression )?`.
*/
func ndVarDecl(p *parser, self *ASTNode) (*ASTNode, error) {
	if p.node.Token.ID != TokenIDENTIFIER {
		return nil, p.newParserError("Expect variable name", *p.node.Token)
	}
	self.Token = p.node.Token

	var err error
	if p.node, err = p.next(); err != nil {
		return nil, err
	}

	if p.node.Token.ID == TokenEQUAL {
		if err = skipToken(p, TokenEQUAL); err != nil {
			return nil, err
		}

		var init *ASTNode
		if init, err = p.run(0); err != nil {
			return nil, err
		}
		self.Children = append(self.Children, init)
	}

	return self, nil
}

/*
ndPrint parses `print expression`.
*/
func ndPrint(p *parser, self *ASTNode) (*ASTNode, error) {
	val, err := p.run(0)
	if err != nil {
		return nil, err
	}
	self.Children = append(self.Children, val)
	return self, nil
}

/*
ndReturn parses `return expression?`.
*/
func ndReturn(p *parser, self *ASTNode) (*ASTNode, error) {
	if p.node.Token.ID == TokenSEMICOLON {
		return self, nil
	}

	val, err := p.run(0)
	if err != nil {
		return nil, err
	}
	self.Children = append(self.Children, val)
	return self, nil
}

/*
ndIf parses `if ( expression ) statement ( else statement )?`.
*/
func ndIf(p *parser, self *ASTNode) (*ASTNode, error) {
	if err := skipToken(p, TokenLPAREN); err != nil {
		return nil, err
	}

	cond, err := p.run(0)
	if err != nil {
		return nil, err
	}
	if err = skipToken(p, TokenRPAREN); err != nil {
		return nil, err
	}

	thenBranch, err := parseStatement(p)
	if err != nil {
		return nil, err
	}

	self.Children = append(self.Children, cond, thenBranch)

	if p.node.Token.ID == TokenELSE {
		if err = skipToken(p, TokenELSE); err != nil {
			return nil, err
		}

		elseBranch, err := parseStatement(p)
		if err != nil {
			return nil, err
		}
		self.Children = append(self.Children, elseBranch)
	}

	return self, nil
}

/*
ndWhile parses `while ( expression ) statement`.
*/
func ndWhile(p *parser, self *ASTNode) (*ASTNode, error) {
	if err := skipToken(p, TokenLPAREN); err != nil {
		return nil, err
	}

	cond, err := p.run(0)
	if err != nil {
		return nil, err
	}
	if err = skipToken(p, TokenRPAREN); err != nil {
		return nil, err
	}

	body, err := parseStatement(p)
	if err != nil {
		return nil, err
	}

	self.Children = append(self.Children, cond, body)
	return self, nil
}

/*
ndFor parses the C-style `for ( init ; cond ; incr ) statement` and always
produces exactly 4 children (init, cond, incr, body), using NIL/TRUE filler
nodes for the parts the grammar allows to be omitted.
*/
func ndFor(p *parser, self *ASTNode) (*ASTNode, error) {
	var err error

	if err = skipToken(p, TokenLPAREN); err != nil {
		return nil, err
	}

	var init *ASTNode
	if p.node.Token.ID == TokenSEMICOLON {
		if err = skipToken(p, TokenSEMICOLON); err != nil {
			return nil, err
		}
		init = astNodeMap[TokenNIL].instance(p, nil)
	} else {
		if init, err = p.run(0); err != nil {
			return nil, err
		}
		if err = skipToken(p, TokenSEMICOLON); err != nil {
			return nil, err
		}
	}

	var cond *ASTNode
	if p.node.Token.ID == TokenSEMICOLON {
		cond = astNodeMap[TokenTRUE].instance(p, nil)
	} else if cond, err = p.run(0); err != nil {
		return nil, err
	}
	if err = skipToken(p, TokenSEMICOLON); err != nil {
		return nil, err
	}

	var incr *ASTNode
	if p.node.Token.ID == TokenRPAREN {
		incr = astNodeMap[TokenNIL].instance(p, nil)
	} else if incr, err = p.run(0); err != nil {
		return nil, err
	}
	if err = skipToken(p, TokenRPAREN); err != nil {
		return nil, err
	}

	body, err := parseStatement(p)
	if err != nil {
		return nil, err
	}

	self.Children = append(self.Children, init, cond, incr, body)
	return self, nil
}

/*
ndFunDecl parses `fun IDENTIFIER ( params ) block`.
*/
func ndFunDecl(p *parser, self *ASTNode) (*ASTNode, error) {
	if p.node.Token.ID != TokenIDENTIFIER {
		return nil, p.newParserError("Expect function name", *p.node.Token)
	}
	self.Token = p.node.Token

	var err error
	if p.node, err = p.next(); err != nil {
		return nil, err
	}

	return parseFunctionBody(p, self)
}

/*
parseFunctionBody parses `( params ) block` and appends [params, body] to
self.Children - shared between top-level function declarations and class
methods, which are identical apart from the leading `fun` keyword.
*/
func parseFunctionBody(p *parser, self *ASTNode) (*ASTNode, error) {
	if err := skipToken(p, TokenLPAREN); err != nil {
		return nil, err
	}

	params := astNodeMap[TokenPARAMS].instance(p, nil)

	for p.node.Token.ID != TokenRPAREN {
		if p.node.Token.ID != TokenIDENTIFIER {
			return nil, p.newParserError("Expect parameter name", *p.node.Token)
		}
		params.Children = append(params.Children, p.node)

		var err error
		if p.node, err = p.next(); err != nil {
			return nil, err
		}

		if p.node.Token.ID == TokenCOMMA {
			if err = skipToken(p, TokenCOMMA); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if err := skipToken(p, TokenRPAREN); err != nil {
		return nil, err
	}

	if p.node.Token.ID != TokenLBRACE {
		return nil, p.newParserError("Expect '{' before function body", *p.node.Token)
	}

	body, err := p.run(0)
	if err != nil {
		return nil, err
	}

	self.Children = append(self.Children, params, body)
	return self, nil
}

/*
ndClassDecl parses `class IDENTIFIER ( "<" IDENTIFIER )? { method* }`.
*/
func ndClassDecl(p *parser, self *ASTNode) (*ASTNode, error) {
	if p.node.Token.ID != TokenIDENTIFIER {
		return nil, p.newParserError("Expect class name", *p.node.Token)
	}
	self.Token = p.node.Token

	var err error
	if p.node, err = p.next(); err != nil {
		return nil, err
	}

	if p.node.Token.ID == TokenLESS {
		if err = skipToken(p, TokenLESS); err != nil {
			return nil, err
		}
		if p.node.Token.ID != TokenIDENTIFIER {
			return nil, p.newParserError("Expect superclass name", *p.node.Token)
		}

		superclass := p.node
		if p.node, err = p.next(); err != nil {
			return nil, err
		}
		self.Children = append(self.Children, superclass)
	} else {
		self.Children = append(self.Children, astNodeMap[TokenNIL].instance(p, nil))
	}

	if err = skipToken(p, TokenLBRACE); err != nil {
		return nil, err
	}

	methods := astNodeMap[TokenMETHODS].instance(p, nil)

	for p.node.Token.ID != TokenRBRACE {
		if p.node.Token.ID != TokenIDENTIFIER {
			return nil, p.newParserError("Expect method name", *p.node.Token)
		}

		methodTok := p.node.Token

		if p.node, err = p.next(); err != nil {
			return nil, err
		}

		method := astNodeMap[TokenFUNDECL].instance(p, methodTok)
		if method, err = parseFunctionBody(p, method); err != nil {
			return nil, err
		}
		methods.Children = append(methods.Children, method)
	}

	if err = skipToken(p, TokenRBRACE); err != nil {
		return nil, err
	}

	self.Children = append(self.Children, methods)
	return self, nil
}

/*
ndBlock parses `{ declaration* }`.
*/
func ndBlock(p *parser, self *ASTNode) (*ASTNode, error) {
	for p.node != nil && p.node.Token.ID != TokenRBRACE && p.node.Token.ID != TokenEOF {
		stmt, err := parseStatement(p)
		if err != nil {
			return nil, err
		}
		self.Children = append(self.Children, stmt)
	}

	return self, skipToken(p, TokenRBRACE)
}

// Left denotation functions
// =========================

/*
ldInfixL returns a left denotation function for a left-associative binary
operator.
*/
func ldInfixL(name string) func(p *parser, self *ASTNode, left *ASTNode) (*ASTNode, error) {
	return func(p *parser, self *ASTNode, left *ASTNode) (*ASTNode, error) {
		right, err := p.run(self.binding)
		if err != nil {
			return nil, err
		}
		self.Name = name
		self.Children = append(self.Children, left, right)
		return self, nil
	}
}

/*
ldGet parses `. IDENTIFIER` as a property access, storing the property
name in self.Token and the object expression as self.Children[0].
*/
func ldGet(p *parser, self *ASTNode, left *ASTNode) (*ASTNode, error) {
	if p.node.Token.ID != TokenIDENTIFIER {
		return nil, p.newParserError("Expect property name after '.'", *p.node.Token)
	}

	self.Token = p.node.Token

	var err error
	if p.node, err = p.next(); err != nil {
		return nil, err
	}

	self.Children = append(self.Children, left)
	return self, nil
}

/*
ldCall parses a call's argument list.
*/
func ldCall(p *parser, self *ASTNode, left *ASTNode) (*ASTNode, error) {
	self.Name = NodeCALL
	args := astNodeMap[TokenARGS].instance(p, nil)

	for p.node.Token.ID != TokenRPAREN {
		arg, err := p.run(0)
		if err != nil {
			return nil, err
		}
		args.Children = append(args.Children, arg)

		if p.node.Token.ID == TokenCOMMA {
			if err = skipToken(p, TokenCOMMA); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if err := skipToken(p, TokenRPAREN); err != nil {
		return nil, err
	}

	self.Children = append(self.Children, left, args)
	return self, nil
}

/*
ldAssign parses the right-associative assignment operator, converting its
left operand into an ASSIGN (identifier target) or SET (property target)
node.
*/
func ldAssign(p *parser, self *ASTNode, left *ASTNode) (*ASTNode, error) {
	right, err := p.run(self.binding - 1)
	if err != nil {
		return nil, err
	}

	if left.Name == NodeGET {
		set := astNodeMap[TokenSET].instance(p, left.Token)
		set.Children = append(set.Children, left.Children[0], right)
		return set, nil
	}

	if left.Name == NodeIDENTIFIER {
		self.Token = left.Token
		self.Children = append(self.Children, right)
		return self, nil
	}

	return nil, p.newParserError("Invalid assignment target", *self.Token)
}

// Helper functions
// ================

/*
skipToken skips over a given token.
*/
func skipToken(p *parser, id LexTokenID) error {
	if p.node.Token.ID != id {
		return p.newParserError(fmt.Sprintf("Unexpected token: %v", p.node.Token), *p.node.Token)
	}

	var err error
	p.node, err = p.next()
	return err
}

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
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/stringutil"
)

/*
IndentationLevel is the level of indentation which the pretty printer uses.
*/
const IndentationLevel = 4

/*
Map of templates for nodes whose printed form only depends on their
children, keyed by "Name_arity".
Nodes with a variable or irregular shape (blocks, declarations, calls,
property access) are handled in code instead, in ppIrregularNodes.
*/
var prettyPrinterMap map[string]*template.Template

/*
bracketPrecedenceMap lists operators whose printed form must be
parenthesized when nested under a higher-binding parent: `+`/`-`/`and`/`or`.
A GROUP parent prints its own brackets, so its child is not wrapped again.
*/
var bracketPrecedenceMap map[string]bool

func init() {
	prettyPrinterMap = map[string]*template.Template{

		NodeSTRING: template.Must(template.New(NodeSTRING).Parse("{{.qval}}")),
		NodeNUMBER: template.Must(template.New(NodeNUMBER).Parse("{{.val}}")),
		// NodeIDENTIFIER, NodeSUPER - special cases (handled in ppIrregularNodes)

		NodeTRUE:  template.Must(template.New(NodeTRUE).Parse("true")),
		NodeFALSE: template.Must(template.New(NodeFALSE).Parse("false")),
		NodeNIL:   template.Must(template.New(NodeNIL).Parse("nil")),
		NodeTHIS:  template.Must(template.New(NodeTHIS).Parse("this")),

		NodeGROUP + "_1": template.Must(template.New(NodeGROUP).Parse("({{.c1}})")),

		// Arithmetic operators

		NodeNEGATE + "_1": template.Must(template.New(NodeNEGATE).Parse("-{{.c1}}")),
		NodePLUS + "_2":   template.Must(template.New(NodePLUS).Parse("{{.c1}} + {{.c2}}")),
		NodeMINUS + "_2":  template.Must(template.New(NodeMINUS).Parse("{{.c1}} - {{.c2}}")),
		NodeSTAR + "_2":   template.Must(template.New(NodeSTAR).Parse("{{.c1}} * {{.c2}}")),
		NodeSLASH + "_2":  template.Must(template.New(NodeSLASH).Parse("{{.c1}} / {{.c2}}")),

		// Boolean and comparison operators

		NodeNOT + "_1": template.Must(template.New(NodeNOT).Parse("!{{.c1}}")),
		NodeAND + "_2": template.Must(template.New(NodeAND).Parse("{{.c1}} and {{.c2}}")),
		NodeOR + "_2":  template.Must(template.New(NodeOR).Parse("{{.c1}} or {{.c2}}")),
		NodeEQ + "_2":  template.Must(template.New(NodeEQ).Parse("{{.c1}} == {{.c2}}")),
		NodeNEQ + "_2": template.Must(template.New(NodeNEQ).Parse("{{.c1}} != {{.c2}}")),
		NodeGT + "_2":  template.Must(template.New(NodeGT).Parse("{{.c1}} > {{.c2}}")),
		NodeGEQ + "_2": template.Must(template.New(NodeGEQ).Parse("{{.c1}} >= {{.c2}}")),
		NodeLT + "_2":  template.Must(template.New(NodeLT).Parse("{{.c1}} < {{.c2}}")),
		NodeLEQ + "_2": template.Must(template.New(NodeLEQ).Parse("{{.c1}} <= {{.c2}}")),

		// Statements

		NodePRINT + "_1":  template.Must(template.New(NodePRINT).Parse("print {{.c1}};")),
		NodeRETURN:        template.Must(template.New(NodeRETURN).Parse("return;")),
		NodeRETURN + "_1":  template.Must(template.New(NodeRETURN).Parse("return {{.c1}};")),
		NodeWHILE + "_2":  template.Must(template.New(NodeWHILE).Parse("while ({{.c1}}) {{.c2}}")),
		NodeIF + "_2":     template.Must(template.New(NodeIF).Parse("if ({{.c1}}) {{.c2}}")),
		NodeIF + "_3":     template.Must(template.New(NodeIF).Parse("if ({{.c1}}) {{.c2}} else {{.c3}}")),
	}

	bracketPrecedenceMap = map[string]bool{
		NodePLUS:  true,
		NodeMINUS: true,
		NodeAND:   true,
		NodeOR:    true,
	}
}

/*
PrettyPrint produces pretty printed Lox source from a given AST - used by
the `format` host operation and for runtime error traces (the `parse`
operation prints ASTNode.String() instead).
*/
func PrettyPrint(ast *ASTNode) (string, error) {
	var visit func(ast *ASTNode, path []*ASTNode) (string, error)

	visit = func(ast *ASTNode, path []*ASTNode) (string, error) {
		var buf bytes.Buffer

		if ast == nil {
			return "", fmt.Errorf("Nil pointer in AST")
		}

		if res, ok, err := ppIrregularNodes(ast, path, visit); ok {
			return res, err
		}

		numChildren := len(ast.Children)
		tempKey := ast.Name
		tempParam := make(map[string]string)

		for i, child := range ast.Children {
			res, err := visit(child, append(path, child))
			if err != nil {
				return "", err
			}

			if _, ok := bracketPrecedenceMap[child.Name]; ok && ast.Name != NodeGROUP && ast.binding > child.binding {
				res = fmt.Sprintf("(%v)", res)
			}

			tempParam[fmt.Sprint("c", i+1)] = res
		}

		if numChildren > 0 {
			tempKey += fmt.Sprint("_", numChildren)
		}

		if ast.Token != nil {
			tempParam["val"] = ast.Token.Val
			tempParam["qval"] = strconv.Quote(ast.Token.Val)
		}

		temp, ok := prettyPrinterMap[tempKey]
		errorutil.AssertTrue(ok,
			fmt.Sprintf("Could not find template for %v (tempkey: %v)", ast.Name, tempKey))

		errorutil.AssertOk(temp.Execute(&buf, tempParam))

		return buf.String(), nil
	}

	res, err := visit(ast, []*ASTNode{ast})

	return strings.TrimSpace(res), err
}

/*
ppIrregularNodes handles the node kinds whose printed shape does not fit
the fixed-arity template table: variable-arity blocks/argument lists and
nodes which carry part of their payload in Token rather than in a child.
*/
func ppIrregularNodes(ast *ASTNode, path []*ASTNode,
	visit func(*ASTNode, []*ASTNode) (string, error)) (string, bool, error) {

	child := func(i int) (string, error) {
		return visit(ast.Children[i], append(path, ast.Children[i]))
	}

	switch ast.Name {

	case NodeIDENTIFIER:
		return ast.Token.Val, true, nil

	case NodeSUPER:
		return fmt.Sprintf("super.%v", ast.Children[0].Token.Val), true, nil

	case NodePROGRAM:
		var buf bytes.Buffer
		for _, c := range ast.Children {
			res, err := visit(c, append(path, c))
			if err != nil {
				return "", true, err
			}
			buf.WriteString(res)
			buf.WriteString("\n")
		}
		return strings.TrimSpace(buf.String()), true, nil

	case NodeBLOCK:
		var buf bytes.Buffer
		buf.WriteString("{\n")
		indent := stringutil.GenerateRollingString(" ", IndentationLevel)
		for _, c := range ast.Children {
			res, err := visit(c, append(path, c))
			if err != nil {
				return "", true, err
			}
			for _, line := range strings.Split(res, "\n") {
				buf.WriteString(indent)
				buf.WriteString(line)
				buf.WriteString("\n")
			}
		}
		buf.WriteString("}")
		return buf.String(), true, nil

	case NodeVARDECL:
		if len(ast.Children) == 0 {
			return fmt.Sprintf("var %v;", ast.Token.Val), true, nil
		}
		val, err := child(0)
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("var %v = %v;", ast.Token.Val, val), true, nil

	case NodeASSIGN:
		val, err := child(0)
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("%v = %v", ast.Token.Val, val), true, nil

	case NodeGET:
		obj, err := child(0)
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("%v.%v", obj, ast.Token.Val), true, nil

	case NodeSET:
		obj, err := child(0)
		if err != nil {
			return "", true, err
		}
		val, err := child(1)
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("%v.%v = %v", obj, ast.Token.Val, val), true, nil

	case NodeCALL:
		callee, err := child(0)
		if err != nil {
			return "", true, err
		}
		args, err := visit(ast.Children[1], append(path, ast.Children[1]))
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("%v(%v)", callee, args), true, nil

	case NodeARGS:
		parts := make([]string, len(ast.Children))
		for i, c := range ast.Children {
			res, err := visit(c, append(path, c))
			if err != nil {
				return "", true, err
			}
			parts[i] = res
		}
		return strings.Join(parts, ", "), true, nil

	case NodePARAMS:
		parts := make([]string, len(ast.Children))
		for i, c := range ast.Children {
			parts[i] = c.Token.Val
		}
		return strings.Join(parts, ", "), true, nil

	case NodeFOR:
		init, err := child(0)
		if err != nil {
			return "", true, err
		}
		cond, err := child(1)
		if err != nil {
			return "", true, err
		}
		incr, err := child(2)
		if err != nil {
			return "", true, err
		}
		body, err := child(3)
		if err != nil {
			return "", true, err
		}

		if ast.Children[0].Name == NodeNIL {
			init = ""
		}
		if ast.Children[2].Name == NodeNIL {
			incr = ""
		}

		return fmt.Sprintf("for (%v; %v; %v) %v", init, cond, incr, body), true, nil

	case NodeFUNDECL:
		params, err := child(0)
		if err != nil {
			return "", true, err
		}
		body, err := child(1)
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("fun %v(%v) %v", ast.Token.Val, params, body), true, nil

	case NodeMETHODS:
		parts := make([]string, len(ast.Children))
		for i, c := range ast.Children {
			res, err := visit(c, append(path, c))
			if err != nil {
				return "", true, err
			}
			parts[i] = res
		}
		return strings.Join(parts, "\n"), true, nil

	case NodeCLASSDECL:
		var header string
		if ast.Children[0].Name == NodeNIL {
			header = fmt.Sprintf("class %v {", ast.Token.Val)
		} else {
			header = fmt.Sprintf("class %v < %v {", ast.Token.Val, ast.Children[0].Token.Val)
		}

		methods, err := child(1)
		if err != nil {
			return "", true, err
		}

		indent := stringutil.GenerateRollingString(" ", IndentationLevel)
		var buf bytes.Buffer
		buf.WriteString(header)
		buf.WriteString("\n")
		for _, line := range strings.Split(methods, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(indent)
			buf.WriteString(line)
			buf.WriteString("\n")
		}
		buf.WriteString("}")

		return buf.String(), true, nil
	}

	return "", false, nil
}

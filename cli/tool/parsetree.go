/*
 * golox
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package tool

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"devt.de/krotik/lox/parser"
)

/*
ParseTree parses a single Lox source file and prints its raw AST dump (one
node per indented line, via ASTNode.String()). This is the debugging
counterpart to Format, which pretty-prints an AST back into source text
instead of a tree.
*/
func ParseTree() error {
	var err error

	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s parse [options] <file>", osArgs[0]))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "This tool will print the parse tree of a given Lox file.")
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])
	}

	if *showHelp {
		flag.Usage()
		return nil
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return nil
	}

	var data []byte
	if data, err = ioutil.ReadFile(args[0]); err != nil {
		return err
	}

	ast, perr := parser.Parse(args[0], string(data))
	if perr != nil {
		fmt.Fprintln(os.Stdout, fmt.Sprintf("Error: %v", perr))
		ExitWithCode(65)
		return nil
	}

	fmt.Fprint(os.Stdout, ast.String())

	return nil
}

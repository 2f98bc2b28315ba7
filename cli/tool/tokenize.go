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
Tokenize lexes a single Lox source file and prints one token per line in
the "TYPE LEXEME LITERAL" format. Lexical errors do not stop the scan -
the tokenizer keeps going and prints every token it can recover, then exits
with status 65 if any error token was emitted.
*/
func Tokenize() error {
	var err error

	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s tokenize [options] <file>", osArgs[0]))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "This tool will print the tokens of a given Lox file.")
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

	hadError := false
	for _, tok := range parser.LexToList(args[0], string(data)) {
		if tok.ID == parser.TokenError {
			hadError = true
		}
		fmt.Fprintln(os.Stdout, tok.String())
	}

	if hadError {
		ExitWithCode(65)
	}

	return nil
}

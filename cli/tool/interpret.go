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
	"io"
	"io/ioutil"
	"os"
	"strings"

	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/common/termutil"
	"devt.de/krotik/lox/config"
	"devt.de/krotik/lox/interpreter"
	"devt.de/krotik/lox/parser"
	"devt.de/krotik/lox/resolver"
	"devt.de/krotik/lox/scope"
	"devt.de/krotik/lox/util"
)

/*
CLICustomHandler is a handler for custom operations.
*/
type CLICustomHandler interface {
	CLIInputHandler

	/*
	   LoadInitialFile clears the global scope and reloads the initial file.
	*/
	LoadInitialFile() error
}

/*
CLIInterpreter is a commandline interpreter for Lox.
*/
type CLIInterpreter struct {
	GlobalVS        parser.Scope                    // Global variable scope
	RuntimeProvider *interpreter.LoxRuntimeProvider  // Runtime provider of the interpreter

	// Customizations of output and input handling

	CustomHandler        CLICustomHandler
	CustomWelcomeMessage string
	CustomHelpString     string

	EntryFile string // Entry file for the program

	// Parameter these can either be set programmatically or via CLI args

	Dir      *string // Root dir for interpreter
	LogFile  *string // Logfile (blank for stdout)
	LogLevel *string // Log level string (Debug, Info, Error)

	// User terminal

	Term termutil.ConsoleLineTerminal

	// Log output

	LogOut io.Writer
}

/*
NewCLIInterpreter creates a new commandline interpreter for Lox.
*/
func NewCLIInterpreter() *CLIInterpreter {
	return &CLIInterpreter{scope.NewScope(scope.GlobalScope), nil, nil, "", "",
		"", nil, nil, nil, nil, os.Stdout}
}

/*
ParseArgs parses the command line arguments. Call this after adding custom flags.
Returns true if the program should exit.
*/
func (i *CLIInterpreter) ParseArgs() bool {

	if i.Dir != nil && i.LogFile != nil && i.LogLevel != nil {
		return false
	}

	wd, _ := os.Getwd()

	i.Dir = flag.String("dir", wd, "Root directory for Lox interpreter")
	i.LogFile = flag.String("logfile", "", "Log to a file")
	i.LogLevel = flag.String("loglevel", "Info", "Logging level (Debug, Info, Error)")
	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s run [options] [file]", osArgs[0]))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])

		if cargs := flag.Args(); len(cargs) > 0 {
			i.EntryFile = flag.Arg(0)
		}

		if *showHelp {
			flag.Usage()
		}
	}

	return *showHelp
}

/*
CreateRuntimeProvider creates the runtime provider of this interpreter. This function expects Dir,
LogFile and LogLevel to be set.
*/
func (i *CLIInterpreter) CreateRuntimeProvider(name string) error {
	var logger util.Logger
	var err error

	if i.RuntimeProvider != nil {
		return nil
	}

	// Check if we should log to a file

	if i.LogFile != nil && *i.LogFile != "" {
		var logWriter io.Writer

		logFileRollover := fileutil.SizeBasedRolloverCondition(1000000) // Each file can be up to a megabyte
		logWriter, err = fileutil.NewMultiFileBuffer(*i.LogFile, fileutil.ConsecutiveNumberIterator(10), logFileRollover)
		logger = util.NewBufferLogger(logWriter)

	} else {

		// Log to the console by default

		logger = util.NewStdOutLogger()
	}

	// Set the log level

	if err == nil {
		if i.LogLevel != nil && *i.LogLevel != "" {
			logger, err = util.NewLogLevelLogger(logger, *i.LogLevel)
		}

		if err == nil {
			i.RuntimeProvider = interpreter.NewLoxRuntimeProvider(name, nil, logger, i.LogOut)
		}
	}

	return err
}

/*
run parses, resolves and evaluates a piece of Lox source against the
interpreter's global scope, returning the final expression value.
*/
func (i *CLIInterpreter) run(source string, input string) (interface{}, error) {

	ast, err := parser.Parse(source, input)
	if err != nil {
		return nil, err
	}

	locals, err := resolver.Resolve(source, ast)
	if err != nil {
		return nil, err
	}

	i.RuntimeProvider.Locals = locals
	parser.AttachRuntime(ast, i.RuntimeProvider)

	if err = ast.Runtime.Validate(); err != nil {
		return nil, err
	}

	return ast.Runtime.Eval(i.GlobalVS)
}

/*
LoadInitialFile clears the global scope and reloads the initial file.
*/
func (i *CLIInterpreter) LoadInitialFile() error {
	var err error

	if i.CustomHandler != nil {
		i.CustomHandler.LoadInitialFile()
	}

	i.GlobalVS = scope.NewScope(scope.GlobalScope)
	interpreter.DeclareGlobals(i.GlobalVS)

	if i.EntryFile != "" {
		var initFile []byte

		if initFile, err = ioutil.ReadFile(i.EntryFile); err == nil {
			_, err = i.run(i.EntryFile, string(initFile))
		}
	}

	return err
}

/*
CreateTerm creates a new console terminal for stdout.
*/
func (i *CLIInterpreter) CreateTerm() error {
	var err error

	if i.Term == nil {
		i.Term, err = termutil.NewConsoleLineTerminal(os.Stdout)
	}

	return err
}

/*
Interpret starts the Lox code interpreter. Starts an interactive console in
the current tty if the interactive flag is set.
*/
func (i *CLIInterpreter) Interpret(interactive bool) error {

	if i.ParseArgs() {
		return nil
	}

	err := i.CreateTerm()

	if interactive {
		fmt.Fprintln(i.LogOut, fmt.Sprintf("golox %v", config.ProductVersion))
	}

	// Create Runtime Provider

	if err == nil {

		if err = i.CreateRuntimeProvider("console"); err == nil {

			if interactive {
				if lll, ok := i.RuntimeProvider.Logger.(*util.LogLevelLogger); ok {
					fmt.Fprint(i.LogOut, fmt.Sprintf("Log level: %v - ", lll.Level()))
				}

				fmt.Fprintln(i.LogOut, fmt.Sprintf("Root directory: %v", *i.Dir))

				if i.CustomWelcomeMessage != "" {
					fmt.Fprintln(i.LogOut, fmt.Sprintf(i.CustomWelcomeMessage))
				}
			}

			// Execute file if given

			if err = i.LoadInitialFile(); err == nil {

				// Drop into interactive shell

				if interactive {

					// Add history functionality without file persistence

					i.Term, err = termutil.AddHistoryMixin(i.Term, "",
						func(s string) bool {
							return i.isExitLine(s)
						})

					if err == nil {

						if err = i.Term.StartTerm(); err == nil {
							var line string

							defer i.Term.StopTerm()

							fmt.Fprintln(i.LogOut, "Type 'q' or 'quit' to exit the shell and '?' to get help")

							line, err = i.Term.NextLine()
							for err == nil && !i.isExitLine(line) {
								trimmedLine := strings.TrimSpace(line)

								i.HandleInput(i.Term, trimmedLine)

								line, err = i.Term.NextLine()
							}
						}
					}
				}
			}
		}
	}

	return err
}

/*
isExitLine returns if a given input line should exit the interpreter.
*/
func (i *CLIInterpreter) isExitLine(s string) bool {
	return s == "exit" || s == "q" || s == "quit" || s == "bye" || s == "\x04"
}

/*
HandleInput handles input to this interpreter. It parses a given input line
and outputs on the given output terminal.
*/
func (i *CLIInterpreter) HandleInput(ot OutputTerminal, line string) {

	// Process the entered line

	if line == "?" {

		// Show help

		ot.WriteString(fmt.Sprintf("golox %v\n", config.ProductVersion))
		ot.WriteString(fmt.Sprint("\n"))
		ot.WriteString(fmt.Sprint("Console supports all normal Lox statements and the following special commands:\n"))
		ot.WriteString(fmt.Sprint("\n"))
		ot.WriteString(fmt.Sprint("    @reload - Clear the interpreter and reload the initial file if it was given.\n"))
		if i.CustomHelpString != "" {
			ot.WriteString(i.CustomHelpString)
		}
		ot.WriteString(fmt.Sprint("\n"))

	} else if strings.HasPrefix(line, "@reload") {

		i.LoadInitialFile()
		ot.WriteString(fmt.Sprintln(fmt.Sprintln("Reloading interpreter state")))

	} else if i.CustomHandler != nil && i.CustomHandler.CanHandle(line) {
		i.CustomHandler.Handle(ot, line)

	} else {
		var ierr error
		var res interface{}

		if line != "" {
			if res, ierr = i.run("console input", line); ierr == nil && res != nil {
				ot.WriteString(fmt.Sprintln(stringutil.ConvertToString(res)))
			}

			if ierr != nil {
				ot.WriteString(fmt.Sprintln(ierr.Error()))
			}
		}
	}
}

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
	"bytes"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/lox/config"
	"devt.de/krotik/lox/util"
)

const testDir = "tooltest"

var testLogOut *bytes.Buffer
var testTerm *testConsoleLineTerminal

func newTestInterpreter() *CLIInterpreter {
	tin := NewCLIInterpreter()

	// Redirect I/O bits into internal buffers

	testTerm = &testConsoleLineTerminal{nil, bytes.Buffer{}}
	tin.Term = testTerm

	testLogOut = &bytes.Buffer{}
	tin.LogOut = testLogOut

	return tin
}

func newTestInterpreterWithConfig() *CLIInterpreter {
	tin := newTestInterpreter()

	if res, _ := fileutil.PathExists(testDir); res {
		os.RemoveAll(testDir)
	}

	err := os.Mkdir(testDir, 0770)
	if err != nil {
		fmt.Print("Could not create test directory:", err.Error())
		os.Exit(1)
	}

	l := testDir
	tin.Dir = &l

	tin.CustomWelcomeMessage = "123"

	return tin
}

func tearDown() {
	err := os.RemoveAll(testDir)
	if err != nil {
		fmt.Print("Could not remove test directory:", err.Error())
	}
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError) // Reset CLI parsing
}

func TestInterpretBasicFunctions(t *testing.T) {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError) // Reset CLI parsing

	// Test normal initialisation

	tin := NewCLIInterpreter()
	if err := tin.CreateTerm(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	tin = newTestInterpreter()

	// Test help output

	osArgs = []string{"foo", "bar", "-help"}

	flag.CommandLine.SetOutput(&testTerm.out)

	if stop := tin.ParseArgs(); !stop {
		t.Error("Asking for help should request to stop the program")
		return
	}

	if !strings.Contains(testTerm.out.String(), "Root directory for Lox interpreter") {
		t.Error("Helptext does not contain expected string - output:", testTerm.out.String())
		return
	}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError) // Reset CLI parsing

	// Test interpret

	tin = newTestInterpreter()

	osArgs = []string{"foo", "bar", "-help"}

	flag.CommandLine.SetOutput(&testTerm.out)

	errorutil.AssertOk(tin.Interpret(true))

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError) // Reset CLI parsing

	// Test entry file parsing

	tin = NewCLIInterpreter()

	osArgs = []string{"foo", "bar", "myfile"}

	if stop := tin.ParseArgs(); stop {
		t.Error("Giving an entry file should not stop the program")
		return
	}

	if stop := tin.ParseArgs(); stop {
		t.Error("Giving an entry file should not stop the program")
		return
	}

	if tin.EntryFile != "myfile" {
		t.Error("Unexpected entryfile:", tin.EntryFile)
		return
	}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError) // Reset CLI parsing
}

func TestCreateRuntimeProvider(t *testing.T) {
	tin := newTestInterpreterWithConfig()
	defer tearDown()

	l := filepath.Join(testDir, "test.log")
	tin.LogFile = &l

	if err := tin.CreateRuntimeProvider("foo"); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if _, ok := tin.RuntimeProvider.Logger.(*util.BufferLogger); !ok {
		t.Errorf("Unexpected logger: %#v", tin.RuntimeProvider.Logger)
		return
	}

	tin = newTestInterpreterWithConfig()
	defer tearDown()

	l = "error"
	tin.LogLevel = &l

	if err := tin.CreateRuntimeProvider("foo"); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if _, ok := tin.RuntimeProvider.Logger.(*util.LogLevelLogger); !ok {
		t.Errorf("Unexpected logger: %#v", tin.RuntimeProvider.Logger)
		return
	}

	if err := tin.CreateRuntimeProvider("foo"); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if _, ok := tin.RuntimeProvider.Logger.(*util.LogLevelLogger); !ok {
		t.Errorf("Unexpected logger: %#v", tin.RuntimeProvider.Logger)
		return
	}
}

func TestLoadInitialFile(t *testing.T) {
	tin := newTestInterpreterWithConfig()
	defer tearDown()

	if err := tin.CreateRuntimeProvider("foo"); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	tin.RuntimeProvider.Logger = util.NewMemoryLogger(10)

	tin.EntryFile = filepath.Join(testDir, "foo.lox")

	ioutil.WriteFile(tin.EntryFile, []byte("var a = 1;"), 0777)

	if err := tin.LoadInitialFile(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if res, ok := tin.GlobalVS.GetValue("a"); !ok || res != 1. {
		t.Error("Unexpected scope value:", res, ok)
		return
	}
}

func TestInterpret(t *testing.T) {
	tin := newTestInterpreterWithConfig()
	defer tearDown()

	if err := tin.CreateRuntimeProvider("foo"); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	tin.RuntimeProvider.Logger, _ = util.NewLogLevelLogger(util.NewMemoryLogger(10), "info")

	l1 := ""
	tin.LogFile = &l1
	l2 := ""
	tin.LogLevel = &l2

	testTerm.in = []string{"var xxx = 1;", "q"}

	if err := tin.Interpret(true); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if testLogOut.String() != `golox `+config.ProductVersion+`
Log level: info - Root directory: tooltest
123
Type 'q' or 'quit' to exit the shell and '?' to get help
` {
		t.Error("Unexpected result:", testLogOut.String())
		return
	}

	if res, ok := tin.GlobalVS.GetValue("xxx"); !ok || res != 1. {
		t.Error("Unexpected scope value:", res, ok)
		return
	}
}

func TestHandleInput(t *testing.T) {
	tin := newTestInterpreterWithConfig()
	defer tearDown()

	tin.CustomHandler = &testCustomHandler{}

	if err := tin.CreateRuntimeProvider("foo"); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	tin.RuntimeProvider.Logger, _ = util.NewLogLevelLogger(util.NewMemoryLogger(10), "info")
	tin.CustomHelpString = "123"

	l1 := ""
	tin.LogFile = &l1
	l2 := ""
	tin.LogLevel = &l2

	testTerm.in = []string{"?", "@reload", "@cus", "q"}

	if err := tin.Interpret(true); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if !strings.Contains(testTerm.out.String(), "Console supports all normal Lox statements") {
		t.Error("Unexpected result:", testTerm.out.String())
		return
	}

	testTerm.out.Reset()
	testLogOut.Reset()

	testTerm.in = []string{"1;", "print 2;", "undefined_var;", "q"}

	if err := tin.Interpret(true); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if !strings.Contains(testTerm.out.String(), "1\n") {
		t.Error("Unexpected echoed result:", testTerm.out.String())
		return
	}

	if !strings.Contains(testLogOut.String(), "2\n") {
		t.Error("Unexpected print output:", testLogOut.String())
		return
	}

	if !strings.Contains(testTerm.out.String(), "Undefined variable") {
		t.Error("Unexpected error output:", testTerm.out.String())
		return
	}
}

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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
)

const parseTreeTestDir = "parsetreetest"

func TestParseTree(t *testing.T) {
	if res, _ := fileutil.PathExists(parseTreeTestDir); res {
		os.RemoveAll(parseTreeTestDir)
	}

	err := os.Mkdir(parseTreeTestDir, 0770)
	errorutil.AssertOk(err)
	defer os.RemoveAll(parseTreeTestDir)

	out := bytes.Buffer{}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(&out)

	osArgs = []string{"foo", "bar", "-help"}

	if err := ParseTree(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if !strings.Contains(out.String(), "Usage of foo parse") {
		t.Error("Unexpected output:", out.String())
		return
	}

	myfile := filepath.Join(parseTreeTestDir, "myfile.lox")
	errorutil.AssertOk(ioutil.WriteFile(myfile, []byte(`print 1 + 2;`), 0777))

	osArgs = []string{"foo", "bar", myfile}

	var lastCode int
	oldExit := osExit
	defer func() { osExit = oldExit }()
	osExit = func(code int) { lastCode = code }

	if err := ParseTree(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if lastCode != 0 {
		t.Error("Unexpected exit code for a valid source file:", lastCode)
		return
	}

	badfile := filepath.Join(parseTreeTestDir, "bad.lox")
	errorutil.AssertOk(ioutil.WriteFile(badfile, []byte(`print ;`), 0777))

	osArgs = []string{"foo", "bar", badfile}

	if err := ParseTree(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if lastCode != 65 {
		t.Error("Unexpected exit code for a source file with a syntax error:", lastCode)
		return
	}
}

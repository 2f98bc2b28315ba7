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

const tokenizeTestDir = "tokenizetest"

func TestTokenize(t *testing.T) {
	if res, _ := fileutil.PathExists(tokenizeTestDir); res {
		os.RemoveAll(tokenizeTestDir)
	}

	err := os.Mkdir(tokenizeTestDir, 0770)
	errorutil.AssertOk(err)
	defer os.RemoveAll(tokenizeTestDir)

	out := bytes.Buffer{}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(&out)

	osArgs = []string{"foo", "bar", "-help"}

	if err := Tokenize(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if !strings.Contains(out.String(), "Usage of foo tokenize") {
		t.Error("Unexpected output:", out.String())
		return
	}

	myfile := filepath.Join(tokenizeTestDir, "myfile.lox")
	errorutil.AssertOk(ioutil.WriteFile(myfile, []byte(`print 1 + 2;`), 0777))

	out = bytes.Buffer{}
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(&out)

	osArgs = []string{"foo", "bar", myfile}

	var lastCode int
	oldExit := osExit
	defer func() { osExit = oldExit }()
	osExit = func(code int) { lastCode = code }

	if err := Tokenize(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if lastCode != 0 {
		t.Error("Unexpected exit code for valid source:", lastCode)
		return
	}

	badfile := filepath.Join(tokenizeTestDir, "bad.lox")
	errorutil.AssertOk(ioutil.WriteFile(badfile, []byte(`print 1 @ 2;`), 0777))

	osArgs = []string{"foo", "bar", badfile}

	if err := Tokenize(); err != nil {
		t.Error("Unexpected result:", err)
		return
	}

	if lastCode != 65 {
		t.Error("Unexpected exit code for a source file with a lexical error:", lastCode)
		return
	}
}

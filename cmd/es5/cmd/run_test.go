package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestRunScriptFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.js")
	if err := os.WriteFile(path, []byte("print('hello from file');"), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	evalExpr, dumpAST, trace = "", false, false

	var runErr error
	output := captureStdout(t, func() {
		runErr = runScript(runCmd, []string{path})
	})

	if runErr != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", runErr, output)
	}
	if !strings.Contains(output, "hello from file") {
		t.Errorf("expected output to contain %q, got %q", "hello from file", output)
	}
}

func TestRunScriptWithEvalFlag(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()

	evalExpr = "print(1 + 2);"
	dumpAST, trace = false, false

	var runErr error
	output := captureStdout(t, func() {
		runErr = runScript(runCmd, nil)
	})

	if runErr != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", runErr, output)
	}
	if strings.TrimSpace(output) != "3" {
		t.Errorf("expected output %q, got %q", "3", output)
	}
}

func TestRunScriptWithDumpAST(t *testing.T) {
	oldEval, oldDump := evalExpr, dumpAST
	defer func() { evalExpr, dumpAST = oldEval, oldDump }()

	evalExpr = "var x = 1;"
	dumpAST, trace = true, false

	var runErr error
	output := captureStdout(t, func() {
		runErr = runScript(runCmd, nil)
	})

	if runErr != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", runErr, output)
	}
	if !strings.Contains(output, "AST (YAML):") || !strings.Contains(output, "AST (JSON):") {
		t.Errorf("expected --dump-ast output to contain both views, got %q", output)
	}
}

func TestRunScriptReportsParseErrors(t *testing.T) {
	oldEval, oldDump := evalExpr, dumpAST
	defer func() { evalExpr, dumpAST = oldEval, oldDump }()

	evalExpr = "var = ;"
	dumpAST, trace = false, false

	err := runScript(runCmd, nil)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestRunScriptReportsUncaughtThrow(t *testing.T) {
	oldEval, oldDump := evalExpr, dumpAST
	defer func() { evalExpr, dumpAST = oldEval, oldDump }()

	evalExpr = "throw new Error('boom');"
	dumpAST, trace = false, false

	err := runScript(runCmd, nil)
	if err == nil {
		t.Fatalf("expected an error from an uncaught throw")
	}
}

func TestRunRequiresFileOrEvalFlag(t *testing.T) {
	oldEval := evalExpr
	defer func() { evalExpr = oldEval }()
	evalExpr = ""

	if _, _, err := readSource(nil); err == nil {
		t.Fatalf("expected an error when neither a file nor -e is given")
	}
}

package log

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, f func()) (string, string) {
	t.Helper()

	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	oldColored, oldVerbose, oldForce := colored, verbose, forceStdErr

	SetOutput(&out, &errOut)
	SetColored(false)
	t.Cleanup(func() {
		SetOutput(oldOut, oldErr)
		SetColored(oldColored)
		SetVerbose(oldVerbose)
		SetForceStdErr(oldForce)
		EnableLogs()
	})

	f()
	return out.String(), errOut.String()
}

func TestLevelsRouting(t *testing.T) {
	out, errOut := captureOutput(t, func() {
		Infof("info %d", 1)
		Warnf("warn %s", "two")
		Errorf("error %v", 3)
	})

	if !strings.Contains(out, "[INF] info 1") {
		t.Errorf("expected info on stdout, got %q", out)
	}
	if !strings.Contains(out, "[WRN] warn two") {
		t.Errorf("expected warning on stdout, got %q", out)
	}
	if strings.Contains(out, "error 3") {
		t.Errorf("error must not go to stdout, got %q", out)
	}
	if !strings.Contains(errOut, "[ERR] error 3") {
		t.Errorf("expected error on stderr, got %q", errOut)
	}
}

func TestDebugRequiresVerbose(t *testing.T) {
	out, _ := captureOutput(t, func() {
		SetVerbose(false)
		Debugf("hidden")
		SetVerbose(true)
		Debugf("shown")
	})

	if strings.Contains(out, "hidden") {
		t.Errorf("debug message printed without verbose: %q", out)
	}
	if !strings.Contains(out, "[DBG] shown") {
		t.Errorf("debug message missing in verbose mode: %q", out)
	}
}

func TestForceStdErr(t *testing.T) {
	out, errOut := captureOutput(t, func() {
		SetForceStdErr(true)
		Infof("to stderr")
	})

	if out != "" {
		t.Errorf("expected empty stdout, got %q", out)
	}
	if !strings.Contains(errOut, "to stderr") {
		t.Errorf("expected message on stderr, got %q", errOut)
	}
}

func TestDisableLogs(t *testing.T) {
	out, errOut := captureOutput(t, func() {
		DisableLogs()
		Infof("nothing")
		Errorf("nothing")
	})

	if out != "" || errOut != "" {
		t.Errorf("expected no output, got stdout=%q stderr=%q", out, errOut)
	}
}

func TestFatalfExits(t *testing.T) {
	code := -1
	oldExit := exit
	exit = func(c int) { code = c }
	defer func() { exit = oldExit }()

	_, errOut := captureOutput(t, func() {
		Fatalf("boom")
	})

	if code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(errOut, "boom") {
		t.Errorf("expected fatal message on stderr, got %q", errOut)
	}
}

func TestColoredPrefix(t *testing.T) {
	out, _ := captureOutput(t, func() {
		SetColored(true)
		Infof("colored")
	})

	if !strings.Contains(out, "\033[36m[INF]\033[0m colored") {
		t.Errorf("expected colored prefix, got %q", out)
	}
}

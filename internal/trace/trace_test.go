package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"off": Off, "summary": Summary, "verbose": Verbose, "bogus": Summary}
	for s, want := range cases {
		if got := ParseLevel(s); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestLoggerOffSuppressesAllOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Off)
	l.Cycle(1, 0)
	l.Slot("LCU", 0, -1, "NOP", 0)
	l.Branch(0, 4)
	l.Exit(5)
	if buf.Len() != 0 {
		t.Errorf("expected no output at Off level, got %q", buf.String())
	}
}

func TestLoggerSummarySuppressesSlotDetail(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Summary)
	l.Cycle(1, 0)
	l.Slot("LCU", 0, -1, "NOP", 0)
	if strings.Contains(buf.String(), "ALU res") {
		t.Error("expected Slot() to be suppressed at Summary level")
	}
	if !strings.Contains(buf.String(), "cycle 1") {
		t.Error("expected Cycle() output at Summary level")
	}
}

func TestLoggerVerboseEmitsSlotDetail(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Verbose)
	l.Slot("LCU", 0, -1, "SADD R0, 1, ZERO", 1)
	if !strings.Contains(buf.String(), "ALU res = 1") {
		t.Errorf("expected slot detail in output, got %q", buf.String())
	}
}

func TestLoggerBranchAndExit(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Summary)
	l.Branch(0, 10)
	l.Exit(20)
	out := buf.String()
	if !strings.Contains(out, "branch") || !strings.Contains(out, "exit at cycle 20") {
		t.Errorf("unexpected output: %q", out)
	}
}

package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	t.Setenv("CI", "true")
	var buf bytes.Buffer

	r := NewReporter(&buf, "Checking components")
	if _, ok := r.(*CIReporter); !ok {
		t.Fatalf("expected CIReporter, got %T", r)
	}
	r.Start(2)
	r.Update(1, "landing1", nil)
	r.Update(2, "landing2", errors.New("not found"))
	r.Finish()

	if r.Failures() != 1 {
		t.Errorf("Failures() = %d, want 1", r.Failures())
	}
	out := buf.String()
	for _, want := range []string{"Checking components: 2 targets", "[1/2] ok   landing1", "[2/2] FAIL landing2", "1 of 2 failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalReporter(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	var buf bytes.Buffer

	r := NewReporter(&buf, "Checking components")
	if _, ok := r.(*TerminalReporter); !ok {
		t.Fatalf("expected TerminalReporter, got %T", r)
	}
	r.Start(2)
	r.Update(1, "landing1", errors.New("masked"))
	r.Update(2, "landing2", nil)
	r.Finish()

	if r.Failures() != 1 {
		t.Errorf("Failures() = %d, want 1", r.Failures())
	}
}

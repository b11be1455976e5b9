package main

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Backend", statusError, "unreachable", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Backend:", "[ERROR] unreachable")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Backend", statusOK, "reachable", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestRenderStatusLineWithoutMessage(t *testing.T) {
	got := renderStatusLine("Printing", statusWarn, "", false)
	if !strings.Contains(got, "[WARN]") {
		t.Fatalf("expected bare status token, got %q", got)
	}
	if strings.Contains(got, "[WARN] ") && strings.HasSuffix(got, " ") {
		t.Fatalf("unexpected trailing space, got %q", got)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Daemon", false)
	if len(lines) != 2 {
		t.Fatalf("expected header and rule, got %d lines", len(lines))
	}
	if lines[0] != "== Daemon ==" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Fatalf("rule width mismatch: %q", lines[1])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

package main

import (
	"strings"
	"testing"
)

func TestLineTableRendersColumns(t *testing.T) {
	tbl := newLineTable(
		lineColumn{Title: "Line", Numeric: true},
		lineColumn{Title: "Product"},
	)
	tbl.addRow("1", "Woven Label")
	tbl.addRow("2", "Care Tag")
	out := tbl.render()
	for _, want := range []string{"Line", "Product", "Woven Label", "Care Tag"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "PRODUCT") {
		t.Errorf("headers must keep their case:\n%s", out)
	}
}

func TestLineTablePadsShortRows(t *testing.T) {
	tbl := newLineTable(
		lineColumn{Title: "A"},
		lineColumn{Title: "B"},
		lineColumn{Title: "C"},
	)
	tbl.addRow("only")
	out := tbl.render()
	if !strings.Contains(out, "only") {
		t.Fatalf("table missing row value:\n%s", out)
	}
}

func TestLineTableNoColumns(t *testing.T) {
	if out := newLineTable().render(); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}

func TestMaskSecret(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abcd", "****"},
		{"secrettoken", "se*******en"},
	}
	for _, tc := range cases {
		if got := maskSecret(tc.in); got != tc.want {
			t.Errorf("maskSecret(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValueOrUnset(t *testing.T) {
	if got := valueOrUnset("  "); got != "(unset)" {
		t.Errorf("blank value = %q", got)
	}
	if got := valueOrUnset("x"); got != "x" {
		t.Errorf("set value = %q", got)
	}
}

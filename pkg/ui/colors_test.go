package ui

import "testing"

func TestWrapAddsStyleAndReset(t *testing.T) {
	c := NewANSIColors()
	got := c.Wrap(c.Red, "err")
	want := c.Red + "err" + c.Reset
	if got != want {
		t.Fatalf("Wrap() = %q, want %q", got, want)
	}
}

func TestWrapLeavesUnstyledTextAlone(t *testing.T) {
	c := NewANSIColors()
	if got := c.Wrap("", "plain"); got != "plain" {
		t.Fatalf("Wrap() = %q, want %q", got, "plain")
	}
}

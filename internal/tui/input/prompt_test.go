package input

import "testing"

var testCommands = []PromptCommand{
	{Name: "/goto", Args: "<date>", Description: "Jump to a date"},
	{Name: "/today", Description: "Jump to today"},
	{Name: "/theme", Args: "<name>", Description: "Switch theme"},
}

func TestPromptMatchingCommands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "no_slash", input: "goto", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "full", input: "/goto", want: 1},
		{name: "shared_prefix", input: "/t", want: 2},
		{name: "case_insensitive", input: "/TOD", want: 1},
		{name: "leading_space", input: "  /g", want: 1},
		{name: "with_space", input: "/goto x", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PromptMatchingCommands(tt.input, testCommands)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestPromptAutocomplete(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "/g", want: "/goto ", ok: true},
		{input: "/to", want: "/today", ok: true},
		{input: "/x", ok: false},
	}

	for _, tt := range tests {
		got, ok := PromptAutocomplete(tt.input, testCommands)
		if ok != tt.ok || got != tt.want {
			t.Errorf("PromptAutocomplete(%q) = %q, %t, want %q, %t", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		wantName string
		wantArg  string
	}{
		{line: "/goto 1403/01/15", wantName: "/goto", wantArg: "1403/01/15"},
		{line: "  /TODAY  ", wantName: "/today", wantArg: ""},
		{line: "/theme   latte ", wantName: "/theme", wantArg: "latte"},
		{line: "tomorrow", wantName: "/goto", wantArg: "tomorrow"},
		{line: "", wantName: "/goto", wantArg: ""},
	}

	for _, tt := range tests {
		name, arg := Parse(tt.line, "/goto")
		if name != tt.wantName || arg != tt.wantArg {
			t.Errorf("Parse(%q) = %q, %q, want %q, %q", tt.line, name, arg, tt.wantName, tt.wantArg)
		}
	}
}

func TestUsage(t *testing.T) {
	if got := testCommands[0].Usage(); got != "/goto <date>" {
		t.Errorf("Usage() = %q", got)
	}
	if got := testCommands[1].Usage(); got != "/today" {
		t.Errorf("Usage() = %q", got)
	}
}

package heuristics

import "testing"

func TestCleanHeadingText(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"  2.1   Scope  of Work ", "2.1 Scope of Work"},
		{"Tab\tand\nnewline", "Tab and newline"},
		{"", ""},
		{"   ", ""},
		{"already clean", "already clean"},
	}
	for _, tt := range tests {
		if got := CleanHeadingText(tt.in); got != tt.out {
			t.Errorf("CleanHeadingText(%q): got %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		in  string
		out bool
	}{
		{"42", true},
		{"0", true},
		{"", false},
		{"4.2", false},
		{"42a", false},
		{" 42", false},
	}
	for _, tt := range tests {
		if got := IsNumeric(tt.in); got != tt.out {
			t.Errorf("IsNumeric(%q): got %v, want %v", tt.in, got, tt.out)
		}
	}
}

func TestIsAllCaps(t *testing.T) {
	tests := []struct {
		in  string
		out bool
	}{
		{"INTRODUCTION", true},
		{"CHAPTER 1", true},
		{"Chapter", false},
		{"chapter", false},
		{"123", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsAllCaps(tt.in); got != tt.out {
			t.Errorf("IsAllCaps(%q): got %v, want %v", tt.in, got, tt.out)
		}
	}
}

func TestIsTitleCase(t *testing.T) {
	tests := []struct {
		in  string
		out bool
	}{
		{"Future Work", true},
		{"Future work", false},
		{"FUTURE WORK", false},
		{"future work", false},
		{"Scope Of Work 2", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTitleCase(tt.in); got != tt.out {
			t.Errorf("IsTitleCase(%q): got %v, want %v", tt.in, got, tt.out)
		}
	}
}

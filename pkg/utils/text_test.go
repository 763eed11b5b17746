package utils

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "OnlySpaces", input: "   ", expected: ""},
		{name: "InternalRuns", input: "123  Main   Rd", expected: "123 Main Rd"},
		{name: "TabsAndNewlines", input: "\tGeneral\n podiatry ", expected: "General podiatry"},
		{name: "AlreadyClean", input: "Example Clinic", expected: "Example Clinic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tt.input); got != tt.expected {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "Formatted", input: "(07) 1234 5678", expected: "0712345678"},
		{name: "TelPrefixStripped", input: "+61 7 1234 5678", expected: "61712345678"},
		{name: "NoDigits", input: "call us", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DigitsOnly(tt.input); got != tt.expected {
				t.Errorf("DigitsOnly(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

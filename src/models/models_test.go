package models

import (
	"context"
	"testing"
)

func TestNewDummyLLMDefaultPrefix(t *testing.T) {
	llm := NewDummyLLM("")
	got, err := llm.Generate(context.Background(), "line1\nline2")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "Dummy response: line2" {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestNewDummyLLMUsesLastNonEmptyLine(t *testing.T) {
	llm := NewDummyLLM("Prefix:")
	got, err := llm.Generate(context.Background(), "first\n\nsecond\n  \nthird")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "Prefix: third" {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestDummyLLMHandlesEmptyPrompt(t *testing.T) {
	llm := NewDummyLLM("Prefix")
	got, err := llm.Generate(context.Background(), "\n\n\n")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "Prefix <empty prompt>" {
		t.Fatalf("unexpected response: %q", got)
	}
}

func TestNewModelErrorsOnUnknownProvider(t *testing.T) {
	if _, err := NewModel(context.Background(), "unknown", "model"); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNewModelDispatch(t *testing.T) {
	cases := []struct {
		name     string
		provider string
	}{
		{"empty defaults to command", ""},
		{"command", "command"},
		{"cli alias", "cli"},
		{"dummy", "dummy"},
		{"openai", "openai"},
		{"anthropic", "anthropic"},
		{"claude alias", "claude"},
		{"mixed case", " Command "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewModel(context.Background(), tc.provider, "claude")
			if err != nil {
				t.Fatalf("NewModel(%q) returned error: %v", tc.provider, err)
			}
			if m == nil {
				t.Fatalf("NewModel(%q) returned nil model", tc.provider)
			}
		})
	}
}

func TestNewModelCommandDefaultsExecutable(t *testing.T) {
	m, err := NewModel(context.Background(), "command", "")
	if err != nil {
		t.Fatalf("NewModel returned error: %v", err)
	}
	cm, ok := m.(*CommandModel)
	if !ok {
		t.Fatalf("expected *CommandModel, got %T", m)
	}
	if cm.Command != "claude" {
		t.Fatalf("expected default executable claude, got %q", cm.Command)
	}
}

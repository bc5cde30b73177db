package cliargs

import (
	"reflect"
	"testing"
)

func TestParseSeeded(t *testing.T) {
	spec := Spec{
		Bool:   map[string]string{"option": "o"},
		String: map[string]string{"string": "s"},
	}
	arguments := []string{"prog", "-o", "two", "-s", "test", "three", "--", "-s"}

	result, err := Parse(spec, arguments)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if !result.Bools["option"] {
		t.Errorf("option = false, want true")
	}
	if result.Strings["string"] != "test" {
		t.Errorf("string = %q, want %q", result.Strings["string"], "test")
	}

	wantPositional := []string{"prog", "two", "three", "-s"}
	if !reflect.DeepEqual(result.Positional, wantPositional) {
		t.Errorf("positional = %v, want %v", result.Positional, wantPositional)
	}
}

func TestParseLongForms(t *testing.T) {
	spec := Spec{
		Bool:   map[string]string{"cleanup": "x", "yes": "y"},
		String: map[string]string{"device": "d", "storage": "s"},
	}
	arguments := []string{"--device", "SN:abc", "--cleanup", "src", "dst"}

	result, err := Parse(spec, arguments)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Strings["device"] != "SN:abc" {
		t.Errorf("device = %q", result.Strings["device"])
	}
	if !result.Bools["cleanup"] {
		t.Error("cleanup = false, want true")
	}
	if result.Bools["yes"] {
		t.Error("yes = true, want false")
	}
	wantPositional := []string{"src", "dst"}
	if !reflect.DeepEqual(result.Positional, wantPositional) {
		t.Errorf("positional = %v, want %v", result.Positional, wantPositional)
	}
}

func TestParseUnknownOptionIsSyntaxError(t *testing.T) {
	spec := Spec{Bool: map[string]string{"yes": "y"}}
	_, err := Parse(spec, []string{"--bogus"})
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Errorf("expected *SyntaxError, got %T", err)
	}
}

func TestParseTerminatorStopsOptionParsing(t *testing.T) {
	spec := Spec{Bool: map[string]string{"yes": "y"}}
	result, err := Parse(spec, []string{"a", "--", "-y", "--yes"})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Bools["yes"] {
		t.Error("yes should not be set after terminator")
	}
	want := []string{"a", "-y", "--yes"}
	if !reflect.DeepEqual(result.Positional, want) {
		t.Errorf("positional = %v, want %v", result.Positional, want)
	}
}

func TestParseMissingValueIsSyntaxError(t *testing.T) {
	spec := Spec{String: map[string]string{"device": "d"}}
	_, err := Parse(spec, []string{"--device"})
	if err == nil {
		t.Fatal("expected a syntax error")
	}
}

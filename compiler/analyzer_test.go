package compiler

import (
	"strings"
	"testing"
)

func TestAnalyzeSimpleProgram(t *testing.T) {
	prog := parseSource(t, "var x = 5\nprint x\n")
	a := NewAnalyzer().Analyze(prog)

	if a.TotalStatements != 2 {
		t.Errorf("TotalStatements = %d, want 2", a.TotalStatements)
	}
	if len(a.Variables) != 1 || a.Variables[0] != "x" {
		t.Errorf("Variables = %v, want [x]", a.Variables)
	}
	if len(a.Functions) != 0 {
		t.Errorf("Functions = %v, want none", a.Functions)
	}
	if a.ComplexityScore != 0 {
		t.Errorf("ComplexityScore = %d, want 0", a.ComplexityScore)
	}
	if !strings.Contains(a.Description, "simple program") {
		t.Errorf("description %q should call the program simple", a.Description)
	}
}

func TestAnalyzeScoresAndStructures(t *testing.T) {
	src := "" +
		"function greet(name):\n" + // function +5
		"    print \"hi \" + name\n" + // binary +1
		"var i = 0\n" +
		"while i < 3:\n" + // while +3, binary +1
		"    greet(\"world\")\n" + // call +2
		"    i = i + 1\n" + // binary +1
		"if i == 3:\n" + // if +2, binary +1
		"    print \"done\"\n"
	a := NewAnalyzer().Analyze(parseSource(t, src))

	if a.TotalStatements != 4 {
		t.Errorf("TotalStatements = %d, want 4 top-level statements", a.TotalStatements)
	}
	if a.ComplexityScore != 16 {
		t.Errorf("ComplexityScore = %d, want 16", a.ComplexityScore)
	}
	if len(a.Functions) != 1 || a.Functions[0] != "greet" {
		t.Errorf("Functions = %v, want [greet]", a.Functions)
	}
	wantCtl := []string{"while", "if"}
	if len(a.ControlStructures) != len(wantCtl) {
		t.Fatalf("ControlStructures = %v, want %v", a.ControlStructures, wantCtl)
	}
	for i, c := range wantCtl {
		if a.ControlStructures[i] != c {
			t.Errorf("ControlStructures[%d] = %q, want %q", i, a.ControlStructures[i], c)
		}
	}
	if !strings.Contains(a.Description, "advanced logic") {
		t.Errorf("score 16 should describe as complex: %q", a.Description)
	}
}

func TestAnalyzeVariablesInFirstMentionOrder(t *testing.T) {
	src := "var b = 1\nvar a = b\nvar c = a + b\n"
	a := NewAnalyzer().Analyze(parseSource(t, src))
	want := []string{"b", "a", "c"}
	if len(a.Variables) != len(want) {
		t.Fatalf("Variables = %v, want %v", a.Variables, want)
	}
	for i, name := range want {
		if a.Variables[i] != name {
			t.Errorf("Variables[%d] = %q, want %q", i, a.Variables[i], name)
		}
	}
}

func TestAnalyzeForLoopCountsVariable(t *testing.T) {
	a := NewAnalyzer().Analyze(parseSource(t, "for i = 1 : 10:\n    print i\n"))
	if len(a.Variables) != 1 || a.Variables[0] != "i" {
		t.Errorf("Variables = %v, want [i]", a.Variables)
	}
	if a.ComplexityScore != 3 {
		t.Errorf("ComplexityScore = %d, want 3", a.ComplexityScore)
	}
	if len(a.ControlStructures) != 1 || a.ControlStructures[0] != "for" {
		t.Errorf("ControlStructures = %v, want [for]", a.ControlStructures)
	}
}

func TestAnalyzeDescriptionLocalized(t *testing.T) {
	prog := parseSource(t, "var x = 5\n")

	an := NewAnalyzer()
	an.SetLanguage("hindi")
	hindi := an.Analyze(prog)
	if !strings.Contains(hindi.Description, "प्रोग्राम") {
		t.Errorf("hindi description not localized: %q", hindi.Description)
	}

	an.SetLanguage("no-such-language")
	fallback := an.Analyze(prog)
	if !strings.Contains(fallback.Description, "This program contains") {
		t.Errorf("unknown language should fall back to english: %q", fallback.Description)
	}
}

func TestAnalyzeDuplicateControlStructuresListedOnceInDescription(t *testing.T) {
	src := "" +
		"if a:\n" +
		"    print 1\n" +
		"if b:\n" +
		"    print 2\n"
	a := NewAnalyzer().Analyze(parseSource(t, src))
	if len(a.ControlStructures) != 2 {
		t.Fatalf("ControlStructures = %v, want two entries", a.ControlStructures)
	}
	if strings.Count(a.Description, "if") != 1 {
		t.Errorf("description should mention if once: %q", a.Description)
	}
}

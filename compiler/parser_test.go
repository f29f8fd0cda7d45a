package compiler

import (
	"errors"
	"strings"
	"testing"
)

func parseSource(t *testing.T, src string) *Program {
	t.Helper()
	tokens, diags := Tokenize(src, spellingsFor(t, "english"))
	if len(diags) != 0 {
		t.Fatalf("lexer diagnostics: %v", diags)
	}
	prog, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func parseError(t *testing.T, src string) *SyntaxError {
	t.Helper()
	tokens, _ := Tokenize(src, spellingsFor(t, "english"))
	prog, err := Parse(tokens)
	if err == nil {
		t.Fatalf("expected a syntax error, got program %+v", prog)
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if prog != nil {
		t.Fatalf("error must not come with a partial AST")
	}
	return serr
}

func TestParseDeclarationAndAssignment(t *testing.T) {
	prog := parseSource(t, "var x = 5\nx = x + 1\n")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*Assignment)
	if !ok || !decl.IsDecl || decl.Name != "x" {
		t.Fatalf("statement 0: %+v, want declaration of x", prog.Statements[0])
	}
	assign, ok := prog.Statements[1].(*Assignment)
	if !ok || assign.IsDecl || assign.Name != "x" {
		t.Fatalf("statement 1: %+v, want plain assignment to x", prog.Statements[1])
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := parseSource(t, "print 1 + 2 * 3\n")
	stmt := prog.Statements[0].(*Print)
	add, ok := stmt.Value.(*BinaryOp)
	if !ok || add.Op != "+" {
		t.Fatalf("root: %+v, want +", stmt.Value)
	}
	mul, ok := add.Right.(*BinaryOp)
	if !ok || mul.Op != "*" {
		t.Fatalf("right of +: %+v, want *", add.Right)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	prog := parseSource(t, "print 10 - 3 - 2\n")
	outer := prog.Statements[0].(*Print).Value.(*BinaryOp)
	inner, ok := outer.Left.(*BinaryOp)
	if !ok || inner.Op != "-" {
		t.Fatalf("10 - 3 - 2 must group as (10 - 3) - 2, got left %+v", outer.Left)
	}
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	prog := parseSource(t, "print (1 + 2) * 3\n")
	mul := prog.Statements[0].(*Print).Value.(*BinaryOp)
	if mul.Op != "*" {
		t.Fatalf("root op %q, want *", mul.Op)
	}
	if add, ok := mul.Left.(*BinaryOp); !ok || add.Op != "+" {
		t.Fatalf("left of *: %+v, want parenthesized +", mul.Left)
	}
}

func TestParseLogicalPrecedence(t *testing.T) {
	// or binds loosest: a and b or c == (a and b) or c
	prog := parseSource(t, "print a and b or c\n")
	or := prog.Statements[0].(*Print).Value.(*BinaryOp)
	if or.Op != "or" {
		t.Fatalf("root op %q, want or", or.Op)
	}
	if and, ok := or.Left.(*BinaryOp); !ok || and.Op != "and" {
		t.Fatalf("left of or: %+v, want and", or.Left)
	}
}

func TestParseUnary(t *testing.T) {
	// not binds tighter than ==: (not x) == 5
	prog := parseSource(t, "print not x == 5\nprint -y\n")
	eq := prog.Statements[0].(*Print).Value.(*BinaryOp)
	if eq.Op != "==" {
		t.Fatalf("root op %q, want ==", eq.Op)
	}
	if not, ok := eq.Left.(*UnaryOp); !ok || not.Op != "not" {
		t.Fatalf("left of ==: %+v, want not", eq.Left)
	}
	neg := prog.Statements[1].(*Print).Value.(*UnaryOp)
	if neg.Op != "-" {
		t.Fatalf("got %q, want -", neg.Op)
	}
}

func TestParseIfBlockByColumn(t *testing.T) {
	src := "" +
		"if x > 5:\n" +
		"    print \"big\"\n" +
		"    print \"still big\"\n" +
		"print \"always\"\n"
	prog := parseSource(t, src)
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d top-level statements, want 2", len(prog.Statements))
	}
	ifStmt := prog.Statements[0].(*If)
	if len(ifStmt.Then) != 2 {
		t.Fatalf("then block has %d statements, want 2", len(ifStmt.Then))
	}
	if ifStmt.Else != nil {
		t.Fatalf("unexpected else block")
	}
}

func TestParseElseBindsByColumn(t *testing.T) {
	src := "" +
		"if a:\n" +
		"    if b:\n" +
		"        print 1\n" +
		"    else:\n" +
		"        print 2\n" +
		"else:\n" +
		"    print 3\n"
	prog := parseSource(t, src)
	outer := prog.Statements[0].(*If)
	if len(outer.Then) != 1 || len(outer.Else) != 1 {
		t.Fatalf("outer if: then %d, else %d; want 1 and 1", len(outer.Then), len(outer.Else))
	}
	inner := outer.Then[0].(*If)
	if len(inner.Then) != 1 || len(inner.Else) != 1 {
		t.Fatalf("inner if: then %d, else %d; want 1 and 1", len(inner.Then), len(inner.Else))
	}
}

func TestParseWhile(t *testing.T) {
	prog := parseSource(t, "while x < 10:\n    x = x + 1\n")
	loop := prog.Statements[0].(*While)
	if len(loop.Body) != 1 {
		t.Fatalf("body has %d statements, want 1", len(loop.Body))
	}
}

func TestParseForRange(t *testing.T) {
	prog := parseSource(t, "for i = 0 : 9:\n    print i\n")
	loop := prog.Statements[0].(*For)
	if loop.Var != "i" {
		t.Fatalf("loop variable %q, want i", loop.Var)
	}
	if _, ok := loop.Start.(*Literal); !ok {
		t.Fatalf("start: %+v", loop.Start)
	}
	if _, ok := loop.End.(*Literal); !ok {
		t.Fatalf("end: %+v", loop.End)
	}
	if len(loop.Body) != 1 {
		t.Fatalf("body has %d statements, want 1", len(loop.Body))
	}
}

func TestParseFunctionAndCall(t *testing.T) {
	src := "" +
		"function add(a, b):\n" +
		"    return a + b\n" +
		"print add(2, 3)\n"
	prog := parseSource(t, src)
	fn := prog.Statements[0].(*Function)
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("function: %+v", fn)
	}
	ret := fn.Body[0].(*Return)
	if ret.Value == nil {
		t.Fatalf("return has no value")
	}
	call := prog.Statements[1].(*Print).Value.(*Call)
	if call.Name != "add" || len(call.Args) != 2 {
		t.Fatalf("call: %+v", call)
	}
}

func TestParseBareReturn(t *testing.T) {
	prog := parseSource(t, "function f():\n    return\n")
	ret := prog.Statements[0].(*Function).Body[0].(*Return)
	if ret.Value != nil {
		t.Fatalf("bare return carries a value: %+v", ret.Value)
	}
}

func TestParseInputCall(t *testing.T) {
	prog := parseSource(t, "var name = input()\n")
	call, ok := prog.Statements[0].(*Assignment).Value.(*Call)
	if !ok || call.Name != "input" || len(call.Args) != 0 {
		t.Fatalf("input(): %+v", prog.Statements[0].(*Assignment).Value)
	}
}

func TestParseBlankLinesIgnored(t *testing.T) {
	prog := parseSource(t, "\n\nvar x = 1\n\n\nprint x\n\n")
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
}

func TestParseLastLineWithoutNewline(t *testing.T) {
	prog := parseSource(t, "print 42")
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
}

func TestSyntaxErrorReportsLine(t *testing.T) {
	serr := parseError(t, "var x = 1\nvar = 5\n")
	if serr.Line != 2 {
		t.Fatalf("error on line %d, want 2", serr.Line)
	}
	if !strings.Contains(serr.Error(), "line 2") {
		t.Fatalf("message %q does not name the line", serr.Error())
	}
}

func TestSyntaxErrorAtEndOfInput(t *testing.T) {
	serr := parseError(t, "var x =")
	if !serr.AtEOF {
		t.Fatalf("error %+v, want AtEOF", serr)
	}
	if !strings.Contains(serr.Error(), "end of input") {
		t.Fatalf("message %q does not mention end of input", serr.Error())
	}
}

func TestUnsupportedKeywordsRejected(t *testing.T) {
	for _, src := range []string{"break\n", "continue\n", "class Foo\n", "import x\n"} {
		tokens, _ := Tokenize(src, spellingsFor(t, "english"))
		if _, err := Parse(tokens); err == nil {
			t.Errorf("%q: expected a syntax error", src)
		}
	}
}

func TestDanglingElseRejected(t *testing.T) {
	serr := parseError(t, "print 1\nelse:\n    print 2\n")
	if serr.Kind != TokenElse {
		t.Fatalf("error token %s, want ELSE", serr.Kind)
	}
}

func TestMissingColonRejected(t *testing.T) {
	parseError(t, "if x > 5\n    print x\n")
}

func TestHindiSourceParses(t *testing.T) {
	src := "" +
		"badal x = 10\n" +
		"agar x > 5:\n" +
		"    dikhaao \"bada\"\n" +
		"warna:\n" +
		"    dikhaao \"chhota\"\n"
	tokens, diags := Tokenize(src, spellingsFor(t, "hindi"))
	if len(diags) != 0 {
		t.Fatalf("lexer diagnostics: %v", diags)
	}
	prog, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ifStmt := prog.Statements[1].(*If)
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		t.Fatalf("if: then %d, else %d; want 1 and 1", len(ifStmt.Then), len(ifStmt.Else))
	}
}

package bytecode

import (
	"fmt"

	"github.com/bhasha-lang/bhasha/compiler"
)

// CompileError reports a name resolution failure during code generation.
type CompileError struct {
	Message string
	Line    int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at line %d: %s", e.Line, e.Message)
}

// Compile lowers an AST to a Program. Variables resolve to flat slots: a
// declaration allocates a slot, a re-declaration of the same name reuses
// it, and reading or assigning an undeclared name is a CompileError. A call
// to a name with no function definition seen so far compiles to
// CALL_BUILTIN and is resolved, or rejected, at run time.
func Compile(ast *compiler.Program) (*Program, error) {
	c := &codegen{prog: NewProgram()}
	for _, stmt := range ast.Statements {
		if err := c.stmt(stmt); err != nil {
			return nil, err
		}
	}
	c.prog.Emit(OpHalt, c.lastLine)
	return c.prog, nil
}

type codegen struct {
	prog     *Program
	lastLine int
}

func (c *codegen) errf(line int, format string, args ...any) error {
	return &CompileError{Message: fmt.Sprintf(format, args...), Line: line}
}

func (c *codegen) stmts(stmts []compiler.Stmt) error {
	for _, stmt := range stmts {
		if err := c.stmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *codegen) stmt(stmt compiler.Stmt) error {
	c.lastLine = stmt.Pos()
	switch s := stmt.(type) {
	case *compiler.Assignment:
		return c.assignment(s)
	case *compiler.If:
		return c.ifStmt(s)
	case *compiler.While:
		return c.whileStmt(s)
	case *compiler.For:
		return c.forStmt(s)
	case *compiler.Function:
		return c.function(s)
	case *compiler.Return:
		return c.returnStmt(s)
	case *compiler.Print:
		if err := c.expr(s.Value); err != nil {
			return err
		}
		c.prog.Emit(OpPrint, s.Line)
		return nil
	case *compiler.ExprStmt:
		if err := c.expr(s.Value); err != nil {
			return err
		}
		c.prog.Emit(OpPop, s.Line)
		return nil
	}
	return c.errf(stmt.Pos(), "cannot compile statement %T", stmt)
}

func (c *codegen) assignment(s *compiler.Assignment) error {
	if err := c.expr(s.Value); err != nil {
		return err
	}
	if s.IsDecl {
		c.prog.EmitArg(OpStoreVar, c.prog.DeclareSlot(s.Name), s.Line)
		return nil
	}
	slot, ok := c.prog.Slot(s.Name)
	if !ok {
		return c.errf(s.Line, "variable '%s' not defined", s.Name)
	}
	c.prog.EmitArg(OpStoreVar, slot, s.Line)
	return nil
}

func (c *codegen) ifStmt(s *compiler.If) error {
	if err := c.expr(s.Cond); err != nil {
		return err
	}
	elseJump := c.prog.EmitJump(OpJumpIfFalse, s.Line)
	if err := c.stmts(s.Then); err != nil {
		return err
	}
	if len(s.Else) == 0 {
		c.prog.PatchJump(elseJump)
		return nil
	}
	endJump := c.prog.EmitJump(OpJump, s.Line)
	c.prog.PatchJump(elseJump)
	if err := c.stmts(s.Else); err != nil {
		return err
	}
	c.prog.PatchJump(endJump)
	return nil
}

func (c *codegen) whileStmt(s *compiler.While) error {
	loopStart := len(c.prog.Instructions)
	if err := c.expr(s.Cond); err != nil {
		return err
	}
	exitJump := c.prog.EmitJump(OpJumpIfFalse, s.Line)
	if err := c.stmts(s.Body); err != nil {
		return err
	}
	c.prog.EmitArg(OpJump, loopStart, s.Line)
	c.prog.PatchJump(exitJump)
	return nil
}

// forStmt compiles the inclusive range loop. The bound expression is
// re-evaluated before every iteration.
func (c *codegen) forStmt(s *compiler.For) error {
	if err := c.expr(s.Start); err != nil {
		return err
	}
	slot := c.prog.DeclareSlot(s.Var)
	c.prog.EmitArg(OpStoreVar, slot, s.Line)

	loopStart := len(c.prog.Instructions)
	c.prog.EmitArg(OpLoadVar, slot, s.Line)
	if err := c.expr(s.End); err != nil {
		return err
	}
	c.prog.EmitSym(OpBinary, "<=", s.Line)
	exitJump := c.prog.EmitJump(OpJumpIfFalse, s.Line)

	if err := c.stmts(s.Body); err != nil {
		return err
	}

	c.prog.EmitArg(OpLoadVar, slot, s.Line)
	c.prog.EmitArg(OpLoadConst, c.prog.AddConstant(int64(1)), s.Line)
	c.prog.EmitSym(OpBinary, "+", s.Line)
	c.prog.EmitArg(OpStoreVar, slot, s.Line)
	c.prog.EmitArg(OpJump, loopStart, s.Line)
	c.prog.PatchJump(exitJump)
	return nil
}

// function compiles a definition in place. A jump over the body keeps
// straight-line execution from falling into it; CALL enters at the
// FUNCTION_START prologue, which binds arguments from the stack into the
// parameter slots, last argument first.
func (c *codegen) function(s *compiler.Function) error {
	skipJump := c.prog.EmitJump(OpJump, s.Line)
	addr := len(c.prog.Instructions)
	c.prog.DefineFunction(s.Name, addr, len(s.Params))

	c.prog.EmitArg(OpFunctionStart, len(s.Params), s.Line)
	for i := len(s.Params) - 1; i >= 0; i-- {
		c.prog.EmitArg(OpStoreVar, c.prog.DeclareSlot(s.Params[i]), s.Line)
	}

	if err := c.stmts(s.Body); err != nil {
		return err
	}

	// Implicit null return for bodies that fall off the end.
	c.prog.EmitArg(OpLoadConst, c.prog.AddConstant(nil), s.Line)
	c.prog.Emit(OpReturn, s.Line)
	c.prog.PatchJump(skipJump)
	return nil
}

func (c *codegen) returnStmt(s *compiler.Return) error {
	if s.Value != nil {
		if err := c.expr(s.Value); err != nil {
			return err
		}
	} else {
		c.prog.EmitArg(OpLoadConst, c.prog.AddConstant(nil), s.Line)
	}
	c.prog.Emit(OpReturn, s.Line)
	return nil
}

func (c *codegen) expr(expr compiler.Expr) error {
	switch e := expr.(type) {
	case *compiler.Literal:
		c.prog.EmitArg(OpLoadConst, c.prog.AddConstant(e.Value), e.Line)
		return nil

	case *compiler.Identifier:
		slot, ok := c.prog.Slot(e.Name)
		if !ok {
			return c.errf(e.Line, "variable '%s' not defined", e.Name)
		}
		c.prog.EmitArg(OpLoadVar, slot, e.Line)
		return nil

	case *compiler.BinaryOp:
		if err := c.expr(e.Left); err != nil {
			return err
		}
		if err := c.expr(e.Right); err != nil {
			return err
		}
		c.prog.EmitSym(OpBinary, e.Op, e.Line)
		return nil

	case *compiler.UnaryOp:
		if err := c.expr(e.Operand); err != nil {
			return err
		}
		c.prog.EmitSym(OpUnary, e.Op, e.Line)
		return nil

	case *compiler.Call:
		for _, arg := range e.Args {
			if err := c.expr(arg); err != nil {
				return err
			}
		}
		if fn, ok := c.prog.Function(e.Name); ok {
			if len(e.Args) != fn.NumParams {
				return c.errf(e.Line, "function '%s' takes %d arguments, got %d",
					e.Name, fn.NumParams, len(e.Args))
			}
			c.prog.EmitArg(OpCall, fn.Addr, e.Line)
			return nil
		}
		c.prog.EmitSym(OpCallBuiltin, e.Name, e.Line)
		return nil
	}
	return c.errf(expr.Pos(), "cannot compile expression %T", expr)
}

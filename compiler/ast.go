package compiler

// ---------------------------------------------------------------------------
// AST: a closed set of node kinds shared by every consumer
// ---------------------------------------------------------------------------
//
// Consumers (the bytecode compiler, the analyzer) dispatch over these nodes
// with an exhaustive type switch; there is no default case a correct program
// may rely on. Each node exclusively owns its children.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() int // 1-based source line
	node()    // marker method
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmt() // marker method
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr() // marker method
}

// Program is the root node.
type Program struct {
	Statements []Stmt
}

func (n *Program) Pos() int {
	if len(n.Statements) > 0 {
		return n.Statements[0].Pos()
	}
	return 1
}
func (n *Program) node() {}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Assignment is `var x = expr` (IsDecl) or `x = expr`.
type Assignment struct {
	Line   int
	Name   string
	Value  Expr
	IsDecl bool
}

func (n *Assignment) Pos() int { return n.Line }
func (n *Assignment) node()    {}
func (n *Assignment) stmt()    {}

// If is a conditional with an optional else block.
type If struct {
	Line int
	Cond Expr
	Then []Stmt
	Else []Stmt // nil when absent
}

func (n *If) Pos() int { return n.Line }
func (n *If) node()    {}
func (n *If) stmt()    {}

// While is a pre-tested loop.
type While struct {
	Line int
	Cond Expr
	Body []Stmt
}

func (n *While) Pos() int { return n.Line }
func (n *While) node()    {}
func (n *While) stmt()    {}

// For is `for i = start : end : body`, an inclusive range. The bound is
// re-evaluated every iteration.
type For struct {
	Line  int
	Var   string
	Start Expr
	End   Expr
	Body  []Stmt
}

func (n *For) Pos() int { return n.Line }
func (n *For) node()    {}
func (n *For) stmt()    {}

// Function is a named function definition.
type Function struct {
	Line   int
	Name   string
	Params []string
	Body   []Stmt
}

func (n *Function) Pos() int { return n.Line }
func (n *Function) node()    {}
func (n *Function) stmt()    {}

// Return exits the current function, optionally with a value.
type Return struct {
	Line  int
	Value Expr // nil for a bare return
}

func (n *Return) Pos() int { return n.Line }
func (n *Return) node()    {}
func (n *Return) stmt()    {}

// Print appends an expression's textual form to the program output.
type Print struct {
	Line  int
	Value Expr
}

func (n *Print) Pos() int { return n.Line }
func (n *Print) node()    {}
func (n *Print) stmt()    {}

// ExprStmt is a bare expression whose value is discarded.
type ExprStmt struct {
	Line  int
	Value Expr
}

func (n *ExprStmt) Pos() int { return n.Line }
func (n *ExprStmt) node()    {}
func (n *ExprStmt) stmt()    {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// BinaryOp applies an operator to two operands. Op is the canonical operator
// symbol: + - * / % == != < <= > >= and or.
type BinaryOp struct {
	Line  int
	Left  Expr
	Op    string
	Right Expr
}

func (n *BinaryOp) Pos() int { return n.Line }
func (n *BinaryOp) node()    {}
func (n *BinaryOp) expr()    {}

// UnaryOp applies "-" or "not" to one operand.
type UnaryOp struct {
	Line    int
	Op      string
	Operand Expr
}

func (n *UnaryOp) Pos() int { return n.Line }
func (n *UnaryOp) node()    {}
func (n *UnaryOp) expr()    {}

// Literal is a number, string, boolean or null constant. Value is one of
// int64, float64, string, bool or nil.
type Literal struct {
	Line  int
	Value any
}

func (n *Literal) Pos() int { return n.Line }
func (n *Literal) node()    {}
func (n *Literal) expr()    {}

// Identifier is a variable reference.
type Identifier struct {
	Line int
	Name string
}

func (n *Identifier) Pos() int { return n.Line }
func (n *Identifier) node()    {}
func (n *Identifier) expr()    {}

// Call invokes a user function or a built-in by name.
type Call struct {
	Line int
	Name string
	Args []Expr
}

func (n *Call) Pos() int { return n.Line }
func (n *Call) node()    {}
func (n *Call) expr()    {}

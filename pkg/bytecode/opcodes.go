package bytecode

import "fmt"

// Opcode represents a bytecode instruction kind.
type Opcode byte

const (
	// Constants and variables
	OpLoadConst Opcode = iota // Push constant from pool: LOAD_CONST <index>
	OpLoadVar                 // Push variable slot: LOAD_VAR <slot>
	OpStoreVar                // Pop and store to slot: STORE_VAR <slot>

	// Operators
	OpBinary // Pop two, apply operator, push result: BINARY_OP <op>
	OpUnary  // Pop one, apply operator, push result: UNARY_OP <op>

	// Control flow. Jump targets are absolute instruction indices.
	OpJump        // Unconditional jump: JUMP <index>
	OpJumpIfFalse // Pop, jump if falsy: JUMP_IF_FALSE <index>
	OpJumpIfTrue  // Pop, jump if truthy: JUMP_IF_TRUE <index>

	// I/O
	OpPrint // Pop, append textual form to program output
	OpInput // Push next input line, or "" when exhausted

	// Stack and termination
	OpPop  // Pop and discard
	OpHalt // Stop execution

	// Functions
	OpFunctionStart // Prologue marker: FUNCTION_START <nparams>
	OpReturn        // Pop return value, pop return address
	OpCall          // Push return address, jump: CALL <index>
	OpCallBuiltin   // Invoke built-in by name: CALL_BUILTIN <name>
)

// opArgKind says how an instruction's operand is encoded.
type opArgKind int

const (
	argNone opArgKind = iota
	argInt            // Instruction.Arg
	argSym            // Instruction.Sym
)

type opInfo struct {
	Name string
	Arg  opArgKind
}

var opcodes = map[Opcode]opInfo{
	OpLoadConst:     {"LOAD_CONST", argInt},
	OpLoadVar:       {"LOAD_VAR", argInt},
	OpStoreVar:      {"STORE_VAR", argInt},
	OpBinary:        {"BINARY_OP", argSym},
	OpUnary:         {"UNARY_OP", argSym},
	OpJump:          {"JUMP", argInt},
	OpJumpIfFalse:   {"JUMP_IF_FALSE", argInt},
	OpJumpIfTrue:    {"JUMP_IF_TRUE", argInt},
	OpPrint:         {"PRINT", argNone},
	OpInput:         {"INPUT", argNone},
	OpPop:           {"POP", argNone},
	OpHalt:          {"HALT", argNone},
	OpFunctionStart: {"FUNCTION_START", argInt},
	OpReturn:        {"RETURN", argNone},
	OpCall:          {"CALL", argInt},
	OpCallBuiltin:   {"CALL_BUILTIN", argSym},
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("Opcode(%d)", byte(op))
}

// Instruction is one bytecode instruction. Int-argumented opcodes use Arg,
// symbol-argumented opcodes (operators, built-in calls) use Sym.
type Instruction struct {
	Op   Opcode `cbor:"op"`
	Arg  int    `cbor:"arg,omitempty"`
	Sym  string `cbor:"sym,omitempty"`
	Line int    `cbor:"line,omitempty"`
}

func (in Instruction) String() string {
	switch opcodes[in.Op].Arg {
	case argInt:
		return fmt.Sprintf("%s %d", in.Op, in.Arg)
	case argSym:
		return fmt.Sprintf("%s %s", in.Op, in.Sym)
	}
	return in.Op.String()
}

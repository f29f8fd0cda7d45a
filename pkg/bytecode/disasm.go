package bytecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Listing returns the human-readable form of a compiled program: constant
// pool, variable slots, function table, then the instruction stream with
// absolute indices. Jump operands refer to those indices.
func (p *Program) Listing() string {
	var sb strings.Builder

	sb.WriteString("=== CONSTANTS ===\n")
	for i, c := range p.Constants {
		sb.WriteString(fmt.Sprintf("%d: %s\n", i, constantRepr(c)))
	}

	sb.WriteString("\n=== VARIABLES ===\n")
	for i, name := range p.Slots {
		sb.WriteString(fmt.Sprintf("%d: %s\n", i, name))
	}

	sb.WriteString("\n=== FUNCTIONS ===\n")
	for _, fn := range p.Functions {
		sb.WriteString(fmt.Sprintf("%s: %d\n", fn.Name, fn.Addr))
	}

	sb.WriteString("\n=== BYTECODE ===\n")
	for i, in := range p.Instructions {
		sb.WriteString(fmt.Sprintf("%3d: %s\n", i, in))
	}

	return sb.String()
}

// constantRepr renders a constant pool entry. Strings keep their quotes so
// the string "5" and the number 5 read differently.
func constantRepr(v Value) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return Format(v)
}

package bytecode

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSteps is the execution budget: the number of instructions a run
// may execute before it is declared stuck.
const DefaultMaxSteps = 10000

// RuntimeError is an execution failure. Output produced before the failure
// is preserved and remains readable through Output.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("runtime error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// VM executes a Program. A VM is single-use state over an immutable
// Program; Reset rewinds it for another run, and separate VMs may share
// one Program.
type VM struct {
	prog *Program

	// MaxSteps caps the number of executed instructions. Zero means
	// DefaultMaxSteps.
	MaxSteps int

	stack     []Value
	slots     []Value
	defined   []bool
	callStack []int
	pc        int
	steps     int
	halted    bool
	output    []string
	inputs    []string
	inputPos  int
}

func NewVM(prog *Program) *VM {
	vm := &VM{prog: prog, MaxSteps: DefaultMaxSteps}
	vm.Reset()
	return vm
}

// SetInput provides the lines consumed by input(). Exhausted input yields
// empty strings, never an error.
func (vm *VM) SetInput(lines []string) {
	vm.inputs = lines
	vm.inputPos = 0
}

// Reset rewinds the VM for another run of the same program. Input is
// rewound to its first line; the output buffer is cleared.
func (vm *VM) Reset() {
	vm.stack = vm.stack[:0]
	vm.slots = make([]Value, len(vm.prog.Slots))
	vm.defined = make([]bool, len(vm.prog.Slots))
	vm.callStack = vm.callStack[:0]
	vm.pc = 0
	vm.steps = 0
	vm.halted = false
	vm.output = nil
	vm.inputPos = 0
}

// Output returns the lines printed so far.
func (vm *VM) Output() []string {
	return vm.output
}

// Steps returns the number of instructions executed.
func (vm *VM) Steps() int {
	return vm.steps
}

// Halted reports whether the program reached HALT or a top-level return.
func (vm *VM) Halted() bool {
	return vm.halted
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() (Value, error) {
	if len(vm.stack) == 0 {
		return nil, fmt.Errorf("stack underflow")
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v, nil
}

func (vm *VM) nextInput() string {
	if vm.inputPos < len(vm.inputs) {
		line := vm.inputs[vm.inputPos]
		vm.inputPos++
		return line
	}
	return ""
}

// Run executes until HALT, an error, or the step budget.
func (vm *VM) Run() error {
	maxSteps := vm.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	for !vm.halted && vm.pc < len(vm.prog.Instructions) {
		if vm.steps >= maxSteps {
			in := vm.prog.Instructions[vm.pc]
			return &RuntimeError{
				Message: fmt.Sprintf("execution limit of %d instructions exceeded, possible infinite loop", maxSteps),
				Line:    in.Line,
			}
		}
		in := vm.prog.Instructions[vm.pc]
		vm.steps++
		if err := vm.step(in); err != nil {
			if _, ok := err.(*RuntimeError); ok {
				return err
			}
			return &RuntimeError{Message: err.Error(), Line: in.Line}
		}
	}
	return nil
}

// step executes one instruction and advances the program counter.
func (vm *VM) step(in Instruction) error {
	switch in.Op {
	case OpLoadConst:
		if in.Arg < 0 || in.Arg >= len(vm.prog.Constants) {
			return fmt.Errorf("constant index %d out of range", in.Arg)
		}
		vm.push(vm.prog.Constants[in.Arg])

	case OpLoadVar:
		if in.Arg < 0 || in.Arg >= len(vm.slots) {
			return fmt.Errorf("variable slot %d out of range", in.Arg)
		}
		if !vm.defined[in.Arg] {
			return fmt.Errorf("variable '%s' used before assignment", vm.prog.Slots[in.Arg])
		}
		vm.push(vm.slots[in.Arg])

	case OpStoreVar:
		if in.Arg < 0 || in.Arg >= len(vm.slots) {
			return fmt.Errorf("variable slot %d out of range", in.Arg)
		}
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.slots[in.Arg] = v
		vm.defined[in.Arg] = true

	case OpBinary:
		right, err := vm.pop()
		if err != nil {
			return err
		}
		left, err := vm.pop()
		if err != nil {
			return err
		}
		result, err := applyBinary(in.Sym, left, right)
		if err != nil {
			return err
		}
		vm.push(result)

	case OpUnary:
		operand, err := vm.pop()
		if err != nil {
			return err
		}
		result, err := applyUnary(in.Sym, operand)
		if err != nil {
			return err
		}
		vm.push(result)

	case OpJump:
		if err := vm.checkJump(in.Arg); err != nil {
			return err
		}
		vm.pc = in.Arg
		return nil

	case OpJumpIfFalse:
		cond, err := vm.pop()
		if err != nil {
			return err
		}
		if !Truthy(cond) {
			if err := vm.checkJump(in.Arg); err != nil {
				return err
			}
			vm.pc = in.Arg
			return nil
		}

	case OpJumpIfTrue:
		cond, err := vm.pop()
		if err != nil {
			return err
		}
		if Truthy(cond) {
			if err := vm.checkJump(in.Arg); err != nil {
				return err
			}
			vm.pc = in.Arg
			return nil
		}

	case OpPrint:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.output = append(vm.output, Format(v))

	case OpInput:
		vm.push(vm.nextInput())

	case OpPop:
		if _, err := vm.pop(); err != nil {
			return err
		}

	case OpHalt:
		vm.halted = true
		return nil

	case OpFunctionStart:
		// Prologue marker; argument binding is the STORE_VARs that follow.

	case OpReturn:
		if len(vm.callStack) == 0 {
			vm.halted = true
			return nil
		}
		value, err := vm.pop()
		if err != nil {
			return err
		}
		retAddr := vm.callStack[len(vm.callStack)-1]
		vm.callStack = vm.callStack[:len(vm.callStack)-1]
		vm.push(value)
		vm.pc = retAddr
		return nil

	case OpCall:
		if err := vm.checkJump(in.Arg); err != nil {
			return err
		}
		vm.callStack = append(vm.callStack, vm.pc+1)
		vm.pc = in.Arg
		return nil

	case OpCallBuiltin:
		if err := vm.callBuiltin(in.Sym); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown opcode %s", in.Op)
	}

	vm.pc++
	return nil
}

func (vm *VM) checkJump(target int) error {
	if target < 0 || target > len(vm.prog.Instructions) {
		return fmt.Errorf("jump target %d out of range", target)
	}
	return nil
}

func (vm *VM) callBuiltin(name string) error {
	switch name {
	case "input":
		vm.push(vm.nextInput())
		return nil

	case "len":
		v, err := vm.pop()
		if err != nil {
			return err
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("len() requires a string, got %s", typeName(v))
		}
		vm.push(int64(utf8.RuneCountInString(s)))
		return nil

	case "str":
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(Format(v))
		return nil

	case "int":
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(toInt(v))
		return nil

	case "float":
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(builtinFloat(v))
		return nil
	}
	return fmt.Errorf("unknown function '%s'", name)
}

// toInt converts for the int() built-in. Unparseable strings become 0
// rather than an error.
func toInt(v Value) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// builtinFloat converts for the float() built-in. Unparseable strings
// become 0.0.
func builtinFloat(v Value) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

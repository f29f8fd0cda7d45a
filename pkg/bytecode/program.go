package bytecode

// FunctionInfo records where a compiled function lives. Addr is the index
// of its FUNCTION_START instruction.
type FunctionInfo struct {
	Name      string `cbor:"name"`
	Addr      int    `cbor:"addr"`
	NumParams int    `cbor:"nparams"`
}

// Program is a compiled unit: the instruction stream plus the constant
// pool, the variable slot table and the function table. A Program is
// immutable once compiled; any number of VMs may execute it concurrently.
type Program struct {
	Instructions []Instruction  `cbor:"instructions"`
	Constants    []Value        `cbor:"constants"`
	Slots        []string       `cbor:"slots"` // slot index -> variable name
	Functions    []FunctionInfo `cbor:"functions"`

	slotIndex map[string]int
	funcIndex map[string]int
}

func NewProgram() *Program {
	return &Program{
		slotIndex: map[string]int{},
		funcIndex: map[string]int{},
	}
}

// reindex rebuilds the lookup maps from the exported tables. Called after
// deserialization.
func (p *Program) reindex() {
	p.slotIndex = make(map[string]int, len(p.Slots))
	for i, name := range p.Slots {
		p.slotIndex[name] = i
	}
	p.funcIndex = make(map[string]int, len(p.Functions))
	for i, fn := range p.Functions {
		p.funcIndex[fn.Name] = i
	}
}

// Emit appends an instruction and returns its index.
func (p *Program) Emit(op Opcode, line int) int {
	p.Instructions = append(p.Instructions, Instruction{Op: op, Line: line})
	return len(p.Instructions) - 1
}

// EmitArg appends an instruction with an integer operand.
func (p *Program) EmitArg(op Opcode, arg int, line int) int {
	p.Instructions = append(p.Instructions, Instruction{Op: op, Arg: arg, Line: line})
	return len(p.Instructions) - 1
}

// EmitSym appends an instruction with a symbol operand.
func (p *Program) EmitSym(op Opcode, sym string, line int) int {
	p.Instructions = append(p.Instructions, Instruction{Op: op, Sym: sym, Line: line})
	return len(p.Instructions) - 1
}

// EmitJump appends a jump with a placeholder target and returns its index
// for PatchJump.
func (p *Program) EmitJump(op Opcode, line int) int {
	return p.EmitArg(op, -1, line)
}

// PatchJump points the jump at index to the next instruction to be emitted.
func (p *Program) PatchJump(index int) {
	p.Instructions[index].Arg = len(p.Instructions)
}

// AddConstant interns a value in the constant pool and returns its index.
// Equal values share an entry; an int64 and a float64 of the same magnitude
// are distinct constants.
func (p *Program) AddConstant(v Value) int {
	for i, c := range p.Constants {
		if c == v {
			return i
		}
	}
	p.Constants = append(p.Constants, v)
	return len(p.Constants) - 1
}

// Slot returns the slot index for a variable name.
func (p *Program) Slot(name string) (int, bool) {
	i, ok := p.slotIndex[name]
	return i, ok
}

// DeclareSlot returns the slot for name, allocating one on first
// declaration. Re-declaring a name reuses its slot.
func (p *Program) DeclareSlot(name string) int {
	if i, ok := p.slotIndex[name]; ok {
		return i
	}
	i := len(p.Slots)
	p.Slots = append(p.Slots, name)
	p.slotIndex[name] = i
	return i
}

// Function returns the function table entry for name.
func (p *Program) Function(name string) (FunctionInfo, bool) {
	if i, ok := p.funcIndex[name]; ok {
		return p.Functions[i], true
	}
	return FunctionInfo{}, false
}

// DefineFunction records a function's entry address and arity.
func (p *Program) DefineFunction(name string, addr, numParams int) {
	if i, ok := p.funcIndex[name]; ok {
		p.Functions[i] = FunctionInfo{Name: name, Addr: addr, NumParams: numParams}
		return
	}
	p.funcIndex[name] = len(p.Functions)
	p.Functions = append(p.Functions, FunctionInfo{Name: name, Addr: addr, NumParams: numParams})
}

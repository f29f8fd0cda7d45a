// Package bytecode lowers parsed programs to a flat instruction stream and
// executes it on a stack machine.
//
// A compiled Program carries four tables: the instruction stream, the
// constant pool, the variable slot table and the function table. Jump and
// call operands are absolute instruction indices, so a listing reads the
// way it executes. Programs are immutable after compilation and safe to
// share between VMs.
//
// Execution is budgeted: a run that exceeds its instruction limit fails
// with a RuntimeError instead of spinning. All failures preserve the
// output produced before the failure.
//
// Marshal and Unmarshal move programs through a versioned CBOR envelope;
// Unmarshal validates every operand before the program can reach a VM.
package bytecode

package bytecode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Wire format: a CBOR envelope around the Program tables. Canonical
// encoding keeps the bytes deterministic, so equal programs serialize to
// equal bytes.

const (
	// WireMagic identifies a serialized program.
	WireMagic = "BHBC"
	// WireVersion is bumped on any incompatible change to the Program
	// tables or the opcode set.
	WireVersion = 1
)

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em

	// Constants are int64 in memory; without IntDecConvertSigned the
	// decoder would hand back uint64 for non-negative pool entries.
	dm, err := cbor.DecOptions{IntDec: cbor.IntDecConvertSigned}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR dec mode: %v", err))
	}
	cborDecMode = dm
}

type wireEnvelope struct {
	Magic   string   `cbor:"magic"`
	Version int      `cbor:"version"`
	Program *Program `cbor:"program"`
}

// Marshal serializes a program for storage or transport.
func Marshal(p *Program) ([]byte, error) {
	return cborEncMode.Marshal(&wireEnvelope{
		Magic:   WireMagic,
		Version: WireVersion,
		Program: p,
	})
}

// Unmarshal deserializes a program and rebuilds its lookup tables. Data
// with the wrong magic or an unsupported version is rejected.
func Unmarshal(data []byte) (*Program, error) {
	var env wireEnvelope
	if err := cborDecMode.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("bytecode: unmarshal program: %w", err)
	}
	if env.Magic != WireMagic {
		return nil, fmt.Errorf("bytecode: bad magic %q", env.Magic)
	}
	if env.Version != WireVersion {
		return nil, fmt.Errorf("bytecode: unsupported version %d", env.Version)
	}
	if env.Program == nil {
		return nil, fmt.Errorf("bytecode: envelope has no program")
	}
	p := env.Program
	p.reindex()
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// validate rejects programs whose operands point outside their tables, so
// a hostile or truncated payload fails here instead of mid-run.
func (p *Program) validate() error {
	for i, in := range p.Instructions {
		switch in.Op {
		case OpLoadConst:
			if in.Arg < 0 || in.Arg >= len(p.Constants) {
				return fmt.Errorf("bytecode: instruction %d: constant index %d out of range", i, in.Arg)
			}
		case OpLoadVar, OpStoreVar:
			if in.Arg < 0 || in.Arg >= len(p.Slots) {
				return fmt.Errorf("bytecode: instruction %d: variable slot %d out of range", i, in.Arg)
			}
		case OpJump, OpJumpIfFalse, OpJumpIfTrue, OpCall:
			if in.Arg < 0 || in.Arg > len(p.Instructions) {
				return fmt.Errorf("bytecode: instruction %d: jump target %d out of range", i, in.Arg)
			}
		}
	}
	return nil
}

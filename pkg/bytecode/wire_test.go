package bytecode

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestWireRoundTrip(t *testing.T) {
	src := "" +
		"function double(x):\n" +
		"    return x * 2\n" +
		"for i = 1 : 3:\n" +
		"    print double(i)\n"
	prog := compileSource(t, src)

	data, err := Marshal(prog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Listing() != prog.Listing() {
		t.Fatalf("listing changed over the wire:\n%s\n---\n%s", decoded.Listing(), prog.Listing())
	}

	// The decoded program must execute, which exercises the rebuilt
	// tables end to end.
	vm := NewVM(decoded)
	if err := vm.Run(); err != nil {
		t.Fatalf("run decoded program: %v", err)
	}
	want := []string{"2", "4", "6"}
	if !reflect.DeepEqual(vm.Output(), want) {
		t.Fatalf("output %v, want %v", vm.Output(), want)
	}
}

func TestWireConstantTypesSurvive(t *testing.T) {
	// Floats cannot be spelled as literals, so build the pool by hand to
	// cover every constant type the encoder can carry.
	prog := NewProgram()
	for _, c := range []Value{int64(5), 2.5, "5", true, nil} {
		prog.AddConstant(c)
	}
	prog.EmitArg(OpLoadConst, 0, 1)
	prog.Emit(OpHalt, 1)

	data, err := Marshal(prog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Constants) != len(prog.Constants) {
		t.Fatalf("constant pool shrank: %v", decoded.Constants)
	}
	for i, c := range prog.Constants {
		if reflect.TypeOf(decoded.Constants[i]) != reflect.TypeOf(c) {
			t.Errorf("constant %d decoded as %T, want %T", i, decoded.Constants[i], c)
		}
	}
}

func TestWireDeterministic(t *testing.T) {
	prog := compileSource(t, "var x = 1\nprint x + 2\n")
	a, err := Marshal(prog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := Marshal(prog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("encoding is not deterministic")
	}
}

func TestWireRejectsBadMagic(t *testing.T) {
	prog := compileSource(t, "print 1\n")
	data, err := cborEncMode.Marshal(&wireEnvelope{Magic: "NOPE", Version: WireVersion, Program: prog})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := Unmarshal(data); err == nil || !strings.Contains(err.Error(), "bad magic") {
		t.Fatalf("got %v, want bad magic error", err)
	}
}

func TestWireRejectsFutureVersion(t *testing.T) {
	prog := compileSource(t, "print 1\n")
	data, err := cborEncMode.Marshal(&wireEnvelope{Magic: WireMagic, Version: WireVersion + 1, Program: prog})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := Unmarshal(data); err == nil || !strings.Contains(err.Error(), "unsupported version") {
		t.Fatalf("got %v, want version error", err)
	}
}

func TestWireRejectsOutOfRangeOperands(t *testing.T) {
	prog := compileSource(t, "print 1\n")
	mangled := *prog
	mangled.Instructions = append([]Instruction(nil), prog.Instructions...)
	mangled.Instructions[0].Arg = 99 // constant index past the pool

	data, err := cborEncMode.Marshal(&wireEnvelope{Magic: WireMagic, Version: WireVersion, Program: &mangled})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := Unmarshal(data); err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestWireRejectsGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte("not cbor at all")); err == nil {
		t.Fatalf("garbage accepted")
	}
}

package redcode

import "github.com/jyane/marscore/emuerr"

// BytecodeID is a 32-bit identifier bijective with the set of valid
// Instructions (not CompleteInstructions — fields are not part of the
// identifier).
type BytecodeID uint32

// Codec converts between Instruction and its portable BytecodeID. The
// interface exists so an emulator can be built against an alternative
// bytecode layout without changing any other component, the same way the
// teacher's Mapper is selected by a numeric key rather than hardcoded.
type Codec interface {
	// Encode maps a valid Instruction to its identifier. It returns
	// InvalidParam if i is not a valid Instruction.
	Encode(i Instruction) (BytecodeID, error)
	// Decode is partial: it returns ok == false if id's byte positions do
	// not correspond to a valid Instruction.
	Decode(id BytecodeID) (i Instruction, ok bool)
	// Format is the portable format string advertised alongside this
	// codec's encoding, e.g. "url::package::name::version", or "" if the
	// encoding is only valid within a single emulator instance.
	Format() string
}

// DefaultCodec is the reasonable default described in the spec: opcode,
// modifier, a_mode, and b_mode packed into the four bytes of a big-endian
// 32-bit integer.
type DefaultCodec struct{}

const defaultCodecFormat = "github.com/jyane/marscore::redcode::default-codec::1"

func (DefaultCodec) Format() string { return defaultCodecFormat }

func (DefaultCodec) Encode(i Instruction) (BytecodeID, error) {
	if !i.Valid() {
		return 0, emuerr.NewInvalidParam("cannot encode invalid instruction %+v", i)
	}
	id := uint32(byte(i.Opcode))<<24 | uint32(byte(i.Modifier))<<16 |
		uint32(byte(i.AMode))<<8 | uint32(byte(i.BMode))
	return BytecodeID(id), nil
}

func (DefaultCodec) Decode(id BytecodeID) (Instruction, bool) {
	opcode := Opcode(byte(id >> 24))
	modifier := Modifier(byte(id >> 16))
	aMode := AddrMode(byte(id >> 8))
	bMode := AddrMode(byte(id))
	i := Instruction{Opcode: opcode, Modifier: modifier, AMode: aMode, BMode: bMode}
	if !i.Valid() {
		return Instruction{}, false
	}
	return i, true
}

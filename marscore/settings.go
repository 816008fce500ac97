// Package marscore implements the Redcode emulator engine: a cycle-accurate
// interpreter that evaluates one instruction per active warrior per cycle
// against a shared circular core, together with its operand-evaluation
// pipeline, per-warrior process queues, and per-warrior PSPACE storage.
package marscore

import "github.com/jyane/marscore/redcode"

// maxCoreSize is the largest core the emulator supports, per the spec's
// field-value range of [0, 2^31).
const maxCoreSize = 1 << 31

// CoreSettings is the immutable configuration an Emulator is built with. It
// never changes for the lifetime of an Emulator.
type CoreSettings struct {
	// CoreSize is the number of addressable cells in the core. All field
	// arithmetic is modulo CoreSize.
	CoreSize uint32
	// PSpaceSize is the number of addressable cells in each warrior's PSPACE
	// bank. A value of 0 means this emulator does not support PSPACE.
	PSpaceSize uint32
	// Warriors is the number of warrior slots; valid warrior IDs are
	// [0, Warriors).
	Warriors uint32
	// Processes is the per-warrior process queue capacity.
	Processes uint32
	// BytecodeFormat is the portable format string advertised for this
	// emulator's bytecode codec, e.g. "url::package::name::version", or ""
	// if identifiers are only valid within this emulator instance.
	BytecodeFormat string
}

// codec returns the bytecode codec an Emulator built with these settings
// uses. It always returns redcode.DefaultCodec; no CoreSettings field
// selects a different codec.
func (s CoreSettings) codec() redcode.Codec {
	return redcode.DefaultCodec{}
}

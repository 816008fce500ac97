package redcode

// RelaxedCompleteInstruction is a CompleteInstruction whose fields have not
// yet been reduced modulo a core size. Loadfile numbers are signed and may be
// negative (e.g. `$-1`) or larger than the eventual core; this is the type
// the parser produces before the caller knows core_size.
type RelaxedCompleteInstruction struct {
	Instr  Instruction
	AField int64
	BField int64
}

// Normalize reduces both fields modulo coreSize, producing a strict
// CompleteInstruction suitable for loading into core memory.
func (r RelaxedCompleteInstruction) Normalize(coreSize uint32) CompleteInstruction {
	return CompleteInstruction{
		Instr:  r.Instr,
		AField: normalize(r.AField, coreSize),
		BField: normalize(r.BField, coreSize),
	}
}

// RelaxedWarrior is a Warrior whose start offset and instruction fields have
// not yet been reduced modulo a core size.
type RelaxedWarrior struct {
	Code  []RelaxedCompleteInstruction
	Start int64
	Pin   *int64
}

// Normalize reduces every field and the start offset modulo coreSize.
func (r RelaxedWarrior) Normalize(coreSize uint32) Warrior {
	code := make([]CompleteInstruction, len(r.Code))
	for i, instr := range r.Code {
		code[i] = instr.Normalize(coreSize)
	}
	return Warrior{
		Code:  code,
		Start: normalize(r.Start, coreSize),
		Pin:   r.Pin,
	}
}

// normalize evaluates value as a core offset, wrapping around at coreSize.
// It panics if coreSize is 0 or exceeds the maximum core size the spec
// allows (2^31), mirroring the bounds the original implementation asserts.
func normalize(value int64, coreSize uint32) FieldValue {
	if coreSize == 0 {
		panic("redcode: normalize called with coreSize == 0")
	}
	if coreSize > 1<<31 {
		panic("redcode: normalize called with coreSize exceeding 2^31")
	}
	size := int64(coreSize)
	v := value % size
	if v < 0 {
		v += size
	}
	return FieldValue(v)
}

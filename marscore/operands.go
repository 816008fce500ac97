package marscore

import "github.com/jyane/marscore/redcode"

// register is a core index and the contents found there, snapshotted at
// operand-evaluation time.
type register struct {
	idx    uint32
	instr  redcode.Instruction
	aField uint32
	bField uint32
}

// registerSnapshot is the three registers produced by evaluate: the
// instruction at PC, and the resolved A and B targets. Handlers read this
// snapshot; subsequent core writes do not change it.
type registerSnapshot struct {
	current register
	a       register
	b       register
}

// evaluate resolves the A and B operands of the instruction at pc, applying
// predecrement side effects before resolution and postincrement side
// effects after the target is snapshotted, per the ordering fixed in the
// spec. core is mutated in place by any pre/post-increment side effects.
func evaluate(pc uint32, core []redcode.CompleteInstruction, size uint32) (registerSnapshot, error) {
	cur := core[pc]

	aReg, err := resolveOperand(pc, cur.AField, cur.Instr.AMode, core, size)
	if err != nil {
		return registerSnapshot{}, err
	}
	bReg, err := resolveOperand(pc, cur.BField, cur.Instr.BMode, core, size)
	if err != nil {
		return registerSnapshot{}, err
	}

	return registerSnapshot{
		current: register{idx: pc, instr: cur.Instr, aField: cur.AField, bField: cur.BField},
		a:       aReg,
		b:       bReg,
	}, nil
}

// resolveOperand performs one operand's base computation, predecrement,
// target resolution, register snapshot, and postincrement, strictly in that
// order: the snapshot is taken before any postincrement mutates the core.
func resolveOperand(pc uint32, field uint32, mode redcode.AddrMode, core []redcode.CompleteInstruction, size uint32) (register, error) {
	base, err := add(pc, field, size)
	if err != nil {
		return register{}, err
	}

	if mode == redcode.PredecA {
		v, err := dec(core[base].AField, size)
		if err != nil {
			return register{}, err
		}
		core[base].AField = v
	} else if mode == redcode.PredecB {
		v, err := dec(core[base].BField, size)
		if err != nil {
			return register{}, err
		}
		core[base].BField = v
	}

	var target uint32
	switch mode {
	case redcode.Immediate:
		target = pc
	case redcode.Direct:
		target = base
	case redcode.IndirectA, redcode.PredecA, redcode.PostincA:
		target, err = add(base, core[base].AField, size)
	case redcode.IndirectB, redcode.PredecB, redcode.PostincB:
		target, err = add(base, core[base].BField, size)
	}
	if err != nil {
		return register{}, err
	}

	cell := core[target]
	reg := register{idx: target, instr: cell.Instr, aField: cell.AField, bField: cell.BField}

	if mode == redcode.PostincA {
		v, err := inc(core[base].AField, size)
		if err != nil {
			return register{}, err
		}
		core[base].AField = v
	} else if mode == redcode.PostincB {
		v, err := inc(core[base].BField, size)
		if err != nil {
			return register{}, err
		}
		core[base].BField = v
	}

	return reg, nil
}

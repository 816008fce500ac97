package marscore

import (
	"github.com/jyane/marscore/emuerr"
	"github.com/jyane/marscore/redcode"
)

// opContext bundles everything an opcode handler needs: the register
// snapshot produced by operand evaluation, the current warrior's identity,
// and mutable access to the core, its own process queue, and PSPACE. A
// handler must not touch another warrior's state.
type opContext struct {
	warriorID uint32
	regs      registerSnapshot
	coreSize  uint32
	queues    *processQueueSet
	core      []redcode.CompleteInstruction
	pspace    *pspaceStore
}

func (c *opContext) nextPC(amount int64) (uint32, error) {
	return offset(c.regs.current.idx, amount, c.coreSize)
}

func (c *opContext) enqueue(pc uint32) error {
	return c.queues.pushBack(c.warriorID, pc)
}

func (c *opContext) target() (*redcode.CompleteInstruction, error) {
	idx := c.regs.b.idx
	if int(idx) >= len(c.core) {
		return nil, emuerr.NewInternalError("b target index %d out of range for core", idx)
	}
	return &c.core[idx], nil
}

// dispatch selects and runs the handler for the current instruction's
// opcode.
func dispatch(c *opContext) error {
	switch c.regs.current.instr.Opcode {
	case redcode.Dat:
		return datOp(c)
	case redcode.Mov:
		return movOp(c)
	case redcode.Add, redcode.Sub, redcode.Mul, redcode.Div, redcode.Mod:
		return arithmeticOp(c)
	case redcode.Jmp:
		return jmpOp(c)
	case redcode.Jmz:
		return jmzOp(c)
	case redcode.Jmn:
		return jmnOp(c)
	case redcode.Djn:
		return djnOp(c)
	case redcode.Spl:
		return splOp(c)
	case redcode.Slt:
		return sltOp(c)
	case redcode.Cmp, redcode.Seq:
		return cmpOp(c)
	case redcode.Sne:
		return sneOp(c)
	case redcode.Nop:
		return nopOp(c)
	case redcode.Ldp:
		return ldpOp(c)
	case redcode.Stp:
		return stpOp(c)
	default:
		return emuerr.NewInternalError("no handler for opcode %v", c.regs.current.instr.Opcode)
	}
}

// datOp removes the process from the queue: step already popped it, and Dat
// enqueues nothing.
func datOp(c *opContext) error {
	return nil
}

// movOp copies A-operand fields into the B target per the modifier table.
// Modifier I replaces the destination's entire instruction word.
func movOp(c *opContext) error {
	next, err := c.nextPC(1)
	if err != nil {
		return err
	}
	if err := c.enqueue(next); err != nil {
		return err
	}
	target, err := c.target()
	if err != nil {
		return err
	}
	a := c.regs.a
	switch c.regs.current.instr.Modifier {
	case redcode.A:
		target.AField = a.aField
	case redcode.B:
		target.BField = a.bField
	case redcode.AB:
		target.BField = a.aField
	case redcode.BA:
		target.AField = a.bField
	case redcode.F:
		target.AField = a.aField
		target.BField = a.bField
	case redcode.X:
		target.AField = a.bField
		target.BField = a.aField
	case redcode.I:
		target.Instr = a.instr
		target.AField = a.aField
		target.BField = a.bField
	}
	return nil
}

// arithmeticOp implements Add/Sub/Mul/Div/Mod. Div/Mod are partial: a field
// whose source is zero is skipped, and if any field is skipped the next-PC
// enqueue is suppressed for this instruction.
func arithmeticOp(c *opContext) error {
	opcode := c.regs.current.instr.Opcode
	a, b := c.regs.a, c.regs.b

	compute := func(lhs, rhs uint32) (uint32, bool, error) {
		switch opcode {
		case redcode.Add:
			v, err := add(lhs, rhs, c.coreSize)
			return v, true, err
		case redcode.Sub:
			v, err := sub(lhs, rhs, c.coreSize)
			return v, true, err
		case redcode.Mul:
			v, err := mul(lhs, rhs, c.coreSize)
			return v, true, err
		case redcode.Div:
			v, ok := div(lhs, rhs)
			return v, ok, nil
		case redcode.Mod:
			v, ok := mod(lhs, rhs)
			return v, ok, nil
		default:
			return 0, false, emuerr.NewInternalError("arithmeticOp called with non-arithmetic opcode %v", opcode)
		}
	}

	next, err := c.nextPC(1)
	if err != nil {
		return err
	}
	target, err := c.target()
	if err != nil {
		return err
	}

	writeOne := func(lhs, rhs uint32, write func(uint32)) error {
		v, ok, err := compute(lhs, rhs)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		write(v)
		if err := c.enqueue(next); err != nil {
			return err
		}
		return nil
	}

	writeTwo := func(lhsA, rhsA, lhsB, rhsB uint32, writeA, writeB func(uint32)) error {
		vA, okA, err := compute(lhsA, rhsA)
		if err != nil {
			return err
		}
		vB, okB, err := compute(lhsB, rhsB)
		if err != nil {
			return err
		}
		switch {
		case okA && okB:
			writeA(vA)
			writeB(vB)
			return c.enqueue(next)
		case okA:
			writeA(vA)
		case okB:
			writeB(vB)
		}
		return nil
	}

	switch c.regs.current.instr.Modifier {
	case redcode.A:
		return writeOne(b.aField, a.aField, func(v uint32) { target.AField = v })
	case redcode.B:
		return writeOne(b.bField, a.bField, func(v uint32) { target.BField = v })
	case redcode.AB:
		return writeOne(b.bField, a.aField, func(v uint32) { target.BField = v })
	case redcode.BA:
		return writeOne(b.aField, a.bField, func(v uint32) { target.AField = v })
	case redcode.F, redcode.I:
		return writeTwo(b.aField, a.aField, b.bField, a.bField,
			func(v uint32) { target.AField = v }, func(v uint32) { target.BField = v })
	case redcode.X:
		return writeTwo(b.bField, a.aField, b.aField, a.bField,
			func(v uint32) { target.BField = v }, func(v uint32) { target.AField = v })
	default:
		return emuerr.NewInternalError("arithmeticOp: unreachable modifier %v", c.regs.current.instr.Modifier)
	}
}

// jmpOp unconditionally enqueues the A-pointer; the modifier has no effect.
func jmpOp(c *opContext) error {
	return c.enqueue(c.regs.a.idx)
}

// jmzOp jumps if the B-value is zero, per the modifier's field combination.
func jmzOp(c *opContext) error {
	b := c.regs.b
	var isZero bool
	switch c.regs.current.instr.Modifier {
	case redcode.A, redcode.BA:
		isZero = b.aField == 0
	case redcode.B, redcode.AB:
		isZero = b.bField == 0
	default: // F, X, I
		isZero = b.aField == 0 && b.bField == 0
	}
	return jumpOrAdvance(c, isZero)
}

// jmnOp jumps if the B-value is nonzero. For F/X/I the fields combine with
// OR: Jmn jumps when either field is nonzero, whereas Jmz jumps only when
// both are zero.
func jmnOp(c *opContext) error {
	b := c.regs.b
	var isNonZero bool
	switch c.regs.current.instr.Modifier {
	case redcode.A, redcode.BA:
		isNonZero = b.aField != 0
	case redcode.B, redcode.AB:
		isNonZero = b.bField != 0
	default: // F, X, I
		isNonZero = b.aField != 0 || b.bField != 0
	}
	return jumpOrAdvance(c, isNonZero)
}

func jumpOrAdvance(c *opContext, jump bool) error {
	if jump {
		return c.enqueue(c.regs.a.idx)
	}
	next, err := c.nextPC(1)
	if err != nil {
		return err
	}
	return c.enqueue(next)
}

// djnOp decrements the B-target field(s), tests the decremented value for
// nonzero (OR-combined for F/X/I), and jumps or advances accordingly.
func djnOp(c *opContext) error {
	b := c.regs.b
	target, err := c.target()
	if err != nil {
		return err
	}

	switch c.regs.current.instr.Modifier {
	case redcode.A, redcode.BA:
		v, err := dec(target.AField, c.coreSize)
		if err != nil {
			return err
		}
		target.AField = v
		da, err := dec(b.aField, c.coreSize)
		if err != nil {
			return err
		}
		return jumpOrAdvance(c, da != 0)
	case redcode.B, redcode.AB:
		v, err := dec(target.BField, c.coreSize)
		if err != nil {
			return err
		}
		target.BField = v
		db, err := dec(b.bField, c.coreSize)
		if err != nil {
			return err
		}
		return jumpOrAdvance(c, db != 0)
	default: // F, X, I
		va, err := dec(target.AField, c.coreSize)
		if err != nil {
			return err
		}
		vb, err := dec(target.BField, c.coreSize)
		if err != nil {
			return err
		}
		target.AField = va
		target.BField = vb
		da, err := dec(b.aField, c.coreSize)
		if err != nil {
			return err
		}
		db, err := dec(b.bField, c.coreSize)
		if err != nil {
			return err
		}
		return jumpOrAdvance(c, da != 0 || db != 0)
	}
}

// splOp enqueues the next PC, then the A-pointer. The two pushes obey the
// queue cap independently: if the cap is reached between them, the second
// push is silently dropped.
func splOp(c *opContext) error {
	next, err := c.nextPC(1)
	if err != nil {
		return err
	}
	if err := c.enqueue(next); err != nil {
		return err
	}
	return c.enqueue(c.regs.a.idx)
}

// sltOp skips (PC+2) if the A-value is strictly less than the B-value.
func sltOp(c *opContext) error {
	a, b := c.regs.a, c.regs.b
	var lt bool
	switch c.regs.current.instr.Modifier {
	case redcode.A:
		lt = a.aField < b.aField
	case redcode.B:
		lt = a.bField < b.bField
	case redcode.AB:
		lt = a.aField < b.bField
	case redcode.BA:
		lt = a.bField < b.aField
	case redcode.F, redcode.I:
		lt = a.aField < b.aField && a.bField < b.bField
	case redcode.X:
		lt = a.aField < b.bField && a.bField < b.aField
	}
	return skipOrAdvance(c, lt)
}

// cmpOp (shared by Cmp and Seq) skips (PC+2) if the A-value equals the
// B-value. Modifier I compares the full instruction word as well as both
// fields.
func cmpOp(c *opContext) error {
	return skipOrAdvance(c, compareEqual(c))
}

// sneOp skips (PC+2) if the A-value does not equal the B-value: the
// negation of cmpOp, so for F and X the per-field inequalities combine with
// OR where cmpOp's equalities combine with AND.
func sneOp(c *opContext) error {
	a, b := c.regs.a, c.regs.b
	var neq bool
	switch c.regs.current.instr.Modifier {
	case redcode.A:
		neq = a.aField != b.aField
	case redcode.B:
		neq = a.bField != b.bField
	case redcode.AB:
		neq = a.aField != b.bField
	case redcode.BA:
		neq = a.bField != b.aField
	case redcode.F:
		neq = a.aField != b.aField || a.bField != b.bField
	case redcode.X:
		neq = a.aField != b.bField || a.bField != b.aField
	case redcode.I:
		neq = a.instr != b.instr || a.aField != b.aField || a.bField != b.bField
	}
	return skipOrAdvance(c, neq)
}

func compareEqual(c *opContext) bool {
	a, b := c.regs.a, c.regs.b
	switch c.regs.current.instr.Modifier {
	case redcode.A:
		return a.aField == b.aField
	case redcode.B:
		return a.bField == b.bField
	case redcode.AB:
		return a.aField == b.bField
	case redcode.BA:
		return a.bField == b.aField
	case redcode.F:
		return a.aField == b.aField && a.bField == b.bField
	case redcode.X:
		return a.aField == b.bField && a.bField == b.aField
	case redcode.I:
		return a.instr == b.instr && a.aField == b.aField && a.bField == b.bField
	}
	return false
}

func skipOrAdvance(c *opContext, skip bool) error {
	amount := int64(1)
	if skip {
		amount = 2
	}
	next, err := c.nextPC(amount)
	if err != nil {
		return err
	}
	return c.enqueue(next)
}

// nopOp enqueues the next PC and has no other effect.
func nopOp(c *opContext) error {
	next, err := c.nextPC(1)
	if err != nil {
		return err
	}
	return c.enqueue(next)
}

// usesAFieldForSource and usesAFieldForDest mirror the field routing Ldp/Stp
// share: A/AB read the A-operand's A-field, and A/BA use the B-target's
// A-field as the destination; every other modifier uses the B-field.
func usesAFieldForSource(m redcode.Modifier) bool { return m == redcode.A || m == redcode.AB }
func usesAFieldForDest(m redcode.Modifier) bool   { return m == redcode.A || m == redcode.BA }

// ldpOp reads a PSPACE cell into the B target's routed field and enqueues
// the next PC. The PSPACE index is taken modulo pspace_size.
func ldpOp(c *opContext) error {
	next, err := c.nextPC(1)
	if err != nil {
		return err
	}
	if err := c.enqueue(next); err != nil {
		return err
	}
	a := c.regs.a
	modifier := c.regs.current.instr.Modifier
	var srcField uint32
	if usesAFieldForSource(modifier) {
		srcField = a.aField
	} else {
		srcField = a.bField
	}
	if c.pspace == nil || c.pspace.size == 0 {
		return emuerr.NewUnsupportedFeature("ldp: emulator has no pspace configured")
	}
	idx := srcField % c.pspace.size
	value, err := c.pspace.read(c.warriorID, idx)
	if err != nil {
		return err
	}
	target, err := c.target()
	if err != nil {
		return err
	}
	if usesAFieldForDest(modifier) {
		target.AField = value
	} else {
		target.BField = value
	}
	return nil
}

// stpOp is symmetric to ldpOp: it writes a routed A-operand field into
// PSPACE at an index taken from the routed B-operand field, modulo
// pspace_size.
func stpOp(c *opContext) error {
	a, b := c.regs.a, c.regs.b
	modifier := c.regs.current.instr.Modifier
	var srcValue uint32
	if usesAFieldForSource(modifier) {
		srcValue = a.aField
	} else {
		srcValue = a.bField
	}
	var destField uint32
	if usesAFieldForDest(modifier) {
		destField = b.aField
	} else {
		destField = b.bField
	}
	if c.pspace == nil || c.pspace.size == 0 {
		return emuerr.NewUnsupportedFeature("stp: emulator has no pspace configured")
	}
	idx := destField % c.pspace.size
	if err := c.pspace.write(c.warriorID, idx, srcValue); err != nil {
		return err
	}
	next, err := c.nextPC(1)
	if err != nil {
		return err
	}
	return c.enqueue(next)
}

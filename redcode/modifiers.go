package redcode

// DefaultModifier synthesizes the modifier an ICWS '88 instruction implies
// when its source omits one. The table is keyed by opcode family and by
// whether either addressing mode is Immediate.
func DefaultModifier(opcode Opcode, aMode, bMode AddrMode) Modifier {
	switch opcode {
	case Dat, Nop:
		return F
	case Mov, Seq, Sne, Cmp:
		switch {
		case aMode == Immediate:
			return AB
		case bMode == Immediate:
			return B
		default:
			return I
		}
	case Add, Sub, Mul, Div, Mod:
		switch {
		case aMode == Immediate:
			return AB
		case bMode == Immediate:
			return B
		default:
			return F
		}
	case Slt, Ldp, Stp:
		switch {
		case aMode == Immediate:
			return AB
		case bMode == Immediate:
			return B
		default:
			return B
		}
	default: // Jmp, Jmz, Jmn, Djn, Spl
		return B
	}
}

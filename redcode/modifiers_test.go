package redcode

import "testing"

func TestDefaultModifier(t *testing.T) {
	cases := []struct {
		opcode Opcode
		aMode  AddrMode
		bMode  AddrMode
		want   Modifier
	}{
		{Dat, Direct, Direct, F},
		{Nop, Immediate, Direct, F},
		{Mov, Immediate, Direct, AB},
		{Mov, Direct, Immediate, B},
		{Mov, Direct, Direct, I},
		{Add, Immediate, Direct, AB},
		{Add, Direct, Immediate, B},
		{Add, Direct, Direct, F},
		{Slt, Direct, Direct, B},
		{Ldp, Immediate, Direct, AB},
		{Jmp, Direct, Direct, B},
		{Spl, Immediate, Immediate, B},
	}
	for _, c := range cases {
		got := DefaultModifier(c.opcode, c.aMode, c.bMode)
		if got != c.want {
			t.Errorf("DefaultModifier(%v, %v, %v) = %v, want %v", c.opcode, c.aMode, c.bMode, got, c.want)
		}
	}
}

package marscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyane/marscore/redcode"
)

// TestEvaluatePostincrementAliasing is scenario 6: Mov.A }0, }0 at address 0.
// The A-operand resolves and postincrements first, so the B-operand's base
// computation observes the already-incremented field.
func TestEvaluatePostincrementAliasing(t *testing.T) {
	core := make([]redcode.CompleteInstruction, 8000)
	core[0] = redcode.CompleteInstruction{
		Instr: redcode.Instruction{Opcode: redcode.Mov, Modifier: redcode.A, AMode: redcode.PostincA, BMode: redcode.PostincA},
	}

	regs, err := evaluate(0, core, 8000)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), regs.a.idx, "A resolves to core[0] before any mutation")
	assert.Equal(t, uint32(0), regs.a.aField)
	assert.Equal(t, uint32(1), regs.b.idx, "B's base computation observes A's postincrement")
	assert.Equal(t, uint32(2), core[0].AField, "both operands postincremented the same cell")
}

func TestResolveOperandImmediateIsPC(t *testing.T) {
	core := make([]redcode.CompleteInstruction, 10)
	core[3] = redcode.CompleteInstruction{AField: 5}
	reg, err := resolveOperand(3, 5, redcode.Immediate, core, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), reg.idx)
}

func TestResolveOperandPredecrementAppliesBeforeTarget(t *testing.T) {
	core := make([]redcode.CompleteInstruction, 10)
	core[5] = redcode.CompleteInstruction{AField: 2}
	// base = pc + field = 0 + 5 = 5; predecrement core[5].AField to 1,
	// then target = base + core[5].AField = 5 + 1 = 6.
	reg, err := resolveOperand(0, 5, redcode.PredecA, core, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), core[5].AField)
	assert.Equal(t, uint32(6), reg.idx)
}

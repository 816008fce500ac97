package marscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyane/marscore/redcode"
)

const testCoreSize = 8000

func newTestEmulator(t *testing.T, warriors, processes uint32) *Emulator {
	t.Helper()
	e, err := New(testCoreSize, 0, warriors, processes)
	require.NoError(t, err)
	return e
}

func mustWrite(t *testing.T, e *Emulator, addr uint32, instr redcode.Instruction, aField, bField uint32) {
	t.Helper()
	id, err := e.RCToBytecode(instr)
	require.NoError(t, err)
	require.NoError(t, e.WriteCore(addr, id, aField, bField))
}

// TestImp is scenario 1: a single Mov.I $0, $1 copies itself forward through
// the whole core and wraps after exactly core_size cycles.
func TestImp(t *testing.T) {
	e := newTestEmulator(t, 1, 64)
	imp := redcode.Instruction{Opcode: redcode.Mov, Modifier: redcode.I, AMode: redcode.Direct, BMode: redcode.Direct}
	mustWrite(t, e, 0, imp, 0, 1)
	require.NoError(t, e.ReplaceProcessQueue(0, []uint32{0}))

	_, ok, err := e.Step(0)
	require.NoError(t, err)
	require.True(t, ok)

	_, aField, bField, err := e.ReadCore(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), aField)
	assert.Equal(t, uint32(1), bField)
	queue, err := e.ReadProcessQueue(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, queue)

	for i := 0; i < testCoreSize-1; i++ {
		_, _, err := e.Step(0)
		require.NoError(t, err)
	}
	for addr := uint32(0); addr < testCoreSize; addr++ {
		_, aField, bField, err := e.ReadCore(addr)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), aField, "addr %d", addr)
		assert.Equal(t, uint32(1), bField, "addr %d", addr)
	}
	queue, err = e.ReadProcessQueue(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, queue)
}

// TestDwarf is a classic bomber: a three-instruction loop that walks the
// core in increments of 4, each time re-planting a zero over the cell its
// own bomb pointer (core[0]'s B-field, grown by the AB-modifier Add each
// time the loop comes around) now indirects to.
func TestDwarf(t *testing.T) {
	e := newTestEmulator(t, 1, 64)
	dat := redcode.Instruction{Opcode: redcode.Dat, Modifier: redcode.F, AMode: redcode.Immediate, BMode: redcode.Immediate}
	addAB := redcode.Instruction{Opcode: redcode.Add, Modifier: redcode.AB, AMode: redcode.Immediate, BMode: redcode.Direct}
	movAB := redcode.Instruction{Opcode: redcode.Mov, Modifier: redcode.AB, AMode: redcode.Immediate, BMode: redcode.IndirectB}
	jmpA := redcode.Instruction{Opcode: redcode.Jmp, Modifier: redcode.A, AMode: redcode.Direct, BMode: redcode.Immediate}

	datID, err := e.RCToBytecode(dat)
	require.NoError(t, err)
	require.NoError(t, e.ResetCore(datID, 0, 0))

	mustWrite(t, e, 1, addAB, 4, testCoreSize-1) // #4, $-1 (bomb pointer at core[0])
	mustWrite(t, e, 2, movAB, 0, testCoreSize-2) // #0, @-2 (indirect through core[0].b_field)
	mustWrite(t, e, 3, jmpA, testCoreSize-2, 0)  // $-2, #0 (back to address 1)

	require.NoError(t, e.ReplaceProcessQueue(0, []uint32{1}))

	for i := 0; i < 3; i++ {
		_, _, err := e.Step(0)
		require.NoError(t, err)
	}
	_, aField, bField, err := e.ReadCore(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), aField)
	assert.Equal(t, uint32(4), bField, "one loop increments the bomb pointer by 4")
	queue, err := e.ReadProcessQueue(0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, queue, "the loop returns control to its own head")

	for i := 0; i < 12; i++ {
		_, _, err := e.Step(0)
		require.NoError(t, err)
	}
	_, _, bField, err = e.ReadCore(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), bField, "five loops grow the bomb pointer to 5*4")
	for _, addr := range []uint32{4, 8, 12, 16, 20} {
		_, aField, bField, err := e.ReadCore(addr)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), aField, "addr %d", addr)
		assert.Equal(t, uint32(0), bField, "addr %d: re-planted zero", addr)
	}
}

// TestSelfKillingDiv is scenario 3: Div.F #0, #0 divides by zero on both
// fields, so neither write happens and the process is not re-enqueued.
func TestSelfKillingDiv(t *testing.T) {
	e := newTestEmulator(t, 1, 64)
	div := redcode.Instruction{Opcode: redcode.Div, Modifier: redcode.F, AMode: redcode.Immediate, BMode: redcode.Immediate}
	mustWrite(t, e, 0, div, 0, 0)
	require.NoError(t, e.ReplaceProcessQueue(0, []uint32{0}))

	_, ok, err := e.Step(0)
	require.NoError(t, err)
	require.True(t, ok)

	queue, err := e.ReadProcessQueue(0)
	require.NoError(t, err)
	assert.Empty(t, queue)
	assert.Empty(t, e.ActiveWarriorSet())

	_, aField, bField, err := e.ReadCore(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), aField)
	assert.Equal(t, uint32(0), bField)
}

// TestSplCap is scenario 4: a core full of Spl.B $0, $0 at a process cap of
// 3 stabilizes at queue length 3 once the cap starts dropping pushes.
func TestSplCap(t *testing.T) {
	e := newTestEmulator(t, 1, 3)
	spl := redcode.Instruction{Opcode: redcode.Spl, Modifier: redcode.B, AMode: redcode.Direct, BMode: redcode.Direct}
	for addr := uint32(0); addr < testCoreSize; addr++ {
		mustWrite(t, e, addr, spl, 0, 0)
	}
	require.NoError(t, e.ReplaceProcessQueue(0, []uint32{0}))

	for i := 0; i < 5; i++ {
		for _, w := range e.ActiveWarriorSet() {
			_, _, err := e.Step(w)
			require.NoError(t, err)
		}
	}
	queue, err := e.ReadProcessQueue(0)
	require.NoError(t, err)
	assert.Len(t, queue, 3)
}

// TestJmnJmzAsymmetry is scenario 5: with b.a_field == 0 and b.b_field == 1,
// Jmz.F's AND-combined zero test does not fire, but Jmn.F's OR-combined
// nonzero test does.
func TestJmnJmzAsymmetry(t *testing.T) {
	for _, tc := range []struct {
		name     string
		opcode   redcode.Opcode
		wantJump bool
	}{
		{"jmz does not jump", redcode.Jmz, false},
		{"jmn jumps", redcode.Jmn, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEmulator(t, 1, 64)
			// core[0]'s B operand (Direct, field 50) points at core[50], which
			// carries a_field=0, b_field=1: the asymmetric case from the scenario.
			instr := redcode.Instruction{Opcode: tc.opcode, Modifier: redcode.F, AMode: redcode.Direct, BMode: redcode.Direct}
			mustWrite(t, e, 0, instr, 50, 50)
			dat := redcode.Instruction{Opcode: redcode.Dat, Modifier: redcode.F, AMode: redcode.Immediate, BMode: redcode.Immediate}
			mustWrite(t, e, 50, dat, 0, 1)

			require.NoError(t, e.ReplaceProcessQueue(0, []uint32{0}))
			_, _, err := e.Step(0)
			require.NoError(t, err)

			queue, err := e.ReadProcessQueue(0)
			require.NoError(t, err)
			if tc.wantJump {
				assert.Equal(t, []uint32{50}, queue)
			} else {
				assert.Equal(t, []uint32{1}, queue)
			}
		})
	}
}

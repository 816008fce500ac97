// Package redcode defines the Redcode instruction model: opcodes, modifiers,
// addressing modes, and the instruction/field types that make up one cell of
// CoreWar core memory.
package redcode

// Opcode identifies the operation a CompleteInstruction performs.
type Opcode int

const (
	Dat Opcode = iota
	Mov
	Add
	Sub
	Mul
	Div
	Mod
	Jmp
	Jmz
	Jmn
	Djn
	Spl
	Slt
	Cmp
	Seq
	Sne
	Nop
	Ldp
	Stp
	numOpcodes
)

var opcodeNames = [numOpcodes]string{
	"DAT", "MOV", "ADD", "SUB", "MUL", "DIV", "MOD", "JMP", "JMZ", "JMN",
	"DJN", "SPL", "SLT", "CMP", "SEQ", "SNE", "NOP", "LDP", "STP",
}

func (o Opcode) String() string {
	if o < 0 || o >= numOpcodes {
		return "INVALID"
	}
	return opcodeNames[o]
}

// Valid reports whether o is one of the 19 defined opcodes.
func (o Opcode) Valid() bool {
	return o >= 0 && o < numOpcodes
}

// Modifier selects which field(s) of an instruction participate in an
// operation and which field(s) of the destination are written.
type Modifier int

const (
	A Modifier = iota
	B
	AB
	BA
	F
	X
	I
	numModifiers
)

var modifierNames = [numModifiers]string{"A", "B", "AB", "BA", "F", "X", "I"}

func (m Modifier) String() string {
	if m < 0 || m >= numModifiers {
		return "INVALID"
	}
	return modifierNames[m]
}

// Valid reports whether m is one of the 7 defined modifiers.
func (m Modifier) Valid() bool {
	return m >= 0 && m < numModifiers
}

// AddrMode selects how an operand's field is resolved into a core target.
type AddrMode int

const (
	Immediate AddrMode = iota
	Direct
	IndirectA
	IndirectB
	PredecA
	PredecB
	PostincA
	PostincB
	numAddrModes
)

var addrModeSymbols = [numAddrModes]string{"#", "$", "*", "@", "{", "<", "}", ">"}

func (m AddrMode) String() string {
	if m < 0 || m >= numAddrModes {
		return "?"
	}
	return addrModeSymbols[m]
}

// Valid reports whether m is one of the 8 defined addressing modes.
func (m AddrMode) Valid() bool {
	return m >= 0 && m < numAddrModes
}

// FieldValue is an address or operand field, always kept in [0, core_size).
type FieldValue = uint32

// Instruction is the non-field part of a core cell: opcode, modifier, and
// the two addressing modes. This is the unit the bytecode codec operates on.
type Instruction struct {
	Opcode   Opcode
	Modifier Modifier
	AMode    AddrMode
	BMode    AddrMode
}

// Valid reports whether every component of i is in range.
func (i Instruction) Valid() bool {
	return i.Opcode.Valid() && i.Modifier.Valid() && i.AMode.Valid() && i.BMode.Valid()
}

// CompleteInstruction is one cell of core memory: an Instruction plus its two
// operand fields.
type CompleteInstruction struct {
	Instr  Instruction
	AField FieldValue
	BField FieldValue
}

// Warrior is a sequence of core cells plus the metadata a loadfile carries:
// where execution starts, and an optional PSPACE pin.
type Warrior struct {
	Code  []CompleteInstruction
	Start FieldValue
	Pin   *int64
}

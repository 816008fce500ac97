package marscore

import (
	"github.com/golang/glog"

	"github.com/jyane/marscore/emuerr"
	"github.com/jyane/marscore/redcode"
)

// Emulator is the public contract a MARS/battle driver consumes: core
// memory, per-warrior process queues, and PSPACE, all driven one cycle at a
// time. An Emulator is single-threaded and synchronous; there are no
// suspension points.
type Emulator struct {
	settings CoreSettings
	codec    redcode.Codec
	core     []redcode.CompleteInstruction
	queues   *processQueueSet
	pspace   *pspaceStore
}

// New constructs an Emulator. It rejects a core size above 2^31 and a
// PSPACE size larger than the core itself.
func New(coreSize, pspaceSize, warriors, processes uint32) (*Emulator, error) {
	if uint64(coreSize) > maxCoreSize {
		return nil, emuerr.NewInvalidParam("core_size %d exceeds maximum of 2^31", coreSize)
	}
	if pspaceSize > coreSize {
		return nil, emuerr.NewInvalidParam("pspace_size %d exceeds core_size %d", pspaceSize, coreSize)
	}
	settings := CoreSettings{
		CoreSize:   coreSize,
		PSpaceSize: pspaceSize,
		Warriors:   warriors,
		Processes:  processes,
	}
	return &Emulator{
		settings: settings,
		codec:    settings.codec(),
		core:     make([]redcode.CompleteInstruction, coreSize),
		queues:   newProcessQueueSet(warriors, processes),
		pspace:   newPspaceStore(pspaceSize),
	}, nil
}

// NewWithFormat is New with an explicit bytecode format string advertised
// through CoreSettings.BytecodeFormat (see §6's persisted-state layout).
func NewWithFormat(coreSize, pspaceSize, warriors, processes uint32, bytecodeFormat string) (*Emulator, error) {
	e, err := New(coreSize, pspaceSize, warriors, processes)
	if err != nil {
		return nil, err
	}
	e.settings.BytecodeFormat = bytecodeFormat
	return e, nil
}

// InitializePSpace discards any existing PSPACE state and partitions
// warriors into PSPACE groups according to pairs of (pin, warriorID).
func (e *Emulator) InitializePSpace(pairs [][2]int64) error {
	for _, pair := range pairs {
		wid := pair[1]
		if wid < 0 || uint64(wid) >= uint64(e.settings.Warriors) {
			return emuerr.NewInvalidParam("invalid warrior ID %d in pspace map", wid)
		}
	}
	store := newPspaceStore(e.settings.PSpaceSize)
	seen := make(map[int64]bool)
	for _, pair := range pairs {
		pin := pair[0]
		if !seen[pin] {
			seen[pin] = true
			if err := store.addPSpace(pin); err != nil {
				return err
			}
		}
	}
	for _, pair := range pairs {
		pin, wid := pair[0], uint32(pair[1])
		if err := store.assign(wid, pin); err != nil {
			return err
		}
	}
	e.pspace = store
	return nil
}

func (e *Emulator) validWarrior(wid uint32) error {
	if wid >= e.settings.Warriors {
		return emuerr.NewInvalidParam("warrior id %d is not in [0, %d)", wid, e.settings.Warriors)
	}
	return nil
}

func (e *Emulator) validAddr(addr uint32, what string) error {
	if addr >= e.settings.CoreSize {
		return emuerr.NewInvalidParam("%s: address %d is not in [0, %d)", what, addr, e.settings.CoreSize)
	}
	return nil
}

// stepEmulator evaluates operands at pc and runs the opcode handler for
// warrior wid. It is the single per-cycle unit of work the dispatcher
// drives.
func (e *Emulator) stepEmulator(pc uint32, wid uint32) error {
	regs, err := evaluate(pc, e.core, e.settings.CoreSize)
	if err != nil {
		glog.Errorf("marscore: operand evaluation failed at pc=%d warrior=%d: %v", pc, wid, err)
		return err
	}
	ctx := &opContext{
		warriorID: wid,
		regs:      regs,
		coreSize:  e.settings.CoreSize,
		queues:    e.queues,
		core:      e.core,
		pspace:    e.pspace,
	}
	return dispatch(ctx)
}

// Step executes the next instruction for warriorID, returning the program
// counter it executed, or ok == false if the warrior has no active
// process.
func (e *Emulator) Step(warriorID uint32) (pc uint32, ok bool, err error) {
	if err := e.validWarrior(warriorID); err != nil {
		return 0, false, err
	}
	pc, ok, err = e.queues.pop(warriorID)
	if err != nil || !ok {
		return 0, false, err
	}
	if err := e.stepEmulator(pc, warriorID); err != nil {
		return 0, false, err
	}
	return pc, true, nil
}

// Run executes cycles until either the cycle budget is exhausted or the
// number of active warriors drops to warriorsRemaining or fewer. It returns
// the number of cycles actually executed.
//
// Within each cycle, the set of active warriors is snapshotted at cycle
// entry; a warrior that becomes active mid-cycle (e.g. spawned by Spl) does
// not execute until the next cycle. Mutual simultaneous death is possible:
// two warriors can kill each other within one cycle, and the round ends in
// a tie once Run is called again.
func (e *Emulator) Run(cycles uint64, warriorsRemaining uint64) (uint64, error) {
	var cyclesDone uint64
	for cyclesDone < cycles && uint64(len(e.queues.activeWarriors())) > warriorsRemaining {
		for _, w := range e.queues.activeWarriors() {
			if _, _, err := e.Step(w); err != nil {
				return cyclesDone, err
			}
		}
		cyclesDone++
	}
	return cyclesDone, nil
}

// ReadCore returns the bytecode identifier and fields stored at addr.
func (e *Emulator) ReadCore(addr uint32) (redcode.BytecodeID, uint32, uint32, error) {
	if err := e.validAddr(addr, "read_core"); err != nil {
		return 0, 0, 0, err
	}
	cell := e.core[addr]
	id, err := e.codec.Encode(cell.Instr)
	if err != nil {
		return 0, 0, 0, err
	}
	return id, cell.AField, cell.BField, nil
}

// WriteCore overwrites the cell at addr with the instruction decoded from
// id and the given fields.
func (e *Emulator) WriteCore(addr uint32, id redcode.BytecodeID, aField, bField uint32) error {
	if err := e.validAddr(addr, "write_core"); err != nil {
		return err
	}
	if err := e.validAddr(aField, "write_core a_field"); err != nil {
		return err
	}
	if err := e.validAddr(bField, "write_core b_field"); err != nil {
		return err
	}
	instr, ok := e.codec.Decode(id)
	if !ok {
		return emuerr.NewInvalidParam("write_core: bytecode identifier %d does not decode to a valid instruction", id)
	}
	e.core[addr] = redcode.CompleteInstruction{Instr: instr, AField: aField, BField: bField}
	return nil
}

// ReadPSpace returns the PSPACE value at addr for warriorID.
func (e *Emulator) ReadPSpace(warriorID, addr uint32) (uint32, error) {
	if err := e.validWarrior(warriorID); err != nil {
		return 0, err
	}
	if e.settings.PSpaceSize == 0 {
		return 0, emuerr.NewUnsupportedFeature("read_pspace: emulator has no pspace configured")
	}
	if addr >= e.settings.PSpaceSize {
		return 0, emuerr.NewInvalidParam("pspace address %d is not in [0, %d)", addr, e.settings.PSpaceSize)
	}
	v, err := e.pspace.read(warriorID, addr)
	if err != nil {
		return 0, emuerr.NewInvalidParam("pspace not configured for warrior %d", warriorID)
	}
	return v, nil
}

// WritePSpace overwrites the PSPACE value at addr for warriorID.
func (e *Emulator) WritePSpace(warriorID, addr, value uint32) error {
	if err := e.validWarrior(warriorID); err != nil {
		return err
	}
	if e.settings.PSpaceSize == 0 {
		return emuerr.NewUnsupportedFeature("write_pspace: emulator has no pspace configured")
	}
	if addr >= e.settings.PSpaceSize {
		return emuerr.NewInvalidParam("pspace address %d is not in [0, %d)", addr, e.settings.PSpaceSize)
	}
	if err := e.pspace.write(warriorID, addr, value); err != nil {
		return emuerr.NewInvalidParam("pspace not configured for warrior %d", warriorID)
	}
	return nil
}

// ResetCore clears every warrior's process queue and PSPACE state, and
// fills every core cell with the given instruction.
func (e *Emulator) ResetCore(id redcode.BytecodeID, aField, bField uint32) error {
	instr, ok := e.codec.Decode(id)
	if !ok {
		return emuerr.NewInvalidParam("reset_core: bytecode identifier %d does not decode to a valid instruction", id)
	}
	cell := redcode.CompleteInstruction{Instr: instr, AField: aField, BField: bField}
	for i := range e.core {
		e.core[i] = cell
	}
	e.queues.resetAll()
	e.pspace = newPspaceStore(e.settings.PSpaceSize)
	return nil
}

// ActiveWarriorSet returns the sorted-ascending list of warrior IDs with a
// non-empty process queue.
func (e *Emulator) ActiveWarriorSet() []uint32 {
	return e.queues.activeWarriors()
}

// ReadProcessQueue returns a copy of warriorID's process queue, head first.
func (e *Emulator) ReadProcessQueue(warriorID uint32) ([]uint32, error) {
	if err := e.validWarrior(warriorID); err != nil {
		return nil, err
	}
	return e.queues.read(warriorID)
}

// ReplaceProcessQueue overwrites warriorID's process queue verbatim,
// validating that every entry is a valid core address.
func (e *Emulator) ReplaceProcessQueue(warriorID uint32, queue []uint32) error {
	if err := e.validWarrior(warriorID); err != nil {
		return err
	}
	for _, pc := range queue {
		if err := e.validAddr(pc, "replace_process_queue"); err != nil {
			return err
		}
	}
	return e.queues.replace(warriorID, queue)
}

// CoreSettings returns the emulator's immutable settings record.
func (e *Emulator) CoreSettings() CoreSettings {
	return e.settings
}

// BytecodeToRC decodes a bytecode identifier into a redcode.Instruction.
func (e *Emulator) BytecodeToRC(id redcode.BytecodeID) (redcode.Instruction, error) {
	instr, ok := e.codec.Decode(id)
	if !ok {
		return redcode.Instruction{}, emuerr.NewInvalidParam("invalid bytecode instruction %d", id)
	}
	return instr, nil
}

// RCToBytecode encodes a redcode.Instruction into this emulator's bytecode
// identifier space.
func (e *Emulator) RCToBytecode(instr redcode.Instruction) (redcode.BytecodeID, error) {
	return e.codec.Encode(instr)
}

// LoadWarrior writes w's code into the core starting at addr, and replaces
// warriorID's process queue with a single process at (addr + w.Start) mod
// core_size. It is a thin convenience built on WriteCore and
// ReplaceProcessQueue for callers that have already decided on placement;
// placement policy itself (where to put warriors in the core) is out of
// scope for this engine.
func (e *Emulator) LoadWarrior(warriorID uint32, addr uint32, w redcode.Warrior) error {
	if err := e.validWarrior(warriorID); err != nil {
		return err
	}
	for i, instr := range w.Code {
		cellAddr, err := add(addr, uint32(i), e.settings.CoreSize)
		if err != nil {
			return err
		}
		id, err := e.codec.Encode(instr.Instr)
		if err != nil {
			return err
		}
		if err := e.WriteCore(cellAddr, id, instr.AField, instr.BField); err != nil {
			return err
		}
	}
	start, err := add(addr, w.Start, e.settings.CoreSize)
	if err != nil {
		return err
	}
	return e.ReplaceProcessQueue(warriorID, []uint32{start})
}

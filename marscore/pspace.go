package marscore

import "github.com/jyane/marscore/emuerr"

// pspaceStore is per-warrior (pin-shared) persistent memory. Index 0 of
// every warrior's bank is private even when two warriors share a pin.
type pspaceStore struct {
	size        uint32
	banks       map[int64][]uint32 // pin -> shared bank
	warriorPin  map[uint32]int64   // warrior id -> pin
	zeroIndexes map[uint32]uint32  // warrior id -> private index-0 value
}

func newPspaceStore(size uint32) *pspaceStore {
	return &pspaceStore{
		size:        size,
		banks:       make(map[int64][]uint32),
		warriorPin:  make(map[uint32]int64),
		zeroIndexes: make(map[uint32]uint32),
	}
}

// addPSpace allocates a zero-filled bank under pin. It fails if the pin
// already has a bank.
func (p *pspaceStore) addPSpace(pin int64) error {
	if _, exists := p.banks[pin]; exists {
		return emuerr.NewInvalidParam("pspace bank already exists for pin %d", pin)
	}
	p.banks[pin] = make([]uint32, p.size)
	return nil
}

// assign maps wid to pin, which must already have a bank, and initializes
// wid's private index-0 value to 0 if it has none yet.
func (p *pspaceStore) assign(wid uint32, pin int64) error {
	if _, exists := p.banks[pin]; !exists {
		return emuerr.NewInvalidParam("pspace bank for pin %d does not exist", pin)
	}
	p.warriorPin[wid] = pin
	if _, ok := p.zeroIndexes[wid]; !ok {
		p.zeroIndexes[wid] = 0
	}
	return nil
}

// read returns the value at addr in wid's PSPACE.
func (p *pspaceStore) read(wid, addr uint32) (uint32, error) {
	if addr == 0 {
		v, ok := p.zeroIndexes[wid]
		if !ok {
			return 0, emuerr.NewInvalidParam("warrior %d has no pspace", wid)
		}
		return v, nil
	}
	bank, err := p.bankFor(wid)
	if err != nil {
		return 0, err
	}
	if addr >= p.size {
		return 0, emuerr.NewInvalidParam("pspace address %d out of range for size %d", addr, p.size)
	}
	return bank[addr], nil
}

// write overwrites the value at addr in wid's PSPACE.
func (p *pspaceStore) write(wid, addr, value uint32) error {
	if addr == 0 {
		if _, ok := p.zeroIndexes[wid]; !ok {
			return emuerr.NewInvalidParam("warrior %d has no pspace", wid)
		}
		p.zeroIndexes[wid] = value
		return nil
	}
	bank, err := p.bankFor(wid)
	if err != nil {
		return err
	}
	if addr >= p.size {
		return emuerr.NewInvalidParam("pspace address %d out of range for size %d", addr, p.size)
	}
	bank[addr] = value
	return nil
}

func (p *pspaceStore) bankFor(wid uint32) ([]uint32, error) {
	pin, ok := p.warriorPin[wid]
	if !ok {
		return nil, emuerr.NewInvalidParam("warrior %d has no pspace", wid)
	}
	bank, ok := p.banks[pin]
	if !ok {
		return nil, emuerr.NewInvalidParam("no pspace bank allocated for pin %d", pin)
	}
	return bank, nil
}

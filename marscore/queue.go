package marscore

import (
	"sort"

	"github.com/jyane/marscore/emuerr"
)

// processQueueSet is a fixed-length vector of per-warrior FIFOs, one per
// warrior ID in [0, warriors). Each FIFO is bounded by a shared capacity.
type processQueueSet struct {
	queues   [][]uint32
	capacity uint32
}

func newProcessQueueSet(warriors, capacity uint32) *processQueueSet {
	return &processQueueSet{
		queues:   make([][]uint32, warriors),
		capacity: capacity,
	}
}

func (q *processQueueSet) validWarrior(wid uint32) error {
	if int(wid) >= len(q.queues) {
		return emuerr.NewInternalError("warrior id %d has no process queue", wid)
	}
	return nil
}

// pop removes and returns the head of wid's queue. ok is false if the queue
// is empty.
func (q *processQueueSet) pop(wid uint32) (pc uint32, ok bool, err error) {
	if err := q.validWarrior(wid); err != nil {
		return 0, false, err
	}
	queue := q.queues[wid]
	if len(queue) == 0 {
		return 0, false, nil
	}
	pc = queue[0]
	q.queues[wid] = queue[1:]
	return pc, true, nil
}

// pushBack appends pc to wid's queue, silently dropping it if the queue is
// already at capacity. This drop-on-overflow discipline is required by the
// Spl semantics in the ICWS '94 standard.
func (q *processQueueSet) pushBack(wid uint32, pc uint32) error {
	if err := q.validWarrior(wid); err != nil {
		return err
	}
	if uint32(len(q.queues[wid])) < q.capacity {
		q.queues[wid] = append(q.queues[wid], pc)
	}
	return nil
}

// replace overwrites wid's queue verbatim. It rejects lists longer than the
// configured capacity.
func (q *processQueueSet) replace(wid uint32, list []uint32) error {
	if err := q.validWarrior(wid); err != nil {
		return err
	}
	if uint32(len(list)) > q.capacity {
		return emuerr.NewInternalError("replace queue: list of length %d exceeds process capacity %d", len(list), q.capacity)
	}
	cp := make([]uint32, len(list))
	copy(cp, list)
	q.queues[wid] = cp
	return nil
}

// resetAll clears every warrior's queue.
func (q *processQueueSet) resetAll() {
	for i := range q.queues {
		q.queues[i] = nil
	}
}

// activeWarriors returns the sorted-ascending list of warrior IDs with a
// non-empty queue.
func (q *processQueueSet) activeWarriors() []uint32 {
	active := make([]uint32, 0, len(q.queues))
	for wid, queue := range q.queues {
		if len(queue) > 0 {
			active = append(active, uint32(wid))
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	return active
}

// read returns a copy of wid's queue in order, head first.
func (q *processQueueSet) read(wid uint32) ([]uint32, error) {
	if err := q.validWarrior(wid); err != nil {
		return nil, err
	}
	cp := make([]uint32, len(q.queues[wid]))
	copy(cp, q.queues[wid])
	return cp, nil
}

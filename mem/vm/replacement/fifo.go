package replacement

import (
	"github.com/sarchlab/pagesim/mem/vm/frametable"
)

// FIFOVictimFinder evicts the frame that was loaded the earliest.
type FIFOVictimFinder struct {
	loadQueue []int
}

// NewFIFOVictimFinder returns a newly constructed FIFO evictor.
func NewFIFOVictimFinder() *FIFOVictimFinder {
	return &FIFOVictimFinder{}
}

// Visit does nothing. FIFO ignores accesses.
func (e *FIFOVictimFinder) Visit(_ frametable.Frame) {
}

// Load appends the frame to the back of the load queue.
func (e *FIFOVictimFinder) Load(frame frametable.Frame) {
	e.loadQueue = append(e.loadQueue, frame.SlotID)
}

// FindVictim pops the oldest loaded frame from the queue.
func (e *FIFOVictimFinder) FindVictim(
	table frametable.FrameTable,
	_ int,
) frametable.Frame {
	if len(e.loadQueue) == 0 {
		panic("fifo queue is empty")
	}

	slotID := e.loadQueue[0]
	e.loadQueue = e.loadQueue[1:]

	return table.Frame(slotID)
}

// Queue returns the slot IDs in load order, oldest first.
func (e *FIFOVictimFinder) Queue() []int {
	q := make([]int, len(e.loadQueue))
	copy(q, e.loadQueue)

	return q
}

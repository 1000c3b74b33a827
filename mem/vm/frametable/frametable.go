// Package frametable models the physical frames that resident pages occupy.
package frametable

import "fmt"

// A FrameTable is a fixed set of physical frames.
type FrameTable interface {
	FindResident(page uint64) (Frame, bool)
	FindFree() (Frame, bool)
	Install(slotID int, page uint64)
	Frame(slotID int) Frame
	Frames() []Frame
	NumFrames() int
	NumResident() int
	Reset()
}

// NewFrameTable creates a frame table with numFrames empty frames.
func NewFrameTable(numFrames int) FrameTable {
	if numFrames <= 0 {
		panic("number of frames must be positive")
	}

	t := &frameTableImpl{
		NumSlots: numFrames,
	}

	t.Reset()

	return t
}

// A Frame is one slot of physical memory. A frame that is not valid is empty.
type Frame struct {
	SlotID  int
	Page    uint64
	IsValid bool
}

type frameTableImpl struct {
	NumSlots int
	Slots    []Frame
}

// FindResident returns the first frame that holds page.
func (t *frameTableImpl) FindResident(page uint64) (Frame, bool) {
	for _, f := range t.Slots {
		if f.IsValid && f.Page == page {
			return f, true
		}
	}

	return Frame{}, false
}

// FindFree returns the first empty frame.
func (t *frameTableImpl) FindFree() (Frame, bool) {
	for _, f := range t.Slots {
		if !f.IsValid {
			return f, true
		}
	}

	return Frame{}, false
}

// Install places page in a slot, overwriting whatever was there.
func (t *frameTableImpl) Install(slotID int, page uint64) {
	t.mustBeInRange(slotID)

	t.Slots[slotID].Page = page
	t.Slots[slotID].IsValid = true
}

func (t *frameTableImpl) Frame(slotID int) Frame {
	t.mustBeInRange(slotID)

	return t.Slots[slotID]
}

// Frames returns a copy of all the frames, ordered by slot.
func (t *frameTableImpl) Frames() []Frame {
	frames := make([]Frame, len(t.Slots))
	copy(frames, t.Slots)

	return frames
}

func (t *frameTableImpl) NumFrames() int {
	return t.NumSlots
}

func (t *frameTableImpl) NumResident() int {
	n := 0

	for _, f := range t.Slots {
		if f.IsValid {
			n++
		}
	}

	return n
}

// Reset marks all the frames empty.
func (t *frameTableImpl) Reset() {
	t.Slots = make([]Frame, t.NumSlots)
	for i := range t.Slots {
		t.Slots[i].SlotID = i
	}
}

func (t *frameTableImpl) mustBeInRange(slotID int) {
	if slotID < 0 || slotID >= t.NumSlots {
		panic(fmt.Sprintf("slot %d out of range [0, %d)", slotID, t.NumSlots))
	}
}

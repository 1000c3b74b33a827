package replacement

import (
	"github.com/sarchlab/pagesim/mem/vm/frametable"
)

// OPTVictimFinder implements Belady's optimal policy. It evicts the resident
// page whose next use lies furthest in the future.
//
// A page that is never used again is evicted first. When several pages are
// never used again the one in the lowest slot is chosen.
type OPTVictimFinder struct {
	pages []uint64
}

// NewOPTVictimFinder creates an OPT evictor that looks ahead in pages, the
// decoded page number of every stream position.
func NewOPTVictimFinder(pages []uint64) *OPTVictimFinder {
	return &OPTVictimFinder{pages: pages}
}

// Visit does nothing.
func (e *OPTVictimFinder) Visit(_ frametable.Frame) {
}

// Load does nothing.
func (e *OPTVictimFinder) Load(_ frametable.Frame) {
}

// NextUse returns the first position after pos that references page. It
// returns false if page is never referenced again.
func (e *OPTVictimFinder) NextUse(pos int, page uint64) (int, bool) {
	for i := pos + 1; i < len(e.pages); i++ {
		if e.pages[i] == page {
			return i, true
		}
	}

	return 0, false
}

// FindVictim scans forward from pos for each resident frame.
func (e *OPTVictimFinder) FindVictim(
	table frametable.FrameTable,
	pos int,
) frametable.Frame {
	var (
		victim   frametable.Frame
		found    bool
		furthest int
	)

	for _, f := range table.Frames() {
		if !f.IsValid {
			continue
		}

		next, used := e.NextUse(pos, f.Page)
		if !used {
			return f
		}

		if !found || next > furthest {
			victim, furthest, found = f, next, true
		}
	}

	if !found {
		panic("no resident frame to evict")
	}

	return victim
}

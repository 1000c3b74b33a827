package replacement

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/pagesim/mem/vm/frametable"
)

// TieBreak selects how LFUVictimFinder chooses among frames that share the
// lowest use count.
type TieBreak int

const (
	// TieBreakUniform picks each tied frame with equal probability.
	TieBreakUniform TieBreak = iota

	// TieBreakCoinFlip walks the frames in slot order and replaces the
	// current choice with a tied frame on a coin flip. Later slots are
	// favored.
	TieBreakCoinFlip
)

func (t TieBreak) String() string {
	switch t {
	case TieBreakUniform:
		return "uniform"
	case TieBreakCoinFlip:
		return "coinflip"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// ParseTieBreak converts a name produced by TieBreak.String back into a
// TieBreak.
func ParseTieBreak(s string) (TieBreak, error) {
	switch s {
	case "uniform", "":
		return TieBreakUniform, nil
	case "coinflip":
		return TieBreakCoinFlip, nil
	default:
		return 0, fmt.Errorf("unknown tie break %q", s)
	}
}

// LFUVictimFinder evicts the resident page that has been used the least.
//
// Use counts start at zero the first time a page is seen and are kept when
// the page is evicted, so a page that returns continues from its old count.
type LFUVictimFinder struct {
	rng       *rand.Rand
	tieBreak  TieBreak
	useCounts map[uint64]int
}

// NewLFUVictimFinder returns a newly constructed LFU evictor that draws tie
// breaks from rng.
func NewLFUVictimFinder(rng *rand.Rand, tieBreak TieBreak) *LFUVictimFinder {
	if rng == nil {
		panic("lfu victim finder requires a random source")
	}

	return &LFUVictimFinder{
		rng:       rng,
		tieBreak:  tieBreak,
		useCounts: make(map[uint64]int),
	}
}

// UseCount returns how many times page has been referenced while resident.
func (e *LFUVictimFinder) UseCount(page uint64) int {
	return e.useCounts[page]
}

// Visit counts a hit.
func (e *LFUVictimFinder) Visit(frame frametable.Frame) {
	e.useCounts[frame.Page]++
}

// Load counts the reference that brought the page in.
func (e *LFUVictimFinder) Load(frame frametable.Frame) {
	e.useCounts[frame.Page]++
}

// FindVictim returns a resident frame with the lowest use count.
func (e *LFUVictimFinder) FindVictim(
	table frametable.FrameTable,
	_ int,
) frametable.Frame {
	switch e.tieBreak {
	case TieBreakUniform:
		return e.findUniform(table.Frames())
	case TieBreakCoinFlip:
		return e.findCoinFlip(table.Frames())
	default:
		panic(fmt.Sprintf("unknown tie break %d", e.tieBreak))
	}
}

func (e *LFUVictimFinder) findUniform(
	frames []frametable.Frame,
) frametable.Frame {
	var candidates []frametable.Frame

	lowest := 0

	for _, f := range frames {
		if !f.IsValid {
			continue
		}

		count := e.useCounts[f.Page]

		switch {
		case len(candidates) == 0 || count < lowest:
			lowest = count
			candidates = append(candidates[:0], f)
		case count == lowest:
			candidates = append(candidates, f)
		}
	}

	if len(candidates) == 0 {
		panic("no resident frame to evict")
	}

	return candidates[e.rng.Intn(len(candidates))]
}

func (e *LFUVictimFinder) findCoinFlip(
	frames []frametable.Frame,
) frametable.Frame {
	var (
		victim frametable.Frame
		found  bool
		lowest int
	)

	for _, f := range frames {
		if !f.IsValid {
			continue
		}

		count := e.useCounts[f.Page]

		switch {
		case !found || count < lowest:
			victim, lowest, found = f, count, true
		case count == lowest && e.rng.Intn(2) == 1:
			victim = f
		}
	}

	if !found {
		panic("no resident frame to evict")
	}

	return victim
}

// Package replacement provides the page replacement policies that decide
// which frame gives up its page when a fault finds no free frame.
package replacement

import (
	"github.com/sarchlab/pagesim/mem/vm/frametable"
)

// A VictimFinder decides which frame should be evicted.
type VictimFinder interface {
	// Visit is called when a reference hits a resident page.
	Visit(frame frametable.Frame)

	// Load is called after a faulting page has been installed into frame.
	Load(frame frametable.Frame)

	// FindVictim returns the frame to evict. It is only called when the table
	// has no free frame. pos is the stream position of the faulting
	// reference.
	FindVictim(table frametable.FrameTable, pos int) frametable.Frame
}

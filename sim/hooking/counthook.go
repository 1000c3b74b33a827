package hooking

import (
	"sort"
	"sync"
)

// PosCountHook counts how many times each hook position is triggered.
type PosCountHook struct {
	lock     sync.Mutex
	posNames []string
	count    map[string]uint64
}

// NewPosCountHook creates a new PosCountHook.
func NewPosCountHook() *PosCountHook {
	return &PosCountHook{
		count: make(map[string]uint64),
	}
}

// Func records one trigger of ctx.Pos.
func (h *PosCountHook) Func(ctx HookCtx) {
	if ctx.Pos == nil {
		return
	}

	h.lock.Lock()
	defer h.lock.Unlock()

	name := ctx.Pos.Name
	if _, ok := h.count[name]; !ok {
		h.posNames = append(h.posNames, name)
	}

	h.count[name]++
}

// GetPosNames returns the names of all the positions seen, sorted.
func (h *PosCountHook) GetPosNames() []string {
	h.lock.Lock()
	defer h.lock.Unlock()

	names := make([]string, len(h.posNames))
	copy(names, h.posNames)
	sort.Strings(names)

	return names
}

// GetCount returns the number of times the named position was triggered.
func (h *PosCountHook) GetCount(posName string) uint64 {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.count[posName]
}

// Snapshot returns a copy of all the counters.
func (h *PosCountHook) Snapshot() map[string]uint64 {
	h.lock.Lock()
	defer h.lock.Unlock()

	out := make(map[string]uint64, len(h.count))
	for k, v := range h.count {
		out[k] = v
	}

	return out
}

package simulation

import (
	"log"

	"github.com/sarchlab/pagesim/sim/hooking"
)

// A ReferenceTraceHook prints one line per reference and one line per
// finished run.
type ReferenceTraceHook struct {
	hooking.LogHookBase
}

// NewReferenceTraceHook creates a ReferenceTraceHook printing to logger.
func NewReferenceTraceHook(logger *log.Logger) *ReferenceTraceHook {
	return &ReferenceTraceHook{LogHookBase: hooking.NewLogHookBase(logger)}
}

// Func prints references and run results.
func (h *ReferenceTraceHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosReference:
		ref, ok := ctx.Item.(Reference)
		if !ok {
			return
		}

		h.logReference(ref)
	case HookPosRunEnd:
		result, ok := ctx.Item.(Result)
		if !ok {
			return
		}

		h.Logf("%s, %s, done, faults=%d\n",
			result.RunID, result.Policy, result.Faults)
	}
}

func (h *ReferenceTraceHook) logReference(ref Reference) {
	switch {
	case !ref.Fault:
		h.Logf("%s, %s, %d, hit, page=%d, slot=%d\n",
			ref.RunID, ref.Policy, ref.Position, ref.Page, ref.SlotID)
	case ref.Evicted:
		h.Logf("%s, %s, %d, fault, page=%d, slot=%d, evict=%d\n",
			ref.RunID, ref.Policy, ref.Position, ref.Page, ref.SlotID,
			ref.EvictedPage)
	default:
		h.Logf("%s, %s, %d, fault, page=%d, slot=%d\n",
			ref.RunID, ref.Policy, ref.Position, ref.Page, ref.SlotID)
	}
}

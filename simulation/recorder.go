package simulation

import (
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/sim/hooking"
)

// Table names written by a ResultRecorder.
const (
	RunTableName       = "pagesim_runs"
	ReferenceTableName = "pagesim_references"
)

type runEntry struct {
	RunID         string
	Policy        string
	Faults        int
	NumReferences int
	OpenPages     int
	PageSize      int
}

type referenceEntry struct {
	RunID       string
	Position    int
	Address     uint64
	Page        uint64
	PageOffset  uint64
	Fault       bool
	SlotID      int
	Evicted     bool
	EvictedPage uint64
}

// A ResultRecorder is a hook that stores run results, and optionally every
// reference, through a data recorder.
type ResultRecorder struct {
	dataRecorder     datarecording.DataRecorder
	recordReferences bool
}

// NewResultRecorder creates the tables and returns the hook.
func NewResultRecorder(
	dataRecorder datarecording.DataRecorder,
	recordReferences bool,
) *ResultRecorder {
	r := &ResultRecorder{
		dataRecorder:     dataRecorder,
		recordReferences: recordReferences,
	}

	r.dataRecorder.CreateTable(RunTableName, runEntry{})

	if recordReferences {
		r.dataRecorder.CreateTable(ReferenceTableName, referenceEntry{})
	}

	return r
}

// Func records the hook item.
func (r *ResultRecorder) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosReference:
		if !r.recordReferences {
			return
		}

		if ref, ok := ctx.Item.(Reference); ok {
			r.dataRecorder.InsertData(ReferenceTableName, referenceEntry{
				RunID:       ref.RunID,
				Position:    ref.Position,
				Address:     ref.Address,
				Page:        ref.Page,
				PageOffset:  ref.Offset,
				Fault:       ref.Fault,
				SlotID:      ref.SlotID,
				Evicted:     ref.Evicted,
				EvictedPage: ref.EvictedPage,
			})
		}
	case HookPosRunEnd:
		if result, ok := ctx.Item.(Result); ok {
			r.dataRecorder.InsertData(RunTableName, runEntry{
				RunID:         result.RunID,
				Policy:        string(result.Policy),
				Faults:        result.Faults,
				NumReferences: result.References,
				OpenPages:     result.OpenPages,
				PageSize:      result.PageSize,
			})
		}
	}
}

// Package simulation replays a reference stream through page replacement
// policies and counts the faults.
package simulation

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/pagesim/mem/vm/addressing"
	"github.com/sarchlab/pagesim/mem/vm/frametable"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
	"github.com/sarchlab/pagesim/sim/hooking"
	"github.com/sarchlab/pagesim/sim/id"
	"github.com/sarchlab/pagesim/stream"
)

// Hook positions triggered by a Simulator.
var (
	// HookPosRunStart is triggered before the first reference of a run. The
	// item is the Policy and the detail is the run ID.
	HookPosRunStart = &hooking.HookPos{Name: "RunStart"}

	// HookPosReference is triggered after every reference. The item is a
	// Reference.
	HookPosReference = &hooking.HookPos{Name: "Reference"}

	// HookPosRunEnd is triggered after the last reference. The item is the
	// Result.
	HookPosRunEnd = &hooking.HookPos{Name: "RunEnd"}
)

// A Reference describes what happened to one address of the stream.
type Reference struct {
	RunID       string
	Policy      Policy
	Position    int
	Address     uint64
	Page        uint64
	Offset      uint64
	Fault       bool
	SlotID      int
	Evicted     bool
	EvictedPage uint64
	Faults      int
}

// A Result is the outcome of one run.
type Result struct {
	RunID      string `json:"run_id"`
	Policy     Policy `json:"policy"`
	Faults     int    `json:"faults"`
	References int    `json:"references"`
	OpenPages  int    `json:"open_pages"`
	PageSize   int    `json:"page_size"`
}

// Config reports the parameters a Simulator was built with.
type Config struct {
	PageSize       int    `json:"page_size"`
	SequenceLength int    `json:"sequence_length"`
	OpenPages      int    `json:"open_pages"`
	TieBreak       string `json:"tie_break"`
}

// A Simulator owns one reference stream and replays it through replacement
// policies. A Simulator is not safe for concurrent use.
type Simulator struct {
	hooking.HookableBase

	pageSize    int
	openPages   int
	tieBreak    replacement.TieBreak
	rng         *rand.Rand
	idGenerator id.IDGenerator

	stream  *stream.ReferenceStream
	decoder *addressing.Decoder
	frames  frametable.FrameTable
	faults  FaultCounter
}

// Config returns the parameters of the simulator.
func (s *Simulator) Config() Config {
	return Config{
		PageSize:       s.pageSize,
		SequenceLength: s.stream.Len(),
		OpenPages:      s.openPages,
		TieBreak:       s.tieBreak.String(),
	}
}

// ReferenceStream returns a copy of the addresses in stream order.
func (s *Simulator) ReferenceStream() []uint64 {
	return s.stream.Addresses()
}

// Decoder returns the address decoder, so that hooks can be attached.
func (s *Simulator) Decoder() *addressing.Decoder {
	return s.decoder
}

// Frames returns the frames as left by the latest run.
func (s *Simulator) Frames() []frametable.Frame {
	return s.frames.Frames()
}

// RunFIFO replays the stream with FIFO replacement and returns the faults.
func (s *Simulator) RunFIFO() int {
	return s.Run(PolicyFIFO).Faults
}

// RunLFU replays the stream with LFU replacement and returns the faults.
func (s *Simulator) RunLFU() int {
	return s.Run(PolicyLFU).Faults
}

// RunOPT replays the stream with Belady's optimal replacement and returns
// the faults.
func (s *Simulator) RunOPT() int {
	return s.Run(PolicyOPT).Faults
}

// Run replays the whole stream through policy, starting from empty frames.
func (s *Simulator) Run(policy Policy) Result {
	policyMustBeKnown(policy)

	s.frames.Reset()
	s.faults.Reset()

	runID := s.idGenerator.Generate()
	s.invoke(HookPosRunStart, policy, runID)

	translations := s.decodeStream()
	pages := make([]uint64, len(translations))

	for i, t := range translations {
		pages[i] = t.Page
	}

	finder := s.newVictimFinder(policy, pages)

	for pos, t := range translations {
		ref := s.reference(finder, pos, t)
		ref.RunID = runID
		ref.Policy = policy

		s.invoke(HookPosReference, ref, nil)
	}

	result := Result{
		RunID:      runID,
		Policy:     policy,
		Faults:     s.faults.Count(),
		References: len(translations),
		OpenPages:  s.openPages,
		PageSize:   s.pageSize,
	}

	s.invoke(HookPosRunEnd, result, nil)

	return result
}

func (s *Simulator) decodeStream() []addressing.Translation {
	translations := make([]addressing.Translation, s.stream.Len())
	for i := range translations {
		translations[i] = s.decoder.Decode(s.stream.At(i))
	}

	return translations
}

func (s *Simulator) reference(
	finder replacement.VictimFinder,
	pos int,
	t addressing.Translation,
) Reference {
	ref := Reference{
		Position: pos,
		Address:  t.Address,
		Page:     t.Page,
		Offset:   t.Offset,
	}

	if frame, hit := s.frames.FindResident(t.Page); hit {
		finder.Visit(frame)

		ref.SlotID = frame.SlotID
		ref.Faults = s.faults.Count()

		return ref
	}

	s.faults.Increment()
	ref.Fault = true

	frame, free := s.frames.FindFree()
	if !free {
		frame = finder.FindVictim(s.frames, pos)
		ref.Evicted = true
		ref.EvictedPage = frame.Page
	}

	s.frames.Install(frame.SlotID, t.Page)
	finder.Load(s.frames.Frame(frame.SlotID))

	ref.SlotID = frame.SlotID
	ref.Faults = s.faults.Count()

	return ref
}

func (s *Simulator) newVictimFinder(
	policy Policy,
	pages []uint64,
) replacement.VictimFinder {
	switch policy {
	case PolicyFIFO:
		return replacement.NewFIFOVictimFinder()
	case PolicyLFU:
		return replacement.NewLFUVictimFinder(s.rng, s.tieBreak)
	case PolicyOPT:
		return replacement.NewOPTVictimFinder(pages)
	default:
		panic(fmt.Sprintf("unknown policy %q", policy))
	}
}

func policyMustBeKnown(policy Policy) {
	for _, p := range AllPolicies {
		if p == policy {
			return
		}
	}

	panic(fmt.Sprintf("unknown policy %q", policy))
}

func (s *Simulator) invoke(pos *hooking.HookPos, item, detail any) {
	if s.NumHooks() == 0 {
		return
	}

	s.InvokeHook(hooking.HookCtx{
		Domain: s,
		Pos:    pos,
		Item:   item,
		Detail: detail,
	})
}

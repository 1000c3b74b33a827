package simulation

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sarchlab/pagesim/mem/vm/addressing"
	"github.com/sarchlab/pagesim/mem/vm/frametable"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
	"github.com/sarchlab/pagesim/sim/hooking"
	"github.com/sarchlab/pagesim/sim/id"
	"github.com/sarchlab/pagesim/stream"
)

// Default parameters of a simulator.
const (
	DefaultPageSize       = 4096
	DefaultSequenceLength = 100
	DefaultOpenPages      = 3
)

// Builder can be used to build a Simulator.
type Builder struct {
	pageSize       int
	sequenceLength int
	openPages      int
	rng            *rand.Rand
	seed           int64
	seedSet        bool
	generator      stream.Generator
	tieBreak       replacement.TieBreak
	idGenerator    id.IDGenerator
	hooks          []hooking.Hook
	decodeHooks    []hooking.Hook
}

// MakeBuilder creates a new builder with the default parameters.
func MakeBuilder() Builder {
	return Builder{
		pageSize:       DefaultPageSize,
		sequenceLength: DefaultSequenceLength,
		openPages:      DefaultOpenPages,
		tieBreak:       replacement.TieBreakUniform,
	}
}

// WithPageSize sets the number of bytes in a page.
func (b Builder) WithPageSize(pageSize int) Builder {
	b.pageSize = pageSize
	return b
}

// WithSequenceLength sets the number of addresses in the reference stream.
func (b Builder) WithSequenceLength(n int) Builder {
	b.sequenceLength = n
	return b
}

// WithOpenPages sets the number of physical frames.
func (b Builder) WithOpenPages(n int) Builder {
	b.openPages = n
	return b
}

// WithSeed seeds the random source used for stream generation and LFU tie
// breaks.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	b.seedSet = true
	b.rng = nil

	return b
}

// WithRand sets the random source used for stream generation and LFU tie
// breaks. It overrides WithSeed.
func (b Builder) WithRand(rng *rand.Rand) Builder {
	b.rng = rng
	return b
}

// WithStreamGenerator replaces the random address generator.
func (b Builder) WithStreamGenerator(g stream.Generator) Builder {
	b.generator = g
	return b
}

// WithTieBreak sets how LFU chooses among equally used frames.
func (b Builder) WithTieBreak(t replacement.TieBreak) Builder {
	b.tieBreak = t
	return b
}

// WithIDGenerator sets the generator of run IDs.
func (b Builder) WithIDGenerator(g id.IDGenerator) Builder {
	b.idGenerator = g
	return b
}

// WithHook registers a hook on the simulator.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(append([]hooking.Hook{}, b.hooks...), h)
	return b
}

// WithDecodeHook registers a hook on the address decoder.
func (b Builder) WithDecodeHook(h hooking.Hook) Builder {
	b.decodeHooks = append(append([]hooking.Hook{}, b.decodeHooks...), h)
	return b
}

func (b Builder) validate() error {
	var errs []error

	if b.pageSize <= 0 {
		errs = append(errs, &ConfigurationError{
			Field:  "pageSize",
			Value:  b.pageSize,
			Reason: "must be positive",
		})
	}

	if b.openPages <= 0 {
		errs = append(errs, &ConfigurationError{
			Field:  "openPages",
			Value:  b.openPages,
			Reason: "must be positive",
		})
	}

	if b.sequenceLength < 0 {
		errs = append(errs, &ConfigurationError{
			Field:  "sequenceLength",
			Value:  b.sequenceLength,
			Reason: "must not be negative",
		})
	}

	if b.tieBreak != replacement.TieBreakUniform &&
		b.tieBreak != replacement.TieBreakCoinFlip {
		errs = append(errs, &ConfigurationError{
			Field:  "tieBreak",
			Value:  b.tieBreak,
			Reason: "unknown tie break",
		})
	}

	return errors.Join(errs...)
}

// Build validates the parameters, generates the reference stream, and
// returns the simulator.
func (b Builder) Build() (*Simulator, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		pageSize:  b.pageSize,
		openPages: b.openPages,
		tieBreak:  b.tieBreak,
		decoder:   addressing.NewDecoder(uint64(b.pageSize)),
		frames:    frametable.NewFrameTable(b.openPages),
	}

	s.rng = b.rng
	if s.rng == nil {
		seed := b.seed
		if !b.seedSet {
			seed = time.Now().UnixNano()
		}

		s.rng = rand.New(rand.NewSource(seed))
	}

	s.idGenerator = b.idGenerator
	if s.idGenerator == nil {
		s.idGenerator = id.NewIDGenerator()
	}

	gen := b.generator
	if gen == nil {
		gen = stream.NewRandomGenerator(s.rng)
	}

	refStream, err := stream.New(gen, b.sequenceLength)
	if err != nil {
		return nil, fmt.Errorf("building simulator: %w", err)
	}

	s.stream = refStream

	for _, h := range b.hooks {
		s.AcceptHook(h)
	}

	for _, h := range b.decodeHooks {
		s.decoder.AcceptHook(h)
	}

	return s, nil
}

// Package id generates identifiers for simulation runs.
package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator produces unique IDs.
type IDGenerator interface {
	Generate() string
}

// NewIDGenerator returns an ID generator whose IDs are unique across
// processes.
func NewIDGenerator() IDGenerator {
	return xidGenerator{}
}

// NewSequentialIDGenerator returns an ID generator that counts from "1".
// IDs are only unique within one generator.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	id := strconv.FormatUint(idNumber, 10)

	return id
}

type xidGenerator struct {
}

func (g xidGenerator) Generate() string {
	return xid.New().String()
}

// Package stream provides the sequence of virtual addresses that every
// replacement policy replays.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// AddressSpaceSize is the number of distinct virtual addresses. Addresses are
// 16 bits wide.
const AddressSpaceSize = 1 << 16

// ErrAddressOutOfRange is returned when a generator produces an address that
// does not fit in the address space.
var ErrAddressOutOfRange = errors.New("address out of range")

// A Generator produces the addresses of a reference stream.
type Generator interface {
	Generate(n int) ([]uint64, error)
}

// A ReferenceStream is an immutable sequence of addresses.
type ReferenceStream struct {
	addresses []uint64
}

// New draws n addresses from gen and freezes them into a stream.
func New(gen Generator, n int) (*ReferenceStream, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative stream length %d", n)
	}

	addrs, err := gen.Generate(n)
	if err != nil {
		return nil, fmt.Errorf("generating reference stream: %w", err)
	}

	if len(addrs) != n {
		return nil, fmt.Errorf(
			"generator produced %d addresses, want %d", len(addrs), n)
	}

	for i, a := range addrs {
		if a >= AddressSpaceSize {
			return nil, fmt.Errorf("position %d, address 0x%x: %w",
				i, a, ErrAddressOutOfRange)
		}
	}

	frozen := make([]uint64, n)
	copy(frozen, addrs)

	return &ReferenceStream{addresses: frozen}, nil
}

// Len returns the number of addresses in the stream.
func (s *ReferenceStream) Len() int {
	return len(s.addresses)
}

// At returns the address at position i.
func (s *ReferenceStream) At(i int) uint64 {
	return s.addresses[i]
}

// Addresses returns a copy of the addresses in stream order.
func (s *ReferenceStream) Addresses() []uint64 {
	out := make([]uint64, len(s.addresses))
	copy(out, s.addresses)

	return out
}

// RandomGenerator draws addresses uniformly from the address space.
type RandomGenerator struct {
	rng *rand.Rand
}

// NewRandomGenerator creates a RandomGenerator that uses rng.
func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	return &RandomGenerator{rng: rng}
}

// Generate returns n random addresses.
func (g *RandomGenerator) Generate(n int) ([]uint64, error) {
	addrs := make([]uint64, n)
	for i := range addrs {
		addrs[i] = uint64(g.rng.Intn(AddressSpaceSize))
	}

	return addrs, nil
}

// SliceGenerator replays a fixed sequence of addresses.
type SliceGenerator []uint64

// Generate returns the first n addresses of the slice.
func (g SliceGenerator) Generate(n int) ([]uint64, error) {
	if n > len(g) {
		return nil, fmt.Errorf("only %d addresses available, want %d", len(g), n)
	}

	out := make([]uint64, n)
	copy(out, g[:n])

	return out, nil
}

// FileGenerator reads addresses from a text file, one per line. Addresses
// may be decimal or hexadecimal with a 0x prefix. Blank lines and lines that
// start with # are skipped.
type FileGenerator struct {
	Path string
}

// NewFileGenerator creates a FileGenerator that reads path.
func NewFileGenerator(path string) *FileGenerator {
	return &FileGenerator{Path: path}
}

// Generate reads the first n addresses of the file. A negative n reads the
// whole file.
func (g *FileGenerator) Generate(n int) ([]uint64, error) {
	addrs, err := g.readAll()
	if err != nil {
		return nil, err
	}

	if n < 0 {
		return addrs, nil
	}

	return SliceGenerator(addrs).Generate(n)
}

// Count returns how many addresses the file holds.
func (g *FileGenerator) Count() (int, error) {
	addrs, err := g.readAll()
	if err != nil {
		return 0, err
	}

	return len(addrs), nil
}

func (g *FileGenerator) readAll() ([]uint64, error) {
	f, err := os.Open(g.Path)
	if err != nil {
		return nil, fmt.Errorf("opening address file: %w", err)
	}
	defer f.Close()

	var addrs []uint64

	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		addr, err := strconv.ParseUint(line, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", g.Path, lineNo, err)
		}

		addrs = append(addrs, addr)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading address file: %w", err)
	}

	return addrs, nil
}

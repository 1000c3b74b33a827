// Package addressing splits virtual addresses into page numbers and offsets.
package addressing

import (
	"log"

	"github.com/sarchlab/pagesim/sim/hooking"
)

// HookPosDecode is triggered every time a Decoder decodes an address. The
// hook item is the Translation produced.
var HookPosDecode = &hooking.HookPos{Name: "Decode"}

// Decode returns the page number and the in-page offset of address. pageSize
// must be positive.
func Decode(address, pageSize uint64) (page, offset uint64) {
	return address / pageSize, address % pageSize
}

// A Translation is the result of decoding one address.
type Translation struct {
	Address uint64
	Page    uint64
	Offset  uint64
}

// A Decoder decodes addresses with a fixed page size.
type Decoder struct {
	hooking.HookableBase

	pageSize uint64
}

// NewDecoder creates a decoder. It panics if pageSize is 0.
func NewDecoder(pageSize uint64) *Decoder {
	if pageSize == 0 {
		panic("page size must be positive")
	}

	return &Decoder{pageSize: pageSize}
}

// PageSize returns the page size the decoder uses.
func (d *Decoder) PageSize() uint64 {
	return d.pageSize
}

// Decode translates an address and notifies the hooks.
func (d *Decoder) Decode(address uint64) Translation {
	page, offset := Decode(address, d.pageSize)
	t := Translation{
		Address: address,
		Page:    page,
		Offset:  offset,
	}

	if d.NumHooks() > 0 {
		d.InvokeHook(hooking.HookCtx{
			Domain: d,
			Pos:    HookPosDecode,
			Item:   t,
		})
	}

	return t
}

// DecodeAll decodes every address in order and returns the page numbers.
func (d *Decoder) DecodeAll(addresses []uint64) []uint64 {
	pages := make([]uint64, len(addresses))
	for i, addr := range addresses {
		pages[i] = d.Decode(addr).Page
	}

	return pages
}

// A TraceHook prints every decoded address.
type TraceHook struct {
	hooking.LogHookBase
}

// NewTraceHook creates a TraceHook that prints through logger.
func NewTraceHook(logger *log.Logger) *TraceHook {
	return &TraceHook{LogHookBase: hooking.NewLogHookBase(logger)}
}

// Func prints the translation if the hook is triggered by a decode.
func (h *TraceHook) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosDecode {
		return
	}

	t, ok := ctx.Item.(Translation)
	if !ok {
		return
	}

	h.Logf("Decoding address 0x%x\t[Page %d, Offset %d]\n",
		t.Address, t.Page, t.Offset)
}

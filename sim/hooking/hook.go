// Package hooking lets observers attach to the simulator without the
// simulator knowing who is listening.
package hooking

// A HookPos names a point where a Hookable calls its hooks. Positions are
// compared by pointer, so each one is declared once as a package variable.
type HookPos struct {
	Name string
}

// HookCtx describes one call of the hooks.
type HookCtx struct {
	// Domain is the object that invoked the hooks.
	Domain Hookable

	// Pos is where in the domain the hooks were invoked.
	Pos *HookPos

	// Item is the main payload, for example a decoded address or a run
	// result.
	Item any

	// Detail carries extra information that depends on Pos.
	Detail any
}

// Hookable is implemented by everything that observers can attach to.
type Hookable interface {
	AcceptHook(hook Hook)
	RemoveHook(hook Hook) bool
	NumHooks() int
	Hooks() []Hook
}

// A Hook observes a Hookable.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function into a Hook. The function only runs for
// the positions listed in Positions, or for every position when Positions
// is empty.
type HookFunc struct {
	Positions []*HookPos
	F         func(ctx HookCtx)
}

// Func invokes the wrapped function.
func (h *HookFunc) Func(ctx HookCtx) {
	if len(h.Positions) == 0 {
		h.F(ctx)
		return
	}

	for _, pos := range h.Positions {
		if pos == ctx.Pos {
			h.F(ctx)
			return
		}
	}
}

// HookableBase keeps the hooks of a Hookable in registration order. Embed it
// to implement Hookable.
type HookableBase struct {
	hooks []Hook
}

// NumHooks returns how many hooks are attached.
func (b *HookableBase) NumHooks() int {
	return len(b.hooks)
}

// Hooks returns a copy of the attached hooks. Changing the returned slice
// does not change the hooks that are invoked.
func (b *HookableBase) Hooks() []Hook {
	out := make([]Hook, len(b.hooks))
	copy(out, b.hooks)

	return out
}

// AcceptHook attaches a hook. Attaching the same hook twice panics.
func (b *HookableBase) AcceptHook(hook Hook) {
	if b.indexOf(hook) >= 0 {
		panic("duplicated hook")
	}

	b.hooks = append(b.hooks, hook)
}

// RemoveHook detaches a hook and reports whether it was attached. The order
// of the remaining hooks is kept.
func (b *HookableBase) RemoveHook(hook Hook) bool {
	i := b.indexOf(hook)
	if i < 0 {
		return false
	}

	b.hooks = append(b.hooks[:i:i], b.hooks[i+1:]...)

	return true
}

// InvokeHook calls every attached hook with ctx, in registration order.
func (b *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range b.hooks {
		hook.Func(ctx)
	}
}

func (b *HookableBase) indexOf(hook Hook) int {
	for i, h := range b.hooks {
		if h == hook {
			return i
		}
	}

	return -1
}

package hooking

import (
	"log"
)

// A LogHook is a hook that is responsible for recording information from the
// simulation.
type LogHook interface {
	Hook
}

// LogHookBase provides the common logic for all LogHooks.
type LogHookBase struct {
	*log.Logger
}

// NewLogHookBase wraps a logger. A nil logger produces a hook base that
// discards everything.
func NewLogHookBase(logger *log.Logger) LogHookBase {
	return LogHookBase{Logger: logger}
}

// Logf prints through the wrapped logger if there is one.
func (h LogHookBase) Logf(format string, v ...any) {
	if h.Logger == nil {
		return
	}

	h.Printf(format, v...)
}

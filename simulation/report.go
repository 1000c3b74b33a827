package simulation

import (
	"fmt"
	"strings"
)

// FormatStream renders addresses as "Stream: [0x1a2b, 0x3c4d]".
func FormatStream(addresses []uint64) string {
	var sb strings.Builder

	sb.WriteString("Stream: [")

	for i, a := range addresses {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "0x%x", a)
	}

	sb.WriteString("]")

	return sb.String()
}

// FormatResult renders a one-line summary of a run.
func FormatResult(r Result) string {
	return fmt.Sprintf("%s experienced %d faults over %d virtual addresses!",
		r.Policy.DisplayName(), r.Faults, r.References)
}

package simulation

// A FaultCounter counts the page faults of one run.
type FaultCounter struct {
	count int
}

// Reset sets the count back to zero.
func (c *FaultCounter) Reset() {
	c.count = 0
}

// Increment records one fault.
func (c *FaultCounter) Increment() {
	c.count++
}

// Count returns the number of faults recorded since the last reset.
func (c *FaultCounter) Count() int {
	return c.count
}

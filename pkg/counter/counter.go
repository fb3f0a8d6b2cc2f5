package counter

import "go.uber.org/atomic"

// Counter hands out process-unique, increasing identifiers. The zero value is
// ready to use and its first call to Next returns 1.
type Counter struct {
	n atomic.Uint64
}

// Next returns the next identifier. Safe for concurrent use.
func (c *Counter) Next() uint64 {
	return c.n.Inc()
}

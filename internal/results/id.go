package results

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// RecordIDPrefix prefixes every generated record ID
const RecordIDPrefix = "rec-"

// IDGenerator produces record IDs from a monotonic counter and a random
// suffix. The counter alone keeps IDs unique within a process; the suffix
// keeps them unique across generators.
type IDGenerator struct {
	seq atomic.Uint64
}

// Next returns a fresh ID. Safe for concurrent use.
func (g *IDGenerator) Next() string {
	n := g.seq.Add(1)
	return fmt.Sprintf("%s%d-%s", RecordIDPrefix, n, uuid.NewString()[:8])
}

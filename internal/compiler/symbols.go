package compiler

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Symbols mints name constants for synthesized rule heads. Every
// cross-reference between generated rules depends on these being unique
// within one compilation run. Implementations must be safe for
// concurrent use.
type Symbols interface {
	// Next returns a fresh name constant of the form /<prefix>_<suffix>.
	Next(prefix string) string
}

// RandomSymbols derives suffixes from UUID prefixes. Uniqueness is
// statistical, which is all the compiled cross-references require.
type RandomSymbols struct{}

func (RandomSymbols) Next(prefix string) string {
	return fmt.Sprintf("/%s_%s", prefix, uuid.New().String()[:8])
}

// SequentialSymbols numbers symbols from an atomic counter, giving
// deterministic, reproducible output. The zero value is ready to use.
type SequentialSymbols struct {
	n atomic.Uint64
}

func (s *SequentialSymbols) Next(prefix string) string {
	return fmt.Sprintf("/%s_%d", prefix, s.n.Add(1))
}

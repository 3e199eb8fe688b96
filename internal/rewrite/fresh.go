package rewrite

import (
	"fmt"

	"github.com/funvibe/purelift/internal/config"
	"github.com/funvibe/purelift/internal/ir"
)

// Fresh mints globally-unique bound names for one translation unit. It
// is a value threaded explicitly through every call that may need a
// name and returned alongside the result, never shared as ambient
// state, so independent rewrite calls are fully reproducible.
type Fresh struct {
	serial int
}

func NewFresh() Fresh {
	return Fresh{}
}

// Next returns a fresh name and the generator to use afterwards.
func (f Fresh) Next() (ir.Name, Fresh) {
	serial := f.serial + 1
	return ir.NewName(fmt.Sprintf("%s%d", config.FreshNamePrefix, serial)), Fresh{serial: serial}
}

// Serial exposes the current counter, for tests and for partitioning
// counters across independently rewritten declarations.
func (f Fresh) Serial() int {
	return f.serial
}

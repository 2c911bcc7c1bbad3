package kleene

import (
	"fmt"

	"github.com/bytekleene/kleene/ast"
)

// Re-exported parse-error sentinels (spec.md §7), so callers can
// errors.Is against them without importing the ast package directly.
var (
	ErrIllegalEscape   = ast.ErrIllegalEscape
	ErrRangeOutOfOrder = ast.ErrRangeOutOfOrder
	ErrUnclosedGroup   = ast.ErrUnclosedGroup
	ErrUnclosedSet     = ast.ErrUnclosedSet
)

// CompileError reports why a pattern failed to compile.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("kleene: compiling %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

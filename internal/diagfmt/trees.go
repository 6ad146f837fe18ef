package diagfmt

import (
	"fmt"
	"io"

	"sbasic/internal/ast"
	"sbasic/internal/bound"
	"sbasic/internal/driver"
)

// Emit selects which intermediate result a dump shows.
type Emit string

const (
	EmitCommands   Emit = "commands"
	EmitStatements Emit = "statements"
	EmitBound      Emit = "bound"
)

// ParseEmit validates a --emit flag value.
func ParseEmit(s string) (Emit, error) {
	switch e := Emit(s); e {
	case "":
		return EmitStatements, nil
	case EmitCommands, EmitStatements, EmitBound:
		return e, nil
	default:
		return "", fmt.Errorf("unknown emit %q (expected: commands|statements|bound)", s)
	}
}

// Stage returns the last pipeline stage the dump needs.
func (e Emit) Stage() driver.Stage {
	switch e {
	case EmitCommands:
		return driver.StageCommands
	case EmitStatements:
		return driver.StageStatements
	default:
		return driver.StageBind
	}
}

// DumpTree writes the requested tree of c. The compilation must have run far
// enough for it.
func DumpTree(w io.Writer, c *driver.Compilation, emit Emit) error {
	switch emit {
	case EmitCommands:
		if c.Commands == nil {
			return fmt.Errorf("commands were not produced")
		}
		return ast.DumpCommands(w, c.Commands)
	case EmitStatements:
		if c.ParseTree == nil {
			return fmt.Errorf("parse tree was not produced")
		}
		return ast.DumpTree(w, c.ParseTree)
	case EmitBound:
		if c.BoundTree == nil {
			return fmt.Errorf("bound tree was not produced")
		}
		return bound.Dump(w, c.BoundTree)
	default:
		return fmt.Errorf("unknown emit %q", emit)
	}
}

// Package eir implements the function-level intermediate representation:
// entity arenas, an intrusive per-function layout, the typed IR
// entities, and the staged builder that enforces well-formedness
// incrementally. It is grounded in the teacher's visitor idiom
// (internal/ast's Accept/Visit) for the printer, and in the block/value
// arena shape used by Go SSA implementations in the retrieval pack
// (e.g. golang.org/x/tools's own ssa.Function, wazevo's ssa.Builder) —
// the teacher itself is a tree-walk/bytecode compiler with no
// block-structured IR, so this package's core shape is new code in the
// teacher's surrounding idiom rather than an adaptation of one teacher
// file.
package eir

import "fmt"

// Block identifies an extended basic block (EBB).
type Block uint32

// Op identifies a single IR instruction.
type Op uint32

// BlockCall identifies a (target, arguments) control edge.
type BlockCall uint32

// FunRef identifies an externally-named function reference used by
// capture/apply ops.
type FunRef uint32

// noBlock/noOp act as the "None" used by the layout's head/tail and
// next/prev links.
const (
	noBlock Block = 1<<32 - 1
	noOp    Op    = 1<<32 - 1
)

func (b Block) String() string  { return fmt.Sprintf("block%d", uint32(b)) }
func (o Op) String() string     { return fmt.Sprintf("op%d", uint32(o)) }
func (f FunRef) String() string { return fmt.Sprintf("fun%d", uint32(f)) }

// Value is either a variable (produced by a block parameter or an op's
// write list) or a constant (an atom or a structured constant term);
// constants and variables share one namespace. The low bit of the
// backing integer is the discriminant so the two kinds can't be
// confused by accident; it is never exposed to callers.
type Value uint32

const valueKindBit = 1

func variableValue(idx uint32) Value { return Value(idx<<1) | 0 }
func constantValue(idx uint32) Value { return Value(idx<<1) | valueKindBit }

// IsConstant reports whether v names a constant term rather than a
// variable.
func (v Value) IsConstant() bool { return uint32(v)&valueKindBit == valueKindBit }

// IsVariable reports whether v names a variable (a block parameter or an
// op's SSA result).
func (v Value) IsVariable() bool { return !v.IsConstant() }

func (v Value) index() uint32 { return uint32(v) >> 1 }

func (v Value) String() string {
	if v.IsConstant() {
		return fmt.Sprintf("const%d", v.index())
	}
	return fmt.Sprintf("v%d", v.index())
}

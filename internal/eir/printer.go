package eir

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Print renders fn as the deterministic textual form described by spec
// §6 ("IR textual form"): one line per block header, one line per op,
// walked strictly in layout order so two structurally identical
// functions always produce byte-identical output. Grounded on the
// teacher's own prettyprinter package's one-entity-per-line convention,
// generalized to EIR's block/op shape.
func Print(fn *Function) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "fun %s/%s/%d {\n", fn.Identity.Module, fn.Identity.Name, fn.Identity.Arity)
	for _, block := range fn.Blocks() {
		printBlock(&sb, fn, block)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// PrintVerbose appends an arena/op census to Print's output (debug-only
// tooling, not part of the deterministic textual form itself — counts
// depend on construction history, not structure).
func PrintVerbose(fn *Function) string {
	var sb strings.Builder
	sb.WriteString(Print(fn))
	sb.WriteString("; stats:\n")
	fmt.Fprintf(&sb, ";   blocks: %s\n", humanize.Comma(int64(fn.blocks.Len())))
	fmt.Fprintf(&sb, ";   ops: %s\n", humanize.Comma(int64(fn.ops.Len())))
	fmt.Fprintf(&sb, ";   constants: %s\n", humanize.Comma(int64(fn.constants.Len())))
	fmt.Fprintf(&sb, ";   block_calls: %s\n", humanize.Comma(int64(fn.blockCalls.Len())))
	fmt.Fprintf(&sb, ";   fun_refs: %s\n", humanize.Comma(int64(fn.funRefs.Len())))
	return sb.String()
}

func printBlock(sb *strings.Builder, fn *Function, block Block) {
	params := fn.BlockParams(block)
	fmt.Fprintf(sb, "  %s(%s):\n", block, joinValues(params))
	for _, op := range fn.Ops(block) {
		printOp(sb, fn, op)
	}
}

func printOp(sb *strings.Builder, fn *Function, op Op) {
	writes := fn.OpWrites(op)
	reads := fn.OpReads(op)
	edges := fn.OpEdges(op)

	lhs := ""
	if len(writes) > 0 {
		lhs = joinValues(writes) + " = "
	}
	fmt.Fprintf(sb, "    %s%s(%s)", lhs, fn.OpKind(op), joinValues(reads))
	if aux := fn.OpAux(op); aux != nil {
		fmt.Fprintf(sb, " %s", printAux(aux))
	}
	if len(edges) > 0 {
		parts := make([]string, len(edges))
		for i, e := range edges {
			parts[i] = printBlockCall(fn, e)
		}
		fmt.Fprintf(sb, " -> %s", strings.Join(parts, ", "))
	}
	sb.WriteString("\n")
}

func printBlockCall(fn *Function, call BlockCall) string {
	target := fn.BlockCallTarget(call)
	args := fn.BlockCallArgs(call)
	return fmt.Sprintf("%s(%s)", target, joinValues(args))
}

func printAux(aux any) string {
	switch a := aux.(type) {
	case AuxIdent:
		return fmt.Sprintf("[%s]", a.Name)
	case AuxCallTarget:
		return fmt.Sprintf("[args=%d tail=%t]", a.ArgCount, a.TailCall)
	case AuxUnpack:
		return fmt.Sprintf("[n=%d]", a.N)
	case AuxClosureEnv:
		return fmt.Sprintf("[env=%d]", a.EnvIndex)
	case AuxCase:
		return fmt.Sprintf("[clauses=%d clause=%d]", a.NumClauses, a.ClauseNum)
	case AuxCaseStart:
		return fmt.Sprintf("[body=%s]", a.BodyBlock)
	case AuxFunRef:
		return fmt.Sprintf("[ref=%s]", a.Ref)
	default:
		return fmt.Sprintf("[%v]", a)
	}
}

func joinValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

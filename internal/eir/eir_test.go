package eir_test

import (
	"strings"
	"testing"

	"github.com/eir-lang/eirc/internal/eir"
)

// TestIdentityBuild exercises a minimal function with one block and
// one terminator returning a constant atom.
func TestIdentityBuild(t *testing.T) {
	fn := eir.NewFunction(eir.Identity{Module: "m", Name: "f", Arity: 0})
	b := eir.NewBuilder(fn)
	entry := b.InsertBlockEntry()

	ok := fn.CreateAtomic(eir.AtomTerm{Name: "ok"})
	b.OpReturnOk(ok)
	b.FinishBlock(entry)

	if err := fn.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	blocks := fn.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	ops := fn.Ops(blocks[0])
	if len(ops) != 1 {
		t.Fatalf("expected 1 op, got %d", len(ops))
	}
	ret := ops[0]
	if len(fn.OpWrites(ret)) != 0 {
		t.Errorf("return_ok should write nothing, got %v", fn.OpWrites(ret))
	}
	reads := fn.OpReads(ret)
	if len(reads) != 1 || !reads[0].IsConstant() {
		t.Fatalf("return_ok reads = %v, want single constant", reads)
	}
	if got := fn.ValueTerm(reads[0]); got != (eir.AtomTerm{Name: "ok"}) {
		t.Errorf("return_ok reads constant %v, want 'ok'", got)
	}

	printed := eir.Print(fn)
	if !strings.Contains(printed, "return_ok") {
		t.Errorf("printed form missing return_ok: %q", printed)
	}
}

// TestCallContinuation exercises op_call leaving one outstanding edge,
// which add_op_block_call discharges against a two-parameter
// continuation block.
func TestCallContinuation(t *testing.T) {
	fn := eir.NewFunction(eir.Identity{Module: "m", Name: "f", Arity: 0})
	b := eir.NewBuilder(fn)
	entry := b.InsertBlockEntry()

	mod := fn.CreateAtomic(eir.AtomTerm{Name: "m"})
	name := fn.CreateAtomic(eir.AtomTerm{Name: "g"})
	b.OpCall(mod, name, nil, false)

	cont := b.InsertBlock()
	okParam := b.AddBlockArgument(cont)
	errParam := b.AddBlockArgument(cont)
	b.FinishBlock(cont)
	if len(fn.BlockParams(cont)) != 2 {
		t.Fatalf("continuation block should have 2 params, got %d", len(fn.BlockParams(cont)))
	}

	// The call op writes no values of its own: (ok, err) exist only as the
	// continuation block's parameters, reached through the block-call.
	callOp := fn.Ops(entry)[0]
	writes := fn.OpWrites(callOp)
	if len(writes) != 0 {
		t.Fatalf("op_call should produce no direct writes (results arrive via the continuation's params), got %v", writes)
	}

	call := b.CreateBlockCall(cont, []eir.Value{okParam, errParam})
	b.AddOpBlockCall(call)

	edges := fn.OpEdges(callOp)
	if len(edges) != 1 {
		t.Fatalf("expected 1 outgoing edge on the call op, got %d", len(edges))
	}
	b.PositionAtEnd(cont)
	b.OpReturnOk(okParam)
	b.FinishBlock(cont)

	if err := fn.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

// TestAddOpBlockCallRequiresOutstandingEdge ensures the builder refuses
// to attach a block-call when nothing is outstanding.
func TestAddOpBlockCallRequiresOutstandingEdge(t *testing.T) {
	fn := eir.NewFunction(eir.Identity{Module: "m", Name: "f", Arity: 0})
	b := eir.NewBuilder(fn)
	entry := b.InsertBlockEntry()
	atom := fn.CreateAtomic(eir.AtomTerm{Name: "ok"})
	b.OpReturnOk(atom)
	_ = entry

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic: no outstanding edges")
		}
	}()
	b.AddOpBlockCall(b.CreateBlockCall(entry, nil))
}

// TestPositionAtEndRefusesTerminatedBlock ensures a block whose last op
// is a terminator cannot be reopened for further appends.
func TestPositionAtEndRefusesTerminatedBlock(t *testing.T) {
	fn := eir.NewFunction(eir.Identity{Module: "m", Name: "f", Arity: 0})
	b := eir.NewBuilder(fn)
	entry := b.InsertBlockEntry()
	atom := fn.CreateAtomic(eir.AtomTerm{Name: "ok"})
	b.OpReturnOk(atom)
	b.FinishBlock(entry)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic: block already terminated")
		}
	}()
	b.PositionAtEnd(entry)
}

// TestCreateBlockCallArityMismatch ensures block-call argument count is
// checked against the target's parameter count at construction.
func TestCreateBlockCallArityMismatch(t *testing.T) {
	fn := eir.NewFunction(eir.Identity{Module: "m", Name: "f", Arity: 0})
	b := eir.NewBuilder(fn)
	entry := b.InsertBlockEntry()
	_ = b.AddBlockArgument(entry)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic: block-call argument arity mismatch")
		}
	}()
	b.CreateBlockCall(entry, nil)
}

// TestOpenQuestionKindsRefuseToBuild checks that op kinds with no
// established reads/writes/edge-arity contract error rather than
// silently build something load-bearing code might rely on.
func TestOpenQuestionKindsRefuseToBuild(t *testing.T) {
	fn := eir.NewFunction(eir.Identity{Module: "m", Name: "f", Arity: 0})
	b := eir.NewBuilder(fn)
	b.InsertBlockEntry()

	if _, err := b.OpMakeMap(nil, nil); err == nil {
		t.Error("OpMakeMap should refuse to build")
	}
	if _, err := b.OpReceiveStart(); err == nil {
		t.Error("OpReceiveStart should refuse to build")
	}
	if err := b.OpUnreachable(); err == nil {
		t.Error("OpUnreachable should refuse to build")
	}
}

// TestCaseBodyEdgesSurviveAPriorEdgePoolUser builds a function where two
// ops in sequence each consume the edge pool — op_case_start (one direct
// edge) followed by op_case_body (outstanding edges, attached one at a
// time via AddOpBlockCall). A handle that doesn't track the pool's
// actual tail would let case_body's edges alias or overwrite
// case_start's, so this asserts both ops read back exactly the targets
// they were given.
func TestCaseBodyEdgesSurviveAPriorEdgePoolUser(t *testing.T) {
	fn := eir.NewFunction(eir.Identity{Module: "m", Name: "f", Arity: 0})
	b := eir.NewBuilder(fn)
	entry := b.InsertBlockEntry()

	subject := fn.CreateAtomic(eir.AtomTerm{Name: "x"})
	body := b.InsertBlock()
	caseVal := b.OpCaseStart(nil, subject, nil, body)
	caseStartOp := fn.Ops(entry)[0]
	b.FinishBlock(entry)

	b.PositionAtEnd(body)
	clause1 := b.InsertBlock()
	clause2 := b.InsertBlock()
	noMatch := b.InsertBlock()
	for _, blk := range []eir.Block{clause1, clause2, noMatch} {
		b.FinishBlock(blk)
	}

	b.OpCaseBody(caseVal, 2)
	caseBodyOp := fn.Ops(body)[0]
	b.AddOpBlockCall(b.CreateBlockCall(clause1, nil))
	b.AddOpBlockCall(b.CreateBlockCall(clause2, nil))
	b.AddOpBlockCall(b.CreateBlockCall(noMatch, nil))
	b.FinishBlock(body)

	startEdges := fn.OpEdges(caseStartOp)
	if len(startEdges) != 1 {
		t.Fatalf("case_start should have 1 edge, got %d", len(startEdges))
	}
	if got := fn.BlockCallTarget(startEdges[0]); got != body {
		t.Errorf("case_start edge targets %v, want body block %v", got, body)
	}

	bodyEdges := fn.OpEdges(caseBodyOp)
	if len(bodyEdges) != 3 {
		t.Fatalf("case_body should have 3 edges, got %d", len(bodyEdges))
	}
	wantTargets := []eir.Block{clause1, clause2, noMatch}
	for i, call := range bodyEdges {
		if got := fn.BlockCallTarget(call); got != wantTargets[i] {
			t.Errorf("case_body edge %d targets %v, want %v", i, got, wantTargets[i])
		}
	}
}

// TestValuesShareNamespace checks that constants and variables share
// one value namespace by round-tripping both kinds through
// IsConstant/IsVariable.
func TestValuesShareNamespace(t *testing.T) {
	fn := eir.NewFunction(eir.Identity{Module: "m", Name: "f", Arity: 1})
	b := eir.NewBuilder(fn)
	entry := b.InsertBlockEntry()
	param := b.AddBlockArgument(entry)
	constant := fn.CreateAtomic(eir.AtomTerm{Name: "x"})

	if !param.IsVariable() || param.IsConstant() {
		t.Errorf("block param should be a variable, got %v", param)
	}
	if !constant.IsConstant() || constant.IsVariable() {
		t.Errorf("CreateAtomic result should be a constant, got %v", constant)
	}
}

package patterncfg_test

import (
	"testing"

	"github.com/eir-lang/eirc/internal/patterncfg"
)

// pat is a tiny test-only pattern tree: Ctor=="" && Var=="" is a bare
// wildcard; Ctor=="" && Var!="" binds a variable; Ctor!="" tests a
// constructor and recurses into Args.
type pat struct {
	Ctor string
	Var  string
	Args []pat
}

func wild() pat         { return pat{} }
func v(name string) pat { return pat{Var: name} }
func ctor(name string, args ...pat) pat {
	return pat{Ctor: name, Args: args}
}

type testProvider struct {
	arity map[string]int
}

func (p testProvider) CtorName(x any) (string, bool) {
	pp := x.(pat)
	if pp.Ctor == "" {
		return "", false
	}
	return pp.Ctor, true
}

func (p testProvider) VarName(x any) (string, bool) {
	pp := x.(pat)
	if pp.Var == "" {
		return "", false
	}
	return pp.Var, true
}

func (p testProvider) CtorArity(ctor string) int { return p.arity[ctor] }

func (p testProvider) SubPatterns(x any) []any {
	pp := x.(pat)
	out := make([]any, len(pp.Args))
	for i, a := range pp.Args {
		out[i] = a
	}
	return out
}

// TestTupleVsWildcard exercises a clause list
// matching a 2-tuple constructor against a wildcard compiles to a
// single decision node on the first scrutinee position, with two
// outgoing edges leading to two leaves whose binding sets are disjoint
// and refer to the correct subterm positions.
func TestTupleVsWildcard(t *testing.T) {
	provider := testProvider{arity: map[string]int{"tuple2": 2}}
	clauses := []patterncfg.Clause{
		{Patterns: []any{ctor("tuple2", v("a"), v("b"))}, Body: 0},
		{Patterns: []any{v("x")}, Body: 1},
	}
	root := patterncfg.Compile(provider, clauses, 1)

	if root.Kind != patterncfg.NodeDecision {
		t.Fatalf("root kind = %v, want NodeDecision", root.Kind)
	}
	if root.Column != 0 {
		t.Fatalf("root column = %d, want 0", root.Column)
	}
	if len(root.Edges) != 1 {
		t.Fatalf("root edges = %d, want 1 (tuple2 only)", len(root.Edges))
	}
	if root.Default == nil {
		t.Fatalf("root default edge missing (wildcard clause should produce one)")
	}

	ctorLeaf := root.Edges[0].Next
	if ctorLeaf.Kind != patterncfg.NodeLeaf || ctorLeaf.Body != 0 {
		t.Fatalf("ctor branch leaf = %+v, want body 0", ctorLeaf)
	}
	wantA := []int{0, 0}
	wantB := []int{0, 1}
	if got := ctorLeaf.Bindings["a"]; !equalInts(got, wantA) {
		t.Errorf("binding a = %v, want %v", got, wantA)
	}
	if got := ctorLeaf.Bindings["b"]; !equalInts(got, wantB) {
		t.Errorf("binding b = %v, want %v", got, wantB)
	}

	defLeaf := root.Default
	if defLeaf.Kind != patterncfg.NodeLeaf || defLeaf.Body != 1 {
		t.Fatalf("default branch leaf = %+v, want body 1", defLeaf)
	}
	wantX := []int{0}
	if got := defLeaf.Bindings["x"]; !equalInts(got, wantX) {
		t.Errorf("binding x = %v, want %v", got, wantX)
	}

	// Disjoint binding sets: the ctor leaf never sees "x" and the
	// default leaf never sees "a"/"b".
	if _, ok := ctorLeaf.Bindings["x"]; ok {
		t.Errorf("ctor leaf unexpectedly bound x")
	}
	if _, ok := defLeaf.Bindings["a"]; ok {
		t.Errorf("default leaf unexpectedly bound a")
	}
}

func TestAllWildcardFirstRowShortCircuits(t *testing.T) {
	provider := testProvider{}
	clauses := []patterncfg.Clause{
		{Patterns: []any{v("x")}, Body: 7},
		{Patterns: []any{ctor("unreachable")}, Body: 8},
	}
	root := patterncfg.Compile(provider, clauses, 1)
	if root.Kind != patterncfg.NodeLeaf || root.Body != 7 {
		t.Fatalf("root = %+v, want leaf body 7 (first row is trivial)", root)
	}
}

func TestEmptyMatrixIsFail(t *testing.T) {
	provider := testProvider{}
	root := patterncfg.Compile(provider, nil, 1)
	if root.Kind != patterncfg.NodeFail {
		t.Fatalf("root kind = %v, want NodeFail", root.Kind)
	}
}

func TestGuardedClauseFallsThrough(t *testing.T) {
	provider := testProvider{}
	clauses := []patterncfg.Clause{
		{Patterns: []any{v("x")}, HasGuard: true, Body: 1},
		{Patterns: []any{v("y")}, Body: 2},
	}
	root := patterncfg.Compile(provider, clauses, 1)
	if root.Kind != patterncfg.NodeLeaf || !root.HasGuard {
		t.Fatalf("root = %+v, want guarded leaf", root)
	}
	if root.GuardFallback == nil || root.GuardFallback.Body != 2 {
		t.Fatalf("guard fallback = %+v, want leaf body 2", root.GuardFallback)
	}
}

func TestDumpProducesGraphvizSource(t *testing.T) {
	provider := testProvider{arity: map[string]int{"tuple2": 2}}
	clauses := []patterncfg.Clause{
		{Patterns: []any{ctor("tuple2", v("a"), v("b"))}, Body: 0},
		{Patterns: []any{v("x")}, Body: 1},
	}
	root := patterncfg.Compile(provider, clauses, 1)
	out := patterncfg.Dump(root)
	if out == "" {
		t.Fatal("Dump returned empty string")
	}
	if out[:len("digraph decision {")] != "digraph decision {" {
		t.Errorf("Dump output does not start with digraph header: %q", out)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

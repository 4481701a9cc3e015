package langpattern_test

import (
	"testing"

	"github.com/eir-lang/eirc/internal/langpattern"
	"github.com/eir-lang/eirc/internal/patterncfg"
)

func TestOptionMatchCompiles(t *testing.T) {
	clauses := []patterncfg.Clause{
		{Patterns: []any{langpattern.Some(langpattern.Bind("v"))}, Body: 0},
		{Patterns: []any{langpattern.None()}, Body: 1},
	}
	root := langpattern.Compile(clauses, 1)
	if root.Kind != patterncfg.NodeDecision {
		t.Fatalf("root kind = %v, want NodeDecision", root.Kind)
	}
	if len(root.Edges) != 2 {
		t.Fatalf("expected two constructor edges (Some, None), got %d", len(root.Edges))
	}
	if root.Default != nil {
		t.Errorf("expected no default edge: Some/None clauses exhaust the column")
	}

	var someLeaf, noneLeaf *patterncfg.Node
	for _, e := range root.Edges {
		switch e.Ctor {
		case "Some":
			someLeaf = e.Next
		case "None":
			noneLeaf = e.Next
		}
	}
	if someLeaf == nil || someLeaf.Body != 0 {
		t.Fatalf("Some branch = %+v, want leaf body 0", someLeaf)
	}
	if got := someLeaf.Bindings["v"]; len(got) != 2 || got[0] != 0 || got[1] != 0 {
		t.Errorf("Some binding v = %v, want [0 0]", got)
	}
	if noneLeaf == nil || noneLeaf.Body != 1 {
		t.Fatalf("None branch = %+v, want leaf body 1", noneLeaf)
	}
}

func TestResultMatchWithWildcardDefault(t *testing.T) {
	clauses := []patterncfg.Clause{
		{Patterns: []any{langpattern.Ok(langpattern.Bind("v"))}, Body: 0},
		{Patterns: []any{langpattern.Wildcard()}, Body: 1},
	}
	root := langpattern.Compile(clauses, 1)
	if root.Kind != patterncfg.NodeDecision {
		t.Fatalf("root kind = %v, want NodeDecision", root.Kind)
	}
	if len(root.Edges) != 1 || root.Edges[0].Ctor != "Ok" {
		t.Fatalf("edges = %+v, want single Ok edge", root.Edges)
	}
	if root.Default == nil || root.Default.Body != 1 {
		t.Fatalf("default = %+v, want leaf body 1 (Fail falls to wildcard)", root.Default)
	}
}

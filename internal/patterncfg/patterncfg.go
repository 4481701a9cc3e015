// Package patterncfg compiles a clause matrix into a decision DAG by
// Maranget-style matrix specialization. It is shape-agnostic: callers
// describe their own pattern AST through a small PatternProvider
// capability rather than this package knowing anything about
// constructors, tuples, or literals.
package patterncfg

// PatternProvider describes the calling language's pattern shapes:
// constructor arity, decomposition into sub-patterns, and equivalence.
// p is always a caller-owned pattern AST node, opaque to this package.
type PatternProvider interface {
	// CtorName returns the constructor p is headed by, and true — or
	// false if p is a wildcard or variable-binding pattern with no
	// constructor to test.
	CtorName(p any) (ctor string, ok bool)
	// VarName returns the variable name p binds, and true — or false if
	// p binds nothing (a bare "_").
	VarName(p any) (name string, ok bool)
	// CtorArity is the number of sub-positions a pattern headed by ctor
	// decomposes the scrutinee into.
	CtorArity(ctor string) int
	// SubPatterns returns p's sub-patterns in position order. Only
	// called when CtorName(p) already succeeded; len must equal
	// CtorArity of that constructor.
	SubPatterns(p any) []any
}

// Clause is one matcher arm: one pattern per scrutinee position, an
// opaque body reference, and whether it carries a guard (mirrors the
// case_guard_ok/case_guard_fail protocol: a guarded clause whose guard
// rejects falls through to the next clause in matrix order).
type Clause struct {
	Patterns []any
	HasGuard bool
	Body     int
}

// NodeKind distinguishes a DAG node's role.
type NodeKind int

const (
	NodeDecision NodeKind = iota
	NodeLeaf
	NodeFail // the clause matrix is empty: no clause can match here
)

// Edge is one decision node's outgoing branch for a specific
// constructor.
type Edge struct {
	Ctor  string
	Arity int
	Next  *Node
}

// Node is one vertex of the compiled decision graph: decision nodes
// test a column, leaf nodes carry a clause body.
type Node struct {
	Kind NodeKind

	// NodeDecision fields.
	Column  int    // which current scrutinee column this node tests
	Path    []int  // that column's position path from the original scrutinee tuple
	Edges   []Edge // one per constructor seen at Column, in first-appearance order
	Default *Node  // wildcard fallback; nil if every row at Column named a constructor

	// NodeLeaf fields.
	Body          int
	Bindings      map[string][]int // source variable name -> scrutinee subterm position path
	HasGuard      bool
	GuardFallback *Node // where to continue if this leaf's guard rejects
}

// cell is one matrix entry: either a real caller pattern, or a filler
// standing in for a sub-position that an already-matched wildcard/var
// expanded into (which has no caller pattern to ask the provider
// about).
type cell struct {
	pat    any
	filler bool
	path   []int
}

type row struct {
	cells    []cell
	bindings map[string][]int
	hasGuard bool
	body     int
}

// Compile builds the decision DAG for clauses matching against
// numScrutinees positional values.
func Compile(provider PatternProvider, clauses []Clause, numScrutinees int) *Node {
	rows := make([]row, len(clauses))
	for i, c := range clauses {
		cells := make([]cell, numScrutinees)
		for j, p := range c.Patterns {
			cells[j] = cell{pat: p, path: []int{j}}
		}
		rows[i] = row{cells: cells, bindings: map[string][]int{}, hasGuard: c.HasGuard, body: c.Body}
	}
	return compile(provider, rows)
}

func compile(provider PatternProvider, rows []row) *Node {
	if len(rows) == 0 {
		return &Node{Kind: NodeFail}
	}
	first := rows[0]
	if rowIsTrivial(provider, first) {
		bindings := mergeLeafBindings(provider, first)
		leaf := &Node{Kind: NodeLeaf, Body: first.body, Bindings: bindings, HasGuard: first.hasGuard}
		if first.hasGuard {
			leaf.GuardFallback = compile(provider, rows[1:])
		}
		return leaf
	}

	col := selectColumn(provider, rows)
	ctors := collectCtors(provider, rows, col)

	var edges []Edge
	for _, ctor := range ctors {
		sub := specializeCtor(provider, rows, col, ctor)
		edges = append(edges, Edge{Ctor: ctor, Arity: provider.CtorArity(ctor), Next: compile(provider, sub)})
	}

	defRows := specializeDefault(provider, rows, col)
	var def *Node
	if len(defRows) > 0 {
		def = compile(provider, defRows)
	}

	return &Node{Kind: NodeDecision, Column: col, Path: rows[0].cells[col].path, Edges: edges, Default: def}
}

// rowIsTrivial reports whether every cell of row is wildcard/var/filler
// (no constructor test remains), meaning row matches unconditionally.
func rowIsTrivial(provider PatternProvider, r row) bool {
	for _, c := range r.cells {
		if c.filler {
			continue
		}
		if _, ok := provider.CtorName(c.pat); ok {
			return false
		}
	}
	return true
}

func mergeLeafBindings(provider PatternProvider, r row) map[string][]int {
	bindings := make(map[string][]int, len(r.bindings))
	for k, v := range r.bindings {
		bindings[k] = v
	}
	for _, c := range r.cells {
		if c.filler {
			continue
		}
		if name, ok := provider.VarName(c.pat); ok {
			bindings[name] = c.path
		}
	}
	return bindings
}

// selectColumn picks the first column where some row tests a
// constructor; any other heuristic (most-tested column, etc.) would
// also be correct, just potentially less compact.
func selectColumn(provider PatternProvider, rows []row) int {
	width := len(rows[0].cells)
	for col := 0; col < width; col++ {
		for _, r := range rows {
			c := r.cells[col]
			if c.filler {
				continue
			}
			if _, ok := provider.CtorName(c.pat); ok {
				return col
			}
		}
	}
	return 0
}

func collectCtors(provider PatternProvider, rows []row, col int) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range rows {
		c := r.cells[col]
		if c.filler {
			continue
		}
		ctor, ok := provider.CtorName(c.pat)
		if !ok || seen[ctor] {
			continue
		}
		seen[ctor] = true
		out = append(out, ctor)
	}
	return out
}

func subPath(base []int, i int) []int {
	p := make([]int, len(base), len(base)+1)
	copy(p, base)
	return append(p, i)
}

func removeColumn(cells []cell, col int) []cell {
	out := make([]cell, 0, len(cells)-1)
	out = append(out, cells[:col]...)
	out = append(out, cells[col+1:]...)
	return out
}

func copyBindings(b map[string][]int) map[string][]int {
	out := make(map[string][]int, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// specializeCtor produces the submatrix for rows matching ctor at col,
// decomposing that column into ctor's sub-positions.
func specializeCtor(provider PatternProvider, rows []row, col int, ctor string) []row {
	arity := provider.CtorArity(ctor)
	var out []row
	for _, r := range rows {
		c := r.cells[col]
		bindings := copyBindings(r.bindings)
		var expansion []cell

		switch {
		case c.filler:
			for i := 0; i < arity; i++ {
				expansion = append(expansion, cell{filler: true, path: subPath(c.path, i)})
			}
		default:
			if name, ok := provider.CtorName(c.pat); ok {
				if name != ctor {
					continue // row excluded: a different constructor
				}
				subs := provider.SubPatterns(c.pat)
				for i, sp := range subs {
					expansion = append(expansion, cell{pat: sp, path: subPath(c.path, i)})
				}
			} else {
				if vn, ok := provider.VarName(c.pat); ok {
					bindings[vn] = c.path
				}
				for i := 0; i < arity; i++ {
					expansion = append(expansion, cell{filler: true, path: subPath(c.path, i)})
				}
			}
		}

		newCells := make([]cell, 0, len(r.cells)-1+len(expansion))
		newCells = append(newCells, r.cells[:col]...)
		newCells = append(newCells, expansion...)
		newCells = append(newCells, r.cells[col+1:]...)
		out = append(out, row{cells: newCells, bindings: bindings, hasGuard: r.hasGuard, body: r.body})
	}
	return out
}

// specializeDefault produces the wildcard-fallback submatrix: rows that
// don't name a constructor at col survive with that column simply
// dropped.
func specializeDefault(provider PatternProvider, rows []row, col int) []row {
	var out []row
	for _, r := range rows {
		c := r.cells[col]
		bindings := copyBindings(r.bindings)
		if !c.filler {
			if _, ok := provider.CtorName(c.pat); ok {
				continue // row excluded: names a specific constructor
			}
			if vn, ok := provider.VarName(c.pat); ok {
				bindings[vn] = c.path
			}
		}
		out = append(out, row{cells: removeColumn(r.cells, col), bindings: bindings, hasGuard: r.hasGuard, body: r.body})
	}
	return out
}

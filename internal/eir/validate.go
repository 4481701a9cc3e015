package eir

import "fmt"

// Validate checks fn against its core structural well-formedness
// properties: layout integrity, SSA single-definition, terminator
// closure, edge arity, and block-call argument arity. It is meant for
// tests and tooling, not the hot build path: the builder already
// enforces most of these incrementally via panics, so Validate mainly
// catches anything a caller managed to leave half-built (e.g. a
// finished block whose last op isn't a terminator).
func (f *Function) Validate() error {
	if err := f.validateLayoutIntegrity(); err != nil {
		return err
	}
	if err := f.validateSingleDefinition(); err != nil {
		return err
	}
	if err := f.validateTerminatorClosure(); err != nil {
		return err
	}
	if err := f.validateEdgeArity(); err != nil {
		return err
	}
	return f.validateBlockCallArity()
}

func (f *Function) validateLayoutIntegrity() error {
	forward := f.Blocks()
	backward := f.BlocksReverse()
	if len(forward) != len(backward) {
		return fmt.Errorf("eir: layout integrity: %d blocks forward, %d backward", len(forward), len(backward))
	}
	for i, b := range forward {
		if backward[len(backward)-1-i] != b {
			return fmt.Errorf("eir: layout integrity: block order mismatch at %d", i)
		}
		opsFwd := f.Ops(b)
		opsBack := f.OpsReverse(b)
		if len(opsFwd) != len(opsBack) {
			return fmt.Errorf("eir: layout integrity: %s has %d ops forward, %d backward", b, len(opsFwd), len(opsBack))
		}
		for j, o := range opsFwd {
			if opsBack[len(opsBack)-1-j] != o {
				return fmt.Errorf("eir: layout integrity: %s op order mismatch at %d", b, j)
			}
		}
	}
	return nil
}

func (f *Function) validateSingleDefinition() error {
	defined := make(map[Value]int)
	for _, b := range f.Blocks() {
		for _, p := range f.BlockParams(b) {
			defined[p]++
		}
		for _, op := range f.Ops(b) {
			for _, w := range f.OpWrites(op) {
				defined[w]++
			}
		}
	}
	for v, count := range defined {
		if count != 1 {
			return fmt.Errorf("eir: SSA violation: value %s defined %d times", v, count)
		}
	}
	return nil
}

func (f *Function) validateTerminatorClosure() error {
	for _, b := range f.Blocks() {
		if !f.BlockFinished(b) {
			continue
		}
		ops := f.Ops(b)
		if len(ops) == 0 {
			return fmt.Errorf("eir: terminator closure: finished block %s has no ops", b)
		}
		last := ops[len(ops)-1]
		if !f.OpKind(last).IsTerminator() {
			return fmt.Errorf("eir: terminator closure: finished block %s ends in non-terminator %s", b, f.OpKind(last))
		}
	}
	return nil
}

func (f *Function) validateEdgeArity() error {
	for _, b := range f.Blocks() {
		for _, op := range f.Ops(b) {
			kind := f.OpKind(op)
			want := kind.edgeArity(auxClauseCount(f.OpAux(op)))
			if want < 0 {
				continue // open-question kind, no established contract
			}
			got := len(f.OpEdges(op))
			if got != want {
				return fmt.Errorf("eir: edge arity: %s (%s) wants %d edges, has %d", op, kind, want, got)
			}
		}
	}
	return nil
}

func (f *Function) validateBlockCallArity() error {
	for _, b := range f.Blocks() {
		for _, op := range f.Ops(b) {
			for _, call := range f.OpEdges(op) {
				target := f.BlockCallTarget(call)
				wantN := len(f.BlockParams(target))
				gotN := len(f.BlockCallArgs(call))
				if wantN != gotN {
					return fmt.Errorf("eir: block-call argument arity: call to %s wants %d args, has %d", target, wantN, gotN)
				}
			}
		}
	}
	return nil
}

func auxClauseCount(aux any) int {
	if c, ok := aux.(AuxCase); ok {
		return c.NumClauses
	}
	return 0
}

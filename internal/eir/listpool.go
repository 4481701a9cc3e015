package eir

// ListHandle is a compact reference to a variable-length run of ids
// stored in a ListPool. It is what entity records embed instead of a
// Go slice, so a record with a handful of reads costs two uint32s
// rather than a slice header plus a separate backing array.
type ListHandle struct {
	start, length uint32
}

// Len reports the number of ids the handle covers.
func (h ListHandle) Len() int { return int(h.length) }

// ListPool owns packed, variable-length sequences of ids. Two
// independent pools exist per Function: one for value lists (op
// reads/writes, block-call arguments), one for block-call lists (op
// edges). T
// is constrained to the small set of id types so a pool can't be handed
// the wrong entity kind at compile time.
type ListPool[T ~uint32] struct {
	backing []T
}

// Empty returns a handle to a zero-length list; it does not allocate.
// The handle is a placeholder, not a tail-anchored one — it must never
// be passed to Push or Extend, since it doesn't track where the pool's
// backing storage actually ends. Callers accumulating an unknown number
// of items should build a slice and commit it in one FromSlice call.
func (p *ListPool[T]) Empty() ListHandle { return ListHandle{} }

// FromSlice copies items into the pool and returns a handle to them.
func (p *ListPool[T]) FromSlice(items []T) ListHandle {
	start := uint32(len(p.backing))
	p.backing = append(p.backing, items...)
	return ListHandle{start: start, length: uint32(len(items))}
}

// Push appends a single id, returning the handle extended to cover it.
// Because the pool is append-only, this only produces a correct result
// when h already covers the pool's current tail (i.e. nothing else was
// pushed to the pool between creating h and extending it) — the same
// restriction the teacher's own append-only arenas rely on.
func (p *ListPool[T]) Push(h ListHandle, item T) ListHandle {
	p.backing = append(p.backing, item)
	return ListHandle{start: h.start, length: h.length + 1}
}

// Extend appends every item in items, returning the handle covering the
// original contents plus the new tail. Same append-only restriction as
// Push.
func (p *ListPool[T]) Extend(h ListHandle, items []T) ListHandle {
	p.backing = append(p.backing, items...)
	return ListHandle{start: h.start, length: h.length + uint32(len(items))}
}

// Slice borrows h's contents as a contiguous slice bound to the pool's
// backing storage's lifetime. Callers must not retain it across a
// mutating call to the pool (Push/Extend/FromSlice may reallocate).
func (p *ListPool[T]) Slice(h ListHandle) []T {
	return p.backing[h.start : h.start+h.length]
}

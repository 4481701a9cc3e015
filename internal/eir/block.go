package eir

// blockData is the record a Block id indexes into the function's block
// arena: its ordered parameter list and whether it has been sealed
// against further appends.
// params is a plain slice rather than a ListHandle: block arguments are
// appended one at a time by AddBlockArgument, interleaved arbitrarily
// with other blocks' op construction, which would violate ListPool's
// append-only-at-the-tail requirement if params shared that pool.
type blockData struct {
	params   []Value
	finished bool
}

// blockCallData is the record a BlockCall id indexes into: a target
// block and its argument-value list.
type blockCallData struct {
	target Block
	args   ListHandle
}

// layoutLink is the intrusive doubly-linked-list node kept in a
// secondary arena, one instance per Block (ordering blocks within the
// function).
type layoutLink struct {
	prev, next Block
}

// opLayoutLink is the same kind of node for an Op (ordering ops within
// a block), plus the block that owns the op.
type opLayoutLink struct {
	prev, next Op
	owner      Block
}

package eir

// layout is the per-function intrusive ordered structure: an ordered
// list of blocks, and for each block an ordered list of ops.
// Both are doubly-linked lists stored in secondary arenas keyed by
// block/op id, so inserting or splicing never touches any entity but
// its immediate neighbors. The layout carries no semantic checks beyond
// link consistency — correctness invariants belong to the builder.
type layout struct {
	blockHead, blockTail Block
	blockLinks           SecondaryArena[layoutLink]
	blockLinked          SecondaryArena[bool]

	opHeadTail SecondaryArena[opHeadTailRec]
	opLinks    SecondaryArena[opLayoutLink]
}

type opHeadTailRec struct {
	head, tail Op
}

func newLayout() *layout {
	return &layout{blockHead: noBlock, blockTail: noBlock}
}

// isEmpty reports whether any block has been inserted yet.
func (l *layout) isEmpty() bool { return l.blockHead == noBlock }

// insertBlockFirst requires the layout to be empty.
func (l *layout) insertBlockFirst(b Block) {
	if !l.isEmpty() {
		panic("eir: insert_block_first on non-empty layout")
	}
	l.blockHead, l.blockTail = b, b
	l.blockLinks.Set(uint32(b), layoutLink{prev: noBlock, next: noBlock})
	l.blockLinked.Set(uint32(b), true)
	l.opHeadTail.Set(uint32(b), opHeadTailRec{head: noOp, tail: noOp})
}

// insertBlockAfter splices b after prev. Fails (asserts) if b is
// already linked.
func (l *layout) insertBlockAfter(prev, b Block) {
	if l.blockLinked.Get(uint32(b)) {
		panic("eir: block already linked")
	}
	l.blockLinked.Set(uint32(b), true)
	next := l.blockLinks.Get(uint32(prev)).next
	l.blockLinks.Set(uint32(b), layoutLink{prev: prev, next: next})
	l.blockLinks.Set(uint32(prev), layoutLink{prev: l.blockLinks.Get(uint32(prev)).prev, next: b})
	if next != noBlock {
		nextLink := l.blockLinks.Get(uint32(next))
		nextLink.prev = b
		l.blockLinks.Set(uint32(next), nextLink)
	} else {
		l.blockTail = b
	}
	l.opHeadTail.Set(uint32(b), opHeadTailRec{head: noOp, tail: noOp})
}

// blocksInOrder walks the block list head to tail.
func (l *layout) blocksInOrder() []Block {
	var out []Block
	for b := l.blockHead; b != noBlock; {
		out = append(out, b)
		b = l.blockLinks.Get(uint32(b)).next
	}
	return out
}

// blocksInReverseOrder walks the block list tail to head (used by
// Validate's layout-integrity check, a cross-check against
// blocksInOrder).
func (l *layout) blocksInReverseOrder() []Block {
	var out []Block
	for b := l.blockTail; b != noBlock; {
		out = append(out, b)
		b = l.blockLinks.Get(uint32(b)).prev
	}
	return out
}

// insertOpAfter inserts op at the head of block (prevOp == noOp) or
// after prevOp, maintaining head/tail and back-links.
func (l *layout) insertOpAfter(block Block, prevOp Op, op Op) {
	ht := l.opHeadTail.Get(uint32(block))
	if prevOp == noOp {
		oldHead := ht.head
		l.opLinks.Set(uint32(op), opLayoutLink{prev: noOp, next: oldHead, owner: block})
		if oldHead != noOp {
			oldHeadLink := l.opLinks.Get(uint32(oldHead))
			oldHeadLink.prev = op
			l.opLinks.Set(uint32(oldHead), oldHeadLink)
		} else {
			ht.tail = op
		}
		ht.head = op
		l.opHeadTail.Set(uint32(block), ht)
		return
	}
	prevLink := l.opLinks.Get(uint32(prevOp))
	next := prevLink.next
	l.opLinks.Set(uint32(op), opLayoutLink{prev: prevOp, next: next, owner: block})
	prevLink.next = op
	l.opLinks.Set(uint32(prevOp), prevLink)
	if next != noOp {
		nextLink := l.opLinks.Get(uint32(next))
		nextLink.prev = op
		l.opLinks.Set(uint32(next), nextLink)
	} else {
		ht.tail = op
		l.opHeadTail.Set(uint32(block), ht)
	}
}

// opsInOrder walks block's op list head to tail.
func (l *layout) opsInOrder(block Block) []Op {
	ht := l.opHeadTail.Get(uint32(block))
	var out []Op
	for o := ht.head; o != noOp; {
		out = append(out, o)
		o = l.opLinks.Get(uint32(o)).next
	}
	return out
}

// opsInReverseOrder walks block's op list tail to head.
func (l *layout) opsInReverseOrder(block Block) []Op {
	ht := l.opHeadTail.Get(uint32(block))
	var out []Op
	for o := ht.tail; o != noOp; {
		out = append(out, o)
		o = l.opLinks.Get(uint32(o)).prev
	}
	return out
}

// lastOp returns the last op in block, or noOp if it has none.
func (l *layout) lastOp(block Block) Op {
	return l.opHeadTail.Get(uint32(block)).tail
}

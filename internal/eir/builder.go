package eir

// Builder is the staged IR construction cursor. It tracks a current
// block/op position and a small state machine: either Build (free to
// append the next op) or OutstandingEdges(n) (the last op appended
// still needs n block-calls attached via AddOpBlockCall before anything
// else may be built). Grounded on original_source/eir/src/new.rs
// FunctionBuilder, whose own state enum is exactly these two cases.
type Builder struct {
	fn *Function

	curBlock Block
	curOp    Op

	outstanding  int
	pendingOp    Op
	pendingEdges []BlockCall
}

// NewBuilder returns a builder positioned nowhere; callers must call
// InsertBlockEntry first for an empty function.
func NewBuilder(fn *Function) *Builder {
	return &Builder{fn: fn, curBlock: noBlock, curOp: noOp}
}

// Position is an opaque saved cursor, returned by PositionStore and
// consumed by PositionLoad.
type Position struct {
	block   Block
	afterOp Op
}

func (b *Builder) requireBuildState(what string) {
	invariant(b.outstanding == 0, "%s while %d block-call edges are still outstanding", what, b.outstanding)
}

// --- cursor management --------------------------------------------------

// InsertBlockEntry creates the function's entry block. Requires the
// layout to still be empty.
func (b *Builder) InsertBlockEntry() Block {
	invariant(b.fn.layout.isEmpty(), "insert_block_entry requires an empty function")
	id := Block(b.fn.blocks.Push(blockData{}))
	b.fn.layout.insertBlockFirst(id)
	b.curBlock, b.curOp = id, noOp
	return id
}

// InsertBlock creates a fresh open block spliced immediately after the
// current block. It does not move the cursor; call PositionAtEnd to
// start appending to it.
func (b *Builder) InsertBlock() Block {
	invariant(b.curBlock != noBlock, "insert_block requires a current block")
	id := Block(b.fn.blocks.Push(blockData{}))
	b.fn.layout.insertBlockAfter(b.curBlock, id)
	return id
}

// PositionAtEnd moves the cursor to the end of block's op list. Fails if
// block is already terminated — a block's last op closes it for good.
func (b *Builder) PositionAtEnd(block Block) {
	b.requireBuildState("position_at_end")
	last := b.fn.layout.lastOp(block)
	if last != noOp {
		invariant(!b.fn.OpKind(last).IsTerminator(), "position_at_end: block %s already terminated", block)
	}
	b.curBlock, b.curOp = block, last
}

// PositionStore snapshots the current cursor.
func (b *Builder) PositionStore() Position {
	b.requireBuildState("position_store")
	return Position{block: b.curBlock, afterOp: b.curOp}
}

// PositionLoad restores a previously stored cursor.
func (b *Builder) PositionLoad(pos Position) {
	b.requireBuildState("position_load")
	b.curBlock, b.curOp = pos.block, pos.afterOp
}

// Deposition clears the cursor so nothing may be appended until
// PositionAtEnd or PositionLoad is called again.
func (b *Builder) Deposition() {
	b.requireBuildState("deposition")
	b.curBlock, b.curOp = noBlock, noOp
}

// CurrentBlock returns the block the cursor currently points into, or
// noBlock if deposed.
func (b *Builder) CurrentBlock() Block { return b.curBlock }

// AddBlockArgument appends a fresh formal parameter to block. Fails if
// block is already finished.
func (b *Builder) AddBlockArgument(block Block) Value {
	invariant(!b.fn.BlockFinished(block), "add_block_argument on finished block %s", block)
	v := b.fn.newVariable()
	data := b.fn.blocks.Get(uint32(block))
	data.params = append(data.params, v)
	return v
}

// FinishBlock seals block against further AddBlockArgument calls: params
// become fixed once the block has ops referencing them by position.
func (b *Builder) FinishBlock(block Block) {
	b.fn.blocks.Get(uint32(block)).finished = true
}

// CreateBlockCall allocates a BlockCall aimed at target with the given
// argument values. Unlike original_source's create_ebb_call (whose
// validate() is a no-op), this enforces argument count against target's
// formal parameter count immediately, catching a mismatched branch at
// its construction site rather than letting it surface later as a
// validation failure or a malformed block-call read at codegen time.
func (b *Builder) CreateBlockCall(target Block, args []Value) BlockCall {
	params := b.fn.BlockParams(target)
	invariant(len(args) == len(params), "create_block_call: target %s wants %d args, got %d", target, len(params), len(args))
	h := b.fn.valuePool.FromSlice(args)
	idx := b.fn.blockCalls.Push(blockCallData{target: target, args: h})
	return BlockCall(idx)
}

// AddOpBlockCall attaches call as the next outstanding edge of the op
// most recently appended. Fails if no edges are outstanding. Edges are
// buffered in pendingEdges and committed to the edge pool in one
// FromSlice call once the last one arrives, the same way setEdges
// commits the single-edge kinds — an op's edge handle is never built by
// repeated incremental Push calls, since a handle only stays valid
// against Push/Extend while nothing else touches the pool in between,
// and other ops (e.g. a later case dispatch's own edges) routinely do.
func (b *Builder) AddOpBlockCall(call BlockCall) {
	invariant(b.outstanding > 0, "add_op_block_call: no outstanding edges")
	b.pendingEdges = append(b.pendingEdges, call)
	b.outstanding--
	if b.outstanding == 0 {
		b.setEdges(b.pendingOp, b.pendingEdges)
		b.pendingOp = noOp
		b.pendingEdges = nil
	}
}

// --- shared op-construction core -----------------------------------------

// appendOp allocates numWrites fresh result variables, inserts an op of
// kind after the cursor, advances the cursor onto it, and returns the op
// id plus its result values. Per original_source, only a directly
// preceding Jump specifically forecloses further appends — not every
// terminator kind — so that is the only check made here; Return/
// Unreachable closure is instead enforced by PositionAtEnd refusing to
// reopen a block whose last op is any terminator.
func (b *Builder) appendOp(kind OpKind, reads []Value, numWrites int, aux any) (Op, []Value) {
	b.requireBuildState("append_op")
	invariant(b.curBlock != noBlock, "append_op with no current block (deposed?)")
	if b.curOp != noOp {
		invariant(b.fn.OpKind(b.curOp) != OpJump, "cannot append after an unconditional jump")
	}
	results := make([]Value, numWrites)
	for i := range results {
		results[i] = b.fn.newVariable()
	}
	op := opData{
		Kind:   kind,
		Reads:  b.fn.valuePool.FromSlice(reads),
		Writes: b.fn.valuePool.FromSlice(results),
		Edges:  b.fn.edgePool.Empty(),
		Aux:    aux,
	}
	id := Op(b.fn.ops.Push(op))
	b.fn.layout.insertOpAfter(b.curBlock, b.curOp, id)
	b.curOp = id
	return id, results
}

func (b *Builder) setEdges(op Op, calls []BlockCall) {
	b.fn.ops.Get(uint32(op)).Edges = b.fn.edgePool.FromSlice(calls)
}

func (b *Builder) beginOutstanding(op Op, n int) {
	b.outstanding = n
	b.pendingOp = op
	b.pendingEdges = make([]BlockCall, 0, n)
}

// --- op constructors -----------------------------------------------------

// OpMove copies a value under a new name (used to thread values across
// block-argument edges without reusing the source id).
func (b *Builder) OpMove(v Value) Value {
	_, results := b.appendOp(OpMove, []Value{v}, 1, nil)
	return results[0]
}

// OpJump terminates the block with an unconditional jump. The target
// block-call is supplied directly at construction, not via the
// outstanding-edges protocol (confirmed against original_source).
func (b *Builder) OpJump(call BlockCall) {
	op, _ := b.appendOp(OpJump, nil, 0, nil)
	b.setEdges(op, []BlockCall{call})
}

// OpBranchNotTruthy emits a conditional jump: if v is not truthy, control
// transfers along call; otherwise execution falls through to the next op
// in program order. It is not a terminator kind, so ops may follow it in
// the same block. The edge is supplied directly, like OpJump.
func (b *Builder) OpBranchNotTruthy(v Value, call BlockCall) {
	op, _ := b.appendOp(OpBranchNotTruthy, []Value{v}, 0, nil)
	b.setEdges(op, []BlockCall{call})
}

// OpCall emits a call to a dynamically-named function (module and name
// are themselves values, not compile-time constants) and leaves one
// outstanding edge: callers must AddOpBlockCall the op's single
// continuation, which receives (ok, err) via its block-call arguments.
// The op itself has an empty writes list and OpCall returns no values.
func (b *Builder) OpCall(module, name Value, args []Value, tailCall bool) {
	reads := make([]Value, 0, 2+len(args))
	reads = append(reads, module, name)
	reads = append(reads, args...)
	op, _ := b.appendOp(OpCall, reads, 0, AuxCallTarget{ArgCount: len(args), TailCall: tailCall})
	b.beginOutstanding(op, 1)
}

// OpApply emits an indirect call through a closure value, with the same
// outstanding-edge protocol as OpCall.
func (b *Builder) OpApply(fun Value, args []Value, tailCall bool) {
	reads := make([]Value, 0, 1+len(args))
	reads = append(reads, fun)
	reads = append(reads, args...)
	op, _ := b.appendOp(OpApply, reads, 0, AuxCallTarget{ArgCount: len(args), TailCall: tailCall})
	b.beginOutstanding(op, 1)
}

// OpCaptureNamedFunction produces a closure value over a statically named
// function, with no captured environment.
func (b *Builder) OpCaptureNamedFunction(module, name string, arity int) Value {
	ref := FunRef(b.fn.funRefs.Push(FunRef_{Module: module, Name: name, Arity: arity}))
	_, results := b.appendOp(OpCaptureNamedFunction, nil, 1, AuxFunRef{Ref: ref})
	return results[0]
}

// OpPackValueList bundles values into a single value-list value, the
// wire shape multiple-return calls and throw payloads use.
func (b *Builder) OpPackValueList(values []Value) Value {
	_, results := b.appendOp(OpPackValueList, values, 1, nil)
	return results[0]
}

// OpUnpackValueList is PackValueList's inverse, projecting a value-list
// value back out to n positional values.
func (b *Builder) OpUnpackValueList(v Value, n int) []Value {
	_, results := b.appendOp(OpUnpackValueList, []Value{v}, n, AuxUnpack{N: n})
	return results
}

// OpMakeTuple constructs a fixed-arity tuple value.
func (b *Builder) OpMakeTuple(elements []Value) Value {
	_, results := b.appendOp(OpMakeTuple, elements, 1, nil)
	return results[0]
}

// OpMakeList constructs a cons-list value from heads prepended onto
// tail (tail is read first, matching original_source's reads layout, so
// a constant nil tail and a variable tail are handled uniformly).
func (b *Builder) OpMakeList(heads []Value, tail Value) Value {
	reads := make([]Value, 0, 1+len(heads))
	reads = append(reads, tail)
	reads = append(reads, heads...)
	_, results := b.appendOp(OpMakeList, reads, 1, nil)
	return results[0]
}

// OpMakeClosureEnv packages captures into the environment value a later
// OpBindClosure will close over.
func (b *Builder) OpMakeClosureEnv(envIndex int, captures []Value) Value {
	_, results := b.appendOp(OpMakeClosureEnv, captures, 1, AuxClosureEnv{EnvIndex: envIndex})
	return results[0]
}

// OpBindClosure produces a closure value over a named function together
// with a captured environment.
func (b *Builder) OpBindClosure(module, name string, arity int, env Value) Value {
	ref := FunRef(b.fn.funRefs.Push(FunRef_{Module: module, Name: name, Arity: arity}))
	_, results := b.appendOp(OpBindClosure, []Value{env}, 1, AuxFunRef{Ref: ref})
	return results[0]
}

// OpReturnOk terminates the function's current control path with a
// successful result.
func (b *Builder) OpReturnOk(v Value) {
	b.appendOp(OpReturnOk, []Value{v}, 0, nil)
}

// OpReturnThrow terminates the function's current control path by
// propagating an exception value.
func (b *Builder) OpReturnThrow(v Value) {
	b.appendOp(OpReturnThrow, []Value{v}, 0, nil)
}

// OpCaseStart opens a pattern-match dispatch over value. clauses is the
// opaque decision data produced by the pattern CFG compiler (package
// patterncfg); valueVars are any already-bound sub-values the clauses
// reference by position. The single edge to bodyBlock is supplied
// directly, mirroring OpJump.
func (b *Builder) OpCaseStart(clauses any, value Value, valueVars []Value, bodyBlock Block) Value {
	reads := make([]Value, 0, 1+len(valueVars))
	reads = append(reads, value)
	reads = append(reads, valueVars...)
	op, results := b.appendOp(OpCaseStart, reads, 1, AuxCaseStart{Clauses: clauses, BodyBlock: bodyBlock})
	call := b.CreateBlockCall(bodyBlock, nil)
	b.setEdges(op, []BlockCall{call})
	return results[0]
}

// OpCaseBody marks the entry into a case's shared body region and leaves
// numClauses+1 outstanding edges: one per matched clause plus one
// fallthrough/no-match edge, each to be attached via AddOpBlockCall in
// clause order.
func (b *Builder) OpCaseBody(caseVal Value, numClauses int) {
	op, _ := b.appendOp(OpCaseBody, []Value{caseVal}, 0, AuxCase{NumClauses: numClauses})
	b.beginOutstanding(op, numClauses+1)
}

// OpCaseValues projects the n variable bindings a matched clause's
// pattern produced out of the case dispatch.
func (b *Builder) OpCaseValues(caseVal Value, n int) []Value {
	_, results := b.appendOp(OpCaseValues, []Value{caseVal}, n, AuxCase{NumClauses: n})
	return results
}

// OpCaseGuardOk signals that the current clause's guard expression, if
// any, accepted the match.
func (b *Builder) OpCaseGuardOk(caseVal Value) {
	b.appendOp(OpCaseGuardOk, []Value{caseVal}, 0, nil)
}

// OpCaseGuardFail signals that clauseNum's guard rejected the match,
// falling through to the next clause in matrix order.
func (b *Builder) OpCaseGuardFail(caseVal Value, clauseNum int) {
	b.appendOp(OpCaseGuardFail, []Value{caseVal}, 0, AuxCase{ClauseNum: clauseNum})
}

// --- open-question op kinds -----------------------------------------------
//
// original_source leaves these functions as literal unimplemented!() in
// the Rust FunctionBuilder; these mirror that by refusing to build an op
// and returning ErrUnspecifiedContract rather than guessing a
// reads/writes/edge-arity shape the source never commits to.

// OpMakeMap refuses to build: map construction's reads/writes contract
// is unestablished upstream.
func (b *Builder) OpMakeMap(merge *Value, keysValues []Value) (Value, error) {
	return 0, &ErrUnspecifiedContract{Kind: OpMakeMap}
}

// OpMakeBinary refuses to build: binary-segment construction's contract
// is unestablished upstream.
func (b *Builder) OpMakeBinary(segments []Value) (Value, error) {
	return 0, &ErrUnspecifiedContract{Kind: OpMakeBinary}
}

// OpReceiveStart refuses to build: the mailbox receive protocol's
// contract is unestablished upstream.
func (b *Builder) OpReceiveStart() (Value, error) {
	return 0, &ErrUnspecifiedContract{Kind: OpReceiveStart}
}

// OpReceiveWait refuses to build: see OpReceiveStart.
func (b *Builder) OpReceiveWait(receiveRef Value, timeout Value) error {
	return &ErrUnspecifiedContract{Kind: OpReceiveWait}
}

// OpExcTrace refuses to build: exception-trace capture's contract is
// unestablished upstream.
func (b *Builder) OpExcTrace(exc Value) (Value, error) {
	return 0, &ErrUnspecifiedContract{Kind: OpExcTrace}
}

// OpUnreachable refuses to build: it's undecided upstream whether this
// is a terminator the verifier should trust outright or re-check like
// any other.
func (b *Builder) OpUnreachable() error {
	return &ErrUnspecifiedContract{Kind: OpUnreachable}
}

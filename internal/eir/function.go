package eir

// Identity names a function the way the source language's module system
// does: module, local name, and arity.
type Identity struct {
	Module string
	Name   string
	Arity  int
}

// Function holds a function's identity, its layout, and the five
// primary arenas plus the two list pools.
type Function struct {
	Identity Identity

	layout layout

	blocks     PrimaryArena[blockData]
	ops        PrimaryArena[opData]
	constants  PrimaryArena[Term]
	blockCalls PrimaryArena[blockCallData]
	funRefs    PrimaryArena[FunRef_]

	valuePool ListPool[Value]
	edgePool  ListPool[BlockCall]

	nextVariable uint32
}

// FunRef_ is the record a FunRef id indexes into: an externally-named
// function this IR function may reference.
type FunRef_ struct {
	Module string
	Name   string
	Arity  int
}

// NewFunction creates an empty function and its arenas together.
func NewFunction(identity Identity) *Function {
	return &Function{Identity: identity, layout: *newLayout()}
}

// --- value construction -----------------------------------------------

// newVariable allocates an unbound variable id, used internally for op
// results.
func (f *Function) newVariable() Value {
	v := variableValue(f.nextVariable)
	f.nextVariable++
	return v
}

// CreateAtomic allocates a constant-typed value naming an atomic term.
func (f *Function) CreateAtomic(term Term) Value {
	idx := f.constants.Push(term)
	return constantValue(idx)
}

// CreateConstant allocates a constant-typed value naming a structured
// constant term. It is distinct from CreateAtomic only in name; both
// allocate into the same constant arena, since constants and variables
// share one uniform value namespace.
func (f *Function) CreateConstant(term Term) Value {
	return f.CreateAtomic(term)
}

// --- queries ------------------------------------------------------------

// Blocks returns every block in layout order.
func (f *Function) Blocks() []Block { return f.layout.blocksInOrder() }

// BlocksReverse returns every block in reverse layout order.
func (f *Function) BlocksReverse() []Block { return f.layout.blocksInReverseOrder() }

// Ops returns block's ops in layout order.
func (f *Function) Ops(block Block) []Op { return f.layout.opsInOrder(block) }

// OpsReverse returns block's ops in reverse layout order.
func (f *Function) OpsReverse(block Block) []Op { return f.layout.opsInReverseOrder(block) }

// BlockParams returns block's formal parameter values.
func (f *Function) BlockParams(block Block) []Value {
	return f.blocks.Get(uint32(block)).params
}

// BlockFinished reports whether block has been sealed.
func (f *Function) BlockFinished(block Block) bool {
	return f.blocks.Get(uint32(block)).finished
}

// OpKind returns op's kind.
func (f *Function) OpKind(op Op) OpKind { return f.ops.Get(uint32(op)).Kind }

// OpReads returns op's read values in order.
func (f *Function) OpReads(op Op) []Value {
	return f.valuePool.Slice(f.ops.Get(uint32(op)).Reads)
}

// OpWrites returns op's written (result) values in order.
func (f *Function) OpWrites(op Op) []Value {
	return f.valuePool.Slice(f.ops.Get(uint32(op)).Writes)
}

// OpEdges returns op's outgoing block-calls in order.
func (f *Function) OpEdges(op Op) []BlockCall {
	return f.edgePool.Slice(f.ops.Get(uint32(op)).Edges)
}

// OpAux returns op's kind-specific auxiliary payload, if any.
func (f *Function) OpAux(op Op) any { return f.ops.Get(uint32(op)).Aux }

// BlockCallTarget returns the target block of a block-call.
func (f *Function) BlockCallTarget(call BlockCall) Block {
	return f.blockCalls.Get(uint32(call)).target
}

// BlockCallArgs returns a block-call's argument values.
func (f *Function) BlockCallArgs(call BlockCall) []Value {
	return f.valuePool.Slice(f.blockCalls.Get(uint32(call)).args)
}

// ValueTerm returns the constant term v names. Panics if v is a
// variable; callers should check IsConstant first.
func (f *Function) ValueTerm(v Value) Term {
	if !v.IsConstant() {
		panic("eir: ValueTerm called on a variable value")
	}
	return *f.constants.Get(v.index())
}

// FunRef returns the record a FunRef id names.
func (f *Function) FunRef(ref FunRef) FunRef_ {
	return *f.funRefs.Get(uint32(ref))
}

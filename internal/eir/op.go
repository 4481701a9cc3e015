package eir

// OpKind is the closed, tagged-union set of IR instruction kinds.
// Builder helpers are one constructor per kind sharing a common
// assertion core (see builder.go).
type OpKind int

const (
	OpMove OpKind = iota
	OpCall
	OpApply
	OpCaptureNamedFunction
	OpPackValueList
	OpUnpackValueList
	OpMakeTuple
	OpMakeList
	OpMakeClosureEnv
	OpBindClosure
	OpReturnOk
	OpReturnThrow
	OpJump
	OpBranchNotTruthy
	OpCaseStart
	OpCaseBody
	OpCaseValues
	OpCaseGuardOk
	OpCaseGuardFail

	// Kinds whose upstream contract is an open question: their shape is
	// fixed by naming only. Builder constructors for these exist so
	// switch statements stay exhaustive, but they refuse to build an op
	// (see ErrUnspecifiedContract).
	OpMakeMap
	OpMakeBinary
	OpReceiveStart
	OpReceiveWait
	OpExcTrace
	OpUnreachable
)

var opKindNames = map[OpKind]string{
	OpMove:                  "move",
	OpCall:                  "call",
	OpApply:                 "apply",
	OpCaptureNamedFunction:  "capture_named_function",
	OpPackValueList:         "pack_value_list",
	OpUnpackValueList:       "unpack_value_list",
	OpMakeTuple:             "make_tuple",
	OpMakeList:              "make_list",
	OpMakeClosureEnv:        "make_closure_env",
	OpBindClosure:           "bind_closure",
	OpReturnOk:              "return_ok",
	OpReturnThrow:           "return_throw",
	OpJump:                  "jump",
	OpBranchNotTruthy:       "branch_not_truthy",
	OpCaseStart:             "case_start",
	OpCaseBody:              "case_body",
	OpCaseValues:            "case_values",
	OpCaseGuardOk:           "case_guard_ok",
	OpCaseGuardFail:         "case_guard_fail",
	OpMakeMap:               "make_map",
	OpMakeBinary:            "make_binary",
	OpReceiveStart:          "receive_start",
	OpReceiveWait:           "receive_wait",
	OpExcTrace:              "exc_trace",
	OpUnreachable:           "unreachable",
}

func (k OpKind) String() string {
	if s, ok := opKindNames[k]; ok {
		return s
	}
	return "unknown_op"
}

// IsTerminator reports whether an op of this kind may be the last op in
// a finished block.
func (k OpKind) IsTerminator() bool {
	switch k {
	case OpReturnOk, OpReturnThrow, OpJump, OpUnreachable:
		return true
	default:
		return false
	}
}

// edgeArity returns the number of outgoing BlockCalls an op of this kind
// must carry, or -1 if the kind has not had its contract established
// (the open-question kinds).
func (k OpKind) edgeArity(auxClauseCount int) int {
	switch k {
	case OpMove, OpCaptureNamedFunction, OpPackValueList, OpUnpackValueList,
		OpMakeTuple, OpMakeList, OpMakeClosureEnv, OpBindClosure,
		OpCaseValues, OpCaseGuardOk, OpCaseGuardFail:
		return 0
	case OpReturnOk, OpReturnThrow:
		return 0
	case OpJump, OpBranchNotTruthy, OpCaseStart:
		return 1
	case OpCall, OpApply:
		return 1
	case OpCaseBody:
		return auxClauseCount + 1
	default:
		return -1
	}
}

// opData is the record an Op id indexes into: a single IR instruction.
// Kind-specific scalar payload that isn't itself a Value (an identifier,
// an arity, a clause count) lives in Aux rather than forcing every kind
// into the same fixed field set.
type opData struct {
	Kind   OpKind
	Reads  ListHandle
	Writes ListHandle
	Edges  ListHandle // block-calls pool handle
	Aux    any
}

// AuxIdent is a payload for ops parameterized by a bare identifier. No
// builder constructor produces it; op_capture_named_function and
// op_bind_closure carry AuxFunRef.
type AuxIdent struct{ Name string }

// AuxCallTarget is the payload of op_call: module/name are already part
// of Reads ("reads = [module, name, ...args]"); Aux only records how
// many of the leading reads are the callee vs. the argument list, since
// that split isn't otherwise recoverable from a flat slice.
type AuxCallTarget struct {
	ArgCount int
	TailCall bool
}

// AuxUnpack records the arity op_unpack_value_list was built with.
type AuxUnpack struct{ N int }

// AuxClosureEnv records the closure environment index op_make_closure_env
// was built with.
type AuxClosureEnv struct{ EnvIndex int }

// AuxCase records per-case-protocol-op scalar data: the clause count for
// case_body, the projected value count for case_values (both in
// NumClauses), or the clause number for case_guard_fail.
type AuxCase struct {
	NumClauses int
	ClauseNum  int
}

// AuxCaseStart records op_case_start's payload: the decision data handed
// down from the pattern CFG compiler (package patterncfg) is opaque to
// the IR layer, which only carries it through to codegen.
type AuxCaseStart struct {
	Clauses   any
	BodyBlock Block
}

// AuxFunRef is the payload of ops parameterized by an externally-named
// function (op_capture_named_function, op_bind_closure).
type AuxFunRef struct{ Ref FunRef }

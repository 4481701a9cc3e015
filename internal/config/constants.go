package config

// Constructor names of the two built-in sum types every langpattern
// demo clause list is written against (Option/Result), carried over
// unchanged from the teacher's own builtin constant set
// (internal/evaluator/builtins.go registers exactly these names as
// constructors at prelude setup).
const (
	OptionTypeName = "Option"
	ResultTypeName = "Result"
	SomeCtorName   = "Some"
	NoneCtorName   = "None"
	OkCtorName     = "Ok"
	FailCtorName   = "Fail"
)

package rexp

import "fmt"

// Kind identifies a node variant. Values match the type codes used on the
// wire so they can be reported verbatim in diagnostics.
type Kind uint8

const (
	KindNull            Kind = 0
	KindSymbol          Kind = 1
	KindPairlist        Kind = 2
	KindClosure         Kind = 3
	KindEnvironment     Kind = 4
	KindPromise         Kind = 5
	KindCall            Kind = 6
	KindSpecial         Kind = 7
	KindBuiltin         Kind = 8
	KindChar            Kind = 9
	KindLogical         Kind = 10
	KindInteger         Kind = 13
	KindDouble          Kind = 14
	KindComplex         Kind = 15
	KindString          Kind = 16
	KindDots            Kind = 17
	KindAny             Kind = 18
	KindList            Kind = 19
	KindExpression      Kind = 20
	KindBytecode        Kind = 21
	KindExternalPointer Kind = 22
	KindWeakRef         Kind = 23
	KindRaw             Kind = 24
	KindS4              Kind = 25
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindSymbol:
		return "symbol"
	case KindPairlist:
		return "pairlist"
	case KindClosure:
		return "closure"
	case KindEnvironment:
		return "environment"
	case KindPromise:
		return "promise"
	case KindCall:
		return "language"
	case KindSpecial:
		return "special"
	case KindBuiltin:
		return "builtin"
	case KindChar:
		return "char"
	case KindLogical:
		return "logical"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindComplex:
		return "complex"
	case KindString:
		return "character"
	case KindDots:
		return "..."
	case KindAny:
		return "any"
	case KindList:
		return "list"
	case KindExpression:
		return "expression"
	case KindBytecode:
		return "bytecode"
	case KindExternalPointer:
		return "externalptr"
	case KindWeakRef:
		return "weakref"
	case KindRaw:
		return "raw"
	case KindS4:
		return "S4"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

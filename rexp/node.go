package rexp

// Node is one decoded entity of a value graph. The set of implementations is
// closed: every variant lives in this package, and consumers are expected to
// type-switch over them.
//
// Nodes are never mutated after construction. Exported fields exist so that
// nodes can be built with composite literals; code that needs derived data
// builds new nodes instead.
type Node interface {
	Kind() Kind
	// Attributes returns the node's attribute chain, or nil.
	Attributes() Chain
	// Levels returns the general-purpose header bits the node was decoded with.
	// They are carried for byte-faithful re-encoding and take no part in
	// equality.
	Levels() int

	isNode()
}

// Object holds the state shared by every variant.
type Object struct {
	Attrs Chain
	Level int
}

func (o *Object) Attributes() Chain {
	return o.Attrs
}

func (o *Object) Levels() int {
	return o.Level
}

func (o *Object) isNode() {}

// Null is the empty value. Use Nil rather than allocating new instances.
type Null struct {
	Object
}

// Nil is the shared Null node. It must not be modified; NULL never carries
// attributes, whatever its embedded Object holds.
var Nil Node = &Null{}

func (n *Null) Kind() Kind {
	return KindNull
}

func (n *Null) Attributes() Chain {
	return nil
}

func (n *Null) Levels() int {
	return 0
}

// Symbol is an interned name.
type Symbol struct {
	Object
	Name string
}

func (s *Symbol) Kind() Kind {
	return KindSymbol
}

// LogicalVector holds tri-state booleans: LogicalTrue, LogicalFalse and
// NALogical.
type LogicalVector struct {
	Object
	Values []int32
}

func (v *LogicalVector) Kind() Kind {
	return KindLogical
}

// IntegerVector holds 32-bit integers with NAInteger as the missing value. An
// integer vector whose class includes "factor" and which carries a "levels"
// string vector is a factor: its values are 1-based indices into the levels.
type IntegerVector struct {
	Object
	Values []int32
}

func (v *IntegerVector) Kind() Kind {
	return KindInteger
}

// DoubleVector holds IEEE-754 doubles. Missing elements carry the NAReal
// payload; any other NaN payload is kept as decoded.
type DoubleVector struct {
	Object
	Values []float64
}

func (v *DoubleVector) Kind() Kind {
	return KindDouble
}

type ComplexVector struct {
	Object
	Values []complex128
}

func (v *ComplexVector) Kind() Kind {
	return KindComplex
}

// StringVector holds optional strings. An element whose Valid field is false
// is missing, which is distinct from the empty string.
type StringVector struct {
	Object
	Values []String
}

func (v *StringVector) Kind() Kind {
	return KindString
}

// RawVector is an opaque byte blob.
type RawVector struct {
	Object
	Data []byte
}

func (v *RawVector) Kind() Kind {
	return KindRaw
}

// List is a generic vector of heterogeneous children. With "names" and a
// "data.frame" class it represents a data frame whose elements are columns.
type List struct {
	Object
	Elems []Node
}

func (l *List) Kind() Kind {
	return KindList
}

type ExpressionVector struct {
	Object
	Elems []Node
}

func (e *ExpressionVector) Kind() Kind {
	return KindExpression
}

// Pairlist is a tagged argument or definition list.
type Pairlist struct {
	Object
	Entries Chain
}

func (p *Pairlist) Kind() Kind {
	return KindPairlist
}

// Call is an unevaluated function application.
type Call struct {
	Object
	Function Node
	Args     Chain
}

func (c *Call) Kind() Kind {
	return KindCall
}

// S4Object is only decoded as far as its attributes, which hold the slots.
type S4Object struct {
	Object
}

func (s *S4Object) Kind() Kind {
	return KindS4
}

// Closure is kept opaque: its parts are preserved but never interpreted.
type Closure struct {
	Object
	Env     Node
	Formals Node
	Body    Node
}

func (c *Closure) Kind() Kind {
	return KindClosure
}

type Promise struct {
	Object
	Env   Node
	Value Node
	Expr  Node
}

func (p *Promise) Kind() Kind {
	return KindPromise
}

// Environment is decoded only as far as its stored parts. Environments may
// refer to themselves through their frame, so graphs containing them can be
// cyclic.
type Environment struct {
	Object
	Locked    bool
	Enclosure Node
	Frame     Node
	HashTable Node
}

func (e *Environment) Kind() Kind {
	return KindEnvironment
}

// Namespace is a reference to a package namespace or attached package
// environment, identified by its name information strings.
type Namespace struct {
	Object
	Package bool
	Info    []String
}

func (n *Namespace) Kind() Kind {
	return KindEnvironment
}

// Builtin names a primitive function.
type Builtin struct {
	Object
	Special bool
	Name    string
}

func (b *Builtin) Kind() Kind {
	if b.Special {
		return KindSpecial
	}
	return KindBuiltin
}

// Special enumerates the well-known singleton values that are written as bare
// markers instead of structurally.
type Special uint8

const (
	GlobalEnv Special = iota
	BaseEnv
	EmptyEnv
	BaseNamespace
	UnboundValue
	MissingArg
)

func (s Special) String() string {
	switch s {
	case GlobalEnv:
		return "R_GlobalEnv"
	case BaseEnv:
		return "base"
	case EmptyEnv:
		return "R_EmptyEnv"
	case BaseNamespace:
		return "namespace:base"
	case UnboundValue:
		return "unbound"
	case MissingArg:
		return "missing"
	default:
		return "unknown"
	}
}

// SpecialValue is one of the Special singletons.
type SpecialValue struct {
	Object
	Which Special
}

func (s *SpecialValue) Kind() Kind {
	switch s.Which {
	case UnboundValue, MissingArg:
		return KindSymbol
	default:
		return KindEnvironment
	}
}

var (
	_ Node = (*Null)(nil)
	_ Node = (*Symbol)(nil)
	_ Node = (*LogicalVector)(nil)
	_ Node = (*IntegerVector)(nil)
	_ Node = (*DoubleVector)(nil)
	_ Node = (*ComplexVector)(nil)
	_ Node = (*StringVector)(nil)
	_ Node = (*RawVector)(nil)
	_ Node = (*List)(nil)
	_ Node = (*ExpressionVector)(nil)
	_ Node = (*Pairlist)(nil)
	_ Node = (*Call)(nil)
	_ Node = (*S4Object)(nil)
	_ Node = (*Closure)(nil)
	_ Node = (*Promise)(nil)
	_ Node = (*Environment)(nil)
	_ Node = (*Namespace)(nil)
	_ Node = (*Builtin)(nil)
	_ Node = (*SpecialValue)(nil)
)

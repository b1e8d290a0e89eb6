package rexp

import "math"

// Equal reports whether a and b are structurally equal: the same variant, the
// same element values including missingness, and the same attributes in the
// same order. String encodings and header level bits are not compared.
func Equal(a, b Node) bool {
	c := &comparer{
		envs: make(map[[2]*Environment]bool),
	}
	return c.equal(a, b)
}

type comparer struct {
	envs map[[2]*Environment]bool
}

func (c *comparer) equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if !c.chainEqual(a.Attributes(), b.Attributes()) {
		return false
	}

	switch x := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	case *LogicalVector:
		y, ok := b.(*LogicalVector)
		return ok && int32sEqual(x.Values, y.Values)
	case *IntegerVector:
		y, ok := b.(*IntegerVector)
		return ok && int32sEqual(x.Values, y.Values)
	case *DoubleVector:
		y, ok := b.(*DoubleVector)
		if !ok || len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if !DoubleEqual(x.Values[i], y.Values[i]) {
				return false
			}
		}
		return true
	case *ComplexVector:
		y, ok := b.(*ComplexVector)
		if !ok || len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if !DoubleEqual(real(x.Values[i]), real(y.Values[i])) ||
				!DoubleEqual(imag(x.Values[i]), imag(y.Values[i])) {
				return false
			}
		}
		return true
	case *StringVector:
		y, ok := b.(*StringVector)
		if !ok || len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if !StringEqual(x.Values[i], y.Values[i]) {
				return false
			}
		}
		return true
	case *RawVector:
		y, ok := b.(*RawVector)
		return ok && string(x.Data) == string(y.Data)
	case *List:
		y, ok := b.(*List)
		return ok && c.nodesEqual(x.Elems, y.Elems)
	case *ExpressionVector:
		y, ok := b.(*ExpressionVector)
		return ok && c.nodesEqual(x.Elems, y.Elems)
	case *Pairlist:
		y, ok := b.(*Pairlist)
		return ok && c.chainEqual(x.Entries, y.Entries)
	case *Call:
		y, ok := b.(*Call)
		return ok && c.equal(x.Function, y.Function) && c.chainEqual(x.Args, y.Args)
	case *S4Object:
		_, ok := b.(*S4Object)
		return ok
	case *Closure:
		y, ok := b.(*Closure)
		return ok && c.equal(x.Env, y.Env) && c.equal(x.Formals, y.Formals) && c.equal(x.Body, y.Body)
	case *Promise:
		y, ok := b.(*Promise)
		return ok && c.equal(x.Env, y.Env) && c.equal(x.Value, y.Value) && c.equal(x.Expr, y.Expr)
	case *Environment:
		y, ok := b.(*Environment)
		if !ok {
			return false
		}
		key := [2]*Environment{x, y}
		if c.envs[key] {
			return true
		}
		c.envs[key] = true
		return x.Locked == y.Locked &&
			c.equal(x.Enclosure, y.Enclosure) &&
			c.equal(x.Frame, y.Frame) &&
			c.equal(x.HashTable, y.HashTable)
	case *Namespace:
		y, ok := b.(*Namespace)
		if !ok || x.Package != y.Package || len(x.Info) != len(y.Info) {
			return false
		}
		for i := range x.Info {
			if !StringEqual(x.Info[i], y.Info[i]) {
				return false
			}
		}
		return true
	case *Builtin:
		y, ok := b.(*Builtin)
		return ok && x.Special == y.Special && x.Name == y.Name
	case *SpecialValue:
		y, ok := b.(*SpecialValue)
		return ok && x.Which == y.Which
	default:
		return false
	}
}

func (c *comparer) nodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !c.equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (c *comparer) chainEqual(a, b Chain) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Tag != b[i].Tag || !c.equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

// DoubleEqual compares two doubles the way vectors are compared: missing only
// equals missing, any NaN equals any other NaN, and all other values must
// match bit for bit.
func DoubleEqual(x, y float64) bool {
	if IsNA(x) || IsNA(y) {
		return IsNA(x) && IsNA(y)
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.IsNaN(x) && math.IsNaN(y)
	}
	return math.Float64bits(x) == math.Float64bits(y)
}

// StringEqual compares string elements by missingness and content.
func StringEqual(a, b String) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Value == b.Value
}

func int32sEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package rexp

// Attribute returns the first attribute of n tagged name. When the attribute
// is absent it returns a *MissingAttributeError, or nil and no error if
// optional is set.
func Attribute(n Node, name string, optional bool) (Node, error) {
	if n != nil {
		if v, ok := n.Attributes().Get(name); ok {
			return v, nil
		}
	}
	if optional {
		return nil, nil
	}
	return nil, &MissingAttributeError{
		Kind: kindOf(n),
		Name: name,
	}
}

// Element resolves name against the "names" attribute of a vector, or against
// the tags of a pairlist, and returns the matching element. Matching is exact.
// Elements of atomic vectors are returned as length-one vectors without
// attributes.
func Element(v Node, name string, optional bool) (Node, error) {
	idx := -1
	switch p := v.(type) {
	case *Pairlist:
		idx = p.Entries.Index(name)
	case nil:
	default:
		for i, s := range Names(v) {
			if s.Valid && s.Value == name {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		if optional {
			return nil, nil
		}
		return nil, &MissingAttributeError{
			Kind:    kindOf(v),
			Name:    name,
			Element: true,
		}
	}
	return ElementAt(v, idx)
}

// ElementAt returns the element at the 0-based position index.
func ElementAt(v Node, index int) (Node, error) {
	n := Len(v)
	if index < 0 || index >= n {
		return nil, illegalState("index %d out of range for %s of length %d", index, kindOf(v), n)
	}
	switch x := v.(type) {
	case *List:
		return x.Elems[index], nil
	case *ExpressionVector:
		return x.Elems[index], nil
	case *Pairlist:
		return x.Entries[index].Value, nil
	case *LogicalVector:
		return NewLogicalVector([]int32{x.Values[index]}), nil
	case *IntegerVector:
		return NewIntegerVector([]int32{x.Values[index]}), nil
	case *DoubleVector:
		return NewDoubleVector([]float64{x.Values[index]}), nil
	case *ComplexVector:
		return NewComplexVector([]complex128{x.Values[index]}), nil
	case *StringVector:
		return NewStringVector([]String{x.Values[index]}), nil
	case *RawVector:
		return NewRawVector([]byte{x.Data[index]}), nil
	default:
		return nil, illegalState("%s has no indexable elements", kindOf(v))
	}
}

// Len returns the number of elements of a vector or pairlist, the number of
// parts of a call, zero for NULL and one for everything else.
func Len(n Node) int {
	switch x := n.(type) {
	case nil, *Null:
		return 0
	case *LogicalVector:
		return len(x.Values)
	case *IntegerVector:
		return len(x.Values)
	case *DoubleVector:
		return len(x.Values)
	case *ComplexVector:
		return len(x.Values)
	case *StringVector:
		return len(x.Values)
	case *RawVector:
		return len(x.Data)
	case *List:
		return len(x.Elems)
	case *ExpressionVector:
		return len(x.Elems)
	case *Pairlist:
		return len(x.Entries)
	case *Call:
		return 1 + len(x.Args)
	default:
		return 1
	}
}

// Names returns the "names" attribute of n, or nil.
func Names(n Node) []String {
	if n == nil {
		return nil
	}
	v, ok := n.Attributes().Get("names")
	if !ok {
		return nil
	}
	sv, ok := v.(*StringVector)
	if !ok {
		return nil
	}
	return sv.Values
}

// Class returns the non-missing entries of the "class" attribute.
func Class(n Node) []string {
	if n == nil {
		return nil
	}
	v, ok := n.Attributes().Get("class")
	if !ok {
		return nil
	}
	sv, ok := v.(*StringVector)
	if !ok {
		return nil
	}
	var out []string
	for _, s := range sv.Values {
		if s.Valid {
			out = append(out, s.Value)
		}
	}
	return out
}

// Inherits reports whether class is one of the entries of n's class
// attribute.
func Inherits(n Node, class string) bool {
	for _, c := range Class(n) {
		if c == class {
			return true
		}
	}
	return false
}

// Dim returns the "dim" attribute of n, or nil.
func Dim(n Node) []int32 {
	if n == nil {
		return nil
	}
	v, ok := n.Attributes().Get("dim")
	if !ok {
		return nil
	}
	iv, ok := v.(*IntegerVector)
	if !ok {
		return nil
	}
	return iv.Values
}

// IsFactor reports whether n is an integer vector classed "factor" with a
// string "levels" attribute.
func IsFactor(n Node) bool {
	if _, ok := n.(*IntegerVector); !ok || !Inherits(n, "factor") {
		return false
	}
	lv, ok := n.Attributes().Get("levels")
	if !ok {
		return false
	}
	_, ok = lv.(*StringVector)
	return ok
}

// FactorLevels returns the level labels of a factor.
func FactorLevels(n Node) ([]string, error) {
	if !IsFactor(n) {
		return nil, illegalState("%s is not a factor", kindOf(n))
	}
	lv, _ := n.Attributes().Get("levels")
	values := lv.(*StringVector).Values
	out := make([]string, len(values))
	for i, s := range values {
		out[i] = s.Value
	}
	return out, nil
}

// FactorValue returns the label of element i of a factor, and false if the
// element is missing.
func FactorValue(n Node, i int) (string, bool, error) {
	levels, err := FactorLevels(n)
	if err != nil {
		return "", false, err
	}
	codes := n.(*IntegerVector).Values
	if i < 0 || i >= len(codes) {
		return "", false, illegalState("index %d out of range for factor of length %d", i, len(codes))
	}
	code := codes[i]
	if code == NAInteger {
		return "", false, nil
	}
	if code < 1 || int(code) > len(levels) {
		return "", false, illegalState("factor code %d out of range for %d levels", code, len(levels))
	}
	return levels[code-1], true, nil
}

// Scalar returns the single element of a length-one atomic vector as an
// int32 (logical and integer), float64, complex128, String or byte.
func Scalar(n Node) (interface{}, error) {
	if err := requireScalar(n); err != nil {
		return nil, err
	}
	switch x := n.(type) {
	case *LogicalVector:
		return x.Values[0], nil
	case *IntegerVector:
		return x.Values[0], nil
	case *DoubleVector:
		return x.Values[0], nil
	case *ComplexVector:
		return x.Values[0], nil
	case *StringVector:
		return x.Values[0], nil
	case *RawVector:
		return x.Data[0], nil
	default:
		return nil, illegalState("%s is not an atomic vector", kindOf(n))
	}
}

func ScalarInt(n Node) (int32, error) {
	if err := requireScalar(n); err != nil {
		return 0, err
	}
	iv, ok := n.(*IntegerVector)
	if !ok {
		return 0, illegalState("expected integer, got %s", kindOf(n))
	}
	return iv.Values[0], nil
}

// ScalarDouble accepts double and integer vectors; a missing integer becomes
// the missing double.
func ScalarDouble(n Node) (float64, error) {
	if err := requireScalar(n); err != nil {
		return 0, err
	}
	switch x := n.(type) {
	case *DoubleVector:
		return x.Values[0], nil
	case *IntegerVector:
		if x.Values[0] == NAInteger {
			return NAReal(), nil
		}
		return float64(x.Values[0]), nil
	default:
		return 0, illegalState("expected double, got %s", kindOf(n))
	}
}

// ScalarString fails on a missing string as well as on the wrong shape.
func ScalarString(n Node) (string, error) {
	if err := requireScalar(n); err != nil {
		return "", err
	}
	sv, ok := n.(*StringVector)
	if !ok {
		return "", illegalState("expected character, got %s", kindOf(n))
	}
	if !sv.Values[0].Valid {
		return "", illegalState("string is missing")
	}
	return sv.Values[0].Value, nil
}

// ScalarLogical returns the value and whether it is non-missing.
func ScalarLogical(n Node) (bool, bool, error) {
	if err := requireScalar(n); err != nil {
		return false, false, err
	}
	lv, ok := n.(*LogicalVector)
	if !ok {
		return false, false, illegalState("expected logical, got %s", kindOf(n))
	}
	v := lv.Values[0]
	if v == NALogical {
		return false, false, nil
	}
	return v != LogicalFalse, true, nil
}

func requireScalar(n Node) error {
	if l := Len(n); l != 1 {
		return illegalState("expected a scalar, got %s of length %d", kindOf(n), l)
	}
	return nil
}

func DoubleValues(n Node) ([]float64, error) {
	v, ok := n.(*DoubleVector)
	if !ok {
		return nil, illegalState("expected double, got %s", kindOf(n))
	}
	out := make([]float64, len(v.Values))
	copy(out, v.Values)
	return out, nil
}

func IntegerValues(n Node) ([]int32, error) {
	v, ok := n.(*IntegerVector)
	if !ok {
		return nil, illegalState("expected integer, got %s", kindOf(n))
	}
	out := make([]int32, len(v.Values))
	copy(out, v.Values)
	return out, nil
}

func LogicalValues(n Node) ([]int32, error) {
	v, ok := n.(*LogicalVector)
	if !ok {
		return nil, illegalState("expected logical, got %s", kindOf(n))
	}
	out := make([]int32, len(v.Values))
	copy(out, v.Values)
	return out, nil
}

func StringValues(n Node) ([]String, error) {
	v, ok := n.(*StringVector)
	if !ok {
		return nil, illegalState("expected character, got %s", kindOf(n))
	}
	out := make([]String, len(v.Values))
	copy(out, v.Values)
	return out, nil
}

func RawBytes(n Node) ([]byte, error) {
	v, ok := n.(*RawVector)
	if !ok {
		return nil, illegalState("expected raw, got %s", kindOf(n))
	}
	out := make([]byte, len(v.Data))
	copy(out, v.Data)
	return out, nil
}

func kindOf(n Node) Kind {
	if n == nil {
		return KindNull
	}
	return n.Kind()
}

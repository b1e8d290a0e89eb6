package rexp

// The constructors below copy nothing: the returned node takes ownership of
// the slices passed in.

func NewSymbol(name string) *Symbol {
	return &Symbol{Name: name}
}

func NewLogicalVector(values []int32, attrs ...Entry) *LogicalVector {
	return &LogicalVector{
		Object: Object{Attrs: chainOf(attrs)},
		Values: values,
	}
}

func NewIntegerVector(values []int32, attrs ...Entry) *IntegerVector {
	return &IntegerVector{
		Object: Object{Attrs: chainOf(attrs)},
		Values: values,
	}
}

func NewDoubleVector(values []float64, attrs ...Entry) *DoubleVector {
	return &DoubleVector{
		Object: Object{Attrs: chainOf(attrs)},
		Values: values,
	}
}

func NewComplexVector(values []complex128, attrs ...Entry) *ComplexVector {
	return &ComplexVector{
		Object: Object{Attrs: chainOf(attrs)},
		Values: values,
	}
}

func NewStringVector(values []String, attrs ...Entry) *StringVector {
	return &StringVector{
		Object: Object{Attrs: chainOf(attrs)},
		Values: values,
	}
}

func NewRawVector(data []byte, attrs ...Entry) *RawVector {
	return &RawVector{
		Object: Object{Attrs: chainOf(attrs)},
		Data:   data,
	}
}

func NewList(elems []Node, attrs ...Entry) *List {
	return &List{
		Object: Object{Attrs: chainOf(attrs)},
		Elems:  elems,
	}
}

// NewNamedList builds a list whose "names" attribute comes from the entry
// tags.
func NewNamedList(entries Chain, attrs ...Entry) *List {
	names := make([]String, len(entries))
	elems := make([]Node, len(entries))
	for i, e := range entries {
		names[i] = NewString(e.Tag)
		elems[i] = e.Value
	}
	all := append([]Entry{Attr("names", NewStringVector(names))}, attrs...)
	return NewList(elems, all...)
}

func NewPairlist(entries Chain, attrs ...Entry) *Pairlist {
	return &Pairlist{
		Object:  Object{Attrs: chainOf(attrs)},
		Entries: entries,
	}
}

func NewCall(fn Node, args Chain, attrs ...Entry) *Call {
	return &Call{
		Object:   Object{Attrs: chainOf(attrs)},
		Function: fn,
		Args:     args,
	}
}

// NewFactor builds an integer vector carrying factor codes. Codes are 1-based
// indices into levels; NAInteger marks a missing element.
func NewFactor(codes []int32, levels []string, attrs ...Entry) *IntegerVector {
	all := append([]Entry{
		Attr("levels", NewStringVector(NewStrings(levels...))),
		Attr("class", NewStringVector(NewStrings("factor"))),
	}, attrs...)
	return NewIntegerVector(codes, all...)
}

func chainOf(attrs []Entry) Chain {
	if len(attrs) == 0 {
		return nil
	}
	return Chain(attrs)
}

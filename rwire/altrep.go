package rwire

import (
	"math"
	"strconv"

	"rconv/rexp"
)

// Compact representations are expanded on decode into the ordinary vector
// they stand for. Only the classes shipped with base R are understood.
const (
	altrepCompactIntSeq  = "compact_intseq"
	altrepCompactRealSeq = "compact_realseq"
	altrepDeferredString = "deferred_string"
)

var altrepWrappers = map[string]bool{
	"wrap_integer": true,
	"wrap_logical": true,
	"wrap_real":    true,
	"wrap_complex": true,
	"wrap_raw":     true,
	"wrap_string":  true,
	"wrap_list":    true,
}

func (d *decoder) readAltrep(fl flags, start uint64) (rexp.Node, error) {
	info, err := d.readItem()
	if err != nil {
		return nil, err
	}
	class, err := d.altrepClass(info, start)
	if err != nil {
		return nil, err
	}

	var expanded rexp.Node
	switch {
	case class == altrepCompactIntSeq || class == altrepCompactRealSeq:
		state, err := d.readItem()
		if err != nil {
			return nil, err
		}
		expanded, err = d.expandCompactSeq(class == altrepCompactIntSeq, state, start)
		if err != nil {
			return nil, err
		}
	case class == altrepDeferredString:
		arg, _, err := d.readDottedPair(start)
		if err != nil {
			return nil, err
		}
		expanded, err = d.expandDeferredString(arg, start)
		if err != nil {
			return nil, err
		}
	case altrepWrappers[class]:
		wrapped, _, err := d.readDottedPair(start)
		if err != nil {
			return nil, err
		}
		expanded = wrapped
	default:
		return nil, d.unsupported(start, "ALTREP class "+class)
	}

	attrItem, err := d.readItem()
	if err != nil {
		return nil, err
	}
	attrs, err := d.attributesOf(attrItem, start)
	if err != nil {
		return nil, err
	}
	return d.withAttributes(expanded, attrs, fl.levels, start)
}

// altrepClass extracts the class name from the info pairlist of class
// symbol, package symbol and type code.
func (d *decoder) altrepClass(info rexp.Node, start uint64) (string, error) {
	pl, ok := info.(*rexp.Pairlist)
	if !ok || len(pl.Entries) == 0 {
		return "", d.corrupt(start, "ALTREP info must be a pairlist, got %s", info.Kind())
	}
	sym, ok := pl.Entries[0].Value.(*rexp.Symbol)
	if !ok {
		return "", d.corrupt(start, "ALTREP class must be a symbol")
	}
	return sym.Name, nil
}

// readDottedPair reads a single cell whose second link is an arbitrary value
// rather than the rest of a chain.
func (d *decoder) readDottedPair(start uint64) (rexp.Node, rexp.Node, error) {
	cellStart := d.cr.Count()
	raw, err := d.in.ReadInt()
	if err != nil {
		return nil, nil, err
	}
	fl := unpackFlags(raw)
	if fl.typ != listSXP {
		return nil, nil, d.corrupt(cellStart, "ALTREP state must be a pair, got %s", typeName(fl.typ))
	}
	_, _, car, err := d.readCell(fl, true, cellStart)
	if err != nil {
		return nil, nil, err
	}
	cdr, err := d.readItem()
	if err != nil {
		return nil, nil, err
	}
	return car, cdr, nil
}

func (d *decoder) expandCompactSeq(integer bool, state rexp.Node, start uint64) (rexp.Node, error) {
	var n, first, inc float64
	switch v := state.(type) {
	case *rexp.DoubleVector:
		if len(v.Values) != 3 {
			return nil, d.corrupt(start, "compact sequence state has %d elements", len(v.Values))
		}
		n, first, inc = v.Values[0], v.Values[1], v.Values[2]
	case *rexp.IntegerVector:
		if len(v.Values) != 3 {
			return nil, d.corrupt(start, "compact sequence state has %d elements", len(v.Values))
		}
		n, first, inc = float64(v.Values[0]), float64(v.Values[1]), float64(v.Values[2])
	default:
		return nil, d.corrupt(start, "compact sequence state must be numeric, got %s", state.Kind())
	}
	if n < 0 || n != math.Trunc(n) || n > math.MaxInt64/2 {
		return nil, d.corrupt(start, "invalid compact sequence length %v", n)
	}
	length, err := d.checkLength(int64(n), start)
	if err != nil {
		return nil, err
	}

	if integer {
		if first+inc*float64(length-1) > math.MaxInt32 || first+inc*float64(length-1) < -math.MaxInt32 {
			return nil, d.corrupt(start, "compact integer sequence overflows")
		}
		values := make([]int32, length)
		for i := range values {
			values[i] = int32(first + inc*float64(i))
		}
		return &rexp.IntegerVector{Values: values}, nil
	}
	values := make([]float64, length)
	for i := range values {
		values[i] = first + inc*float64(i)
	}
	return &rexp.DoubleVector{Values: values}, nil
}

func (d *decoder) expandDeferredString(arg rexp.Node, start uint64) (rexp.Node, error) {
	switch v := arg.(type) {
	case *rexp.StringVector:
		return &rexp.StringVector{Values: v.Values}, nil
	case *rexp.IntegerVector:
		out := make([]rexp.String, len(v.Values))
		for i, x := range v.Values {
			if x == rexp.NAInteger {
				out[i] = rexp.NAString
				continue
			}
			out[i] = rexp.NewString(strconv.FormatInt(int64(x), 10))
		}
		return &rexp.StringVector{Values: out}, nil
	case *rexp.DoubleVector:
		out := make([]rexp.String, len(v.Values))
		for i, x := range v.Values {
			out[i] = formatDeferredReal(x)
		}
		return &rexp.StringVector{Values: out}, nil
	default:
		return nil, d.unsupported(start, "deferred string over "+arg.Kind().String())
	}
}

func formatDeferredReal(x float64) rexp.String {
	switch {
	case rexp.IsNA(x):
		return rexp.NAString
	case math.IsNaN(x):
		return rexp.NewString("NaN")
	case math.IsInf(x, 1):
		return rexp.NewString("Inf")
	case math.IsInf(x, -1):
		return rexp.NewString("-Inf")
	default:
		return rexp.NewString(strconv.FormatFloat(x, 'g', 15, 64))
	}
}

// withAttributes moves the attributes carried by the compact wrapper onto
// the expanded vector. The expanded vector was built by this decode call and
// is not yet shared.
func (d *decoder) withAttributes(n rexp.Node, attrs rexp.Chain, levels int, start uint64) (rexp.Node, error) {
	var obj *rexp.Object
	switch v := n.(type) {
	case *rexp.LogicalVector:
		obj = &v.Object
	case *rexp.IntegerVector:
		obj = &v.Object
	case *rexp.DoubleVector:
		obj = &v.Object
	case *rexp.ComplexVector:
		obj = &v.Object
	case *rexp.StringVector:
		obj = &v.Object
	case *rexp.RawVector:
		obj = &v.Object
	case *rexp.List:
		obj = &v.Object
	default:
		return nil, d.corrupt(start, "ALTREP wrapper around %s", n.Kind())
	}
	obj.Attrs = attrs
	obj.Level = levels
	return n, nil
}

const maxInt = int(^uint(0) >> 1)

func (d *decoder) checkLength(length int64, start uint64) (int, error) {
	if length < 0 {
		return 0, d.corrupt(start, "negative length %d", length)
	}
	if d.cfg.MaxVectorLen > 0 && length > d.cfg.MaxVectorLen {
		return 0, &LengthLimitError{
			Offset: start,
			Length: length,
			Max:    d.cfg.MaxVectorLen,
		}
	}
	if int64(int(length)) != length {
		return 0, d.corrupt(start, "length %d does not fit this platform", length)
	}
	return int(length), nil
}

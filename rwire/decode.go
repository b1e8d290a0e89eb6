package rwire

import (
	"fmt"
	"io"

	"rconv/rexp"
	"rconv/util"
)

// Config bounds what a decode call will accept.
type Config struct {
	// MaxVectorLen is the largest vector length the decoder will allocate.
	// It also bounds the byte length of string elements and builtin names.
	// Zero means no limit; callers handling untrusted input should set one.
	MaxVectorLen int64
}

// DefaultConfig imposes no limits.
var DefaultConfig = &Config{}

// Decode reads one serialized object from r using DefaultConfig. The reader
// is borrowed: it is neither closed nor retained, and nothing past the end
// of the object is consumed.
func Decode(r io.Reader) (rexp.Node, error) {
	return DefaultConfig.Decode(r)
}

// DecodeWithHeader is like Decode but also returns the stream preamble.
func DecodeWithHeader(r io.Reader) (rexp.Node, *Header, error) {
	return DefaultConfig.DecodeWithHeader(r)
}

func (c *Config) Decode(r io.Reader) (rexp.Node, error) {
	n, _, err := c.DecodeWithHeader(r)
	return n, err
}

func (c *Config) DecodeWithHeader(r io.Reader) (rexp.Node, *Header, error) {
	cr := util.NewCountingReader(r)
	format, err := readFormat(cr, cr.Count)
	if err != nil {
		return nil, nil, err
	}

	d := &decoder{
		cfg: c,
		cr:  cr,
	}
	if format.Textual() {
		d.in = newASCIIReader(cr, cr.Count)
	} else {
		d.in = newBinaryReader(cr, format.byteOrder(), cr.Count)
	}

	header := &Header{
		Format: format,
	}
	if err := readHeaderFields(d.in, header, cr.Count); err != nil {
		return nil, nil, err
	}
	root, err := d.readItem()
	if err != nil {
		return nil, nil, err
	}
	return root, header, nil
}

// decoder holds the state of one decode call. The reference table is private
// to the call.
type decoder struct {
	cfg  *Config
	cr   *util.CountingReader
	in   primitiveReader
	refs []rexp.Node
}

func (d *decoder) corrupt(off uint64, format string, args ...interface{}) error {
	return &CorruptStreamError{
		Offset: off,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (d *decoder) unsupported(off uint64, typ string) error {
	return &UnsupportedNodeError{
		Offset: off,
		Type:   typ,
	}
}

func (d *decoder) readItem() (rexp.Node, error) {
	start := d.cr.Count()
	raw, err := d.in.ReadInt()
	if err != nil {
		return nil, err
	}
	return d.dispatch(raw, start)
}

func (d *decoder) dispatch(raw int32, start uint64) (rexp.Node, error) {
	fl := unpackFlags(raw)
	if fl.typ == refSXP {
		return d.readRef(raw, start)
	}
	if fl.hasTag && !canCarryTag(fl.typ) {
		return nil, d.corrupt(start, "tag flag set on %s", typeName(fl.typ))
	}

	switch fl.typ {
	case nilValueSXP, nilSXP:
		return rexp.Nil, nil
	case globalEnvSXP:
		return &rexp.SpecialValue{Which: rexp.GlobalEnv}, nil
	case baseEnvSXP:
		return &rexp.SpecialValue{Which: rexp.BaseEnv}, nil
	case emptyEnvSXP:
		return &rexp.SpecialValue{Which: rexp.EmptyEnv}, nil
	case baseNamespaceSXP:
		return &rexp.SpecialValue{Which: rexp.BaseNamespace}, nil
	case unboundValueSXP:
		return &rexp.SpecialValue{Which: rexp.UnboundValue}, nil
	case missingArgSXP:
		return &rexp.SpecialValue{Which: rexp.MissingArg}, nil
	case symSXP:
		return d.readSymbol()
	case packageSXP, namespaceSXP:
		return d.readNamespace(fl.typ == packageSXP, start)
	case envSXP:
		return d.readEnvironment(start)
	case listSXP:
		return d.readPairlist(fl, start)
	case langSXP:
		return d.readCall(fl, start)
	case cloSXP:
		return d.readClosure(fl, start)
	case promSXP:
		return d.readPromise(fl, start)
	case altrepSXP:
		return d.readAltrep(fl, start)
	case specialSXP, builtinSXP:
		return d.readBuiltin(fl, start)
	case charSXP:
		return nil, d.corrupt(start, "CHARSXP outside a character vector")
	case lglSXP, intSXP, realSXP, cplxSXP, strSXP, vecSXP, exprSXP, rawSXP, s4SXP:
		return d.readVector(fl, start)
	case persistSXP, bcodeSXP, extptrSXP, weakrefSXP, dotSXP,
		classRefSXP, genericRefSXP, bcRepRefSXP, bcRepDefSXP:
		return nil, d.unsupported(start, typeName(fl.typ))
	default:
		return nil, d.corrupt(start, "unknown type %d", fl.typ)
	}
}

func (d *decoder) readRef(raw int32, start uint64) (rexp.Node, error) {
	idx := int64(uint32(raw) >> 8)
	if idx == 0 {
		i, err := d.in.ReadInt()
		if err != nil {
			return nil, err
		}
		idx = int64(i)
	}
	if idx < 1 || idx > int64(len(d.refs)) {
		return nil, d.corrupt(start, "back-reference %d outside table of %d entries", idx, len(d.refs))
	}
	return d.refs[idx-1], nil
}

func (d *decoder) addRef(n rexp.Node) {
	d.refs = append(d.refs, n)
}

func (d *decoder) readSymbol() (rexp.Node, error) {
	name, err := d.readChar()
	if err != nil {
		return nil, err
	}
	if !name.Valid {
		name.Value = "NA"
	}
	sym := &rexp.Symbol{Name: name.Value}
	d.addRef(sym)
	return sym, nil
}

func (d *decoder) readNamespace(pkg bool, start uint64) (rexp.Node, error) {
	names, err := d.in.ReadInt()
	if err != nil {
		return nil, err
	}
	if names != 0 {
		return nil, d.unsupported(start, "named persistent strings")
	}
	n, err := d.in.ReadInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, d.corrupt(start, "negative namespace info length %d", n)
	}
	ns := &rexp.Namespace{
		Package: pkg,
		Info:    make([]rexp.String, n),
	}
	for i := range ns.Info {
		if ns.Info[i], err = d.readChar(); err != nil {
			return nil, err
		}
	}
	d.addRef(ns)
	return ns, nil
}

func (d *decoder) readEnvironment(start uint64) (rexp.Node, error) {
	locked, err := d.in.ReadInt()
	if err != nil {
		return nil, err
	}
	// registered before its contents, which may refer back to it
	env := &rexp.Environment{
		Locked: locked != 0,
	}
	d.addRef(env)
	if env.Enclosure, err = d.readItem(); err != nil {
		return nil, err
	}
	if env.Frame, err = d.readItem(); err != nil {
		return nil, err
	}
	if env.HashTable, err = d.readItem(); err != nil {
		return nil, err
	}
	attrs, err := d.readItem()
	if err != nil {
		return nil, err
	}
	if env.Attrs, err = d.attributesOf(attrs, start); err != nil {
		return nil, err
	}
	return env, nil
}

// readChar reads a string element: a CHARSXP header, a length and the bytes.
func (d *decoder) readChar() (rexp.String, error) {
	start := d.cr.Count()
	raw, err := d.in.ReadInt()
	if err != nil {
		return rexp.NAString, err
	}
	fl := unpackFlags(raw)
	if fl.typ != charSXP {
		return rexp.NAString, d.corrupt(start, "expected CHARSXP, got %s", typeName(fl.typ))
	}
	if fl.hasAttr || fl.hasTag {
		return rexp.NAString, d.corrupt(start, "CHARSXP with attribute or tag flags")
	}
	n, err := d.in.ReadInt()
	if err != nil {
		return rexp.NAString, err
	}
	if n == naStringLength {
		return rexp.NAString, nil
	}
	if n < 0 {
		return rexp.NAString, d.corrupt(start, "negative string length %d", n)
	}
	length, err := d.checkLength(int64(n), start)
	if err != nil {
		return rexp.NAString, err
	}
	s, err := d.in.ReadString(length)
	if err != nil {
		return rexp.NAString, err
	}
	return rexp.String{
		Value:    s,
		Valid:    true,
		Encoding: charEncoding(fl.levels),
	}, nil
}

func charEncoding(levels int) rexp.Encoding {
	switch {
	case levels&utf8Mask != 0:
		return rexp.EncodingUTF8
	case levels&latin1Mask != 0:
		return rexp.EncodingLatin1
	case levels&bytesMask != 0:
		return rexp.EncodingBytes
	case levels&asciiMask != 0:
		return rexp.EncodingASCII
	default:
		return rexp.EncodingNative
	}
}

func (d *decoder) readLength(start uint64) (int, error) {
	n, err := d.in.ReadInt()
	if err != nil {
		return 0, err
	}
	length := int64(n)
	if n == longLength {
		upper, err := d.in.ReadInt()
		if err != nil {
			return 0, err
		}
		lower, err := d.in.ReadInt()
		if err != nil {
			return 0, err
		}
		length = int64(uint32(upper))<<32 | int64(uint32(lower))
		if length < 0 {
			return 0, d.corrupt(start, "negative length %d", length)
		}
	} else if n < 0 {
		return 0, d.corrupt(start, "negative length %d", n)
	}
	return d.checkLength(length, start)
}

func (d *decoder) readVector(fl flags, start uint64) (rexp.Node, error) {
	var (
		node rexp.Node
		obj  *rexp.Object
	)

	if fl.typ == s4SXP {
		v := &rexp.S4Object{}
		node, obj = v, &v.Object
	} else {
		n, err := d.readLength(start)
		if err != nil {
			return nil, err
		}
		switch fl.typ {
		case lglSXP:
			v := &rexp.LogicalVector{Values: make([]int32, n)}
			if err := d.in.ReadInts(v.Values); err != nil {
				return nil, err
			}
			node, obj = v, &v.Object
		case intSXP:
			v := &rexp.IntegerVector{Values: make([]int32, n)}
			if err := d.in.ReadInts(v.Values); err != nil {
				return nil, err
			}
			node, obj = v, &v.Object
		case realSXP:
			v := &rexp.DoubleVector{Values: make([]float64, n)}
			if err := d.in.ReadDoubles(v.Values); err != nil {
				return nil, err
			}
			node, obj = v, &v.Object
		case cplxSXP:
			if n > maxInt/2 {
				return nil, d.corrupt(start, "complex vector length %d does not fit this platform", n)
			}
			parts := make([]float64, 2*n)
			if err := d.in.ReadDoubles(parts); err != nil {
				return nil, err
			}
			v := &rexp.ComplexVector{Values: make([]complex128, n)}
			for i := range v.Values {
				v.Values[i] = complex(parts[2*i], parts[2*i+1])
			}
			node, obj = v, &v.Object
		case strSXP:
			v := &rexp.StringVector{Values: make([]rexp.String, n)}
			for i := range v.Values {
				if v.Values[i], err = d.readChar(); err != nil {
					return nil, err
				}
			}
			node, obj = v, &v.Object
		case vecSXP, exprSXP:
			elems := make([]rexp.Node, n)
			for i := range elems {
				if elems[i], err = d.readItem(); err != nil {
					return nil, err
				}
			}
			if fl.typ == vecSXP {
				v := &rexp.List{Elems: elems}
				node, obj = v, &v.Object
			} else {
				v := &rexp.ExpressionVector{Elems: elems}
				node, obj = v, &v.Object
			}
		case rawSXP:
			data, err := d.in.ReadRaw(n)
			if err != nil {
				return nil, err
			}
			v := &rexp.RawVector{Data: data}
			node, obj = v, &v.Object
		}
	}

	if err := d.finish(obj, fl, start); err != nil {
		return nil, err
	}
	return node, nil
}

func (d *decoder) readBuiltin(fl flags, start uint64) (rexp.Node, error) {
	n, err := d.in.ReadInt()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, d.corrupt(start, "negative builtin name length %d", n)
	}
	length, err := d.checkLength(int64(n), start)
	if err != nil {
		return nil, err
	}
	name, err := d.in.ReadString(length)
	if err != nil {
		return nil, err
	}
	b := &rexp.Builtin{
		Special: fl.typ == specialSXP,
		Name:    name,
	}
	if err := d.finish(&b.Object, fl, start); err != nil {
		return nil, err
	}
	return b, nil
}

// finish records the header levels and reads trailing attributes.
func (d *decoder) finish(obj *rexp.Object, fl flags, start uint64) error {
	obj.Level = fl.levels
	if !fl.hasAttr {
		return nil
	}
	attrs, err := d.readAttributes(start)
	if err != nil {
		return err
	}
	obj.Attrs = attrs
	return nil
}

func (d *decoder) readAttributes(start uint64) (rexp.Chain, error) {
	n, err := d.readItem()
	if err != nil {
		return nil, err
	}
	return d.attributesOf(n, start)
}

func (d *decoder) attributesOf(n rexp.Node, start uint64) (rexp.Chain, error) {
	switch v := n.(type) {
	case *rexp.Null:
		return nil, nil
	case *rexp.Pairlist:
		if len(v.Attrs) > 0 {
			return nil, d.unsupported(start, "attributes on an attribute pairlist")
		}
		return v.Entries, nil
	default:
		return nil, d.corrupt(start, "attributes must be a pairlist, got %s", n.Kind())
	}
}

// readCell reads the attributes, tag and value of one pairlist cell. Only the
// head cell of a chain may carry attributes.
func (d *decoder) readCell(fl flags, head bool, start uint64) (rexp.Chain, string, rexp.Node, error) {
	var attrs rexp.Chain
	if fl.hasAttr {
		a, err := d.readAttributes(start)
		if err != nil {
			return nil, "", nil, err
		}
		if !head && len(a) > 0 {
			return nil, "", nil, d.unsupported(start, "attributes on an inner pairlist cell")
		}
		attrs = a
	}
	var tag string
	if fl.hasTag {
		t, err := d.readTag()
		if err != nil {
			return nil, "", nil, err
		}
		tag = t
	}
	car, err := d.readItem()
	if err != nil {
		return nil, "", nil, err
	}
	return attrs, tag, car, nil
}

func (d *decoder) readTag() (string, error) {
	start := d.cr.Count()
	n, err := d.readItem()
	if err != nil {
		return "", err
	}
	sym, ok := n.(*rexp.Symbol)
	if !ok {
		return "", d.corrupt(start, "pairlist tag must be a symbol, got %s", n.Kind())
	}
	return sym.Name, nil
}

// nextCell reads the header of the next link in a chain. It reports done when
// the chain is terminated.
func (d *decoder) nextCell() (flags, uint64, bool, error) {
	start := d.cr.Count()
	raw, err := d.in.ReadInt()
	if err != nil {
		return flags{}, start, false, err
	}
	fl := unpackFlags(raw)
	switch fl.typ {
	case nilValueSXP:
		return fl, start, true, nil
	case listSXP:
		return fl, start, false, nil
	default:
		return fl, start, false, d.corrupt(start, "pairlist continued by %s", typeName(fl.typ))
	}
}

// readPairlist flattens a chain of cells into one Pairlist.
func (d *decoder) readPairlist(fl flags, start uint64) (rexp.Node, error) {
	pl := &rexp.Pairlist{}
	pl.Level = fl.levels
	head := true
	for {
		attrs, tag, car, err := d.readCell(fl, head, start)
		if err != nil {
			return nil, err
		}
		if head {
			pl.Attrs = attrs
			head = false
		}
		pl.Entries = append(pl.Entries, rexp.Entry{Tag: tag, Value: car})

		next, nextStart, done, err := d.nextCell()
		if err != nil {
			return nil, err
		}
		if done {
			return pl, nil
		}
		fl, start = next, nextStart
	}
}

func (d *decoder) readCall(fl flags, start uint64) (rexp.Node, error) {
	attrs, tag, fn, err := d.readCell(fl, true, start)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		return nil, d.unsupported(start, "tagged function position in a call")
	}
	call := &rexp.Call{
		Function: fn,
	}
	call.Attrs = attrs
	call.Level = fl.levels
	for {
		next, nextStart, done, err := d.nextCell()
		if err != nil {
			return nil, err
		}
		if done {
			return call, nil
		}
		_, tag, car, err := d.readCell(next, false, nextStart)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, rexp.Entry{Tag: tag, Value: car})
	}
}

// readTriple reads a cell-shaped node whose tag and two links are fixed parts
// rather than a chain.
func (d *decoder) readTriple(fl flags, start uint64) (rexp.Chain, rexp.Node, rexp.Node, rexp.Node, error) {
	var attrs rexp.Chain
	if fl.hasAttr {
		a, err := d.readAttributes(start)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		attrs = a
	}
	tag := rexp.Nil
	if fl.hasTag {
		t, err := d.readItem()
		if err != nil {
			return nil, nil, nil, nil, err
		}
		tag = t
	}
	car, err := d.readItem()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cdr, err := d.readItem()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return attrs, tag, car, cdr, nil
}

func (d *decoder) readClosure(fl flags, start uint64) (rexp.Node, error) {
	attrs, env, formals, body, err := d.readTriple(fl, start)
	if err != nil {
		return nil, err
	}
	clo := &rexp.Closure{
		Env:     env,
		Formals: formals,
		Body:    body,
	}
	clo.Attrs = attrs
	clo.Level = fl.levels
	return clo, nil
}

func (d *decoder) readPromise(fl flags, start uint64) (rexp.Node, error) {
	attrs, env, value, expr, err := d.readTriple(fl, start)
	if err != nil {
		return nil, err
	}
	p := &rexp.Promise{
		Env:   env,
		Value: value,
		Expr:  expr,
	}
	p.Attrs = attrs
	p.Level = fl.levels
	return p, nil
}

package rwire

import (
	"bufio"
	"io"
	"math"

	"rconv/rexp"

	"github.com/pkg/errors"
)

// EncodeOptions control the preamble and format of an encoded stream. Zero
// fields take their defaults.
type EncodeOptions struct {
	Format         Format
	Version        int32
	WriterVersion  int32
	NativeEncoding string
}

func (o *EncodeOptions) header() (*Header, error) {
	h := &Header{
		Format:         o.Format,
		Version:        o.Version,
		WriterVersion:  o.WriterVersion,
		NativeEncoding: o.NativeEncoding,
	}
	if h.Format == 0 {
		h.Format = FormatXDR
	}
	switch h.Format {
	case FormatXDR, FormatASCII, FormatNative:
	default:
		return nil, errors.Errorf("unknown wire format %v", h.Format)
	}
	if h.Version == 0 {
		h.Version = DefaultVersion
	}
	if h.WriterVersion == 0 {
		h.WriterVersion = DefaultWriterVersion
	}
	switch h.Version {
	case 2:
		h.MinReaderVersion = minReaderV2
		h.NativeEncoding = ""
	case 3:
		h.MinReaderVersion = minReaderV3
		if h.NativeEncoding == "" {
			h.NativeEncoding = DefaultNativeEncoding
		}
	default:
		return nil, errors.Errorf("unsupported serialization version %d", h.Version)
	}
	return h, nil
}

// Encode writes n to w as a version 3 stream, in the textual format when
// textual is set and big-endian binary otherwise. The writer is flushed but
// not closed.
func Encode(n rexp.Node, w io.Writer, textual bool) error {
	opts := &EncodeOptions{
		Format: FormatXDR,
	}
	if textual {
		opts.Format = FormatASCII
	}
	return EncodeWithOptions(n, w, opts)
}

// EncodeWithOptions writes n to w. Output is deterministic for a given node
// and options.
func EncodeWithOptions(n rexp.Node, w io.Writer, opts *EncodeOptions) error {
	if opts == nil {
		opts = &EncodeOptions{}
	}
	h, err := opts.header()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	e := &encoder{
		syms: make(map[string]int),
		ptrs: make(map[rexp.Node]int),
	}
	if h.Format.Textual() {
		e.out = &asciiWriter{w: bw}
	} else {
		e.out = newBinaryWriter(bw, h.Format.byteOrder())
	}
	if err := writeHeader(bw, e.out, h); err != nil {
		return errors.Wrap(err, "error writing header")
	}
	if err := e.writeItem(n); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "error flushing stream")
}

// encoder mirrors the decoder's reference table: symbols are shared by name,
// environments and namespaces by identity.
type encoder struct {
	out  primitiveWriter
	syms map[string]int
	ptrs map[rexp.Node]int
	next int
}

func (e *encoder) addRef() int {
	e.next++
	return e.next
}

func (e *encoder) writeRef(idx int) error {
	if idx <= maxPackedIndex {
		return e.out.WriteInt(int32(uint32(idx)<<8 | refSXP))
	}
	if err := e.out.WriteInt(refSXP); err != nil {
		return err
	}
	return e.out.WriteInt(int32(idx))
}

func (e *encoder) writeLength(n int) error {
	if n <= math.MaxInt32 {
		return e.out.WriteInt(int32(n))
	}
	if err := e.out.WriteInt(longLength); err != nil {
		return err
	}
	l := uint64(n)
	if err := e.out.WriteInt(int32(uint32(l >> 32))); err != nil {
		return err
	}
	return e.out.WriteInt(int32(uint32(l)))
}

func isObject(attrs rexp.Chain) bool {
	_, ok := attrs.Get("class")
	return ok
}

// writeHead writes the header word of an attributable node.
func (e *encoder) writeHead(typ int, obj *rexp.Object, hasTag bool) error {
	return e.out.WriteInt(packFlags(typ, obj.Level, isObject(obj.Attrs), len(obj.Attrs) > 0, hasTag))
}

func (e *encoder) writeAttributes(attrs rexp.Chain) error {
	if len(attrs) == 0 {
		return nil
	}
	return e.writeChain(attrs)
}

// writeChain writes entries as a chain of untyped cells followed by the
// terminator.
func (e *encoder) writeChain(entries rexp.Chain) error {
	for _, ent := range entries {
		if err := e.out.WriteInt(packFlags(listSXP, 0, false, false, ent.Tag != "")); err != nil {
			return err
		}
		if err := e.writeCellBody(ent); err != nil {
			return err
		}
	}
	return e.out.WriteInt(nilValueSXP)
}

func (e *encoder) writeCellBody(ent rexp.Entry) error {
	if ent.Tag != "" {
		if err := e.writeSymbol(ent.Tag); err != nil {
			return err
		}
	}
	return e.writeItem(ent.Value)
}

func (e *encoder) writeSymbol(name string) error {
	if idx, ok := e.syms[name]; ok {
		return e.writeRef(idx)
	}
	e.syms[name] = e.addRef()
	if err := e.out.WriteInt(symSXP); err != nil {
		return err
	}
	return e.writeChar(rexp.NewString(name))
}

func charLevels(s rexp.String) int {
	enc := s.Encoding
	if enc == rexp.EncodingUnknown {
		if rexp.IsASCII(s.Value) {
			enc = rexp.EncodingASCII
		} else {
			enc = rexp.EncodingUTF8
		}
	}
	switch enc {
	case rexp.EncodingUTF8:
		return utf8Mask
	case rexp.EncodingLatin1:
		return latin1Mask
	case rexp.EncodingBytes:
		return bytesMask
	case rexp.EncodingASCII:
		return asciiMask
	default:
		return 0
	}
}

func (e *encoder) writeChar(s rexp.String) error {
	if !s.Valid {
		if err := e.out.WriteInt(charSXP); err != nil {
			return err
		}
		return e.out.WriteInt(naStringLength)
	}
	if err := e.out.WriteInt(packFlags(charSXP, charLevels(s), false, false, false)); err != nil {
		return err
	}
	if err := e.out.WriteInt(int32(len(s.Value))); err != nil {
		return err
	}
	return e.out.WriteString(s.Value)
}

func (e *encoder) writeInts(typ int, obj *rexp.Object, values []int32) error {
	if err := e.writeHead(typ, obj, false); err != nil {
		return err
	}
	if err := e.writeLength(len(values)); err != nil {
		return err
	}
	for _, v := range values {
		if err := e.out.WriteInt(v); err != nil {
			return err
		}
	}
	return e.writeAttributes(obj.Attrs)
}

func (e *encoder) writeNodes(typ int, obj *rexp.Object, elems []rexp.Node) error {
	if err := e.writeHead(typ, obj, false); err != nil {
		return err
	}
	if err := e.writeLength(len(elems)); err != nil {
		return err
	}
	for _, el := range elems {
		if err := e.writeItem(el); err != nil {
			return err
		}
	}
	return e.writeAttributes(obj.Attrs)
}

func (e *encoder) writeSpecial(s rexp.Special) error {
	var code int32
	switch s {
	case rexp.GlobalEnv:
		code = globalEnvSXP
	case rexp.BaseEnv:
		code = baseEnvSXP
	case rexp.EmptyEnv:
		code = emptyEnvSXP
	case rexp.BaseNamespace:
		code = baseNamespaceSXP
	case rexp.UnboundValue:
		code = unboundValueSXP
	case rexp.MissingArg:
		code = missingArgSXP
	default:
		return errors.Errorf("unknown special value %d", s)
	}
	return e.out.WriteInt(code)
}

func (e *encoder) writeItem(n rexp.Node) error {
	switch v := n.(type) {
	case nil, *rexp.Null:
		return e.out.WriteInt(nilValueSXP)
	case *rexp.SpecialValue:
		return e.writeSpecial(v.Which)
	case *rexp.Symbol:
		return e.writeSymbol(v.Name)
	case *rexp.Environment:
		return e.writeEnvironment(v)
	case *rexp.Namespace:
		return e.writeNamespace(v)
	case *rexp.Pairlist:
		return e.writePairlist(v)
	case *rexp.Call:
		return e.writeCall(v)
	case *rexp.Closure:
		return e.writeTriple(cloSXP, &v.Object, v.Env, v.Formals, v.Body)
	case *rexp.Promise:
		return e.writeTriple(promSXP, &v.Object, v.Env, v.Value, v.Expr)
	case *rexp.Builtin:
		typ := builtinSXP
		if v.Special {
			typ = specialSXP
		}
		if err := e.writeHead(typ, &v.Object, false); err != nil {
			return err
		}
		if err := e.out.WriteInt(int32(len(v.Name))); err != nil {
			return err
		}
		if err := e.out.WriteString(v.Name); err != nil {
			return err
		}
		return e.writeAttributes(v.Attrs)
	case *rexp.LogicalVector:
		return e.writeInts(lglSXP, &v.Object, v.Values)
	case *rexp.IntegerVector:
		return e.writeInts(intSXP, &v.Object, v.Values)
	case *rexp.DoubleVector:
		if err := e.writeHead(realSXP, &v.Object, false); err != nil {
			return err
		}
		if err := e.writeLength(len(v.Values)); err != nil {
			return err
		}
		for _, d := range v.Values {
			if err := e.out.WriteDouble(d); err != nil {
				return err
			}
		}
		return e.writeAttributes(v.Attrs)
	case *rexp.ComplexVector:
		if err := e.writeHead(cplxSXP, &v.Object, false); err != nil {
			return err
		}
		if err := e.writeLength(len(v.Values)); err != nil {
			return err
		}
		for _, c := range v.Values {
			if err := e.out.WriteDouble(real(c)); err != nil {
				return err
			}
			if err := e.out.WriteDouble(imag(c)); err != nil {
				return err
			}
		}
		return e.writeAttributes(v.Attrs)
	case *rexp.StringVector:
		if err := e.writeHead(strSXP, &v.Object, false); err != nil {
			return err
		}
		if err := e.writeLength(len(v.Values)); err != nil {
			return err
		}
		for _, s := range v.Values {
			if err := e.writeChar(s); err != nil {
				return err
			}
		}
		return e.writeAttributes(v.Attrs)
	case *rexp.RawVector:
		if err := e.writeHead(rawSXP, &v.Object, false); err != nil {
			return err
		}
		if err := e.writeLength(len(v.Data)); err != nil {
			return err
		}
		if err := e.out.WriteRaw(v.Data); err != nil {
			return err
		}
		return e.writeAttributes(v.Attrs)
	case *rexp.List:
		return e.writeNodes(vecSXP, &v.Object, v.Elems)
	case *rexp.ExpressionVector:
		return e.writeNodes(exprSXP, &v.Object, v.Elems)
	case *rexp.S4Object:
		flags := packFlags(s4SXP, v.Level|s4ObjectMask, true, len(v.Attrs) > 0, false)
		if err := e.out.WriteInt(flags); err != nil {
			return err
		}
		return e.writeAttributes(v.Attrs)
	default:
		return errors.Errorf("cannot encode node of type %T", n)
	}
}

func (e *encoder) writeEnvironment(env *rexp.Environment) error {
	if idx, ok := e.ptrs[env]; ok {
		return e.writeRef(idx)
	}
	e.ptrs[env] = e.addRef()
	if err := e.out.WriteInt(envSXP); err != nil {
		return err
	}
	locked := int32(0)
	if env.Locked {
		locked = 1
	}
	if err := e.out.WriteInt(locked); err != nil {
		return err
	}
	for _, part := range []rexp.Node{env.Enclosure, env.Frame, env.HashTable} {
		if err := e.writeItem(part); err != nil {
			return err
		}
	}
	if len(env.Attrs) == 0 {
		return e.out.WriteInt(nilValueSXP)
	}
	return e.writeChain(env.Attrs)
}

func (e *encoder) writeNamespace(ns *rexp.Namespace) error {
	if idx, ok := e.ptrs[ns]; ok {
		return e.writeRef(idx)
	}
	e.ptrs[ns] = e.addRef()
	typ := int32(namespaceSXP)
	if ns.Package {
		typ = packageSXP
	}
	if err := e.out.WriteInt(typ); err != nil {
		return err
	}
	if err := e.out.WriteInt(0); err != nil {
		return err
	}
	if err := e.out.WriteInt(int32(len(ns.Info))); err != nil {
		return err
	}
	for _, s := range ns.Info {
		if err := e.writeChar(s); err != nil {
			return err
		}
	}
	return nil
}

// writePairlist writes the entries as a chain of cells. The head cell
// carries the pairlist's attributes. An empty pairlist is written as NULL.
func (e *encoder) writePairlist(pl *rexp.Pairlist) error {
	if len(pl.Entries) == 0 {
		if len(pl.Attrs) > 0 {
			return errors.New("cannot encode an empty pairlist with attributes")
		}
		return e.out.WriteInt(nilValueSXP)
	}
	head := pl.Entries[0]
	if err := e.writeHead(listSXP, &pl.Object, head.Tag != ""); err != nil {
		return err
	}
	if err := e.writeAttributes(pl.Attrs); err != nil {
		return err
	}
	if err := e.writeCellBody(head); err != nil {
		return err
	}
	return e.writeChain(pl.Entries[1:])
}

func (e *encoder) writeCall(c *rexp.Call) error {
	if err := e.writeHead(langSXP, &c.Object, false); err != nil {
		return err
	}
	if err := e.writeAttributes(c.Attrs); err != nil {
		return err
	}
	if err := e.writeItem(c.Function); err != nil {
		return err
	}
	return e.writeChain(c.Args)
}

func (e *encoder) writeTriple(typ int, obj *rexp.Object, tag, car, cdr rexp.Node) error {
	hasTag := tag != nil
	if _, null := tag.(*rexp.Null); null {
		hasTag = false
	}
	if err := e.writeHead(typ, obj, hasTag); err != nil {
		return err
	}
	if err := e.writeAttributes(obj.Attrs); err != nil {
		return err
	}
	if hasTag {
		if err := e.writeItem(tag); err != nil {
			return err
		}
	}
	if err := e.writeItem(car); err != nil {
		return err
	}
	return e.writeItem(cdr)
}

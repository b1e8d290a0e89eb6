package cli

import (
	"fmt"
	"math"
	"strconv"

	"rconv/rexp"
)

// Preview renders a short, single-line description of the value of n for
// tabular output. Anything longer than one element is left blank.
func Preview(n rexp.Node) string {
	if rexp.IsFactor(n) {
		level, ok, err := rexp.FactorValue(n, 0)
		if err != nil || rexp.Len(n) != 1 {
			return ""
		}
		if !ok {
			return "NA"
		}
		return level
	}

	switch x := n.(type) {
	case *rexp.Symbol:
		return "`" + x.Name + "`"
	case *rexp.Call:
		if fn, ok := x.Function.(*rexp.Symbol); ok {
			return fn.Name + "(...)"
		}
		return ""
	case *rexp.Builtin:
		return ".Primitive(" + strconv.Quote(x.Name) + ")"
	}

	v, err := rexp.Scalar(n)
	if err != nil {
		return ""
	}
	switch s := v.(type) {
	case int32:
		if s == rexp.NAInteger {
			return "NA"
		}
		if n.Kind() == rexp.KindLogical {
			return strconv.FormatBool(s != rexp.LogicalFalse)
		}
		return strconv.Itoa(int(s))
	case float64:
		return formatDouble(s)
	case complex128:
		return fmt.Sprintf("%s%+gi", formatDouble(real(s)), imag(s))
	case rexp.String:
		if !s.Valid {
			return "NA"
		}
		return strconv.Quote(s.Value)
	case byte:
		return fmt.Sprintf("%02x", s)
	default:
		return ""
	}
}

func formatDouble(f float64) string {
	switch {
	case rexp.IsNA(f):
		return "NA"
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return strconv.FormatFloat(f, 'g', 7, 64)
	}
}

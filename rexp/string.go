package rexp

// Encoding records the declared character encoding of a string element.
type Encoding uint8

const (
	// EncodingUnknown marks strings built in memory. Encoders pick ASCII or
	// UTF-8 for them from their content.
	EncodingUnknown Encoding = iota
	EncodingNative
	EncodingUTF8
	EncodingLatin1
	EncodingBytes
	EncodingASCII
)

func (e Encoding) String() string {
	switch e {
	case EncodingNative:
		return "native"
	case EncodingUTF8:
		return "UTF-8"
	case EncodingLatin1:
		return "latin1"
	case EncodingBytes:
		return "bytes"
	case EncodingASCII:
		return "ASCII"
	default:
		return "unknown"
	}
}

// String is one optional string element. The zero value is the missing
// string.
type String struct {
	Value    string
	Valid    bool
	Encoding Encoding
}

// NAString is the missing string.
var NAString = String{}

func NewString(s string) String {
	return String{
		Value: s,
		Valid: true,
	}
}

// NewStrings converts plain strings into valid String elements.
func NewStrings(ss ...string) []String {
	out := make([]String, len(ss))
	for i, s := range ss {
		out[i] = NewString(s)
	}
	return out
}

// IsASCII reports whether every byte of s is below 0x80.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

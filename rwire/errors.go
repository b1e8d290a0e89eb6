package rwire

import "fmt"

// TruncatedStreamError is returned when the stream ends in the middle of a
// primitive, a length prefix or a node.
type TruncatedStreamError struct {
	// Offset is the number of bytes consumed before the failed read.
	Offset uint64
	Err    error
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("truncated stream at byte %d: %v", e.Offset, e.Err)
}

func (e *TruncatedStreamError) Unwrap() error {
	return e.Err
}

// CorruptStreamError is returned for structurally impossible input: unknown
// type codes, impossible flag combinations, bad back-references, malformed
// textual words.
type CorruptStreamError struct {
	// Offset is the position of the node header being decoded.
	Offset uint64
	Msg    string
}

func (e *CorruptStreamError) Error() string {
	return fmt.Sprintf("corrupt stream at byte %d: %s", e.Offset, e.Msg)
}

// UnsupportedNodeError is returned for node types that are recognised but
// deliberately not decoded, such as byte-code and external pointers.
type UnsupportedNodeError struct {
	Offset uint64
	Type   string
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node %s at byte %d", e.Type, e.Offset)
}

// LengthLimitError is returned when a vector length exceeds the configured
// ceiling.
type LengthLimitError struct {
	Offset uint64
	Length int64
	Max    int64
}

func (e *LengthLimitError) Error() string {
	return fmt.Sprintf("vector length %d at byte %d exceeds limit of %d", e.Length, e.Offset, e.Max)
}

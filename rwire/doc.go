/*
Package rwire implements the serialization format R uses for saveRDS,
serialize and the body of .RData workspaces.

A stream starts with a two byte format marker followed by a preamble:

	- "X\n": big-endian binary (XDR). This is what R writes by default.
	- "A\n": textual. Integers and doubles are written as decimal words,
	  strings as escaped text, raw bytes as two hex digits per line.
	- "B\n": little-endian binary.

The preamble holds the serialization version (2 or 3), the writing R version
and the minimum reader version, each packed as major*65536+minor*256+patch.
Version 3 streams then record the writer's native encoding.

Each node starts with a 32-bit header word:

	bits 0-7    type code
	bit  8      object bit
	bit  9      attributes follow the payload
	bit  10     a tag precedes the payload
	bits 12-31  general purpose levels

Symbols, environments and namespaces are entered into a reference table as
they are read. A later occurrence is written as a REFSXP whose index is packed
into the upper 24 bits of the header, or follows it when too large. String
elements (CHARSXP) are never entered, so a repeated string is written in
full each time, as R does; only repeated symbols share one back-reference.

Decoding produces a rexp.Node graph:

	n, err := rwire.Decode(r)

Decode fails with *TruncatedStreamError, *CorruptStreamError,
*UnsupportedNodeError or *LengthLimitError; callers decoding untrusted input
should use a Config with MaxVectorLen set:

	cfg := &rwire.Config{MaxVectorLen: 1 << 24}
	n, err := cfg.Decode(r)

Encoding is the inverse:

	err := rwire.Encode(n, w, false)

Compact ALTREP vectors (integer and real sequences, wrappers and deferred
strings) are expanded on decode and always written back in standard form.
Byte-code, external pointers, weak references and persistent references are
recognised but not decoded.
*/
package rwire

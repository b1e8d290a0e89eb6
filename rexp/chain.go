package rexp

// Entry is one (tag, value) pair of a Chain. An empty Tag means the entry is
// untagged.
type Entry struct {
	Tag   string
	Value Node
}

// Attr builds a tagged Entry.
func Attr(tag string, value Node) Entry {
	return Entry{
		Tag:   tag,
		Value: value,
	}
}

// Chain is an ordered sequence of tagged values. It carries both node
// attributes and the argument lists of pairlists and calls. Tags need not be
// unique; lookups return the first match. A nil or empty Chain means "no
// entries".
type Chain []Entry

func (c Chain) Len() int {
	return len(c)
}

// Index returns the position of the first entry tagged tag, or -1.
func (c Chain) Index(tag string) int {
	for i, e := range c {
		if e.Tag == tag {
			return i
		}
	}
	return -1
}

// Get returns the value of the first entry tagged tag.
func (c Chain) Get(tag string) (Node, bool) {
	i := c.Index(tag)
	if i < 0 {
		return nil, false
	}
	return c[i].Value, true
}

func (c Chain) Tags() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.Tag
	}
	return out
}

// Values returns the entry values in order.
func (c Chain) Values() []Node {
	out := make([]Node, len(c))
	for i, e := range c {
		out[i] = e.Value
	}
	return out
}

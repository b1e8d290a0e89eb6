package rexp

import (
	"errors"
	"fmt"
)

// SkipChildren may be returned by a WalkFunc to skip the children and
// attributes of the node it was called with.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node reached by Walk. Paths start at "$";
// elements append "[[i]]" (1-based) or "$name", attributes append "@name".
type WalkFunc func(path string, n Node) error

// Walk visits root and its descendants depth first: a node, then its
// attributes, then its children. Each environment is visited once.
func Walk(root Node, fn WalkFunc) error {
	w := &walker{
		fn:   fn,
		seen: make(map[*Environment]bool),
	}
	err := w.walk("$", root)
	if err == SkipChildren {
		return nil
	}
	return err
}

type walker struct {
	fn   WalkFunc
	seen map[*Environment]bool
}

func (w *walker) walk(path string, n Node) error {
	if n == nil {
		return nil
	}
	if env, ok := n.(*Environment); ok {
		if w.seen[env] {
			return nil
		}
		w.seen[env] = true
	}

	if err := w.fn(path, n); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}
	for _, a := range n.Attributes() {
		if err := w.walk(path+"@"+a.Tag, a.Value); err != nil {
			return err
		}
	}

	switch v := n.(type) {
	case *List:
		return w.walkElems(path, v.Elems, Names(v))
	case *ExpressionVector:
		return w.walkElems(path, v.Elems, Names(v))
	case *Pairlist:
		return w.walkChain(path, v.Entries)
	case *Call:
		if err := w.walk(path+"[[1]]", v.Function); err != nil {
			return err
		}
		return w.walkChain(path+"[-1]", v.Args)
	case *Closure:
		if err := w.walk(path+"$formals", v.Formals); err != nil {
			return err
		}
		if err := w.walk(path+"$body", v.Body); err != nil {
			return err
		}
		return w.walk(path+"$env", v.Env)
	case *Promise:
		if err := w.walk(path+"$value", v.Value); err != nil {
			return err
		}
		if err := w.walk(path+"$expr", v.Expr); err != nil {
			return err
		}
		return w.walk(path+"$env", v.Env)
	case *Environment:
		if err := w.walk(path+"$frame", v.Frame); err != nil {
			return err
		}
		if err := w.walk(path+"$hashtab", v.HashTable); err != nil {
			return err
		}
		return w.walk(path+"$enclos", v.Enclosure)
	}
	return nil
}

func (w *walker) walkElems(path string, elems []Node, names []String) error {
	for i, e := range elems {
		p := fmt.Sprintf("%s[[%d]]", path, i+1)
		if i < len(names) && names[i].Valid && names[i].Value != "" {
			p = path + "$" + names[i].Value
		}
		if err := w.walk(p, e); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkChain(path string, c Chain) error {
	for i, e := range c {
		p := fmt.Sprintf("%s[[%d]]", path, i+1)
		if e.Tag != "" {
			p = path + "$" + e.Tag
		}
		if err := w.walk(p, e.Value); err != nil {
			return err
		}
	}
	return nil
}

package inspect

import (
	"time"

	"rconv/crypto"
	"rconv/rds"
	"rconv/rexp"
	"rconv/rwire"
	"rconv/store"
)

// Stats is what a walk over a decoded graph reaches.
type Stats struct {
	Nodes int
	Kinds map[rexp.Kind]int
}

func Count(root rexp.Node) *Stats {
	stats := &Stats{
		Kinds: make(map[rexp.Kind]int),
	}
	// the walk function never fails
	_ = rexp.Walk(root, func(path string, n rexp.Node) error {
		stats.Nodes++
		stats.Kinds[n.Kind()]++
		return nil
	})
	return stats
}

// Summarize describes a decoded file. hash and size describe the raw bytes
// the file was decoded from.
func Summarize(path string, hash crypto.Hash, size int64, f *rds.File) *store.Summary {
	summary := &store.Summary{
		Hash:        hash,
		Path:        path,
		Size:        size,
		Compression: f.Compression.String(),
		Format:      f.Header.Format.String(),
		Version:     f.Header.Version,
		WriterR:     rwire.UnpackRVersion(f.Header.WriterVersion),
		Workspace:   f.Workspace,
		Kind:        f.Root.Kind().String(),
		Class:       rexp.Class(f.Root),
		Nodes:       Count(f.Root).Nodes,
		DecodedAt:   time.Now(),
	}
	if f.Workspace {
		summary.Objects = f.Objects().Tags()
	}
	return summary
}

package inspect

import (
	"bytes"
	"context"
	"io/ioutil"
	"time"

	"rconv/crypto"
	"rconv/log"
	"rconv/rds"
	"rconv/store"
	"rconv/util"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultWorkers = 4
	memoTTL        = 10 * time.Minute
)

// Result is the outcome of inspecting one file. Err is set when the file
// could not be read or decoded; the other files of a run are unaffected.
type Result struct {
	Path    string
	Summary *store.Summary
	Cached  bool
	Err     error
}

type Inspector struct {
	cfg  *rds.Config
	db   *leveldb.DB
	memo *util.Cache
	lgr  log.Logger
}

// New returns an Inspector decoding with cfg. db may be nil, in which case
// summaries only live as long as the Inspector.
func New(cfg *rds.Config, db *leveldb.DB) *Inspector {
	if cfg == nil {
		cfg = rds.DefaultConfig
	}
	return &Inspector{
		cfg:  cfg,
		db:   db,
		memo: util.NewCache(),
		lgr:  log.WithModule("inspect"),
	}
}

// File summarizes the file at path, reusing a previous summary of identical
// contents when one is cached.
func (i *Inspector) File(path string) (*store.Summary, bool, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrap(err, "error reading file")
	}
	hash, err := crypto.HashReader(bytes.NewReader(data))
	if err != nil {
		return nil, false, err
	}

	if cached, err := i.lookup(hash); err != nil {
		return nil, false, err
	} else if cached != nil {
		out := *cached
		out.Path = path
		return &out, true, nil
	}

	f, err := i.cfg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, errors.Wrapf(err, "error decoding %s", path)
	}
	summary := Summarize(path, hash, int64(len(data)), f)
	if err := i.remember(summary); err != nil {
		return nil, false, err
	}
	return summary, false, nil
}

func (i *Inspector) lookup(hash crypto.Hash) (*store.Summary, error) {
	if v := i.memo.Get(hash.String()); v != nil {
		return v.(*store.Summary), nil
	}
	if i.db == nil {
		return nil, nil
	}
	summary, err := store.GetSummary(i.db, hash)
	if err != nil {
		return nil, errors.Wrap(err, "error reading summary cache")
	}
	if summary != nil {
		i.memo.Set(hash.String(), summary, memoTTL)
	}
	return summary, nil
}

func (i *Inspector) remember(summary *store.Summary) error {
	i.memo.Set(summary.Hash.String(), summary, memoTTL)
	if i.db == nil {
		return nil
	}
	if err := store.SetSummary(i.db, summary); err != nil {
		return errors.Wrap(err, "error writing summary cache")
	}
	return nil
}

// Run inspects paths with at most workers decodes in flight. Results are
// returned in the order of paths. Only cancellation of ctx fails the run as a
// whole.
func (i *Inspector) Run(ctx context.Context, paths []string, workers int) ([]*Result, error) {
	if workers < 1 {
		workers = DefaultWorkers
	}
	results := make([]*Result, len(paths))
	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)
	for idx, path := range paths {
		if err := sem.Acquire(gCtx, 1); err != nil {
			break
		}
		idx, path := idx, path
		g.Go(func() error {
			defer sem.Release(1)
			res := &Result{
				Path: path,
			}
			res.Summary, res.Cached, res.Err = i.File(path)
			if res.Err != nil {
				i.lgr.Warn("error inspecting file", "path", path, "err", res.Err)
			} else {
				i.lgr.Debug("inspected file", "path", path, "cached", res.Cached, "nodes", res.Summary.Nodes)
			}
			results[idx] = res
			return gCtx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

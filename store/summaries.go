package store

import (
	"encoding/json"
	"time"

	"rconv/crypto"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Summary is what the inspector remembers about a file, keyed by the hash of
// its contents.
type Summary struct {
	Hash        crypto.Hash `json:"hash"`
	Path        string      `json:"path"`
	Size        int64       `json:"size"`
	Compression string      `json:"compression"`
	Format      string      `json:"format"`
	Version     int32       `json:"version"`
	WriterR     string      `json:"writer_r"`
	Workspace   bool        `json:"workspace"`
	Kind        string      `json:"kind"`
	Class       []string    `json:"class"`
	Objects     []string    `json:"objects"`
	Nodes       int         `json:"nodes"`
	DecodedAt   time.Time   `json:"decoded_at"`
}

var (
	summariesPrefix   = Prefixer("summaries")
	summaryDataPrefix = Prefixer(string(summariesPrefix("data")))
)

func summaryKey(hash crypto.Hash) []byte {
	return summaryDataPrefix(hash.String())
}

// GetSummary returns the cached summary for hash, or nil if there is none.
func GetSummary(db *leveldb.DB, hash crypto.Hash) (*Summary, error) {
	res, err := db.Get(summaryKey(hash), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error getting summary")
	}
	summary := new(Summary)
	if err := json.Unmarshal(res, summary); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling summary")
	}
	return summary, nil
}

func SetSummaryTx(tx *leveldb.Transaction, summary *Summary) error {
	if err := tx.Put(summaryKey(summary.Hash), mustMarshalJSON(summary), nil); err != nil {
		return errors.Wrap(err, "error inserting summary")
	}
	return nil
}

func SetSummary(db *leveldb.DB, summary *Summary) error {
	return WithTx(db, func(tx *leveldb.Transaction) error {
		return SetSummaryTx(tx, summary)
	})
}

type SummaryStream struct {
	iter iterator.Iterator
}

// Next returns the next summary in hash order, or nil once the stream is
// exhausted.
func (ss *SummaryStream) Next() (*Summary, error) {
	if !ss.iter.Next() {
		return nil, nil
	}

	summary := new(Summary)
	if err := json.Unmarshal(ss.iter.Value(), summary); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling summary")
	}
	return summary, nil
}

func (ss *SummaryStream) Close() error {
	ss.iter.Release()
	return ss.iter.Error()
}

// StreamSummaries iterates over the cached summaries whose hashes sort after
// start. A zero start streams everything.
func StreamSummaries(db *leveldb.DB, start crypto.Hash) (*SummaryStream, error) {
	if start == crypto.ZeroHash {
		return &SummaryStream{
			iter: db.NewIterator(util.BytesPrefix(summaryDataPrefix("")), nil),
		}, nil
	}

	iterRange := &util.Range{
		Start: append(summaryKey(start), 0x00),
		Limit: summaryDataPrefix(string([]byte{0xff})),
	}
	return &SummaryStream{
		iter: db.NewIterator(iterRange, nil),
	}, nil
}

// TruncateSummaries deletes every cached summary and returns how many were
// removed.
func TruncateSummaries(db *leveldb.DB) (int, error) {
	var count int
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		iter := tx.NewIterator(util.BytesPrefix(summariesPrefix("")), nil)
		defer iter.Release()
		for iter.Next() {
			if err := tx.Delete(iter.Key(), nil); err != nil {
				return errors.Wrap(err, "error deleting summary key")
			}
			count++
		}
		return iter.Error()
	})
	if err != nil {
		return 0, errors.Wrap(err, "error truncating summary store")
	}
	logger.Info("truncated summary store", "count", count)
	return count, nil
}

// Package store persists named lists in a bbolt database.
//
// Nodes are stored individually, each record holding an element and the id of
// the next node, so lists sharing a suffix in memory also share it on disk. A
// Store remembers which in-memory nodes correspond to which records: putting a
// list that extends a list already put or read through the same Store only
// writes the new nodes, and reading two lists that share records returns lists
// that share nodes.
//
// A Store is not safe for concurrent use.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/xiaq/plist/pkg/errutil"
	"github.com/xiaq/plist/pkg/logutil"
	"github.com/xiaq/plist/pkg/persistent/list"
)

var logger = logutil.GetLogger("[store] ")

const (
	bucketLists = "lists"
	bucketNodes = "nodes"
)

// ErrNoList is returned when there is no list with the given name.
var ErrNoList = errors.New("no such list")

// ErrCorrupt is returned when the database contains a malformed record or
// refers to a node that doesn't exist.
var ErrCorrupt = errors.New("corrupt database")

var initDB = map[string]func(*bolt.Tx) error{
	"initialize list table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketLists))
		return err
	},
	"initialize node table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketNodes))
		return err
	},
}

// Store is a database of named lists with elements of type T.
type Store[T any] struct {
	db    *bolt.DB
	codec Codec[T]
	// Ids of the records of in-memory nodes known to be stored, keyed by the
	// identity of the node.
	ids map[list.Token]uint64
	// The reverse of ids.
	lists map[uint64]list.List[T]
}

// Open opens the database file at path, creating it if it doesn't exist.
// Elements are converted to and from bytes with codec.
func Open[T any](path string, codec Codec[T]) (*Store[T], error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			err := fn(tx)
			if err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errutil.Multi(err, db.Close())
	}
	logger.Println("opened", path)
	return &Store[T]{db, codec, map[list.Token]uint64{}, map[uint64]list.List[T]{}}, nil
}

// Close closes the underlying database.
func (s *Store[T]) Close() error {
	return s.db.Close()
}

// remember records that each list in m is stored as the record with the
// corresponding id.
func (s *Store[T]) remember(m map[uint64]list.List[T]) {
	for id, l := range m {
		s.ids[l.Token()] = id
		s.lists[id] = l
	}
}

func (s *Store[T]) forget(id uint64) {
	if l, ok := s.lists[id]; ok {
		delete(s.ids, l.Token())
		delete(s.lists, id)
	}
}

package store

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/xiaq/plist/pkg/persistent/list"
)

// Put stores l under name, replacing any list previously stored under the same
// name. Nodes of l that are already stored are not written again.
func (s *Store[T]) Put(name string, l list.List[T]) error {
	written := map[uint64]list.List[T]{}
	err := s.db.Update(func(tx *bolt.Tx) error {
		head, err := s.putNodes(tx.Bucket([]byte(bucketNodes)), l, written)
		if err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketLists)).Put([]byte(name), marshalID(head))
	})
	if err != nil {
		return err
	}
	s.remember(written)
	logger.Printf("put %q: %d elements, %d new nodes", name, l.Len(), len(written))
	return nil
}

// Writes the nodes of l that are not yet stored and returns the id of the
// first node. The records are written last to first, so that the id of the
// next node is always known; ids thus decrease along a list.
func (s *Store[T]) putNodes(b *bolt.Bucket, l list.List[T], written map[uint64]list.List[T]) (uint64, error) {
	var pending []list.List[T]
	next := uint64(0)
	for ; !l.IsEmpty(); l, _ = l.Tail() {
		if id, ok := s.ids[l.Token()]; ok {
			next = id
			break
		}
		pending = append(pending, l)
	}
	for i := len(pending) - 1; i >= 0; i-- {
		elem, _ := pending[i].Head()
		data, err := s.codec.Encode(elem)
		if err != nil {
			return 0, fmt.Errorf("encode element %d: %w", i, err)
		}
		id, err := b.NextSequence()
		if err != nil {
			return 0, err
		}
		err = b.Put(marshalID(id), marshalNode(next, data))
		if err != nil {
			return 0, err
		}
		written[id] = pending[i]
		next = id
	}
	return next, nil
}

// Get reads the list stored under name. It returns an error wrapping
// ErrNoList if there is no such list.
func (s *Store[T]) Get(name string) (list.List[T], error) {
	var l list.List[T]
	loaded := map[uint64]list.List[T]{}
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		l, err = s.get(tx, name, loaded)
		return err
	})
	if err != nil {
		return list.List[T]{}, err
	}
	s.remember(loaded)
	return l, nil
}

func (s *Store[T]) get(tx *bolt.Tx, name string, loaded map[uint64]list.List[T]) (list.List[T], error) {
	v := tx.Bucket([]byte(bucketLists)).Get([]byte(name))
	if v == nil {
		return list.List[T]{}, fmt.Errorf("%w: %s", ErrNoList, name)
	}
	head, ok := unmarshalID(v)
	if !ok {
		return list.List[T]{}, fmt.Errorf("%w: bad head of list %s", ErrCorrupt, name)
	}
	return s.getNodes(tx.Bucket([]byte(bucketNodes)), head, loaded)
}

// Reads the list starting at the node with the given id, reusing nodes
// already in memory. The list is built from the last node to the first, so no
// node needs to be patched after it is allocated.
func (s *Store[T]) getNodes(b *bolt.Bucket, id uint64, loaded map[uint64]list.List[T]) (list.List[T], error) {
	type record struct {
		id   uint64
		elem T
	}
	var pending []record
	var l list.List[T]
	for id != 0 {
		if known, ok := s.lists[id]; ok {
			l = known
			break
		}
		if known, ok := loaded[id]; ok {
			l = known
			break
		}
		next, data, err := getNode(b, id)
		if err != nil {
			return list.List[T]{}, err
		}
		elem, err := s.codec.Decode(data)
		if err != nil {
			return list.List[T]{}, fmt.Errorf("decode node %d: %w", id, err)
		}
		pending = append(pending, record{id, elem})
		id = next
	}
	for i := len(pending) - 1; i >= 0; i-- {
		// The suffix is also kept by the cache, so use Cons to record the new
		// owner.
		l = l.Cons(pending[i].elem)
		loaded[pending[i].id] = l
	}
	return l, nil
}

// All reads all the stored lists.
func (s *Store[T]) All() (map[string]list.List[T], error) {
	m := map[string]list.List[T]{}
	loaded := map[uint64]list.List[T]{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketLists)).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			l, err := s.get(tx, string(k), loaded)
			if err != nil {
				return err
			}
			m[string(k)] = l
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.remember(loaded)
	return m, nil
}

// Names returns the names of all stored lists, in lexicographical order.
func (s *Store[T]) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketLists)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Delete deletes the list stored under name. It returns an error wrapping
// ErrNoList if there is no such list. The nodes of the list are kept until
// Prune is called.
func (s *Store[T]) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketLists))
		if b.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrNoList, name)
		}
		return b.Delete([]byte(name))
	})
}

// Prune deletes all node records that are not reachable from any stored list,
// and returns how many were deleted.
func (s *Store[T]) Prune() (int, error) {
	var garbage []uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		nodes := tx.Bucket([]byte(bucketNodes))
		reachable := map[uint64]bool{}
		err := tx.Bucket([]byte(bucketLists)).ForEach(func(k, v []byte) error {
			id, ok := unmarshalID(v)
			if !ok {
				return fmt.Errorf("%w: bad head of list %s", ErrCorrupt, k)
			}
			for id != 0 && !reachable[id] {
				reachable[id] = true
				next, _, err := getNode(nodes, id)
				if err != nil {
					return err
				}
				id = next
			}
			return nil
		})
		if err != nil {
			return err
		}
		// Deleting while iterating a cursor may skip keys, so collect first.
		c := nodes.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if id, ok := unmarshalID(k); ok && !reachable[id] {
				garbage = append(garbage, id)
			}
		}
		for _, id := range garbage {
			if err := nodes.Delete(marshalID(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	for _, id := range garbage {
		s.forget(id)
	}
	logger.Printf("pruned %d nodes", len(garbage))
	return len(garbage), nil
}

func getNode(b *bolt.Bucket, id uint64) (uint64, []byte, error) {
	v := b.Get(marshalID(id))
	if v == nil {
		return 0, nil, fmt.Errorf("%w: missing node %d", ErrCorrupt, id)
	}
	next, data, ok := unmarshalNode(v)
	if !ok {
		return 0, nil, fmt.Errorf("%w: malformed node %d", ErrCorrupt, id)
	}
	if next >= id {
		// Nodes are written last to first, so a larger next id means a cycle
		// or a forged record.
		return 0, nil, fmt.Errorf("%w: node %d links forward to %d", ErrCorrupt, id, next)
	}
	return next, data, nil
}

func marshalID(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

func unmarshalID(b []byte) (uint64, bool) {
	if len(b) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}

func marshalNode(next uint64, data []byte) []byte {
	b := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(b, next)
	copy(b[8:], data)
	return b
}

func unmarshalNode(b []byte) (next uint64, data []byte, ok bool) {
	if len(b) < 8 {
		return 0, nil, false
	}
	return binary.BigEndian.Uint64(b), b[8:], true
}

package hashtable

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrZeroCapacity is returned when inserting into a table without
	// buckets. Computing a bucket index would divide by zero.
	ErrZeroCapacity = errors.New("integer divide by zero: table has no buckets")

	// ErrTableFull is returned when probing wraps around to the home bucket
	// without finding an empty bucket or one holding the key.
	ErrTableFull = errors.New("table capacity exhausted")

	// ErrNegativeCapacity is returned by New for a negative bucket count.
	ErrNegativeCapacity = errors.New("negative table capacity")
)

// A Table is an open-addressing hash table that maps string keys to
// sequences of values. It allows storing multiple values with the same key;
// they are kept in insertion order in the key's bucket.
//
// The number of buckets is fixed when the table is created. Collisions are
// resolved by linear probing. Table does not support deletions, and it is
// not safe for concurrent use.
type Table[V any] struct {
	// A nil bucket is empty. Once set, a bucket's key never changes.
	buckets   []*bucket[V]
	numkeys   uint
	numvalues uint
}

type bucket[V any] struct {
	key    string
	values []V // never empty
}

// Entry is a single key/value pair stored in a Table.
type Entry[V any] struct {
	Key   string
	Value V
}

// New returns a table with capacity empty buckets. A table with capacity
// zero can store nothing.
func New[V any](capacity int) (*Table[V], error) {
	if capacity < 0 {
		return nil, errors.Wrapf(ErrNegativeCapacity, "capacity %d", capacity)
	}
	return &Table[V]{buckets: make([]*bucket[V], capacity)}, nil
}

// Cap returns the number of buckets.
func (t *Table[V]) Cap() int { return len(t.buckets) }

// Len returns the number of distinct keys.
func (t *Table[V]) Len() int { return int(t.numkeys) }

// NumValues returns the number of values stored under all keys.
func (t *Table[V]) NumValues() int { return int(t.numvalues) }

func (t *Table[V]) index(key string) (int, error) {
	if len(t.buckets) == 0 {
		return 0, ErrZeroCapacity
	}
	return int(Hash(key) % uint64(len(t.buckets))), nil
}

// Insert appends value to the values stored for key. If key is new, it
// occupies its home bucket or, on collision, the next empty bucket found by
// probing forward with wraparound.
//
// Insert fails with ErrZeroCapacity for a table without buckets and with
// ErrTableFull when every bucket holds some other key. The table is left
// unchanged on failure.
func (t *Table[V]) Insert(key string, value V) error {
	home, err := t.index(key)
	if err != nil {
		return errors.Wrapf(err, "insert %q", key)
	}

	i := home
	for {
		b := t.buckets[i]
		switch {
		case b == nil:
			t.buckets[i] = &bucket[V]{key: key, values: []V{value}}
			t.numkeys++
			t.numvalues++
			return nil
		case b.key == key:
			b.values = append(b.values, value)
			t.numvalues++
			return nil
		}

		i++
		if i == len(t.buckets) {
			i = 0
		}
		if i == home {
			return errors.Wrapf(ErrTableFull, "insert %q into %d buckets", key, len(t.buckets))
		}
	}
}

// Lookup returns the most recently inserted value for key.
//
// Buckets are scanned in storage order starting at index 0, not along the
// probe sequence used by Insert, so a lookup costs O(Cap()). Use
// LookupIndexed for the hash-indexed variant.
func (t *Table[V]) Lookup(key string) (V, bool) {
	for _, b := range t.buckets {
		if b != nil && b.key == key {
			return b.values[len(b.values)-1], true
		}
	}
	var zero V
	return zero, false
}

// LookupIndexed returns the most recently inserted value for key, following
// the probe sequence from the key's home bucket. The search ends at the
// first empty bucket, since Insert never skips one.
func (t *Table[V]) LookupIndexed(key string) (V, bool) {
	var zero V
	home, err := t.index(key)
	if err != nil {
		return zero, false
	}

	i := home
	for {
		b := t.buckets[i]
		if b == nil {
			return zero, false
		}
		if b.key == key {
			return b.values[len(b.values)-1], true
		}

		i++
		if i == len(t.buckets) {
			i = 0
		}
		if i == home {
			return zero, false
		}
	}
}

// KeyValuePairs returns one entry per stored value, sorted by key in the
// given order. Entries with equal keys keep their insertion order.
func (t *Table[V]) KeyValuePairs(order Order) []Entry[V] {
	entries := make([]Entry[V], 0, t.numvalues)
	for _, b := range t.buckets {
		if b == nil {
			continue
		}
		for _, v := range b.values {
			entries = append(entries, Entry[V]{Key: b.key, Value: v})
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry[V]) int {
		if order == Descending {
			return strings.Compare(b.Key, a.Key)
		}
		return strings.Compare(a.Key, b.Key)
	})
	return entries
}

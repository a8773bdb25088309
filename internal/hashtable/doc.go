// Package hashtable implements a fixed-capacity, open-addressing hash table
// with string keys and multiple values per key.
//
// The table never grows. Callers count the distinct keys they are going to
// store up front and create the table with exactly that many buckets, so a
// fully populated table has a load factor of 1.0 and the last keys inserted
// may need long probe sequences. Inserting a key that does not fit is an
// error (ErrTableFull) rather than a resize.
//
// Empty buckets cost a single nil pointer. An occupied bucket additionally
// holds its key and a slice with the key's values.
package hashtable

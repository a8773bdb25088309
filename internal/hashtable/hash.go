package hashtable

// hashBase is the multiplier of the polynomial string hash.
const hashBase = 113

// Hash returns the polynomial hash of key:
//
//	Hash(key) = Σ code(key[i]) * 113^i
//
// where key[i] is the i-th Unicode code point of key. The sum and the powers
// are computed in uint64 and wrap around on overflow. ASCII keys of up to
// nine runes never wrap; longer keys may get a different home bucket than they
// would with unbounded integers.
//
// Hash is not collision resistant. Collisions are resolved by probing.
func Hash(key string) uint64 {
	var h uint64
	pow := uint64(1)
	for _, r := range key {
		h += uint64(r) * pow
		pow *= hashBase
	}
	return h
}

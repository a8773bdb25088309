package hashtable

import (
	"math/big"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		key  string
		want uint64
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97 + 98*113},
		{"abc", 97 + 98*113 + 99*113*113},
		// one code point, not two bytes
		{"ü", 252},
	}
	for _, test := range tests {
		if got := Hash(test.key); got != test.want {
			t.Errorf("Hash(%q) = %d ; want %d", test.key, got, test.want)
		}
	}
}

func TestHashDistinct(t *testing.T) {
	if Hash("poison") == Hash("food") {
		t.Fatal("Hash(poison) == Hash(food)")
	}
	if Hash("ceiling") != Hash("ceiling") {
		t.Fatal("Hash is not stable")
	}
}

func TestHashLongKeyWraps(t *testing.T) {
	key := "Algorithmen und Datenstrukturen\tSS 2021"

	// unbounded sum, reduced modulo 2^64
	sum, pow, base := new(big.Int), big.NewInt(1), big.NewInt(hashBase)
	for _, r := range key {
		sum.Add(sum, new(big.Int).Mul(big.NewInt(int64(r)), pow))
		pow.Mul(pow, base)
	}
	want := new(big.Int).Mod(sum, new(big.Int).Lsh(big.NewInt(1), 64)).Uint64()

	if got := Hash(key); got != want {
		t.Fatalf("Hash(%q) = %d ; want %d", key, got, want)
	}
}

func TestParseOrder(t *testing.T) {
	for _, s := range []string{"asc", "desc"} {
		o, err := ParseOrder(s)
		if err != nil {
			t.Fatalf("ParseOrder(%q) failed: %v", s, err)
		}
		if o.String() != s {
			t.Fatalf("ParseOrder(%q).String() = %q", s, o.String())
		}
	}
	if _, err := ParseOrder("sideways"); err == nil {
		t.Fatal("ParseOrder(sideways) did not fail")
	}
}

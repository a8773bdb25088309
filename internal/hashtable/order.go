package hashtable

import "github.com/pkg/errors"

// Order selects the key order of KeyValuePairs.
type Order uint8

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	s := "invalid"
	switch o {
	case Ascending:
		s = "asc"
	case Descending:
		s = "desc"
	}
	return s
}

// ParseOrder converts "asc" or "desc" to an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return 0, errors.Errorf("invalid order %q, want asc or desc", s)
}

package curve

import (
	"strings"

	"github.com/matzehuels/curveplot/pkg/errors"
)

// Relation compares the two sides of an implicit equation.
type Relation int

const (
	Eq Relation = iota // |l - r| < tol
	Lt                 // l - r < tol
	Gt                 // l - r > -tol
)

var relationSymbols = [...]string{Eq: "=", Lt: "<", Gt: ">"}

// ParseRelation accepts "=", "<", ">" and the names "eq", "lt", "gt".
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "=", "==", "eq":
		return Eq, nil
	case "<", "lt":
		return Lt, nil
	case ">", "gt":
		return Gt, nil
	}
	return 0, errors.Config("invalid relation %q (want =, < or >)", s)
}

func (r Relation) valid() bool { return r >= Eq && r <= Gt }

// String returns the relation symbol.
func (r Relation) String() string {
	if !r.valid() {
		return "?"
	}
	return relationSymbols[r]
}

// MarshalText encodes the relation as its symbol.
func (r Relation) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, errors.Config("invalid relation %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes any form accepted by [ParseRelation].
func (r *Relation) UnmarshalText(text []byte) error {
	v, err := ParseRelation(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Test applies the relation to the evaluated sides. NaN on either side never
// satisfies it.
func (r Relation) Test(l, rt, tol float64) bool {
	d := l - rt
	switch r {
	case Eq:
		return d < tol && d > -tol
	case Lt:
		return d < tol
	case Gt:
		return d > -tol
	}
	return false
}

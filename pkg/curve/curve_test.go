package curve

import (
	"math"
	"testing"

	"github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/geom"
)

func TestParseRelation(t *testing.T) {
	tests := []struct {
		in      string
		want    Relation
		wantErr bool
	}{
		{"=", Eq, false},
		{"<", Lt, false},
		{">", Gt, false},
		{"EQ", Eq, false},
		{" lt ", Lt, false},
		{"gt", Gt, false},
		{"<=", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRelation(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRelation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("code = %q, want INVALID_CONFIG", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseRelation(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRelationTextRoundTrip(t *testing.T) {
	for _, r := range []Relation{Eq, Lt, Gt} {
		b, err := r.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Relation
		if err := got.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if got != r {
			t.Errorf("round trip %v -> %q -> %v", r, b, got)
		}
	}
}

func TestRelationTest(t *testing.T) {
	const tol = 0.01
	tests := []struct {
		rel  Relation
		l, r float64
		want bool
	}{
		{Eq, 0.005, 0, true},
		{Eq, -0.005, 0, true},
		{Eq, 0.02, 0, false},
		{Lt, -5, 0, true},
		{Lt, 0.005, 0, true},
		{Lt, 0.02, 0, false},
		{Gt, 5, 0, true},
		{Gt, -0.005, 0, true},
		{Gt, -0.02, 0, false},
		{Eq, math.NaN(), 0, false},
		{Lt, math.NaN(), 0, false},
		{Gt, math.NaN(), 0, false},
	}
	for _, tt := range tests {
		if got := tt.rel.Test(tt.l, tt.r, tol); got != tt.want {
			t.Errorf("%v.Test(%v, %v) = %v, want %v", tt.rel, tt.l, tt.r, got, tt.want)
		}
	}
}

func TestImplicitHoldsLineBand(t *testing.T) {
	g, err := NewImplicit(
		func(x, _ float64) float64 { return x },
		func(_, _ float64) float64 { return 0 },
		Eq, 0.01, geom.Square(-1, 1),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Holds(0.005, 0.7) {
		t.Error("x=0.005 should lie in the band")
	}
	if g.Holds(0.02, 0.7) {
		t.Error("x=0.02 should lie outside the band")
	}
}

func TestNewImplicitErrors(t *testing.T) {
	one := func(_, _ float64) float64 { return 1 }
	tests := []struct {
		name string
		fn   func() error
	}{
		{"nil term", func() error { _, err := NewImplicit(nil, one, Eq, 0.1, geom.Square(0, 1)); return err }},
		{"zero tolerance", func() error { _, err := NewImplicit(one, one, Eq, 0, geom.Square(0, 1)); return err }},
		{"bad relation", func() error { _, err := NewImplicit(one, one, Relation(7), 0.1, geom.Square(0, 1)); return err }},
		{"empty bounds", func() error { _, err := NewImplicit(one, one, Eq, 0.1, geom.Square(1, 1)); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestNewParametricErrors(t *testing.T) {
	id := func(t float64) float64 { return t }
	b := geom.Square(-1, 1)
	if _, err := NewParametric(geom.Interval{Min: 1, Max: 0}, b, id, id, 10); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("reversed interval: err = %v", err)
	}
	if _, err := NewParametric(geom.MustInterval(0, 1), b, id, id, 0); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("zero samples: err = %v", err)
	}
	if _, err := NewParametric(geom.MustInterval(0, 1), b, nil, id, 5); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("nil x: err = %v", err)
	}
}

func TestParams(t *testing.T) {
	id := func(t float64) float64 { return t }
	p, err := NewParametric(geom.MustInterval(2, 4), geom.Square(0, 5), id, id, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Params(); len(got) != 1 || got[0] != 2 {
		t.Errorf("single sample Params() = %v, want [2]", got)
	}
	p.Samples = 3
	if got := p.Params(); len(got) != 3 || got[1] != 3 || got[2] != 4 {
		t.Errorf("Params() = %v, want [2 3 4]", got)
	}
}

func TestFunctionToParametric(t *testing.T) {
	f := Function{
		Domain:  geom.MustInterval(-1, 1),
		Bounds:  geom.Square(-2, 2),
		F:       func(x float64) float64 { return x * x },
		Samples: 10,
		Offset:  geom.Point{X: 0.5, Y: -1},
	}
	p, err := f.ToParametric()
	if err != nil {
		t.Fatal(err)
	}
	if x, y := p.X(1), p.Y(1); x != 1.5 || y != 0 {
		t.Errorf("(x, y)(1) = (%v, %v), want (1.5, 0)", x, y)
	}
	if p.Samples != 10 || p.Param != f.Domain {
		t.Errorf("conversion lost domain or samples: %+v", p)
	}
}

func TestPolarToParametric(t *testing.T) {
	c := Polar{
		Angle:   geom.MustInterval(0, 2*math.Pi),
		Bounds:  geom.Square(-3, 3),
		R:       func(float64) float64 { return 2 },
		Samples: 100,
		Offset:  geom.Point{X: 1},
	}
	p, err := c.ToParametric()
	if err != nil {
		t.Fatal(err)
	}
	x, y := p.X(math.Pi/2), p.Y(math.Pi/2)
	if math.Abs(x-1) > 1e-12 || math.Abs(y-2) > 1e-12 {
		t.Errorf("(x, y)(π/2) = (%v, %v), want (1, 2)", x, y)
	}
}

func TestFactories(t *testing.T) {
	fac := FunctionFactory(func(a float64) Function {
		return Function{
			Domain:  geom.MustInterval(0, 1),
			Bounds:  geom.Square(0, 1),
			F:       func(x float64) float64 { return a * x },
			Samples: 2,
		}
	})
	c, err := fac(3)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := c.(*Parametric)
	if !ok {
		t.Fatalf("FunctionFactory produced %T, want *Parametric", c)
	}
	if got := p.Y(1); got != 3 {
		t.Errorf("Y(1) = %v, want 3", got)
	}

	bad := FunctionFactory(func(float64) Function { return Function{} })
	if c, err := bad(0); err == nil || c != nil {
		t.Errorf("invalid function: got (%v, %v), want (nil, error)", c, err)
	}

	none := ImplicitFactory(func(float64) *Implicit { return nil })
	if _, err := none(0); !errors.Is(err, errors.ErrCodeUnsupportedVariant) {
		t.Errorf("nil implicit: err = %v", err)
	}
}

package canvas

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/curve"
	"github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/geom"
)

func plain(t *testing.T, w, h int, view geom.Bounds2D) *Canvas {
	t.Helper()
	opts := DefaultImageOptions(w, h, view)
	opts.ShowAxes = false
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func painted(c *Canvas) [][2]int {
	bg := c.Options().Background
	var out [][2]int
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.At(x, y) != bg {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

func TestBackgroundFill(t *testing.T) {
	opts := DefaultImageOptions(10, 10, geom.Square(-1, 1))
	opts.ShowAxes = false
	opts.Background = color.RGB{R: 10, G: 20, B: 30}
	c, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(c.Pix()); got != 300 {
		t.Fatalf("len(Pix) = %d, want 300", got)
	}
	for i := 0; i < len(c.Pix()); i += 3 {
		if p := c.Pix()[i : i+3]; p[0] != 10 || p[1] != 20 || p[2] != 30 {
			t.Fatalf("pixel %d = %v, want [10 20 30]", i/3, p)
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*ImageOptions)
	}{
		{"zero width", func(o *ImageOptions) { o.Width = 0 }},
		{"negative height", func(o *ImageOptions) { o.Height = -3 }},
		{"empty bounds", func(o *ImageOptions) { o.DrawBounds.X = geom.Interval{Min: 1, Max: 1} }},
		{"negative tick", func(o *ImageOptions) { o.TickLength = -1 }},
		{"overflowing size", func(o *ImageOptions) { o.Width, o.Height = math.MaxInt32, math.MaxInt32 }},
		{"too many pixels", func(o *ImageOptions) { o.Width, o.Height = MaxPixels, 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultImageOptions(10, 10, geom.Square(-1, 1))
			tt.mod(&opts)
			if _, err := New(opts); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	if err := ValidateSize(8192, 4096); err != nil {
		t.Errorf("8192x4096: %v", err)
	}
	if err := ValidateSize(MaxPixels, 1); err != nil {
		t.Errorf("MaxPixels x 1: %v", err)
	}
	for _, sz := range [][2]int{{8193, 4096}, {MaxPixels + 1, 1}, {math.MaxInt32, math.MaxInt32}, {0, 5}} {
		if err := ValidateSize(sz[0], sz[1]); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("ValidateSize(%d, %d) = %v, want INVALID_CONFIG", sz[0], sz[1], err)
		}
	}
}

func TestOverlay(t *testing.T) {
	c, err := New(DefaultImageOptions(100, 100, geom.Square(-1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		x, y int
		want color.RGB
	}{
		{"horizontal axis", 10, 50, color.Black},
		{"horizontal axis second row", 10, 51, color.Black},
		{"vertical axis", 50, 10, color.Black},
		{"grid line at x=-1", 0, 10, color.Gray},
		{"tick at x=-1", 0, 40, color.Black},
		{"background", 25, 25, color.White},
	}
	for _, tt := range tests {
		if got := c.At(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: At(%d, %d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestUnitCircleRing(t *testing.T) {
	c := plain(t, 100, 100, geom.Square(-1.2, 1.2))
	circle, err := curve.NewParametric(
		geom.MustInterval(0, 2*math.Pi), geom.Square(-1.2, 1.2),
		math.Cos, math.Sin, 360,
	)
	if err != nil {
		t.Fatal(err)
	}
	st, err := c.Draw(context.Background(), circle, DefaultDrawOptions())
	if err != nil {
		t.Fatal(err)
	}
	if st.Samples != 360 || st.Painted != 360 {
		t.Errorf("stats = %+v, want 360 samples painted", st)
	}

	px := painted(c)
	if len(px) == 0 {
		t.Fatal("nothing painted")
	}
	var sx, sy float64
	var quadrants [4]bool
	for _, p := range px {
		dx, dy := float64(p[0])-50, float64(p[1])-50
		d := math.Hypot(dx, dy)
		if d > 45 {
			t.Errorf("pixel %v at distance %.2f, want <= 45", p, d)
		}
		if d < 38 {
			t.Errorf("pixel %v at distance %.2f inside the ring", p, d)
		}
		sx += float64(p[0])
		sy += float64(p[1])
		q := 0
		if dx >= 0 {
			q |= 1
		}
		if dy >= 0 {
			q |= 2
		}
		quadrants[q] = true
	}
	cx, cy := sx/float64(len(px)), sy/float64(len(px))
	if math.Abs(cx-50) > 1.5 || math.Abs(cy-50) > 1.5 {
		t.Errorf("ring centred at (%.2f, %.2f), want about (50, 50)", cx, cy)
	}
	for q, ok := range quadrants {
		if !ok {
			t.Errorf("quadrant %d has no painted pixel", q)
		}
	}
}

func TestParametricClampsToBorder(t *testing.T) {
	c := plain(t, 100, 100, geom.Square(-1, 1))
	line, err := curve.NewParametric(
		geom.MustInterval(-1, 1), geom.Square(-1, 1),
		func(t float64) float64 { return t },
		func(float64) float64 { return 5 },
		50,
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Draw(context.Background(), line, DrawOptions{Color: color.Black}); err != nil {
		t.Fatal(err)
	}
	for _, p := range painted(c) {
		if p[1] != 99 {
			t.Fatalf("pixel %v painted off the top row", p)
		}
	}
	if c.At(99, 99) != color.Black {
		t.Error("last sample should stick to the corner")
	}
}

func TestParametricSkipsUndefined(t *testing.T) {
	c := plain(t, 20, 20, geom.Square(-1, 1))
	p, err := curve.NewParametric(
		geom.MustInterval(-1, 1), geom.Square(-1, 1),
		func(t float64) float64 { return t },
		func(t float64) float64 {
			if t > 0 {
				return math.NaN()
			}
			return 0
		},
		5,
	)
	if err != nil {
		t.Fatal(err)
	}
	st, err := c.Draw(context.Background(), p, DefaultDrawOptions())
	if err != nil {
		t.Fatal(err)
	}
	if st.Undefined != 2 || st.Painted != 3 {
		t.Errorf("stats = %+v, want 2 undefined and 3 painted", st)
	}
}

func TestImplicitLineBand(t *testing.T) {
	c := plain(t, 100, 100, geom.Square(-1, 1))
	g, err := curve.NewImplicit(
		func(x, _ float64) float64 { return x },
		func(_, _ float64) float64 { return 0 },
		curve.Eq, 0.011, geom.Square(-1, 1),
	)
	if err != nil {
		t.Fatal(err)
	}
	st, err := c.Draw(context.Background(), g, DrawOptions{Color: color.Black})
	if err != nil {
		t.Fatal(err)
	}
	if st.Samples != 100*100 {
		t.Errorf("samples = %d, want 10000", st.Samples)
	}
	rows := map[int]int{}
	for _, p := range painted(c) {
		if p[0] != 49 && p[0] != 50 {
			t.Fatalf("pixel %v outside the band", p)
		}
		rows[p[0]]++
	}
	if rows[49] != 100 || rows[50] != 100 {
		t.Errorf("band columns = %v, want 100 rows in columns 49 and 50", rows)
	}
}

func TestImplicitDefinabilityFailure(t *testing.T) {
	c := plain(t, 50, 50, geom.Square(-1, 1))
	before := bytes.Clone(c.Pix())
	called := false
	g, err := curve.NewImplicit(
		func(x, y float64) float64 { called = true; return x },
		func(_, _ float64) float64 { return 0 },
		curve.Eq, 0.1, geom.Square(5, 6),
	)
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Draw(context.Background(), g, DefaultDrawOptions())
	if !errors.Is(err, errors.ErrCodeGeometry) {
		t.Fatalf("err = %v, want GEOMETRY", err)
	}
	if called {
		t.Error("terms were evaluated for a curve outside the view")
	}
	if !bytes.Equal(before, c.Pix()) {
		t.Error("canvas changed after a failed draw")
	}
}

func TestImplicitCrossingBoundsFail(t *testing.T) {
	c := plain(t, 50, 50, geom.Square(-1, 1))
	called := false
	g, err := curve.NewImplicit(
		func(x, y float64) float64 { called = true; return x },
		func(_, _ float64) float64 { return 0 },
		curve.Eq, 0.5, geom.MustBounds(-0.5, 0.5, -5, 5),
	)
	if err != nil {
		t.Fatal(err)
	}
	st, err := c.Draw(context.Background(), g, DefaultDrawOptions())
	if !errors.Is(err, errors.ErrCodeGeometry) {
		t.Fatalf("err = %v, want GEOMETRY", err)
	}
	if called || st.Painted != 0 {
		t.Errorf("crossing bounds sampled: called=%v painted=%d", called, st.Painted)
	}
	if got := painted(c); len(got) != 0 {
		t.Errorf("%d pixels painted, want none", len(got))
	}
}

func TestImplicitParallelMatchesSequential(t *testing.T) {
	g, err := curve.NewImplicit(
		func(x, y float64) float64 { return x*x + y*y },
		func(_, _ float64) float64 { return 0.5 },
		curve.Eq, 0.05, geom.Square(-2, 2),
	)
	if err != nil {
		t.Fatal(err)
	}
	render := func(workers int) []byte {
		c := plain(t, 80, 60, geom.Square(-1, 1))
		opts := DefaultRenderOptions()
		opts.Workers = workers
		if _, err := c.Render(context.Background(), []Item{{Name: "ring", Curve: g}}, opts); err != nil {
			t.Fatal(err)
		}
		return c.Pix()
	}
	if !bytes.Equal(render(1), render(4)) {
		t.Error("parallel evaluation produced a different image")
	}
}

func TestUnsupportedVariant(t *testing.T) {
	c := plain(t, 10, 10, geom.Square(-1, 1))
	for _, cv := range []curve.Curve{nil, (*curve.Parametric)(nil), (*curve.Implicit)(nil)} {
		if _, err := c.Draw(context.Background(), cv, DefaultDrawOptions()); !errors.Is(err, errors.ErrCodeUnsupportedVariant) {
			t.Errorf("Draw(%#v) err = %v, want UNSUPPORTED_VARIANT", cv, err)
		}
	}
}

func TestDrawOptionsValidate(t *testing.T) {
	c := plain(t, 10, 10, geom.Square(-1, 1))
	p, _ := curve.NewParametric(geom.MustInterval(0, 1), geom.Square(-1, 1), math.Sin, math.Cos, 3)
	if _, err := c.Draw(context.Background(), p, DrawOptions{StrokeHalfWidth: -1}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestDiskOffsets(t *testing.T) {
	tests := []struct{ r, want int }{{0, 1}, {1, 5}, {2, 13}}
	for _, tt := range tests {
		if got := len(diskOffsets(tt.r)); got != tt.want {
			t.Errorf("len(diskOffsets(%d)) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestRenderPolicy(t *testing.T) {
	outside, err := curve.NewImplicit(
		func(x, _ float64) float64 { return x },
		func(_, _ float64) float64 { return 0 },
		curve.Eq, 0.1, geom.Square(5, 6),
	)
	if err != nil {
		t.Fatal(err)
	}
	line, err := curve.NewParametric(geom.MustInterval(-1, 1), geom.Square(-1, 1),
		func(t float64) float64 { return t }, func(t float64) float64 { return t }, 10)
	if err != nil {
		t.Fatal(err)
	}
	items := []Item{{Name: "outside", Curve: outside}, {Name: "diagonal", Curve: line}}

	t.Run("fail fast", func(t *testing.T) {
		c := plain(t, 20, 20, geom.Square(-1, 1))
		rep, err := c.Render(context.Background(), items, DefaultRenderOptions())
		if !errors.Is(err, errors.ErrCodeGeometry) {
			t.Fatalf("err = %v, want GEOMETRY", err)
		}
		if len(rep.Drawn) != 0 {
			t.Errorf("drawn = %v, want none", rep.Drawn)
		}
	})

	t.Run("skip", func(t *testing.T) {
		c := plain(t, 20, 20, geom.Square(-1, 1))
		opts := DefaultRenderOptions()
		opts.Policy = SkipWithDiagnostic
		rep, err := c.Render(context.Background(), items, opts)
		if err != nil {
			t.Fatal(err)
		}
		if len(rep.Skipped) != 1 || rep.Skipped[0].Name != "outside" {
			t.Errorf("skipped = %v, want [outside]", rep.Skipped)
		}
		if len(rep.Drawn) != 1 || rep.Drawn[0].Name != "diagonal" {
			t.Errorf("drawn = %v, want [diagonal]", rep.Drawn)
		}
	})
}

func TestRenderUsesItemDrawOptions(t *testing.T) {
	c := plain(t, 10, 10, geom.Square(-1, 1))
	dot, _ := curve.NewParametric(geom.MustInterval(0, 1), geom.Square(-1, 1),
		func(float64) float64 { return 0 }, func(float64) float64 { return 0 }, 1)
	red := color.RGB{R: 255}
	_, err := c.Render(context.Background(), []Item{{Curve: dot, Draw: &DrawOptions{Color: red}}}, DefaultRenderOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := c.At(5, 5); got != red {
		t.Errorf("At(5, 5) = %v, want %v", got, red)
	}
}

func TestRenderCancelled(t *testing.T) {
	c := plain(t, 10, 10, geom.Square(-1, 1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dot, _ := curve.NewParametric(geom.MustInterval(0, 1), geom.Square(-1, 1), math.Sin, math.Cos, 1)
	if _, err := c.Render(ctx, []Item{{Curve: dot}}, DefaultRenderOptions()); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": FailFast, "fail-fast": FailFast, "SKIP": SkipWithDiagnostic} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParsePolicy("retry"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

package geom

// Point is a position in the mathematical plane.
type Point struct {
	X, Y float64
}

// Bounds2D is an axis-aligned rectangle in the plane.
type Bounds2D struct {
	X Interval `json:"x" yaml:"x" toml:"x"`
	Y Interval `json:"y" yaml:"y" toml:"y"`
}

// NewBounds validates and returns [xmin, xmax] × [ymin, ymax].
func NewBounds(xmin, xmax, ymin, ymax float64) (Bounds2D, error) {
	b := Bounds2D{X: Interval{xmin, xmax}, Y: Interval{ymin, ymax}}
	return b, b.Validate()
}

// MustBounds is like [NewBounds] but panics on error.
func MustBounds(xmin, xmax, ymin, ymax float64) Bounds2D {
	b, err := NewBounds(xmin, xmax, ymin, ymax)
	if err != nil {
		panic(err)
	}
	return b
}

// Square returns [min, max] on both axes.
func Square(min, max float64) Bounds2D {
	return Bounds2D{X: Interval{min, max}, Y: Interval{min, max}}
}

// Validate checks both intervals.
func (b Bounds2D) Validate() error {
	if err := b.X.Validate(); err != nil {
		return err
	}
	return b.Y.Validate()
}

// Corners returns the four corners, counter-clockwise from (xmin, ymin).
func (b Bounds2D) Corners() [4]Point {
	return [4]Point{
		{b.X.Min, b.Y.Min},
		{b.X.Max, b.Y.Min},
		{b.X.Max, b.Y.Max},
		{b.X.Min, b.Y.Max},
	}
}

// Contains reports whether p lies in the closed rectangle.
func (b Bounds2D) Contains(p Point) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y)
}

// HasCornerIn reports whether any corner of b lies inside other.
func (b Bounds2D) HasCornerIn(other Bounds2D) bool {
	for _, c := range b.Corners() {
		if other.Contains(c) {
			return true
		}
	}
	return false
}

// Overlap returns the intersection rectangle. ok is false when the
// rectangles are disjoint. Touching rectangles overlap with zero span.
func (b Bounds2D) Overlap(other Bounds2D) (Bounds2D, bool) {
	x, okX := b.X.Overlap(other.X)
	y, okY := b.Y.Overlap(other.Y)
	if !okX || !okY {
		return Bounds2D{}, false
	}
	return Bounds2D{X: x, Y: y}, true
}

// Intersects reports whether a corner of either rectangle lies inside the
// other. Rectangles that cross without containing a corner do not
// intersect: no mapping is defined between them.
func (b Bounds2D) Intersects(other Bounds2D) bool {
	return b.HasCornerIn(other) || other.HasCornerIn(b)
}

package geom

import (
	"math"

	"github.com/matzehuels/curveplot/pkg/errors"
)

// Interval is a closed range [Min, Max] with Min < Max.
type Interval struct {
	Min float64 `json:"min" yaml:"min" toml:"min"`
	Max float64 `json:"max" yaml:"max" toml:"max"`
}

// NewInterval validates and returns [min, max].
func NewInterval(min, max float64) (Interval, error) {
	iv := Interval{Min: min, Max: max}
	return iv, iv.Validate()
}

// MustInterval is like [NewInterval] but panics on error.
func MustInterval(min, max float64) Interval {
	iv, err := NewInterval(min, max)
	if err != nil {
		panic(err)
	}
	return iv
}

// Validate reports an INVALID_CONFIG error unless both ends are finite and
// Min < Max.
func (iv Interval) Validate() error {
	if math.IsNaN(iv.Min) || math.IsNaN(iv.Max) || math.IsInf(iv.Min, 0) || math.IsInf(iv.Max, 0) {
		return errors.Config("interval [%v, %v] must be finite", iv.Min, iv.Max)
	}
	if !(iv.Min < iv.Max) {
		return errors.Config("interval [%v, %v] must satisfy min < max", iv.Min, iv.Max)
	}
	return nil
}

// Span returns Max - Min.
func (iv Interval) Span() float64 { return iv.Max - iv.Min }

// Contains reports whether v lies in the closed interval.
func (iv Interval) Contains(v float64) bool { return iv.Min <= v && v <= iv.Max }

// Overlap returns the intersection of two intervals. ok is false when they
// are disjoint. A single shared endpoint yields a zero-span overlap.
func (iv Interval) Overlap(other Interval) (Interval, bool) {
	lo := math.Max(iv.Min, other.Min)
	hi := math.Min(iv.Max, other.Max)
	if lo > hi {
		return Interval{}, false
	}
	return Interval{Min: lo, Max: hi}, true
}

// Linspace returns n evenly spaced values over the closed interval. n == 1
// yields Min alone; the last value is exactly Max.
func (iv Interval) Linspace(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = iv.Min
		return out
	}
	step := iv.Span() / float64(n-1)
	for i := range out {
		out[i] = iv.Min + float64(i)*step
	}
	out[n-1] = iv.Max
	return out
}

// IntegerRange returns every integer k with floor(Min) <= k <= floor(Max).
func (iv Interval) IntegerRange() []int {
	lo, hi := int(math.Floor(iv.Min)), int(math.Floor(iv.Max))
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		out = append(out, k)
	}
	return out
}

// Clamp limits v to the closed interval.
func (iv Interval) Clamp(v float64) float64 {
	return math.Min(math.Max(v, iv.Min), iv.Max)
}

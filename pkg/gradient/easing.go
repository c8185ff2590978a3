package gradient

import (
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/curveplot/pkg/errors"
)

// Easing reparametrizes progress along a gradient. Implementations map
// [0, 1] onto [0, 1] and hold no state.
type Easing func(x float64) float64

// Linear is the identity easing.
func Linear(x float64) float64 { return x }

// InCubic starts slowly and accelerates.
func InCubic(x float64) float64 { return x * x * x }

// InOutSine eases both ends along a half cosine.
func InOutSine(x float64) float64 { return -(math.Cos(math.Pi*x) - 1) / 2 }

// InOutCubic eases both ends with cubic segments.
func InOutCubic(x float64) float64 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	return 1 - math.Pow(-2*x+2, 3)/2
}

var easings = map[string]Easing{
	"linear":       Linear,
	"in-cubic":     InCubic,
	"in-out-cubic": InOutCubic,
	"in-out-sine":  InOutSine,
}

// EasingNames returns the registered easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseEasing resolves an easing by name. Underscores and case are ignored,
// so "ease_in_out_sine" and "in-out-sine" both work.
func ParseEasing(name string) (Easing, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.TrimPrefix(key, "ease-")
	if key == "" {
		return Linear, nil
	}
	if e, ok := easings[key]; ok {
		return e, nil
	}
	return nil, errors.Config("unknown easing %q (must be one of: %s)", name, strings.Join(EasingNames(), ", "))
}

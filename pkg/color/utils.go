package color

import "math"

// Triple is a colour expressed as three normalized channels. Its meaning
// depends on the [Space] it was produced by.
type Triple [3]float64

// denormEpsilon absorbs the rounding error of a normalize/convert round trip
// so that c/255*255 truncates back to c.
const denormEpsilon = 1e-9

// Normalize converts 0-255 channels to [0, 1].
func Normalize(c RGB) Triple {
	return Triple{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// Denormalize converts [0, 1] channels to 0-255, truncating and clamping.
func Denormalize(t Triple) RGB {
	return RGB{denorm(t[0]), denorm(t[1]), denorm(t[2])}
}

func denorm(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	n := math.Floor(v*255 + denormEpsilon)
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	}
	return uint8(n)
}

// InterpolateHue interpolates between two hues in [0, 1) along the shortest
// circular path. The result is taken mod 1.
func InterpolateHue(h1, h2, fraction float64) float64 {
	if math.Abs(h2-h1) > 0.5 {
		if h1 > h2 {
			h2 += 1.0
		} else {
			h1 += 1.0
		}
	}
	h := math.Mod(h1+fraction*(h2-h1), 1.0)
	if h < 0 {
		h += 1.0
	}
	return h
}

// Lerp interpolates channel-wise between a and b. Channels flagged in hue
// take the circular path.
func Lerp(a, b Triple, fraction float64, hue [3]bool) Triple {
	var out Triple
	for i := range out {
		if hue[i] {
			out[i] = InterpolateHue(a[i], b[i], fraction)
		} else {
			out[i] = a[i] + fraction*(b[i]-a[i])
		}
	}
	return out
}

// ApplyGamma raises every channel to gamma. It is the identity for gamma == 1.
func ApplyGamma(t Triple, gamma float64) Triple {
	if gamma == 1.0 {
		return t
	}
	return Triple{math.Pow(t[0], gamma), math.Pow(t[1], gamma), math.Pow(t[2], gamma)}
}

// RemoveGamma inverts [ApplyGamma].
func RemoveGamma(t Triple, gamma float64) Triple {
	if gamma == 1.0 {
		return t
	}
	inv := 1 / gamma
	return Triple{math.Pow(t[0], inv), math.Pow(t[1], inv), math.Pow(t[2], inv)}
}

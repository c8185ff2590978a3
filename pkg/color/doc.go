// Package color provides the colour primitives used by the rendering core.
//
// Colours enter the system as 8-bit [RGB] triples. Gradient computations work
// on normalized [Triple] values in [0, 1] inside a pluggable [Space]:
//
//   - [RGBSpace]: identity, no hue channel
//   - [HSLSpace]: (hue, saturation, lightness), hue in channel 0
//   - [HSVSpace]: (hue, saturation, value), hue in channel 0
//
// Hue channels are circular: [InterpolateHue] always takes the shortest
// path around [0, 1), so interpolating 0.95 → 0.05 passes through 0.0
// rather than 0.5.
//
// The set of spaces is closed; [ParseSpace] maps configuration names to one
// of the three values above.
package color

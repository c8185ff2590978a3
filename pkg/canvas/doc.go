// Package canvas rasterizes curves into an RGB pixel buffer.
//
// A [Canvas] is created from [ImageOptions]: its size, the rectangle of the
// plane it shows (the view), a background colour and an optional overlay of
// grid lines, axes and ticks. The buffer is allocated once, filled with the
// background and never resized.
//
// Curves are painted one draw call at a time. [Canvas.Draw] dispatches on the
// curve variant:
//
//   - parametric curves are sampled at evenly spaced parameter values
//   - implicit graphs are evaluated on a grid spanning the overlap of their
//     bounds with the view, about one grid point per pixel
//
// Every painted point is truncated to a pixel and clamped into the canvas,
// so a curve that leaves the view sticks to the border instead of
// disappearing. Each point paints a filled disk of radius
// [DrawOptions].StrokeHalfWidth; later writes overwrite earlier ones.
//
// [Canvas.Render] draws an ordered list of items under a [Policy] that
// decides whether a failing item aborts the render or is skipped and
// reported.
//
// Row 0 of the buffer holds the minimum y of the view. Use package sink to
// obtain images with the maximum y at the top.
package canvas

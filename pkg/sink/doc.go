// Package sink turns rendered canvases into images, PNG files, raw RGB
// streams and terminal text.
//
// Canvas buffers keep row 0 at the minimum y of the view. Every sink flips
// vertically on output so that the maximum y ends up in the top row, the
// way plots are read.
package sink

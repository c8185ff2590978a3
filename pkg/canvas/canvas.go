package canvas

import (
	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/geom"
)

// Default overlay settings.
const (
	DefaultAxisWidth  = 2
	DefaultGridWidth  = 1
	DefaultTickLength = 15
	DefaultName       = "image"
)

// MaxPixels bounds the pixel count of a canvas (an 8192×4096 image).
const MaxPixels = 1 << 25

// ImageOptions configures a canvas. Use [DefaultImageOptions] and override
// fields as needed; a zero colour means black, not "unset".
type ImageOptions struct {
	Width      int
	Height     int
	DrawBounds geom.Bounds2D
	Background color.RGB
	ShowAxes   bool
	AxisColor  color.RGB
	AxisWidth  int
	GridColor  color.RGB
	GridWidth  int
	TickLength int
	Name       string
}

// DefaultImageOptions returns options for a w×h canvas showing bounds: white
// background with a grey grid and black axes.
func DefaultImageOptions(w, h int, bounds geom.Bounds2D) ImageOptions {
	return ImageOptions{
		Width:      w,
		Height:     h,
		DrawBounds: bounds,
		Background: color.White,
		ShowAxes:   true,
		AxisColor:  color.Black,
		AxisWidth:  DefaultAxisWidth,
		GridColor:  color.Gray,
		GridWidth:  DefaultGridWidth,
		TickLength: DefaultTickLength,
		Name:       DefaultName,
	}
}

// Validate reports an INVALID_CONFIG error for unusable options.
func (o ImageOptions) Validate() error {
	if err := ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if err := o.DrawBounds.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "draw bounds")
	}
	if o.AxisWidth < 0 || o.GridWidth < 0 || o.TickLength < 0 {
		return errors.Config("axis width, grid width and tick length must not be negative")
	}
	return nil
}

// ValidateSize reports an INVALID_CONFIG error unless w and h are positive
// and w*h is at most [MaxPixels].
func ValidateSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return errors.Config("canvas size must be positive, got %dx%d", w, h)
	}
	if w > MaxPixels/h {
		return errors.Config("canvas size %dx%d exceeds %d pixels", w, h, MaxPixels)
	}
	return nil
}

// Canvas is a fixed-size RGB raster showing a rectangle of the plane.
type Canvas struct {
	opts   ImageOptions
	mapper geom.Mapper
	pix    []uint8
}

// New allocates a canvas, fills it with the background and draws the
// overlay when ShowAxes is set.
func New(opts ImageOptions) (*Canvas, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m, err := geom.ViewMapper(opts.DrawBounds, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	c := &Canvas{
		opts:   opts,
		mapper: m,
		pix:    make([]uint8, opts.Width*opts.Height*3),
	}
	c.fill(opts.Background)
	if opts.ShowAxes {
		c.drawOverlay()
	}
	return c, nil
}

// Options returns the options the canvas was created with.
func (c *Canvas) Options() ImageOptions { return c.opts }

// Name returns the image name.
func (c *Canvas) Name() string { return c.opts.Name }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.opts.Width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.opts.Height }

// Mapper returns the view-to-canvas mapping.
func (c *Canvas) Mapper() geom.Mapper { return c.mapper }

// Pix returns the row-major RGB buffer, three bytes per pixel. Row 0 holds
// the minimum y of the view. The slice aliases the canvas and must not be
// modified.
func (c *Canvas) Pix() []uint8 { return c.pix }

// At returns the colour at column x, row y. Out-of-range positions return
// the zero colour.
func (c *Canvas) At(x, y int) color.RGB {
	if !c.in(x, y) {
		return color.RGB{}
	}
	i := c.index(x, y)
	return color.RGB{R: c.pix[i], G: c.pix[i+1], B: c.pix[i+2]}
}

// Set paints one pixel. Out-of-range positions are ignored.
func (c *Canvas) Set(x, y int, col color.RGB) {
	if !c.in(x, y) {
		return
	}
	i := c.index(x, y)
	c.pix[i], c.pix[i+1], c.pix[i+2] = col.R, col.G, col.B
}

func (c *Canvas) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.opts.Width && y < c.opts.Height
}

func (c *Canvas) index(x, y int) int { return (y*c.opts.Width + x) * 3 }

func (c *Canvas) fill(col color.RGB) {
	for i := 0; i < len(c.pix); i += 3 {
		c.pix[i], c.pix[i+1], c.pix[i+2] = col.R, col.G, col.B
	}
}

// fillRect paints the half-open rectangle [x0, x1)×[y0, y1), clipped.
func (c *Canvas) fillRect(x0, y0, x1, y1 int, col color.RGB) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.opts.Width), min(y1, c.opts.Height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.Set(x, y, col)
		}
	}
}

package canvas

import (
	"math"

	"github.com/matzehuels/curveplot/pkg/color"
)

// drawOverlay paints grid lines at every integer coordinate of the view,
// then the axes, then ticks on the axes.
func (c *Canvas) drawOverlay() {
	o := c.opts
	xs := o.DrawBounds.X.IntegerRange()
	ys := o.DrawBounds.Y.IntegerRange()

	for _, k := range xs {
		c.vline(c.mapper.MapX(float64(k)), 0, o.Height, o.GridWidth, o.GridColor)
	}
	for _, k := range ys {
		c.hline(c.mapper.MapY(float64(k)), 0, o.Width, o.GridWidth, o.GridColor)
	}

	// Axes sit at 0, or at the nearest edge of the view when 0 is outside it.
	ax := c.mapper.MapX(o.DrawBounds.X.Clamp(0))
	ay := c.mapper.MapY(o.DrawBounds.Y.Clamp(0))
	c.hline(ay, 0, o.Width, o.AxisWidth, o.AxisColor)
	c.vline(ax, 0, o.Height, o.AxisWidth, o.AxisColor)

	if o.TickLength == 0 {
		return
	}
	cy, cx := c.band(ay, o.Height), c.band(ax, o.Width)
	for _, k := range xs {
		c.vline(c.mapper.MapX(float64(k)), cy-o.TickLength, cy+o.TickLength+1, o.AxisWidth, o.AxisColor)
	}
	for _, k := range ys {
		c.hline(c.mapper.MapY(float64(k)), cx-o.TickLength, cx+o.TickLength+1, o.AxisWidth, o.AxisColor)
	}
}

// band returns the pixel index of a line at pos, clamped to [0, n-1].
func (c *Canvas) band(pos float64, n int) int {
	return int(math.Min(math.Max(math.Floor(pos), 0), float64(n-1)))
}

// vline paints a vertical line of the given width centred on column x,
// spanning rows [y0, y1).
func (c *Canvas) vline(x float64, y0, y1, width int, col color.RGB) {
	if width <= 0 {
		return
	}
	cx := c.band(x, c.opts.Width) - (width-1)/2
	c.fillRect(cx, y0, cx+width, y1, col)
}

// hline paints a horizontal line of the given width centred on row y,
// spanning columns [x0, x1).
func (c *Canvas) hline(y float64, x0, x1, width int, col color.RGB) {
	if width <= 0 {
		return
	}
	cy := c.band(y, c.opts.Height) - (width-1)/2
	c.fillRect(x0, cy, x1, cy+width, col)
}

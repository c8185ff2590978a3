package color

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/curveplot/pkg/errors"
)

// Space converts normalized RGB to and from an interpolation space.
type Space interface {
	// Name returns the configuration name ("RGB", "HSL", "HSV").
	Name() string
	// To converts a normalized RGB triple into this space.
	To(rgb Triple) Triple
	// From converts a triple in this space back to normalized RGB.
	From(t Triple) Triple
	// HueMask reports which channels hold a circular hue.
	HueMask() [3]bool
}

// The three supported spaces.
var (
	RGBSpace Space = rgbSpace{}
	HSLSpace Space = hslSpace{}
	HSVSpace Space = hsvSpace{}
)

// Spaces lists the supported spaces in display order.
var Spaces = []Space{RGBSpace, HSLSpace, HSVSpace}

// ParseSpace resolves a space by name, case-insensitively.
func ParseSpace(name string) (Space, error) {
	for _, s := range Spaces {
		if strings.EqualFold(s.Name(), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return nil, errors.Config("unsupported colour space: %q (must be one of: RGB, HSL, HSV)", name)
}

type rgbSpace struct{}

func (rgbSpace) Name() string         { return "RGB" }
func (rgbSpace) To(t Triple) Triple   { return t }
func (rgbSpace) From(t Triple) Triple { return t }
func (rgbSpace) HueMask() [3]bool     { return [3]bool{} }

// hslSpace stores (hue/360, saturation, lightness).
type hslSpace struct{}

func (hslSpace) Name() string     { return "HSL" }
func (hslSpace) HueMask() [3]bool { return [3]bool{true, false, false} }

func (hslSpace) To(t Triple) Triple {
	h, s, l := colorful.Color{R: t[0], G: t[1], B: t[2]}.Hsl()
	return Triple{h / 360, s, l}
}

func (hslSpace) From(t Triple) Triple {
	c := colorful.Hsl(t[0]*360, t[1], t[2])
	return Triple{c.R, c.G, c.B}
}

// hsvSpace stores (hue/360, saturation, value).
type hsvSpace struct{}

func (hsvSpace) Name() string     { return "HSV" }
func (hsvSpace) HueMask() [3]bool { return [3]bool{true, false, false} }

func (hsvSpace) To(t Triple) Triple {
	h, s, v := colorful.Color{R: t[0], G: t[1], B: t[2]}.Hsv()
	return Triple{h / 360, s, v}
}

func (hsvSpace) From(t Triple) Triple {
	c := colorful.Hsv(t[0]*360, t[1], t[2])
	return Triple{c.R, c.G, c.B}
}

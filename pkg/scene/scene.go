package scene

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/curveplot/pkg/color"
	"github.com/matzehuels/curveplot/pkg/errors"
	"github.com/matzehuels/curveplot/pkg/geom"
)

// Format is a scene file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q (want .yaml, .toml or .json)", filepath.Ext(path))
}

// File is a scene as written on disk.
type File struct {
	Name      string         `yaml:"name" toml:"name" json:"name"`
	Param     float64        `yaml:"param" toml:"param" json:"param"`
	Image     ImageSpec      `yaml:"image" toml:"image" json:"image"`
	Render    RenderSpec     `yaml:"render" toml:"render" json:"render"`
	Animation *AnimationSpec `yaml:"animation" toml:"animation" json:"animation"`
	Curves    []CurveSpec    `yaml:"curves" toml:"curves" json:"curves"`
}

// ImageSpec describes the canvas. Unset fields take the canvas defaults.
type ImageSpec struct {
	Width      int           `yaml:"width" toml:"width" json:"width"`
	Height     int           `yaml:"height" toml:"height" json:"height"`
	Bounds     geom.Bounds2D `yaml:"bounds" toml:"bounds" json:"bounds"`
	Background *color.RGB    `yaml:"background" toml:"background" json:"background"`
	ShowAxes   *bool         `yaml:"show_axes" toml:"show_axes" json:"show_axes"`
	AxisColor  *color.RGB    `yaml:"axis_color" toml:"axis_color" json:"axis_color"`
	AxisWidth  *int          `yaml:"axis_width" toml:"axis_width" json:"axis_width"`
	GridColor  *color.RGB    `yaml:"grid_color" toml:"grid_color" json:"grid_color"`
	GridWidth  *int          `yaml:"grid_width" toml:"grid_width" json:"grid_width"`
	TickLength *int          `yaml:"tick_length" toml:"tick_length" json:"tick_length"`
}

// RenderSpec sets the render policy and the default stroke.
type RenderSpec struct {
	Policy  string     `yaml:"policy" toml:"policy" json:"policy"`
	Workers int        `yaml:"workers" toml:"workers" json:"workers"`
	Stroke  *int       `yaml:"stroke" toml:"stroke" json:"stroke"`
	Color   *color.RGB `yaml:"color" toml:"color" json:"color"`
}

// AnimationSpec sweeps the parameter p over [From, To] in Frames steps.
// Omitted ends default to 0 and 1. Width and Height set the output
// resolution; zero keeps the canvas size.
type AnimationSpec struct {
	From   *float64 `yaml:"from" toml:"from" json:"from"`
	To     *float64 `yaml:"to" toml:"to" json:"to"`
	Frames int      `yaml:"frames" toml:"frames" json:"frames"`
	Width  int      `yaml:"width" toml:"width" json:"width"`
	Height int      `yaml:"height" toml:"height" json:"height"`
}

// RangeSpec is an interval whose ends may depend on p.
type RangeSpec struct {
	Min Expr `yaml:"min" toml:"min" json:"min"`
	Max Expr `yaml:"max" toml:"max" json:"max"`
}

// PointSpec is an offset whose coordinates may depend on p.
type PointSpec struct {
	X Expr `yaml:"x" toml:"x" json:"x"`
	Y Expr `yaml:"y" toml:"y" json:"y"`
}

// GradientSpec colours a curve frame by frame during an animation.
type GradientSpec struct {
	Colors []color.RGB `yaml:"colors" toml:"colors" json:"colors"`
	Space  string      `yaml:"space" toml:"space" json:"space"`
	Easing string      `yaml:"easing" toml:"easing" json:"easing"`
	Gamma  float64     `yaml:"gamma" toml:"gamma" json:"gamma"`
}

// CurveSpec is one curve. Which expression fields apply depends on Kind:
//
//	parametric  domain, x, y
//	function    domain, f (in x)
//	polar       domain, r (in t or theta)
//	implicit    left, right, relation, tolerance
type CurveSpec struct {
	Name      string         `yaml:"name" toml:"name" json:"name"`
	Kind      string         `yaml:"kind" toml:"kind" json:"kind"`
	Domain    *RangeSpec     `yaml:"domain" toml:"domain" json:"domain"`
	Bounds    *geom.Bounds2D `yaml:"bounds" toml:"bounds" json:"bounds"`
	X         Expr           `yaml:"x" toml:"x" json:"x"`
	Y         Expr           `yaml:"y" toml:"y" json:"y"`
	F         Expr           `yaml:"f" toml:"f" json:"f"`
	R         Expr           `yaml:"r" toml:"r" json:"r"`
	Left      Expr           `yaml:"left" toml:"left" json:"left"`
	Right     Expr           `yaml:"right" toml:"right" json:"right"`
	Relation  string         `yaml:"relation" toml:"relation" json:"relation"`
	Tolerance float64        `yaml:"tolerance" toml:"tolerance" json:"tolerance"`
	Samples   int            `yaml:"samples" toml:"samples" json:"samples"`
	Offset    *PointSpec     `yaml:"offset" toml:"offset" json:"offset"`
	Stroke    *int           `yaml:"stroke" toml:"stroke" json:"stroke"`
	Color     *color.RGB     `yaml:"color" toml:"color" json:"color"`
	Gradient  *GradientSpec  `yaml:"gradient" toml:"gradient" json:"gradient"`
}

// Decode parses a scene file. Unknown keys are rejected in every format.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml scene")
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml scene")
		}
		if und := md.Undecoded(); len(und) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene key %q", und[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json scene")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	return &f, nil
}

// Load reads, decodes and compiles a scene file. A missing Name defaults to
// the file's base name.
func Load(path string) (*Scene, error) {
	data, format, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = BaseName(path)
	}
	return Compile(f)
}

// ReadFile reads a scene file and picks its encoding from the extension.
func ReadFile(path string) ([]byte, Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read scene %s", path)
	}
	return data, format, nil
}

// BaseName is the file name of path without its extension.
func BaseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

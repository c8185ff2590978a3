package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/curveplot/pkg/observability"
	"github.com/matzehuels/curveplot/pkg/scene"
)

// LoadScene decodes and compiles a scene source. name is used when the
// source does not name the scene.
func LoadScene(ctx context.Context, source []byte, format scene.Format, name string) (*scene.Scene, error) {
	hooks := observability.Pipeline()
	label := name
	if label == "" {
		label = string(format)
	}
	hooks.OnLoadStart(ctx, label)
	start := time.Now()

	s, err := loadScene(source, format, name)

	curves := 0
	if s != nil {
		curves = len(s.Curves)
	}
	hooks.OnLoadComplete(ctx, label, curves, time.Since(start), err)
	return s, err
}

func loadScene(source []byte, format scene.Format, name string) (*scene.Scene, error) {
	f, err := scene.Decode(source, format)
	if err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = name
	}
	return scene.Compile(f)
}

package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const testScene = `
image:
  width: 40
  height: 40
  bounds: {x: {min: -2, max: 2}, y: {min: -2, max: 2}}
  show_axes: false
animation:
  frames: 3
  width: 20
  height: 20
curves:
  - name: circle
    kind: parametric
    domain: {min: 0, max: 2*pi}
    x: (1 + p)*cos(t)
    y: (1 + p)*sin(t)
    gradient:
      colors: [red, blue]
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ring.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"png"}},
		{"png", []string{"png"}},
		{"png,txt,rgb", []string{"png", "txt", "rgb"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	path := writeScene(t)
	if _, err := execute(t, "", "render", path, "-f", "png,txt", "--cache", "none"); err != nil {
		t.Fatalf("render: %v", err)
	}

	base := strings.TrimSuffix(path, ".yaml")
	f, err := os.Open(base + ".png")
	if err != nil {
		t.Fatalf("png not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("png size = %dx%d, want 40x40", b.Dx(), b.Dy())
	}
	if _, err := os.Stat(base + ".txt"); err != nil {
		t.Errorf("txt not written: %v", err)
	}
}

func TestRenderCommandStdout(t *testing.T) {
	out, err := execute(t, testScene, "render", "-", "-f", "txt", "-o", "-", "--text-width", "10", "--param", "0.5")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Errorf("got %d lines, want 5:\n%s", len(lines), out)
	}
	if strings.Trim(out, "⠀\n") == "" {
		t.Errorf("output has no raised dots:\n%s", out)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	path := writeScene(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"bad extension", []string{"render", "scene.xml"}},
		{"bad format", []string{"render", path, "-f", "gif", "--cache", "none"}},
		{"stdout with two formats", []string{"render", path, "-f", "png,txt", "-o", "-", "--cache", "none"}},
		{"bad cache", []string{"render", path, "--cache", "memcached"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, "", tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAnimateCommand(t *testing.T) {
	path := writeScene(t)
	dir := filepath.Join(t.TempDir(), "frames")
	if _, err := execute(t, "", "animate", path, "-o", dir, "--to", "0.5"); err != nil {
		t.Fatalf("animate: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("wrote %d frames, want 3", len(entries))
	}
	if entries[0].Name() != "frame_0000.png" {
		t.Errorf("first frame = %q", entries[0].Name())
	}
}

func TestGradientCommand(t *testing.T) {
	out, err := execute(t, "", "gradient", "red", "blue", "-n", "3", "--space", "rgb", "--hex")
	if err != nil {
		t.Fatalf("gradient: %v", err)
	}
	want := "#ff0000\n#7f007f\n#0000ff\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	out, err = execute(t, "", "gradient", "red", "blue", "--plot")
	if err != nil {
		t.Fatalf("gradient --plot: %v", err)
	}
	if !strings.Contains(out, "R G B") {
		t.Errorf("plot caption missing:\n%s", out)
	}

	if _, err := execute(t, "", "gradient", "red", "blue", "--easing", "bounce"); err == nil {
		t.Error("unknown easing should fail")
	}
}

func TestPreviewOnce(t *testing.T) {
	path := writeScene(t)
	out, err := execute(t, "", "preview", path, "--once", "--width", "8")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 || len([]rune(lines[0])) != 8 {
		t.Errorf("preview shape = %d lines of %d, want 4 of 8:\n%s", len(lines), len([]rune(lines[0])), out)
	}
}

func TestCachePathAndClear(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(xdg, appName)
	if strings.TrimSpace(out.String()) != want {
		t.Errorf("cache path = %q, want %q", out.String(), want)
	}

	// Fill the cache with one render, then clear it.
	path := writeScene(t)
	root = c.RootCommand()
	root.SetArgs([]string{"render", path})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	n, err := clearCache(want)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("cleared %d entries, want 1", n)
	}
	if n, _ := clearCache(want); n != 0 {
		t.Errorf("second clear found %d entries", n)
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("completion script should mention the program name")
	}
}

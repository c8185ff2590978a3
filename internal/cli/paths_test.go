package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input string
		want          string
	}{
		{"", "scenes/rose.yaml", "scenes/rose"},
		{"out/rose.png", "rose.yaml", "out/rose"},
		{"out/rose.txt", "rose.yaml", "out/rose"},
		{"out/rose", "rose.yaml", "out/rose"},
		{"out/rose.v2", "rose.yaml", "out/rose.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		formats []string
		want    map[string]string
	}{
		{"single format default", "", "rose.yaml", []string{"png"}, map[string]string{"png": "rose.png"}},
		{"single format explicit", "out.image", "rose.yaml", []string{"png"}, map[string]string{"png": "out.image"}},
		{"multiple formats", "out/r.png", "rose.yaml", []string{"png", "txt"}, map[string]string{"png": "out/r.png", "txt": "out/r.txt"}},
		{"stdin uses scene name", "", "-", []string{"png", "rgb"}, map[string]string{"png": "rose.png", "rgb": "rose.rgb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.input, "rose", tt.formats)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("outputPaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFrameDir(t *testing.T) {
	tests := []struct {
		dir, input, name string
		want             string
	}{
		{"out", "rose.yaml", "rose", "out"},
		{"", "scenes/rose.yaml", "rose", "scenes/rose_frames"},
		{"", "-", "", "frames"},
	}

	for _, tt := range tests {
		if got := frameDir(tt.dir, tt.input, tt.name); got != tt.want {
			t.Errorf("frameDir(%q, %q, %q) = %q, want %q", tt.dir, tt.input, tt.name, got, tt.want)
		}
	}
	if got := frameName(7); got != "frame_0007.png" {
		t.Errorf("frameName(7) = %q", got)
	}
}

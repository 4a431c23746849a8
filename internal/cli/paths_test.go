package cli

import (
	"io"
	"path/filepath"
	"testing"
)

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	c := New(io.Discard, LogInfo)
	expected := filepath.Join(customCache, appName)
	if dir := c.cacheDir(); dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = "/srv/twin-cache"
	if dir := c.cacheDir(); dir != "/srv/twin-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, structure, want string
	}{
		{"", "K-101", "K-101"},
		{"out/k101.svg", "K-101", "out/k101"},
		{"out/k101", "K-101", "out/k101"},
		{"out/k101.txt", "K-101", "out/k101.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.structure); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.structure, got, tt.want)
		}
	}
}

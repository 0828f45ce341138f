package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir_DefaultsUnderHomeCache(t *testing.T) {
	oldXDG := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXDG != "" {
			os.Setenv("XDG_CACHE_HOME", oldXDG)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDir_RespectsXDGCacheHome(t *testing.T) {
	oldXDG := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	defer func() {
		if oldXDG != "" {
			os.Setenv("XDG_CACHE_HOME", oldXDG)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCache_NoCacheReturnsNullCache(t *testing.T) {
	ctx := context.Background()
	c, err := newCache(true, "", "")
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("no-cache mode must never hit")
	}
}

func TestNewCache_BackendNoneIsNull(t *testing.T) {
	ctx := context.Background()
	c, err := newCache(false, "none", "")
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("none backend must never hit")
	}
}

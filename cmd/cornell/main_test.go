package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/cornell/pkg/config"
)

func TestRootCommandRendersSnapshot(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "shot.png")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--display", "headless", "--mode", "trace", "--width", "16", "--height", "16", "-n", "2", "-o", out, "--log-level", "error"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestRootCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "shot.tga")
	path := filepath.Join(dir, "cornell.json")
	data := `{"display": "headless", "mode": "wireframe", "width": 20, "height": 10, "log_level": "error", "output": "` + filepath.ToSlash(out) + `"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"-c", path})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestRootCommandRejectsBadConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--display", "headless", "--mode", "pathtrace"})
	cmd.SilenceUsage, cmd.SilenceErrors = true, true
	if err := cmd.ExecuteContext(context.Background()); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("execute = %v, want ErrInvalid", err)
	}
}

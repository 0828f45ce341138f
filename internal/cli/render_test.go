package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/config"
	"github.com/flowtext/mmdascii/pkg/mmerr"
)

func TestReadSource_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.mmd")
	if err := os.WriteFile(path, []byte("graph TD\n  A --> B\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := readSource(path)
	if err != nil {
		t.Fatalf("readSource: %v", err)
	}
	if got != "graph TD\n  A --> B\n" {
		t.Errorf("readSource() = %q", got)
	}
}

func TestReadSource_MissingFile(t *testing.T) {
	if _, err := readSource("/nonexistent/path/does-not-exist.mmd"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestMermaidDirection_Normalizes(t *testing.T) {
	cases := map[string]ast.Direction{
		"td": ast.DirectionTD,
		"TD": ast.DirectionTD,
		"lr": ast.DirectionLR,
		"Rl": ast.DirectionRL,
	}
	for input, want := range cases {
		if got := mermaidDirection(input); got != want {
			t.Errorf("mermaidDirection(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRenderCached_MissThenHit(t *testing.T) {
	cli := &CLI{}
	cfg := config.DefaultRenderConfig()
	ctx := context.Background()

	first, err := cli.renderCached(ctx, "graph TD\n  A --> B\n", cfg, true, nil)
	if err != nil {
		t.Fatalf("renderCached: %v", err)
	}
	if first.Output == "" {
		t.Error("expected non-empty render output")
	}

	second, err := cli.renderCached(ctx, "graph TD\n  A --> B\n", cfg, true, nil)
	if err != nil {
		t.Fatalf("renderCached (second call): %v", err)
	}
	if second.Output != first.Output {
		t.Errorf("renders of identical source diverged:\n%q\nvs\n%q", first.Output, second.Output)
	}
}

func TestRenderCached_PropagatesParseErrors(t *testing.T) {
	cli := &CLI{}
	cfg := config.DefaultRenderConfig()
	ctx := context.Background()

	if _, err := cli.renderCached(ctx, "not a valid diagram {{{", cfg, true, nil); err == nil {
		t.Error("expected a parse error for malformed source")
	}
}

func TestRenderCommand_InvalidDirectionFlagIsUsageError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diagram.mmd")
	if err := os.WriteFile(path, []byte("graph TD\n  A --> B\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c := New(io.Discard, LogInfo)
	cmd := c.renderCommand()
	cmd.SetArgs([]string{path, "--direction", "SIDEWAYS"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an invalid --direction value")
	}
	if got := mmerr.GetCode(err); got != mmerr.ErrCodeUsage {
		t.Errorf("error code = %q, want %q", got, mmerr.ErrCodeUsage)
	}
}

func TestWriteDebugDot_WritesSVGFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.svg")
	cfg := config.DefaultRenderConfig()

	if err := writeDebugDot("graph TD\n  A --> B\n", cfg, path); err != nil {
		t.Fatalf("writeDebugDot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty SVG output")
	}
}

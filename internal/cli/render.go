package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/config"
	"github.com/flowtext/mmdascii/pkg/debugdot"
	"github.com/flowtext/mmdascii/pkg/graphir"
	"github.com/flowtext/mmdascii/pkg/mmerr"
	"github.com/flowtext/mmdascii/pkg/parser"
	"github.com/flowtext/mmdascii/pkg/pipeline"
	"github.com/flowtext/mmdascii/pkg/rendercache"
)

// renderCommand creates the "render" command: render_dsl's CLI front
// door, reading Mermaid source from a file (or stdin with "-") and
// writing the rendered grid to stdout or a file.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		out       string
		direction string
		ascii     bool
		padding   int
		noCache   bool
		stats     bool
		debugDot  string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a Mermaid diagram to an ASCII/Unicode character grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			cfg := config.DefaultRenderConfig()
			cfg.ASCII = ascii
			cfg.Padding = padding
			if direction != "" {
				d := mermaidDirection(direction)
				if !d.Valid() {
					return mmerr.New(mmerr.ErrCodeUsage, "invalid --direction %q: must be one of TD, BT, LR, RL", direction)
				}
				cfg.Direction = d
			}

			logger := loggerFromContext(cmd.Context())
			result, err := c.renderCached(cmd.Context(), source, cfg, noCache, logger)
			if err != nil {
				if mmerr.Is(err, mmerr.ErrCodeParse) || mmerr.Is(err, mmerr.ErrCodeUsage) {
					printError("%s", mmerr.UserMessage(err))
					return err
				}
				return err
			}

			if out == "" || out == "-" {
				cmd.Print(result.Output)
			} else {
				if err := os.WriteFile(out, []byte(result.Output), 0o644); err != nil {
					return err
				}
				printFile(out)
			}
			if stats {
				printStats(result.Stats.NodeCount, result.Stats.EdgeCount, false)
			}
			if debugDot != "" {
				if err := writeDebugDot(source, cfg, debugDot); err != nil {
					return err
				}
				printFile(debugDot)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "override the diagram direction: TD, BT, LR, RL")
	cmd.Flags().BoolVarP(&ascii, "ascii", "a", false, "use plain ASCII box characters instead of Unicode")
	cmd.Flags().IntVarP(&padding, "padding", "p", 1, "horizontal label padding inside each node box, in character cells")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")
	cmd.Flags().BoolVar(&stats, "stats", false, "print node/edge counts after rendering")
	cmd.Flags().StringVar(&debugDot, "debug-dot", "", "also export the pre-layout graph as an SVG to this path")

	return cmd
}

// writeDebugDot parses source, lowers it to GraphIR, and writes the
// Graphviz SVG rendering of its pre-layout structure to path. This is a
// debugging side-channel independent of the character-grid renderer.
func writeDebugDot(source string, cfg config.RenderConfig, path string) error {
	doc, err := parser.Parse(source)
	if err != nil {
		return mmerr.Wrap(mmerr.ErrCodeParse, err, "failed to parse diagram source")
	}
	if cfg.Direction != "" {
		doc.Direction = cfg.Direction
	}
	g, err := graphir.FromAST(doc)
	if err != nil {
		panic(mmerr.Wrap(mmerr.ErrCodeLayout, err, "graphir construction invariant violated"))
	}
	svg, err := debugdot.RenderSVG(debugdot.ToDOT(g))
	if err != nil {
		return err
	}
	return os.WriteFile(path, svg, 0o644)
}

// renderCached runs render_dsl through the file-backed render cache
// shared with the serve command, so repeated CLI invocations on the same
// source skip re-running the pipeline.
func (c *CLI) renderCached(ctx context.Context, source string, cfg config.RenderConfig, noCache bool, logger *charmlog.Logger) (pipeline.Result, error) {
	cache, err := newCache(noCache, "", "")
	if err != nil {
		return pipeline.Result{}, err
	}
	defer cache.Close()

	key := rendercache.RenderKey(source, cfg)
	if data, hit, _ := cache.Get(ctx, key); hit {
		return pipeline.Result{Output: string(data)}, nil
	}

	result, err := pipeline.RenderDSL(source, cfg, logger)
	if err != nil {
		return pipeline.Result{}, err
	}
	_ = cache.Set(ctx, key, []byte(result.Output), time.Hour)
	return result, nil
}

// readSource reads Mermaid source from path, or from stdin if path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// mermaidDirection normalizes a user-supplied direction flag to the
// canonical uppercase ast.Direction spelling.
func mermaidDirection(s string) ast.Direction {
	return ast.Direction(strings.ToUpper(s))
}

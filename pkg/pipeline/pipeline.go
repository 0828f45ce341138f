// Package pipeline provides the single parse -> layout -> route -> render
// entry point used by the CLI, the HTTP server, and the watch TUI, so all
// three present identical behavior for identical input.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowtext/mmdascii/pkg/config"
	"github.com/flowtext/mmdascii/pkg/graphir"
	"github.com/flowtext/mmdascii/pkg/layout"
	"github.com/flowtext/mmdascii/pkg/mmerr"
	"github.com/flowtext/mmdascii/pkg/parser"
	"github.com/flowtext/mmdascii/pkg/render"
	"github.com/flowtext/mmdascii/pkg/route"
)

// Stats reports per-stage timing, useful for the CLI's verbose output and
// the HTTP server's response headers.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// Result is the complete output of one render_dsl call.
type Result struct {
	Output string
	Stats  Stats
}

// RenderDSL is the library's single entry point: parse -> lower -> layout
// -> route -> render. A zero-value cfg means Unicode output, the source's
// own direction and padding 0; config.DefaultRenderConfig holds the
// documented defaults (padding 1).
// The only user-visible errors are a malformed cfg (ErrCodeUsage) and a
// parse error (ErrCodeParse); any other failure is an implementation bug
// and panics so it is caught before it reaches a user.
func RenderDSL(source string, cfg config.RenderConfig, logger *log.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, mmerr.Wrap(mmerr.ErrCodeUsage, err, "invalid render config")
	}

	var stats Stats

	t0 := time.Now()
	doc, err := parser.Parse(source)
	stats.ParseTime = time.Since(t0)
	if err != nil {
		if logger != nil {
			logger.Debug("parse failed", "err", err)
		}
		return Result{}, mmerr.Wrap(mmerr.ErrCodeParse, err, "failed to parse diagram source")
	}

	if cfg.Direction != "" {
		doc.Direction = cfg.Direction
	}

	g, err := graphir.FromAST(doc)
	if err != nil {
		panic(mmerr.Wrap(mmerr.ErrCodeLayout, err, "graphir construction invariant violated"))
	}
	stats.NodeCount = g.NodeCount()
	stats.EdgeCount = g.EdgeCount()
	if logger != nil && len(g.ImplicitNodes) > 0 {
		logger.Debug("auto-declared undeclared edge endpoint(s)", "code", mmerr.ErrCodeReference, "nodes", g.ImplicitNodes)
	}

	t1 := time.Now()
	res := layout.Layout(g, cfg.Padding)
	routed := route.Route(res)
	stats.LayoutTime = time.Since(t1)
	if logger != nil {
		if n := countFallbacks(routed); n > 0 {
			logger.Debug("A* router fell back to orthogonal waypoints", "code", mmerr.ErrCodeRouting, "edges", n)
		}
	}

	t2 := time.Now()
	output := render.Render(res, routed, render.Options{ASCII: cfg.ASCII})
	stats.RenderTime = time.Since(t2)

	if logger != nil {
		logger.Debug("rendered diagram",
			"nodes", stats.NodeCount, "edges", stats.EdgeCount,
			"parse", stats.ParseTime, "layout", stats.LayoutTime, "render", stats.RenderTime)
	}

	return Result{Output: output, Stats: stats}, nil
}

func countFallbacks(routed []route.RoutedEdge) int {
	n := 0
	for _, re := range routed {
		if re.Fallback {
			n++
		}
	}
	return n
}

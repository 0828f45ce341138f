// Package pkg has no code of its own; it is the parent directory for
// mmdascii's libraries.
//
// # Pipeline
//
// Mermaid flowchart/graph source becomes a rendered character grid
// through five stages, each its own package:
//
//	source text
//	     ↓
//	[parser]  recursive-descent parse → ast.Graph
//	     ↓
//	[graphir] lowering to a directed graph with subgraph nesting
//	     ↓
//	[layout]  Sugiyama layering, crossing minimization, coordinate assignment
//	     ↓
//	[route]   A* + orthogonal-waypoint edge routing around occupied cells
//	     ↓
//	[render]  painting onto a canvas grid, charset-aware (Unicode/ASCII)
//	     ↓
//	rendered text
//
// [pipeline] wraps all five stages behind the single RenderDSL entry
// point shared by the CLI, the HTTP server, and the watch TUI.
//
// # Supporting packages
//
//   - [mmerr]: structured, code-tagged errors (parse/reference/routing/usage/layout/internal)
//   - [config]: the optional on-disk TOML configuration file
//   - [rendercache]: caches rendered output, keyed by source+config
//   - [gallery]: persists named diagrams for later re-rendering
//   - [debugdot]: exports the pre-layout GraphIR as a Graphviz SVG
//   - [buildinfo]: ldflags-injected version metadata
//   - [httputil]: retry-with-backoff for the cache/gallery backends'
//     external connections (Redis, MongoDB)
package pkg

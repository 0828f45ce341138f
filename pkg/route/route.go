package route

import "github.com/flowtext/mmdascii/pkg/layout"

// Route turns every edge chain in res into one RoutedEdge, preferring A*
// obstacle-avoiding pathfinding and falling back to the orthogonal-
// waypoint mode when A* cannot reach the goal.
func Route(res *layout.Result) []RoutedEdge {
	nodeByID := make(map[string]layout.LayoutNode, len(res.Nodes))
	for _, n := range res.Nodes {
		nodeByID[n.ID] = n
	}
	grid := BuildOccupancy(res)

	routed := make([]RoutedEdge, 0, len(res.Chains))
	for _, chain := range res.Chains {
		var waypoints []Point
		var fallback bool
		if chain.OrigFrom == chain.OrigTo {
			if n, ok := nodeByID[chain.OrigFrom]; ok {
				waypoints = RouteSelfLoop(n)
			}
		} else {
			waypoints, fallback = routeChain(grid, nodeByID, res, chain)
		}
		for _, p := range waypoints {
			grid.MarkEdgeUsed(p.X, p.Y)
		}
		routed = append(routed, RoutedEdge{
			FromID:    chain.OrigFrom,
			ToID:      chain.OrigTo,
			Label:     chain.Label,
			Type:      chain.Type,
			Reversed:  chain.Reversed,
			Waypoints: waypoints,
			Fallback:  fallback,
		})
	}
	return routed
}

func routeChain(grid *OccupancyGrid, nodeByID map[string]layout.LayoutNode, res *layout.Result, chain layout.EdgeChain) ([]Point, bool) {
	fromNode, ok1 := nodeByID[chain.Path[0]]
	toNode, ok2 := nodeByID[chain.Path[len(chain.Path)-1]]
	if !ok1 || !ok2 {
		return WaypointRoute(nodeByID, res.DummyPositions, res.Direction, chain), true
	}

	start := borderAttach(fromNode, res.Direction, true)
	goal := borderAttach(toNode, res.Direction, false)

	path := AStar(grid, start, goal)
	if path == nil {
		return WaypointRoute(nodeByID, res.DummyPositions, res.Direction, chain), true
	}
	return SimplifyPath(path), false
}

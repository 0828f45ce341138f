package route

import (
	"testing"

	"github.com/flowtext/mmdascii/pkg/ast"
	"github.com/flowtext/mmdascii/pkg/layout"
)

func TestAStar_StraightLineHasNoTurns(t *testing.T) {
	grid := NewOccupancyGrid(10, 10)
	path := AStar(grid, Point{X: 0, Y: 0}, Point{X: 0, Y: 5})
	if path == nil {
		t.Fatal("expected a path")
	}
	for i := 1; i < len(path); i++ {
		if path[i].X != path[i-1].X {
			t.Fatalf("expected a straight vertical path, got %v", path)
		}
	}
	if got := path[len(path)-1]; got != (Point{X: 0, Y: 5}) {
		t.Errorf("path ends at %v, want (0,5)", got)
	}
}

func TestAStar_RoutesAroundObstacle(t *testing.T) {
	grid := NewOccupancyGrid(10, 10)
	grid.MarkNodeRect(2, 0, 3, 10) // vertical wall blocking x=3 (interior of [2,5))

	path := AStar(grid, Point{X: 0, Y: 5}, Point{X: 9, Y: 5})
	if path == nil {
		t.Fatal("expected a detour path")
	}
	for _, p := range path {
		if grid.IsNodeInterior(p.X, p.Y) && p != (Point{X: 9, Y: 5}) {
			t.Errorf("path enters blocked cell %v", p)
		}
	}
}

func TestSimplifyPath_CollapsesCollinearRuns(t *testing.T) {
	path := []Point{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 3}, {2, 3}}
	got := SimplifyPath(path)
	want := []Point{{0, 0}, {0, 3}, {2, 3}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRouteSelfLoop_StaysOrthogonalAndOutsideBox(t *testing.T) {
	n := layout.LayoutNode{ID: "A", X: 0, Y: 0, Width: 5, Height: 4}
	pts := RouteSelfLoop(n)
	if len(pts) < 2 {
		t.Fatalf("expected at least two waypoints, got %v", pts)
	}
	for i := 1; i < len(pts); i++ {
		dx, dy := pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y
		if dx != 0 && dy != 0 {
			t.Errorf("segment %d->%d is not orthogonal: %v -> %v", i-1, i, pts[i-1], pts[i])
		}
		if dx == 0 && dy == 0 {
			t.Errorf("segment %d->%d repeats a point", i-1, i)
		}
	}
	for _, p := range pts {
		if p.X >= n.X+1 && p.X <= n.X+n.Width-2 && p.Y >= n.Y+1 && p.Y <= n.Y+n.Height-2 {
			t.Errorf("waypoint %v lies inside node interior %+v", p, n)
		}
	}
}

func TestRoute_RoutesSelfLoopsAndChains(t *testing.T) {
	res := &layout.Result{
		Direction: ast.DirectionTD,
		Nodes: []layout.LayoutNode{
			{ID: "A", X: 0, Y: 0, Width: 5, Height: 3},
			{ID: "B", X: 0, Y: 6, Width: 5, Height: 3},
		},
		Chains: []layout.EdgeChain{
			{OrigFrom: "A", OrigTo: "B", Type: ast.EdgeArrow, Path: []string{"A", "B"}},
			{OrigFrom: "A", OrigTo: "A", Type: ast.EdgeArrow, Path: []string{"A", "A"}},
		},
		DummyPositions: map[string]layout.Point{},
	}

	routed := Route(res)
	if len(routed) != 2 {
		t.Fatalf("got %d routed edges, want 2", len(routed))
	}
	for _, r := range routed {
		if len(r.Waypoints) == 0 {
			t.Errorf("edge %s->%s has no waypoints", r.FromID, r.ToID)
		}
		for i := 1; i < len(r.Waypoints); i++ {
			a, b := r.Waypoints[i-1], r.Waypoints[i]
			if a.X != b.X && a.Y != b.Y {
				t.Errorf("edge %s->%s waypoint %d->%d not orthogonal: %v -> %v", r.FromID, r.ToID, i-1, i, a, b)
			}
			if a == b {
				t.Errorf("edge %s->%s repeats waypoint %v", r.FromID, r.ToID, a)
			}
		}
	}
}

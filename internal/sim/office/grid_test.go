package office

import (
	"testing"

	"officegrid/internal/protocol"
)

func TestGridRebuild_StampsFootprint(t *testing.T) {
	g := NewGrid(14, 14)
	g.Rebuild([]protocol.PlacedItem{
		{Name: "deskComputer", GridPosition: protocol.Vec2{0, 0}, Size: protocol.Vec2{3, 2}},
	})
	for x := 0; x < 3; x++ {
		for y := 0; y < 2; y++ {
			if g.IsWalkable(x, y) {
				t.Fatalf("cell (%d,%d) should be blocked", x, y)
			}
		}
	}
	if !g.IsWalkable(3, 0) {
		t.Fatalf("cell (3,0) outside the footprint should be walkable")
	}
	if !g.IsWalkable(0, 2) {
		t.Fatalf("cell (0,2) outside the footprint should be walkable")
	}
}

func TestGridRebuild_RotationSwapsFootprint(t *testing.T) {
	g := NewGrid(14, 14)
	g.Rebuild([]protocol.PlacedItem{
		{Name: "deskComputer", GridPosition: protocol.Vec2{0, 0}, Size: protocol.Vec2{3, 2}, Rotation: 1},
	})
	// 3x2 rotated a quarter turn occupies 2x3.
	if g.IsWalkable(1, 2) {
		t.Fatalf("cell (1,2) should be blocked after rotation")
	}
	if !g.IsWalkable(2, 0) {
		t.Fatalf("cell (2,0) should be walkable after rotation")
	}
}

func TestGridRebuild_WalkableAndWallItemsDoNotBlock(t *testing.T) {
	g := NewGrid(10, 10)
	g.Rebuild([]protocol.PlacedItem{
		{Name: "rugSquare", GridPosition: protocol.Vec2{0, 0}, Size: protocol.Vec2{4, 4}, Walkable: true},
		{Name: "paneling", GridPosition: protocol.Vec2{5, 5}, Size: protocol.Vec2{2, 1}, Wall: true},
	})
	for _, p := range []protocol.Vec2{{0, 0}, {3, 3}, {5, 5}, {6, 5}} {
		if !g.IsWalkable(p[0], p[1]) {
			t.Fatalf("cell %v should be walkable", p)
		}
	}
}

func TestGridRebuild_ResetsPreviousLayout(t *testing.T) {
	g := NewGrid(10, 10)
	g.Rebuild([]protocol.PlacedItem{
		{Name: "desk", GridPosition: protocol.Vec2{0, 0}, Size: protocol.Vec2{2, 2}},
	})
	g.Rebuild([]protocol.PlacedItem{
		{Name: "desk", GridPosition: protocol.Vec2{5, 5}, Size: protocol.Vec2{2, 2}},
	})
	if !g.IsWalkable(0, 0) {
		t.Fatalf("old footprint survived a rebuild")
	}
	if g.IsWalkable(5, 5) {
		t.Fatalf("new footprint not stamped")
	}
}

func TestGrid_OutOfRange(t *testing.T) {
	g := NewGrid(4, 4)
	if g.IsWalkable(-1, 0) || g.IsWalkable(0, -1) || g.IsWalkable(4, 0) || g.IsWalkable(0, 4) {
		t.Fatalf("out-of-range cells must read as blocked")
	}
	// Out-of-range writes are dropped, not panics.
	g.SetWalkable(-1, -1, false)
	g.SetWalkable(99, 99, false)
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGrid(4, 4)
	c := g.Clone()
	c.SetWalkable(1, 1, false)
	if !g.IsWalkable(1, 1) {
		t.Fatalf("mutating the clone leaked into the original")
	}
}

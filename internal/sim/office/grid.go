package office

import "officegrid/internal/protocol"

// Grid is a dense walkability matrix. It is derived entirely from the room's
// item layout; nothing outside Rebuild flips cells. Out-of-range access is a
// no-op (false for reads) rather than a panic.
type Grid struct {
	width  int
	height int
	cells  []bool // true = walkable
}

func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height, cells: make([]bool, width*height)}
	for i := range g.cells {
		g.cells[i] = true
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) IsWalkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.width+x]
}

func (g *Grid) SetWalkable(x, y int, walkable bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = walkable
}

// Clone returns a private copy for pathfinding so an in-flight search is never
// torn by a rebuild.
func (g *Grid) Clone() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Rebuild resets every cell to walkable and then stamps the rotated footprint
// of each blocking item. Items flagged walkable or wall never occlude.
func (g *Grid) Rebuild(items []protocol.PlacedItem) {
	for i := range g.cells {
		g.cells[i] = true
	}
	for _, item := range items {
		if item.Walkable || item.Wall {
			continue
		}
		w, h := item.Size[0], item.Size[1]
		if item.Rotation == 1 || item.Rotation == 3 {
			w, h = h, w
		}
		for dx := 0; dx < w; dx++ {
			for dy := 0; dy < h; dy++ {
				g.SetWalkable(item.GridPosition[0]+dx, item.GridPosition[1]+dy, false)
			}
		}
	}
}

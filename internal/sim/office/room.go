package office

import (
	"math/rand"

	"officegrid/internal/protocol"
)

// Room is one simulation space: static geometry, mutable furniture, the live
// grid derived from it, and the characters currently inside. All access runs
// on the office loop goroutine.
type Room struct {
	ID           string
	Name         string
	Password     string
	Size         protocol.Vec2
	GridDivision int
	Items        []protocol.PlacedItem
	Characters   []*protocol.Character

	grid *Grid
}

const (
	defaultRoomW        = 7
	defaultRoomH        = 7
	defaultGridDivision = 2

	// Spawn sampling is bounded so an intentionally packed room degrades
	// instead of hanging the loop.
	spawnAttempts = 100
)

func newRoom(id, name, password string, size protocol.Vec2, division int, items []protocol.PlacedItem) *Room {
	if size[0] <= 0 || size[1] <= 0 {
		size = protocol.Vec2{defaultRoomW, defaultRoomH}
	}
	if division <= 0 {
		division = defaultGridDivision
	}
	r := &Room{
		ID:           id,
		Name:         name,
		Password:     password,
		Size:         size,
		GridDivision: division,
		Items:        items,
		grid:         NewGrid(size[0]*division, size[1]*division),
	}
	r.grid.Rebuild(r.Items)
	return r
}

func (r *Room) Grid() *Grid { return r.grid }

// replaceItems swaps the furniture layout and rebuilds the grid before
// returning, so no observer ever sees the grid stale against the items.
func (r *Room) replaceItems(items []protocol.PlacedItem) {
	r.Items = items
	r.grid.Rebuild(r.Items)
}

// randomWalkable samples up to spawnAttempts uniform cells and returns the
// first walkable one. When every sample lands on furniture the origin cell is
// returned as a best-effort placement.
func (r *Room) randomWalkable(rng *rand.Rand) protocol.Vec2 {
	w := r.Size[0] * r.GridDivision
	h := r.Size[1] * r.GridDivision
	for i := 0; i < spawnAttempts; i++ {
		x := rng.Intn(w)
		y := rng.Intn(h)
		if r.grid.IsWalkable(x, y) {
			return protocol.Vec2{x, y}
		}
	}
	return protocol.Vec2{0, 0}
}

func (r *Room) summary() protocol.RoomSummary {
	return protocol.RoomSummary{ID: r.ID, Name: r.Name, NbCharacters: len(r.Characters)}
}

func (r *Room) mapData() protocol.MapData {
	return protocol.MapData{GridDivision: r.GridDivision, Size: r.Size, Items: r.Items}
}

func (r *Room) character(id string) *protocol.Character {
	for _, c := range r.Characters {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (r *Room) removeCharacter(id string) bool {
	for i, c := range r.Characters {
		if c.ID == id {
			r.Characters = append(r.Characters[:i], r.Characters[i+1:]...)
			return true
		}
	}
	return false
}

// characterList copies the roster for broadcasting.
func (r *Room) characterList() []protocol.Character {
	out := make([]protocol.Character, 0, len(r.Characters))
	for _, c := range r.Characters {
		out = append(out, *c)
	}
	return out
}

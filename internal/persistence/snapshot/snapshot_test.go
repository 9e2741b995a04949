package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func sampleDoc() Document {
	return Document{Rooms: []RoomV1{
		{
			ID:           "lobby",
			Name:         "Lobby",
			Password:     "pw",
			Size:         [2]int{7, 7},
			GridDivision: 2,
			Items: []ItemV1{
				{Name: "deskComputer", GridPosition: [2]int{0, 0}, Size: [2]int{3, 2}},
				{Name: "rugSquare", GridPosition: [2]int{5, 5}, Size: [2]int{4, 4}, Walkable: true},
			},
		},
	}}
}

func TestWriteLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	if err := Write(path, sampleDoc()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rooms, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("rooms=%d want 1", len(rooms))
	}
	r := rooms[0]
	if r.ID != "lobby" || r.Password != "pw" || r.GridDivision != 2 {
		t.Fatalf("room=%+v", r)
	}
	if len(r.Items) != 2 || r.Items[1].Walkable != true {
		t.Fatalf("items=%+v", r.Items)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestLoadWithFallback(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "default.json")
	if err := Write(fallback, sampleDoc()); err != nil {
		t.Fatalf("write fallback: %v", err)
	}

	missing := filepath.Join(dir, "rooms.json")
	rooms, from, err := LoadWithFallback(missing, fallback)
	if err != nil {
		t.Fatalf("fallback load: %v", err)
	}
	if from != fallback || len(rooms) != 1 {
		t.Fatalf("from=%q rooms=%d", from, len(rooms))
	}

	// Once the primary exists it wins.
	if err := Write(missing, Document{Rooms: []RoomV1{{ID: "live", Name: "Live"}}}); err != nil {
		t.Fatalf("write primary: %v", err)
	}
	rooms, from, err = LoadWithFallback(missing, fallback)
	if err != nil {
		t.Fatalf("primary load: %v", err)
	}
	if from != missing || rooms[0].ID != "live" {
		t.Fatalf("from=%q rooms=%+v", from, rooms)
	}
}

func TestLoadWithFallback_BothMissing(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := LoadWithFallback(filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")); err == nil {
		t.Fatalf("both documents missing but no error")
	}
}

func TestArchive_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteArchive(dir, sampleDoc(), 5); err != nil {
		t.Fatalf("archive: %v", err)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "rooms-*.json.zst"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("archives=%v err=%v", matches, err)
	}
	rooms, err := ReadArchive(matches[0])
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != "lobby" {
		t.Fatalf("rooms=%+v", rooms)
	}
}

func TestArchive_Prunes(t *testing.T) {
	dir := t.TempDir()
	// Fabricate stale archives that sort before any live timestamp.
	for _, name := range []string{"rooms-0000000000001.json.zst", "rooms-0000000000002.json.zst", "rooms-0000000000003.json.zst"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := WriteArchive(dir, sampleDoc(), 2); err != nil {
		t.Fatalf("archive: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "rooms-*.json.zst"))
	if len(matches) != 2 {
		t.Fatalf("archives after prune=%v want 2", matches)
	}
	// The newest archive survives and is still readable.
	if _, err := ReadArchive(matches[len(matches)-1]); err != nil {
		t.Fatalf("newest archive unreadable: %v", err)
	}
}

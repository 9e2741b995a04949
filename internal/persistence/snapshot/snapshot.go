// Package snapshot persists the room layout document. The live file is plain
// JSON (it doubles as the hand-editable room config); each accepted write also
// drops a zstd-compressed archive copy for recovery.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauspost/compress/zstd"
)

type Document struct {
	Rooms []RoomV1
}

type RoomV1 struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Password     string   `json:"password,omitempty"`
	Size         [2]int   `json:"size,omitempty"`
	GridDivision int      `json:"gridDivision,omitempty"`
	Items        []ItemV1 `json:"items"`
}

type ItemV1 struct {
	Name         string `json:"name"`
	GridPosition [2]int `json:"gridPosition"`
	Rotation     int    `json:"rotation,omitempty"`
	Size         [2]int `json:"size,omitempty"`
	Walkable     bool   `json:"walkable,omitempty"`
	Wall         bool   `json:"wall,omitempty"`
}

// Load reads a rooms document (a JSON array of rooms).
func Load(path string) ([]RoomV1, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rooms []RoomV1
	if err := json.Unmarshal(b, &rooms); err != nil {
		return nil, fmt.Errorf("parse rooms document %s: %w", path, err)
	}
	return rooms, nil
}

// LoadWithFallback tries the primary document first and falls back to the
// bundled default. Both missing is fatal to the caller.
func LoadWithFallback(primary, fallback string) ([]RoomV1, string, error) {
	rooms, err := Load(primary)
	if err == nil {
		return rooms, primary, nil
	}
	if !os.IsNotExist(err) {
		return nil, "", err
	}
	rooms, err = Load(fallback)
	if err != nil {
		return nil, "", fmt.Errorf("no rooms document at %s or %s: %w", primary, fallback, err)
	}
	return rooms, fallback, nil
}

// Write replaces the live document atomically (temp file + rename).
func Write(path string, doc Document) error {
	b, err := json.MarshalIndent(doc.Rooms, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// WriteArchive stores a compressed copy next to the live document and prunes
// old archives beyond keep.
func WriteArchive(dir string, doc Document, keep int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(doc.Rooms)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("rooms-%d.json.zst", time.Now().UnixMilli())
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := enc.Write(b); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return pruneArchives(dir, keep)
}

func pruneArchives(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "rooms-*.json.zst"))
	if err != nil {
		return err
	}
	if len(matches) <= keep {
		return nil
	}
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-keep] {
		if err := os.Remove(old); err != nil {
			return err
		}
	}
	return nil
}

// ReadArchive decompresses one archived document, mostly for recovery tooling
// and tests.
func ReadArchive(path string) ([]RoomV1, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(b, nil)
	if err != nil {
		return nil, err
	}
	var rooms []RoomV1
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

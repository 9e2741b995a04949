package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog is the static furniture catalog. It feeds both the walkability grid
// (footprint, walkable, wall) and the client rendering layer.
type Catalog struct {
	Items  map[string]ItemDef
	Digest string
}

type ItemDef struct {
	Name     string `yaml:"-" json:"name"`
	Size     [2]int `yaml:"size" json:"size"`
	Rotation int    `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Walkable bool   `yaml:"walkable,omitempty" json:"walkable,omitempty"`
	Wall     bool   `yaml:"wall,omitempty" json:"wall,omitempty"`
}

// Load reads items.yaml from the config directory.
func Load(configDir string) (*Catalog, error) {
	b, err := os.ReadFile(filepath.Join(configDir, "items.yaml"))
	if err != nil {
		return nil, fmt.Errorf("read items catalog: %w", err)
	}
	var raw map[string]ItemDef
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse items catalog: %w", err)
	}
	items := make(map[string]ItemDef, len(raw))
	for key, def := range raw {
		if def.Size[0] <= 0 || def.Size[1] <= 0 {
			return nil, fmt.Errorf("item %q: bad size %v", key, def.Size)
		}
		def.Name = key
		items[key] = def
	}
	c := &Catalog{Items: items}
	c.Digest = digest(items)
	return c, nil
}

func (c *Catalog) Lookup(name string) (ItemDef, bool) {
	def, ok := c.Items[name]
	return def, ok
}

// digest hashes the catalog in key order so it is stable across loads.
func digest(items map[string]ItemDef) string {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	h := sha256.New()
	for _, k := range keys {
		b, _ := json.Marshal(items[k])
		h.Write([]byte(k))
		h.Write(b)
	}
	return hex.EncodeToString(h.Sum(nil))
}

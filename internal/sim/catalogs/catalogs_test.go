package catalogs

import "testing"

func TestLoad_Catalog(t *testing.T) {
	c, err := Load("../../../configs")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Items) == 0 {
		t.Fatalf("empty catalog")
	}

	desk, ok := c.Lookup("deskComputer")
	if !ok {
		t.Fatalf("deskComputer missing")
	}
	if desk.Size != [2]int{3, 2} {
		t.Fatalf("deskComputer size=%v want [3 2]", desk.Size)
	}
	if desk.Name != "deskComputer" {
		t.Fatalf("name=%q not backfilled from key", desk.Name)
	}

	rug, ok := c.Lookup("rugSquare")
	if !ok {
		t.Fatalf("rugSquare missing")
	}
	if !rug.Walkable {
		t.Fatalf("rugSquare should be walkable")
	}

	if _, ok := c.Lookup("nope"); ok {
		t.Fatalf("lookup of unknown item succeeded")
	}
}

func TestLoad_DigestStable(t *testing.T) {
	a, err := Load("../../../configs")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b, err := Load("../../../configs")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a.Digest == "" || a.Digest != b.Digest {
		t.Fatalf("digest unstable: %q vs %q", a.Digest, b.Digest)
	}
}

func TestLoad_MissingDir(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatalf("load from a dir without items.yaml succeeded")
	}
}

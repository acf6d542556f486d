package usecase

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLinkMapCacheDefaults(t *testing.T) {
	c := NewLinkMapCache("")
	m := c.Get()

	entry, ok := m["19(1)(a)"]
	if !ok {
		t.Fatal("default map missing 19(1)(a)")
	}
	if len(entry.LinkedSections) != 2 || entry.LinkedSections[0] != "69A IT Act" {
		t.Errorf("unexpected linked sections: %v", entry.LinkedSections)
	}
	if _, ok := m["226"]; !ok {
		t.Error("default map missing 226")
	}
}

func TestLinkMapCacheMissingFileFallsBack(t *testing.T) {
	c := NewLinkMapCache(filepath.Join(t.TempDir(), "absent.json"))
	if _, ok := c.Get()["32"]; !ok {
		t.Error("missing override file must leave defaults in place")
	}
}

func TestLinkMapCacheOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "links.yaml")
	content := "\"21\":\n  linked_sections: [\"41 CrPC\"]\n  keywords: [liberty, detention]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewLinkMapCache(path)
	m := c.Get()
	entry, ok := m["21"]
	if !ok {
		t.Fatal("override entry for 21 not loaded")
	}
	if len(entry.Keywords) != 2 || entry.Keywords[0] != "liberty" {
		t.Errorf("unexpected keywords: %v", entry.Keywords)
	}
	if _, ok := m["19(2)"]; !ok {
		t.Error("override must layer on top of defaults, not replace them")
	}
}

func TestLinkMapCacheReloadSurfacesErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "links.json")
	if err := os.WriteFile(path, []byte(`{"21": {"Keywords": ["liberty"]}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewLinkMapCache(path)
	if _, ok := c.Get()["21"]; !ok {
		t.Fatal("initial load failed")
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := c.Reload(); err == nil {
		t.Error("Reload must report a parse error")
	}
	if _, ok := c.Get()["21"]; !ok {
		t.Error("failed reload must keep the previous map")
	}
}

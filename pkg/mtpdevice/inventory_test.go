package mtpdevice

import (
	"testing"

	"mtpsync/pkg/inventory"
)

func TestCollectorLoadBuildsPathsAndAttachments(t *testing.T) {
	lib := NewFakeLibrary()
	device := lib.AddDevice("Test Player", "SN123", 0x00010001, 1<<20)
	lib.Seed(device, "music/one.mp3", false, []byte("one"))
	lib.Seed(device, "music/two.mp3", false, []byte("two"))
	lib.Seed(device, "photos", true, nil)

	c := &Collector{Library: lib, Device: device, StorageID: 0x00010001}
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, path := range []string{"/music", "/music/one.mp3", "/music/two.mp3", "/photos"} {
		d, ok := c.Get(path)
		if !ok {
			t.Fatalf("expected %s to be present after Load", path)
		}
		if path == "/music/one.mp3" || path == "/music/two.mp3" {
			if d.IsFolder {
				t.Errorf("%s should not be a folder", path)
			}
			if _, ok := ObjectIDOf(d); !ok {
				t.Errorf("%s should carry an object id attachment", path)
			}
		}
	}
}

func TestCollectorLoadIsDestructive(t *testing.T) {
	lib := NewFakeLibrary()
	device := lib.AddDevice("Test Player", "SN123", 1, 1<<20)
	lib.Seed(device, "a.mp3", false, []byte("a"))

	c := &Collector{Library: lib, Device: device, StorageID: 1}
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c.Add(inventory.New("/scratch.mp3", false))
	if _, ok := c.Get("/scratch.mp3"); !ok {
		t.Fatal("expected in-memory Add to be visible before reload")
	}

	if err := c.Load(); err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if _, ok := c.Get("/scratch.mp3"); ok {
		t.Error("expected a second Load to discard prior in-memory mutations")
	}
}

func TestCollectorFilter(t *testing.T) {
	lib := NewFakeLibrary()
	device := lib.AddDevice("Test Player", "SN123", 1, 1<<20)
	lib.Seed(device, "a/one.mp3", false, nil)
	lib.Seed(device, "a/two.mp3", false, nil)
	lib.Seed(device, "b/three.mp3", false, nil)

	c := &Collector{Library: lib, Device: device, StorageID: 1}
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := c.Filter("/a")
	if len(got) != 3 { // /a, /a/one.mp3, /a/two.mp3
		t.Fatalf("expected 3 entries under /a, got %d: %v", len(got), got)
	}
}

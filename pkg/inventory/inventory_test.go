package inventory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAncestorClosure(t *testing.T) {
	inv := FromDescriptors([]Descriptor{New("/a/b/c", false)})

	for _, path := range []string{"/", "/a", "/a/b", "/a/b/c"} {
		d, ok := inv.Get(path)
		if !ok {
			t.Fatalf("expected %q to be present", path)
		}
		if path != "/a/b/c" && !d.IsFolder {
			t.Errorf("ancestor %q should be a folder", path)
		}
	}
	if !inv["/"].IsFolder {
		t.Error("root must be a folder")
	}
}

func TestFilterPrefix(t *testing.T) {
	inv := FromDescriptors([]Descriptor{
		New("/a/b/c", false),
		New("/a/bc/d", false),
		New("/x/y", false),
	})

	got := inv.Filter("/a/b")
	want := []Descriptor{
		New("/a/b", true),
		New("/a/b/c", false),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter(/a/b) mismatch (-want +got):\n%s", diff)
	}

	all := inv.Filter("/")
	if len(all) != len(inv) {
		t.Errorf("Filter(/) returned %d entries, want %d", len(all), len(inv))
	}
}

func TestUniqueDeduplicatesByPath(t *testing.T) {
	got := Unique([]Descriptor{
		New("/a", false),
		New("/a", true), // later duplicate path, first wins
		New("/b", false),
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 unique descriptors, got %d", len(got))
	}
	if got[0].IsFolder {
		t.Error("expected first occurrence of /a to win (IsFolder=false)")
	}
}

func TestAddDoesNotOverwrite(t *testing.T) {
	inv := NewInventory()
	inv.Add(New("/a/b", false))
	inv.Add(New("/a/b", true))
	d, _ := inv.Get("/a/b")
	if d.IsFolder {
		t.Error("Add should not overwrite an existing entry")
	}
}

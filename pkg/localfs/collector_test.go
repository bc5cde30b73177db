package localfs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestCollectDescendantsMissingRoot(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "does-not-exist")

	got, err := CollectDescendants(missing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no descriptors for a missing root, got %v", got)
	}
}

func TestCollectDescendantsWalksFilesOnly(t *testing.T) {
	dir := t.TempDir()

	mustMkdir(t, filepath.Join(dir, "one"))
	mustMkdir(t, filepath.Join(dir, "one", "nested"))
	mustMkdir(t, filepath.Join(dir, "two"))
	mustWriteFile(t, filepath.Join(dir, "one", "a.mp3"))
	mustWriteFile(t, filepath.Join(dir, "one", "nested", "b.mp3"))
	mustWriteFile(t, filepath.Join(dir, "two", "c.mp3"))
	mustMkdir(t, filepath.Join(dir, "two", "empty"))

	descriptors, err := CollectDescendants(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, d := range descriptors {
		if d.IsFolder {
			t.Errorf("CollectDescendants must not emit folder entries, got %q", d.Path)
		}
		got = append(got, d.Path)
	}
	sort.Strings(got)

	want := []string{
		filepath.Join(dir, "one", "a.mp3"),
		filepath.Join(dir, "one", "nested", "b.mp3"),
		filepath.Join(dir, "two", "c.mp3"),
	}
	sort.Strings(want)

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestCollectDescendantsSingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "solo.mp3")
	mustWriteFile(t, file)

	descriptors, err := CollectDescendants(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(descriptors) != 1 || descriptors[0].Path != file || descriptors[0].IsFolder {
		t.Fatalf("expected a single file descriptor for %s, got %v", file, descriptors)
	}
}

func TestCollectAncestorsStopsAtFirstMissingSegment(t *testing.T) {
	dir := t.TempDir()
	mustMkdir(t, filepath.Join(dir, "a"))
	mustMkdir(t, filepath.Join(dir, "a", "b"))

	target := filepath.Join(dir, "a", "b", "c", "d")

	descriptors, err := CollectAncestors(target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := descriptors[len(descriptors)-1].Path
	if last != filepath.Join(dir, "a", "b") {
		t.Errorf("expected chain to stop at %s, got %s", filepath.Join(dir, "a", "b"), last)
	}
	for _, d := range descriptors[:len(descriptors)-1] {
		if !d.IsFolder && d.Path != "/" {
			t.Errorf("ancestor %q expected to be a folder", d.Path)
		}
	}
}

func TestCollectAncestorsFullChainExists(t *testing.T) {
	dir := t.TempDir()
	mustMkdir(t, filepath.Join(dir, "a"))
	mustMkdir(t, filepath.Join(dir, "a", "b"))
	mustWriteFile(t, filepath.Join(dir, "a", "b", "c.mp3"))

	target := filepath.Join(dir, "a", "b", "c.mp3")

	descriptors, err := CollectAncestors(target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := descriptors[len(descriptors)-1]
	if last.Path != target || last.IsFolder {
		t.Errorf("expected last descriptor to be the file itself, got %+v", last)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("unable to create directory %s: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("unable to write file %s: %v", path, err)
	}
}

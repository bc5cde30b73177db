package mtpdevice

import (
	"os"
	"path/filepath"
	"testing"

	"mtpsync/pkg/errs"
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/planner"
)

func newTestExecutor(t *testing.T) (*FakeLibrary, RawDevice, *Collector, *Executor) {
	t.Helper()
	lib := NewFakeLibrary()
	device := lib.AddDevice("Test Player", "SN1", 1, 1<<20)
	c := &Collector{Library: lib, Device: device, StorageID: 1}
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	info, _ := lib.Open(device)
	volume := info.Storage[0]
	e := &Executor{Collector: c, Volume: &volume}
	return lib, device, c, e
}

func TestExecutorMkdirCreatesAndIsIdempotent(t *testing.T) {
	_, _, c, e := newTestExecutor(t)

	step := planner.Step{Action: planner.MKDIR, Target: inventory.New("/music", true)}
	if err := e.Apply([]planner.Step{step}); err != nil {
		t.Fatalf("first MKDIR failed: %v", err)
	}
	if _, ok := c.Get("/music"); !ok {
		t.Fatal("expected /music to be present after MKDIR")
	}

	if err := e.Apply([]planner.Step{step}); err != nil {
		t.Fatalf("second MKDIR on an existing folder should succeed, got %v", err)
	}
}

func TestExecutorMkdirAlreadyExistsAsFile(t *testing.T) {
	lib, device, c, e := newTestExecutor(t)
	lib.Seed(device, "music", false, []byte("not a folder"))
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	e.Collector = c

	step := planner.Step{Action: planner.MKDIR, Target: inventory.New("/music", true)}
	err := e.Apply([]planner.Step{step})
	if errs.KindOf(err) != errs.KindAlreadyExists {
		t.Fatalf("expected ALREADY_EXISTS, got %v", err)
	}
}

func TestExecutorXferTransfersAndUpdatesInventory(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(localPath, []byte("hello world"), 0o644); err != nil {
		t.Fatalf("unable to write local fixture: %v", err)
	}

	_, _, c, e := newTestExecutor(t)

	mkdir := planner.Step{Action: planner.MKDIR, Target: inventory.New("/music", true)}
	source := inventory.New(localPath, false)
	xfer := planner.Step{Action: planner.XFER, Source: &source, Target: inventory.New("/music/song.mp3", false)}

	if err := e.Apply([]planner.Step{mkdir, xfer}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	d, ok := c.Get("/music/song.mp3")
	if !ok {
		t.Fatal("expected /music/song.mp3 to be present after XFER")
	}
	if _, ok := ObjectIDOf(d); !ok {
		t.Error("expected the transferred descriptor to carry an object id")
	}
}

func TestExecutorXferAlreadyExistsIsSkippedNotFatal(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "song.mp3")
	os.WriteFile(localPath, []byte("hello"), 0o644)

	lib, device, c, e := newTestExecutor(t)
	lib.Seed(device, "song.mp3", false, []byte("already there"))
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	e.Collector = c

	source := inventory.New(localPath, false)
	xfer := planner.Step{Action: planner.XFER, Source: &source, Target: inventory.New("/song.mp3", false)}

	if err := e.Apply([]planner.Step{xfer}); err != nil {
		t.Fatalf("expected ALREADY_EXISTS on XFER to be swallowed as non-fatal, got %v", err)
	}
}

func TestExecutorXferNoSpace(t *testing.T) {
	dir := t.TempDir()
	localPath := filepath.Join(dir, "big.mp3")
	os.WriteFile(localPath, make([]byte, 1024), 0o644)

	lib := NewFakeLibrary()
	device := lib.AddDevice("Test Player", "SN1", 1, 16)
	c := &Collector{Library: lib, Device: device, StorageID: 1}
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	info, _ := lib.Open(device)
	volume := info.Storage[0]
	e := &Executor{Collector: c, Volume: &volume}

	source := inventory.New(localPath, false)
	xfer := planner.Step{Action: planner.XFER, Source: &source, Target: inventory.New("/big.mp3", false)}

	err := e.Apply([]planner.Step{xfer})
	if errs.KindOf(err) != errs.KindNoSpace {
		t.Fatalf("expected NO_SPACE, got %v", err)
	}
}

func TestExecutorRmRemovesFromLiveInventory(t *testing.T) {
	lib, device, c, e := newTestExecutor(t)
	lib.Seed(device, "gone.mp3", false, []byte("x"))
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	e.Collector = c

	target, ok := c.Get("/gone.mp3")
	if !ok {
		t.Fatal("fixture setup failed")
	}

	rm := planner.Step{Action: planner.RM, Target: target}
	if err := e.Apply([]planner.Step{rm}); err != nil {
		t.Fatalf("RM failed: %v", err)
	}
	if _, ok := c.Get("/gone.mp3"); ok {
		t.Error("expected /gone.mp3 to be removed from the live inventory")
	}
}

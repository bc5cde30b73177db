package localfs

import (
	"os"
	"path/filepath"
	"testing"

	"mtpsync/pkg/errs"
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/planner"
)

type fakeFetcher struct {
	content map[string][]byte
	calls   []string
}

func (f *fakeFetcher) FetchFile(source inventory.Descriptor, destinationPath string, progress func(transferred, total int64)) error {
	f.calls = append(f.calls, source.Path)
	data := f.content[source.Path]
	if progress != nil {
		progress(int64(len(data)), int64(len(data)))
	}
	return os.WriteFile(destinationPath, data, 0o644)
}

func TestExecutorMkdirCreatesAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "music")
	executor := &Executor{}

	if err := executor.mkdir(inventory.New(target, true)); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s", target)
	}

	if err := executor.mkdir(inventory.New(target, true)); err != nil {
		t.Fatalf("expected idempotent mkdir, got %v", err)
	}
}

func TestExecutorMkdirAlreadyExistsAsFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	executor := &Executor{}
	err := executor.mkdir(inventory.New(target, true))
	if errs.KindOf(err) != errs.KindAlreadyExists {
		t.Fatalf("expected KindAlreadyExists, got %v", err)
	}
}

func TestExecutorXferFetchesIntoTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "song.mp3")
	fetcher := &fakeFetcher{content: map[string][]byte{"/Music/song.mp3": []byte("hello")}}
	executor := &Executor{Fetcher: fetcher}

	source := inventory.New("/Music/song.mp3", false)
	step := planner.Step{Action: planner.XFER, Source: &source, Target: inventory.New(target, false)}

	var reported int64
	executor.OnProgress = func(s planner.Step, transferred, total int64) { reported = transferred }

	if err := executor.Apply([]planner.Step{step}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected contents 'hello', got %q", data)
	}
	if reported != int64(len("hello")) {
		t.Fatalf("expected progress callback to report 5 bytes, got %d", reported)
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != "/Music/song.mp3" {
		t.Fatalf("expected fetcher called once with source path, got %v", fetcher.calls)
	}
}

func TestExecutorRmRemovesFileAndFolder(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	folder := filepath.Join(dir, "empty")
	if err := os.Mkdir(folder, 0o755); err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	executor := &Executor{}
	steps := []planner.Step{
		{Action: planner.RM, Target: inventory.New(file, false)},
		{Action: planner.RM, Target: inventory.New(folder, true)},
	}
	if err := executor.Apply(steps); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
	if _, err := os.Stat(folder); !os.IsNotExist(err) {
		t.Fatalf("expected folder removed, stat err = %v", err)
	}
}

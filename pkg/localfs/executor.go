package localfs

import (
	"os"

	"github.com/pkg/errors"

	"mtpsync/pkg/errs"
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/planner"
)

// Fetcher retrieves the content of a remote source descriptor into a local
// destination path, reporting progress via the provided callback. It is
// implemented in cmd/mtpsync on top of a pkg/mtpdevice Collector; pkg/localfs depends only
// on this narrow interface, never on pkg/mtpdevice directly, so the planner
// and its two executors stay symmetric (spec.md §9: "the planner never
// knows which realm will execute").
type Fetcher interface {
	FetchFile(source inventory.Descriptor, destinationPath string, progress func(transferred, total int64)) error
}

// Executor applies plan steps against the local POSIX filesystem (spec.md
// §4.7). Progress is reported through the optional OnProgress callback.
type Executor struct {
	Fetcher    Fetcher
	OnProgress func(step planner.Step, transferred, total int64)
}

// Apply executes steps in order, stopping and returning an error at the
// first step that fails. Already-applied steps are not rolled back.
func (e *Executor) Apply(steps []planner.Step) error {
	for _, step := range steps {
		if err := e.applyOne(step); err != nil {
			return errors.Wrapf(err, "unable to apply %s", step.Line())
		}
	}
	return nil
}

func (e *Executor) applyOne(step planner.Step) error {
	switch step.Action {
	case planner.MKDIR:
		return e.mkdir(step.Target)
	case planner.XFER:
		return e.xfer(step)
	case planner.RM:
		return e.rm(step.Target)
	default:
		return errs.New(errs.KindGeneric, "unknown plan action")
	}
}

func (e *Executor) mkdir(target inventory.Descriptor) error {
	info, err := os.Lstat(target.Path)
	if err == nil {
		if info.IsDir() {
			return nil
		}
		return errs.New(errs.KindAlreadyExists, target.Path+" exists and is not a directory")
	}
	if !os.IsNotExist(err) {
		return errors.Wrap(err, "unable to stat target directory")
	}
	if err := os.Mkdir(target.Path, 0o755); err != nil {
		return errors.Wrap(err, "unable to create directory")
	}
	return nil
}

func (e *Executor) xfer(step planner.Step) error {
	// Ordering invariant #4 (spec.md §3) guarantees the parent directory
	// already exists by the time an XFER step executes.
	progress := func(transferred, total int64) {
		if e.OnProgress != nil {
			e.OnProgress(step, transferred, total)
		}
	}
	if err := e.Fetcher.FetchFile(*step.Source, step.Target.Path, progress); err != nil {
		return errors.Wrap(err, "unable to fetch file")
	}
	return nil
}

func (e *Executor) rm(target inventory.Descriptor) error {
	if target.IsFolder {
		if err := os.Remove(target.Path); err != nil {
			return errors.Wrap(err, "unable to remove directory")
		}
		return nil
	}
	if err := os.Remove(target.Path); err != nil {
		return errors.Wrap(err, "unable to remove file")
	}
	return nil
}

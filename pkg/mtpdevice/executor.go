package mtpdevice

import (
	"os"

	"github.com/pkg/errors"

	"mtpsync/pkg/errs"
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/logging"
	"mtpsync/pkg/must"
	"mtpsync/pkg/pathutil"
	"mtpsync/pkg/planner"
)

// Executor applies plan steps against a live Collector's object tree
// (spec.md §4.6).
type Executor struct {
	Collector  *Collector
	Volume     *StorageVolume
	Logger     *logging.Logger
	OnProgress func(step planner.Step, transferred, total int64)
}

// Apply executes steps in order, stopping at the first failure, except that
// an XFER whose target is already present (ALREADY_EXISTS) is logged as a
// warning and skipped. A non-recoverable device error aborts the remaining
// plan; already-applied
// steps are not rolled back (spec.md §7: "the system is idempotent under
// re-runs").
func (e *Executor) Apply(steps []planner.Step) error {
	for _, step := range steps {
		if err := e.applyOne(step); err != nil {
			if errs.KindOf(err) == errs.KindAlreadyExists && step.Action == planner.XFER {
				if e.Logger != nil {
					e.Logger.Warnf("skipping %s: %v", step.Target.Path, err)
				}
				continue
			}
			return err
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
	if existing, ok := e.Collector.Get(target.Path); ok {
		if existing.IsFolder {
			return nil
		}
		return errs.New(errs.KindAlreadyExists, target.Path+" exists as a file on the device")
	}

	parentID, err := e.resolveParentID(target.Path)
	if err != nil {
		return err
	}

	name := pathutil.Basename(target.Path)
	id, err := e.Collector.Library.CreateFolder(e.Collector.Device, e.Collector.StorageID, parentID, name)
	if err != nil {
		return e.deviceError(err, "unable to create folder "+target.Path)
	}

	e.Collector.Add(inventory.New(target.Path, true).WithAttachment(objectAttachment{ID: id}))
	return nil
}

func (e *Executor) xfer(step planner.Step) error {
	target := step.Target
	if _, ok := e.Collector.Get(target.Path); ok {
		return errs.New(errs.KindAlreadyExists, target.Path+" already present on the device")
	}

	parentID, err := e.resolveParentID(target.Path)
	if err != nil {
		return err
	}

	info, err := os.Stat(step.Source.Path)
	if err != nil {
		return errors.Wrapf(err, "unable to stat local source %s", step.Source.Path)
	}
	size := info.Size()

	if e.Volume != nil && size > int64(e.Volume.FreeBytes) {
		return errs.New(errs.KindNoSpace, target.Path+" would exceed remaining device capacity")
	}

	file, err := os.Open(step.Source.Path)
	if err != nil {
		return errors.Wrapf(err, "unable to open local source %s", step.Source.Path)
	}
	defer must.Close(file, e.Logger)

	typeHint := TypeForExtension(pathutil.Basename(target.Path))
	name := pathutil.Basename(target.Path)

	progress := func(transferred, total int64) {
		if e.OnProgress != nil {
			e.OnProgress(step, transferred, total)
		}
	}

	id, err := e.Collector.Library.SendFile(e.Collector.Device, e.Collector.StorageID, parentID, file, name, size, typeHint, progress)
	if err != nil {
		return e.deviceError(err, "unable to send file "+target.Path)
	}

	e.Collector.Add(inventory.New(target.Path, false).WithAttachment(objectAttachment{ID: id}))
	if e.Volume != nil {
		e.Volume.FreeBytes -= uint64(size)
	}
	return nil
}

func (e *Executor) rm(target inventory.Descriptor) error {
	id, ok := ObjectIDOf(target)
	if !ok {
		live, ok := e.Collector.Get(target.Path)
		if !ok {
			return errs.New(errs.KindGeneric, "internal error: "+target.Path+" not found in live device inventory")
		}
		id, ok = ObjectIDOf(live)
		if !ok {
			return errs.New(errs.KindGeneric, "internal error: "+target.Path+" has no recorded object id")
		}
	}

	if err := e.Collector.Library.DeleteObject(e.Collector.Device, id); err != nil {
		return e.deviceError(err, "unable to delete "+target.Path)
	}
	e.Collector.Remove(target.Path)
	return nil
}

// resolveParentID returns the object id of path's parent folder, which must
// already be present in the live inventory (guaranteed by plan ordering:
// spec.md §4.5.3's MKDIR-shallowest-first rule).
func (e *Executor) resolveParentID(path string) (uint32, error) {
	parentPath := pathutil.Dirname(path)
	if parentPath == "/" {
		return RootID, nil
	}
	parent, ok := e.Collector.Get(parentPath)
	if !ok {
		return 0, errs.New(errs.KindGeneric, "internal error: parent "+parentPath+" missing from live device inventory")
	}
	id, ok := ObjectIDOf(parent)
	if !ok {
		return 0, errs.New(errs.KindGeneric, "internal error: parent "+parentPath+" has no recorded object id")
	}
	return id, nil
}

// deviceError drains the device library's error stack (spec.md §7) and
// wraps cause as a DEVICE_ERROR.
func (e *Executor) deviceError(cause error, message string) error {
	e.Collector.Library.DumpErrorStack(os.Stderr)
	return errs.Wrap(errs.KindDeviceError, errors.Wrap(cause, message))
}

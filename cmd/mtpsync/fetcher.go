package main

import (
	"os"

	"github.com/pkg/errors"

	"mtpsync/pkg/errs"
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/logging"
	"mtpsync/pkg/mtpdevice"
	"mtpsync/pkg/must"
)

// deviceFetcher adapts a mtpdevice.Collector to pkg/localfs.Fetcher, letting
// the local executor pull file content from the device without depending on
// pkg/mtpdevice directly (spec.md §9: "the planner never knows which realm
// will execute" — the same capability abstraction applies to the pull
// direction's local executor).
type deviceFetcher struct {
	collector *mtpdevice.Collector
	logger    *logging.Logger
}

func (f *deviceFetcher) FetchFile(source inventory.Descriptor, destinationPath string, progress func(transferred, total int64)) error {
	live, ok := f.collector.Get(source.Path)
	if !ok {
		return errs.New(errs.KindGeneric, "internal error: "+source.Path+" missing from device inventory")
	}
	id, ok := mtpdevice.ObjectIDOf(live)
	if !ok {
		return errs.New(errs.KindGeneric, "internal error: "+source.Path+" has no recorded object id")
	}

	out, err := os.Create(destinationPath)
	if err != nil {
		return errors.Wrapf(err, "unable to create local file %s", destinationPath)
	}
	defer must.Close(out, f.logger)

	if err := f.collector.Library.GetFile(f.collector.Device, id, out, progress); err != nil {
		return errs.Wrap(errs.KindDeviceError, errors.Wrapf(err, "unable to fetch %s", source.Path))
	}
	return nil
}

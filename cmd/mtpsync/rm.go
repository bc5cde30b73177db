package main

import (
	"github.com/spf13/cobra"

	"mtpsync/cmd"
	"mtpsync/pkg/cliargs"
	"mtpsync/pkg/errs"
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/mtpdevice"
	"mtpsync/pkg/pathutil"
	"mtpsync/pkg/planner"
)

var rmCommand = &cobra.Command{
	Use:                "rm <path>...",
	Short:              "Delete files or folders from the device",
	DisableFlagParsing: true,
	Run:                cmd.Mainify(rmMain),
}

// rmFlags omits --cleanup and --dry-run's sibling --recursive, since rm
// has no target inventory to reconcile against; it keeps device/storage
// filters, --yes, and --dry-run.
var rmFlags = cliargs.Spec{
	Bool:   map[string]string{"yes": "y", "dry-run": "n", "verbose": "v"},
	String: deviceStorageFlags.String,
}

func rmMain(_ *cobra.Command, arguments []string) error {
	result, err := cliargs.Parse(rmFlags, arguments)
	if err != nil {
		return errs.Wrap(errs.KindSyntax, err)
	}
	if len(result.Positional) == 0 {
		return errs.New(errs.KindSyntax, "rm requires at least one path")
	}

	device, _, volume, err := openVolume(result.Strings["device"], result.Strings["storage"])
	if err != nil {
		return err
	}
	defer library.Release(device)

	logger := sublogger("rm", result.Bools["verbose"])
	collector := &mtpdevice.Collector{Library: library, Device: device, StorageID: volume.ID, Logger: logger}
	if err := collector.Load(); err != nil {
		return errs.Wrap(errs.KindDeviceError, err)
	}

	var targets []inventory.Descriptor
	for _, raw := range result.Positional {
		// Open Question #1 (spec.md §9): rm paths are treated as absolute
		// device paths, never resolved against a local working directory; a
		// relative path is resolved against the device root.
		path := pathutil.ResolveCWD("/", raw)
		if _, ok := collector.Get(path); !ok {
			return errs.New(errs.KindGeneric, path+" not found on device")
		}
		// A folder target must remove its entire subtree; Filter returns
		// the entry itself plus every descendant.
		targets = append(targets, collector.Filter(path)...)
	}

	steps := planner.PlanRemove(targets)

	printPlan(steps)
	printSummary(steps, volume)

	if result.Bools["dry-run"] {
		return nil
	}
	if err := confirm(result.Bools["yes"]); err != nil {
		return err
	}

	executor := &mtpdevice.Executor{Collector: collector, Volume: volume, Logger: logger}
	return executor.Apply(steps)
}

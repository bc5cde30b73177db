package main

import (
	"github.com/spf13/cobra"

	"mtpsync/cmd"
	"mtpsync/pkg/cliargs"
	"mtpsync/pkg/errs"
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/localfs"
	"mtpsync/pkg/mtpdevice"
	"mtpsync/pkg/pathutil"
	"mtpsync/pkg/planner"
)

var pushCommand = &cobra.Command{
	Use:                "push <local-src> <device-dst>",
	Short:              "Send local files/folders to the device",
	DisableFlagParsing: true,
	Run:                cmd.Mainify(pushMain),
}

// syncFlags is shared by push and pull: device/storage filters plus
// --cleanup/-x, --yes/-y, and the --dry-run/-n supplement (SPEC_FULL.md §10).
var syncFlags = cliargs.Spec{
	Bool:   map[string]string{"cleanup": "x", "yes": "y", "dry-run": "n", "verbose": "v"},
	String: deviceStorageFlags.String,
}

func pushMain(_ *cobra.Command, arguments []string) error {
	result, err := cliargs.Parse(syncFlags, arguments)
	if err != nil {
		return errs.Wrap(errs.KindSyntax, err)
	}
	if len(result.Positional) != 2 {
		return errs.New(errs.KindSyntax, "push requires a local source and a device destination")
	}
	localSrc := pathutil.Resolve(result.Positional[0])
	deviceDst := pathutil.Normalize(result.Positional[1])

	device, _, volume, err := openVolume(result.Strings["device"], result.Strings["storage"])
	if err != nil {
		return err
	}
	defer library.Release(device)

	sourceFiles, err := localfs.CollectDescendants(localSrc)
	if err != nil {
		return err
	}
	sourceAncestors, err := localfs.CollectAncestors(localSrc)
	if err != nil {
		return err
	}
	sourceInv := inventory.FromDescriptors(append(sourceAncestors, sourceFiles...))

	logger := sublogger("push", result.Bools["verbose"])
	collector := &mtpdevice.Collector{Library: library, Device: device, StorageID: volume.ID, Logger: logger}
	if err := collector.Load(); err != nil {
		return errs.Wrap(errs.KindDeviceError, err)
	}

	specs := planner.BuildSpecs(sourceFiles, localSrc, deviceDst)
	cleanup := result.Bools["cleanup"]
	steps, err := planner.PlanSync(sourceInv, collector.Inventory(), specs, cleanup)
	if err != nil {
		return err
	}

	printPlan(steps)
	printSummary(steps, volume)

	if result.Bools["dry-run"] {
		return nil
	}
	if err := confirm(result.Bools["yes"]); err != nil {
		return err
	}

	report, finish := progressReporter()
	executor := &mtpdevice.Executor{Collector: collector, Volume: volume, Logger: logger, OnProgress: report}
	err = executor.Apply(steps)
	finish()
	return err
}

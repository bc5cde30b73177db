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

var pullCommand = &cobra.Command{
	Use:                "pull <device-src> [local-dst]",
	Short:              "Pull files/folders from the device",
	DisableFlagParsing: true,
	Run:                cmd.Mainify(pullMain),
}

func pullMain(_ *cobra.Command, arguments []string) error {
	result, err := cliargs.Parse(syncFlags, arguments)
	if err != nil {
		return errs.Wrap(errs.KindSyntax, err)
	}
	if len(result.Positional) < 1 || len(result.Positional) > 2 {
		return errs.New(errs.KindSyntax, "pull requires a device source and an optional local destination")
	}
	deviceSrc := pathutil.Normalize(result.Positional[0])

	var localDst string
	if len(result.Positional) == 2 {
		localDst = pathutil.Resolve(result.Positional[1])
	} else if deviceSrc == "/" {
		// spec.md §6.1: device-src at the root with no local-dst is
		// invalid, since there is no basename to derive a default from.
		return errs.New(errs.KindSyntax, "local-dst is required when device-src is the device root")
	} else {
		localDst = pathutil.Resolve("./" + pathutil.Basename(deviceSrc))
	}

	device, _, volume, err := openVolume(result.Strings["device"], result.Strings["storage"])
	if err != nil {
		return err
	}
	defer library.Release(device)

	logger := sublogger("pull", result.Bools["verbose"])
	collector := &mtpdevice.Collector{Library: library, Device: device, StorageID: volume.ID, Logger: logger}
	if err := collector.Load(); err != nil {
		return errs.Wrap(errs.KindDeviceError, err)
	}
	remoteFiles := filesOnly(collector.Filter(deviceSrc))

	localFiles, err := localfs.CollectDescendants(localDst)
	if err != nil {
		return err
	}
	localAncestors, err := localfs.CollectAncestors(localDst)
	if err != nil {
		return err
	}
	targetInv := inventory.FromDescriptors(append(localAncestors, localFiles...))

	specs := planner.BuildSpecs(remoteFiles, deviceSrc, localDst)
	remoteInv := inventory.FromDescriptors(remoteFiles)
	cleanup := result.Bools["cleanup"]
	steps, err := planner.PlanSync(remoteInv, targetInv, specs, cleanup)
	if err != nil {
		return err
	}

	printPlan(steps)
	printSummary(steps, nil)

	if result.Bools["dry-run"] {
		return nil
	}
	if err := confirm(result.Bools["yes"]); err != nil {
		return err
	}

	fetcher := &deviceFetcher{collector: collector, logger: logger}
	report, finish := progressReporter()
	executor := &localfs.Executor{Fetcher: fetcher, OnProgress: report}
	err = executor.Apply(steps)
	finish()
	return err
}

func filesOnly(descriptors []inventory.Descriptor) []inventory.Descriptor {
	var result []inventory.Descriptor
	for _, d := range descriptors {
		if !d.IsFolder {
			result = append(result, d)
		}
	}
	return result
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"mtpsync/cmd"
	"mtpsync/pkg/cliargs"
	"mtpsync/pkg/errs"
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/mtpdevice"
	"mtpsync/pkg/pathutil"
)

var lsCommand = &cobra.Command{
	Use:                "ls <path>",
	Short:              "Print descendants of a path on the device",
	DisableFlagParsing: true,
	Run:                cmd.Mainify(lsMain),
}

// lsFlags adds the --long/-l and --recursive/-R supplements (SPEC_FULL.md
// §10) to the shared device/storage flags.
var lsFlags = cliargs.Spec{
	Bool:   map[string]string{"long": "l", "recursive": "R", "verbose": "v"},
	String: deviceStorageFlags.String,
}

func lsMain(_ *cobra.Command, arguments []string) error {
	result, err := cliargs.Parse(lsFlags, arguments)
	if err != nil {
		return errs.Wrap(errs.KindSyntax, err)
	}
	if len(result.Positional) != 1 {
		return errs.New(errs.KindSyntax, "ls requires exactly one path")
	}
	path := pathutil.Normalize(result.Positional[0])

	device, _, volume, err := openVolume(result.Strings["device"], result.Strings["storage"])
	if err != nil {
		return err
	}
	defer library.Release(device)

	logger := sublogger("ls", result.Bools["verbose"])
	collector := &mtpdevice.Collector{Library: library, Device: device, StorageID: volume.ID, Logger: logger}
	if err := collector.Load(); err != nil {
		return errs.Wrap(errs.KindDeviceError, err)
	}

	entries := collector.Filter(path)
	if !result.Bools["recursive"] {
		entries = immediateChildren(entries, path)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	for _, entry := range entries {
		if entry.Path == path {
			continue
		}
		printLsEntry(entry, result.Bools["long"])
	}
	return nil
}

// immediateChildren narrows entries (already filtered to path's subtree) to
// only path's direct children, for the non-recursive default listing.
func immediateChildren(entries []inventory.Descriptor, path string) []inventory.Descriptor {
	var result []inventory.Descriptor
	for _, e := range entries {
		if e.Path == path {
			continue
		}
		if pathutil.Dirname(e.Path) == path {
			result = append(result, e)
		}
	}
	return result
}

func printLsEntry(entry inventory.Descriptor, long bool) {
	name := entry.Path
	if entry.IsFolder {
		name += "/"
	}
	if !long {
		fmt.Println(name)
		return
	}
	kind := "file"
	if entry.IsFolder {
		kind = "dir "
	}
	fmt.Printf("%s\t%s\n", kind, name)
}

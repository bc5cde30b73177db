package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mtpsync/cmd"
	"mtpsync/pkg/cliargs"
	"mtpsync/pkg/errs"
)

var devicesCommand = &cobra.Command{
	Use:                "devices",
	Short:              "Print each attached device and its storage volumes",
	DisableFlagParsing: true,
	Run:                cmd.Mainify(devicesMain),
}

// devicesFlags carries only -v/--verbose; devices has no device/storage
// filter since its purpose is to enumerate all of them.
var devicesFlags = cliargs.Spec{
	Bool: map[string]string{"verbose": "v"},
}

func devicesMain(_ *cobra.Command, arguments []string) error {
	result, err := cliargs.Parse(devicesFlags, arguments)
	if err != nil {
		return errs.Wrap(errs.KindSyntax, err)
	}
	logger := sublogger("devices", result.Bools["verbose"])

	if err := library.Initialize(); err != nil {
		return errs.Wrap(errs.KindDeviceError, err)
	}

	devices, err := library.EnumerateDevices()
	if err != nil {
		return errs.Wrap(errs.KindDeviceError, err)
	}
	logger.Debugf("enumerated %d device(s)", len(devices))

	for _, device := range devices {
		info, err := library.Open(device)
		if err != nil {
			return errs.Wrap(errs.KindDeviceError, err)
		}

		fmt.Printf("[%d] %s (SN:%s)\n", device.Index, info.FriendlyName, info.Serial)
		for _, volume := range info.Storage {
			// Nested storage-volume listing is a supplement beyond
			// spec.md's "print each attached device/storage pair"
			// (SPEC_FULL.md §10).
			fmt.Printf("    %08x  %s  %s free of %s\n",
				volume.ID, volume.Description, humanizeBytes(volume.FreeBytes), humanizeBytes(volume.MaxBytes))
		}

		library.Release(device)
	}

	return nil
}

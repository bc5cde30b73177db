package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"mtpsync/cmd"
	"mtpsync/pkg/cliargs"
	"mtpsync/pkg/errs"
	"mtpsync/pkg/logging"
	"mtpsync/pkg/mtpdevice"
	"mtpsync/pkg/planner"
)

// library is the mtpdevice.Library this binary drives every command
// through. mtpsync carries no cgo binding to libmtp (spec.md §6.2 treats
// the device library as an opaque external dependency supplied by the
// embedding program); a production build swaps this for a real binding,
// and mtpsync's own command layer exercises pkg/mtpdevice's fake the same
// way its tests do.
var library mtpdevice.Library = mtpdevice.NewFakeLibrary()

// deviceStorageFlags is the flag vocabulary shared by every command that
// talks to a device: -d/--device and -s/--storage (spec.md §6.1), plus
// -v/--verbose, which every orchestrator honors for its sublogger.
var deviceStorageFlags = cliargs.Spec{
	Bool:   map[string]string{"verbose": "v"},
	String: map[string]string{"device": "d", "storage": "s"},
}

// sublogger returns a named child of logging.RootLogger, raised to
// LevelDebug when verbose is set. SPEC_FULL.md §4.9: "Orchestrators hold
// one logger each (devices, ls, push, pull, rm)".
func sublogger(name string, verbose bool) *logging.Logger {
	logger := logging.RootLogger.Sublogger(name)
	if verbose {
		logger.SetLevel(logging.LevelDebug)
	}
	return logger
}

// openVolume enumerates devices, applies the --device/--storage filters
// (spec.md §6.1), opens the matching device, and returns it along with the
// matching storage volume. A filter matching nothing, or an enumeration
// that finds no devices at all, fails with NO_DEVICE (spec.md §7: "returning
// this, not OK, prevents silent no-ops").
func openVolume(deviceFilter, storageFilter string) (mtpdevice.RawDevice, mtpdevice.DeviceInfo, *mtpdevice.StorageVolume, error) {
	if err := library.Initialize(); err != nil {
		return mtpdevice.RawDevice{}, mtpdevice.DeviceInfo{}, nil, errs.Wrap(errs.KindDeviceError, err)
	}

	devices, err := library.EnumerateDevices()
	if err != nil {
		return mtpdevice.RawDevice{}, mtpdevice.DeviceInfo{}, nil, errs.Wrap(errs.KindDeviceError, err)
	}

	for _, device := range devices {
		info, err := library.Open(device)
		if err != nil {
			return mtpdevice.RawDevice{}, mtpdevice.DeviceInfo{}, nil, errs.Wrap(errs.KindDeviceError, err)
		}
		if !deviceMatches(device, info, deviceFilter) {
			library.Release(device)
			continue
		}
		for i := range info.Storage {
			if !storageMatches(info.Storage[i], storageFilter) {
				continue
			}
			return device, info, &info.Storage[i], nil
		}
		library.Release(device)
	}

	return mtpdevice.RawDevice{}, mtpdevice.DeviceInfo{}, nil, errs.New(errs.KindNoDevice, "no device matched the specified filters")
}

// deviceMatches implements spec.md §6.1's device id match: a literal
// beginning with "SN:" compares against the serial; otherwise it must parse
// as an unsigned integer equal to the device's enumeration index. An empty
// filter matches every device.
func deviceMatches(device mtpdevice.RawDevice, info mtpdevice.DeviceInfo, filter string) bool {
	if filter == "" {
		return true
	}
	if strings.HasPrefix(filter, "SN:") {
		return strings.TrimPrefix(filter, "SN:") == info.Serial
	}
	index, err := strconv.ParseUint(filter, 10, 64)
	if err != nil {
		return false
	}
	return int(index) == device.Index
}

// storageMatches implements spec.md §6.1's storage id match: the filter is
// compared against the volume id rendered as zero-padded 8-digit lowercase
// hex. An empty filter matches every volume.
func storageMatches(volume mtpdevice.StorageVolume, filter string) bool {
	if filter == "" {
		return true
	}
	return filter == fmt.Sprintf("%08x", volume.ID)
}

// printPlan renders steps to stdout, colorizing the action tag when stdout
// is a terminal (spec.md §6.3).
func printPlan(steps []planner.Step) {
	colorize := isatty.IsTerminal(os.Stdout.Fd())
	for _, step := range steps {
		line := step.Line()
		if !colorize {
			fmt.Println(line)
			continue
		}
		fmt.Println(colorizeLine(step))
	}
}

// progressReporter returns an OnProgress callback suitable for an executor,
// plus a finish func to call once the plan has been applied. On a terminal
// it redraws one status line per transfer (spec.md §6.3: "the same line is
// redrawn with percentage"); otherwise it prints discrete percentage lines,
// one per change, so a redirected run produces a clean transcript
// (SPEC_FULL.md §6.1's non-TTY fallback).
func progressReporter() (func(step planner.Step, transferred, total int64), func()) {
	percent := func(transferred, total int64) int {
		if total <= 0 {
			return 100
		}
		return int(transferred * 100 / total)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		lastPath := ""
		lastPercent := -1
		report := func(step planner.Step, transferred, total int64) {
			if step.Target.Path != lastPath {
				lastPath, lastPercent = step.Target.Path, -1
			}
			if p := percent(transferred, total); p != lastPercent {
				fmt.Printf("%s: %d%%\n", step.Target.Path, p)
				lastPercent = p
			}
		}
		return report, func() {}
	}

	printer := &cmd.StatusLinePrinter{}
	report := func(step planner.Step, transferred, total int64) {
		printer.Print(fmt.Sprintf("%s %s %d%%", step.Action, step.Target.Path, percent(transferred, total)))
	}
	return report, printer.BreakIfNonEmpty
}

// humanizeBytes formats n as a human-readable byte count.
func humanizeBytes(n uint64) string {
	return humanize.Bytes(n)
}

// colorizeLine renders step with its action tag colorized: red for RM,
// cyan for MKDIR, green for XFER (spec.md §6.3).
func colorizeLine(step planner.Step) string {
	line := step.Line()
	tag := step.Action.String() + ":"
	rest := strings.TrimPrefix(line, tag)
	switch step.Action {
	case planner.RM:
		return color.RedString(tag) + rest
	case planner.MKDIR:
		return color.CyanString(tag) + rest
	case planner.XFER:
		return color.GreenString(tag) + rest
	default:
		return line
	}
}

// printSummary prints the free-space/transfer-count line shown before
// confirmation (SPEC_FULL.md §10 supplement): how many transfers, creations,
// and removals the plan contains, and how the total transfer size compares
// to the target volume's remaining capacity.
func printSummary(steps []planner.Step, volume *mtpdevice.StorageVolume) {
	var transfers, creates, removes int
	var totalBytes int64
	for _, step := range steps {
		switch step.Action {
		case planner.XFER:
			transfers++
			if step.Source != nil {
				if info, err := os.Stat(step.Source.Path); err == nil {
					totalBytes += info.Size()
				}
			}
		case planner.MKDIR:
			creates++
		case planner.RM:
			removes++
		}
	}

	fmt.Printf("%d transfer(s), %d folder(s) created, %d removal(s), %s to send",
		transfers, creates, removes, humanize.Bytes(uint64(totalBytes)))
	if volume != nil {
		fmt.Printf(" (%s free)", humanize.Bytes(volume.FreeBytes))
	}
	fmt.Println()
}

// confirm asks the user to approve the plan unless yes is set, returning a
// REJECTED error (spec.md §7) if they decline.
func confirm(yes bool) error {
	if yes {
		return nil
	}
	ok, err := cmd.Confirm("Proceed?")
	if err != nil {
		return errors.Wrap(err, "unable to read confirmation")
	}
	if !ok {
		return errs.New(errs.KindRejected, "user declined at the confirmation prompt")
	}
	return nil
}

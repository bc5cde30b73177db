// Package planner implements the synchronization planner (spec.md §4.5):
// the core algorithm that turns a source inventory, a target inventory, and
// a list of sync specs into an ordered, minimal sequence of RM/MKDIR/XFER
// steps. It performs no I/O; its only failures are a missing source entry
// for a spec (PlanSync) and allocation failure.
package planner

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"mtpsync/pkg/inventory"
)

// Action is the closed set of plan step kinds, deliberately ordered so that
// numerical comparison sorts RM < MKDIR < XFER, which is also the order in
// which a plan must execute.
type Action int

const (
	RM Action = iota
	MKDIR
	XFER
)

// String renders a as the tag used in terminal output (spec.md §6.3).
func (a Action) String() string {
	switch a {
	case RM:
		return "RM"
	case MKDIR:
		return "MKDIR"
	case XFER:
		return "XFER"
	default:
		return "UNKNOWN"
	}
}

// Step is one entry of a SyncPlan. Source is present only for XFER.
type Step struct {
	Action Action
	Source *inventory.Descriptor
	Target inventory.Descriptor
}

// Spec is a request that the file currently at Source in the source realm
// should be present at Target in the target realm (spec.md §3).
type Spec struct {
	Source string
	Target string
}

// sourceMissingError reports a spec that names a source path absent from the
// source inventory. PlanSync returns it wrapped with a stack trace; callers
// recognize it with IsSourceMissing.
type sourceMissingError struct {
	path string
}

func (e *sourceMissingError) Error() string {
	return "source path not found in source inventory: " + e.path
}

// sortSteps orders steps per spec.md §4.5.3: primary key Action, secondary
// key action-specific (RM deepest-first, MKDIR shallowest-first, XFER none),
// tertiary key lexicographic by Target.Path.
func sortSteps(steps []Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		a, b := steps[i], steps[j]
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		switch a.Action {
		case RM:
			da, db := depth(a.Target.Path), depth(b.Target.Path)
			if da != db {
				return da > db
			}
		case MKDIR:
			da, db := depth(a.Target.Path), depth(b.Target.Path)
			if da != db {
				return da < db
			}
		}
		return a.Target.Path < b.Target.Path
	})
}

// depth counts the slashes in path, used as the secondary ordering key.
func depth(path string) int {
	return strings.Count(path, "/")
}

// wrapSourceMissing lets callers in cmd/mtpsync recognize this failure
// without depending on an unexported type.
func wrapSourceMissing(path string) error {
	return errors.WithStack(&sourceMissingError{path: path})
}

// IsSourceMissing reports whether err indicates a spec's source path was
// absent from the source inventory.
func IsSourceMissing(err error) bool {
	for err != nil {
		if _, ok := err.(*sourceMissingError); ok {
			return true
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return false
}

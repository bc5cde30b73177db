package planner

import (
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/pathutil"
)

// PlanSync computes the ordered plan that brings the target inventory to
// the state described by specs, optionally pruning stray target entries
// (spec.md §4.5.1).
//
// sourceInv and targetInv must each be closed under ancestors (as returned
// by the collectors in pkg/localfs and pkg/mtpdevice). PlanSync never
// mutates either inventory; it works against an internal copy of targetInv.
func PlanSync(sourceInv, targetInv inventory.Inventory, specs []Spec, cleanup bool) ([]Step, error) {
	working := cloneInventory(targetInv)
	expected := make(map[string]bool)

	var steps []Step

	for _, spec := range specs {
		sourceDescriptor, ok := sourceInv.Get(spec.Source)
		if !ok {
			return nil, wrapSourceMissing(spec.Source)
		}

		targetPath := pathutil.Normalize(spec.Target)
		candidate := inventory.New(targetPath, sourceDescriptor.IsFolder)

		// Record the full ancestor chain (plus the leaf) as legitimately
		// expected in the finished sync.
		for _, ancestor := range pathutil.Ancestors(targetPath) {
			expected[ancestor] = true
		}
		expected[targetPath] = true

		// Walk the chain upward in the working index, materializing any
		// missing ancestors (and the leaf, if missing) as plan steps.
		chain := append(pathutil.Ancestors(targetPath), targetPath)
		for i := len(chain) - 1; i >= 0; i-- {
			path := chain[i]
			if _, present := working[path]; present {
				// Every path above this one is already present too,
				// since working is ancestor-closed; stop climbing.
				break
			}

			isLeaf := path == targetPath
			if isLeaf && !sourceDescriptor.IsFolder {
				source := sourceDescriptor.Dup()
				steps = append(steps, Step{
					Action: XFER,
					Source: &source,
					Target: candidate,
				})
				working[path] = candidate
			} else {
				folder := inventory.New(path, true)
				steps = append(steps, Step{
					Action: MKDIR,
					Target: folder,
				})
				working[path] = folder
			}
		}
	}

	if cleanup {
		for _, path := range working.Paths() {
			if path == "/" || expected[path] {
				continue
			}
			steps = append(steps, Step{
				Action: RM,
				Target: working[path],
			})
		}
	}

	sortSteps(steps)
	return steps, nil
}

// cloneInventory returns an independent copy of inv so PlanSync never
// mutates the caller's target inventory.
func cloneInventory(inv inventory.Inventory) inventory.Inventory {
	clone := make(inventory.Inventory, len(inv))
	for path, descriptor := range inv {
		clone[path] = descriptor
	}
	return clone
}

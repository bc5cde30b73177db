package planner

import "mtpsync/pkg/inventory"

// PlanRemove deduplicates files by path and emits one RM step per unique
// entry, ordered per spec.md §4.5.3 (deepest-first, so that directory
// contents are removed before the directory itself).
func PlanRemove(files []inventory.Descriptor) []Step {
	unique := inventory.Unique(files)
	steps := make([]Step, 0, len(unique))
	for _, descriptor := range unique {
		steps = append(steps, Step{Action: RM, Target: descriptor})
	}
	sortSteps(steps)
	return steps
}

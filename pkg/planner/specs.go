package planner

import (
	"mtpsync/pkg/inventory"
	"mtpsync/pkg/pathutil"
)

// BuildSpecs constructs one Spec per non-folder descriptor in files,
// rewriting fromPrefix to toPrefix. Folders are skipped because folder
// targets are inferred from ancestry by PlanSync (spec.md §4.5.4).
func BuildSpecs(files []inventory.Descriptor, fromPrefix, toPrefix string) []Spec {
	var specs []Spec
	for _, f := range files {
		if f.IsFolder {
			continue
		}
		relative := pathutil.StripPrefix(f.Path, fromPrefix)
		specs = append(specs, Spec{
			Source: f.Path,
			Target: pathutil.Join(toPrefix, relative),
		})
	}
	return specs
}

package planner

import "fmt"

// Line renders a single step the way spec.md §6.3 describes plan output:
// a tag followed by the affected path, with a trailing slash for folders.
func (s Step) Line() string {
	path := s.Target.Path
	if s.Target.IsFolder && path != "/" {
		path += "/"
	}
	return fmt.Sprintf("%s: %s", s.Action, path)
}

// Print renders steps one per line, suitable for confirmation output. It
// performs no I/O itself; callers write the result to whatever stream (and
// with whatever coloring) is appropriate for their context.
func Print(steps []Step) []string {
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = step.Line()
	}
	return lines
}

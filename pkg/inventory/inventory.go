// Package inventory implements the immutable file descriptor and the
// ancestor-closed path inventory that the planner and both realm
// collectors build and consult (spec.md §3).
package inventory

import (
	"sort"

	"mtpsync/pkg/pathutil"
)

// Descriptor is an immutable, value-like description of one path in a
// realm. Equality and hashing are defined by Path alone; Attachment carries
// realm-specific identity (the device library's numeric object id on the
// remote side, nil on the local side).
type Descriptor struct {
	Path       string
	IsFolder   bool
	Attachment any
}

// New canonicalizes path and returns a Descriptor for it.
func New(path string, isFolder bool) Descriptor {
	return Descriptor{Path: pathutil.Normalize(path), IsFolder: isFolder}
}

// WithAttachment returns a copy of d carrying the given realm payload.
func (d Descriptor) WithAttachment(attachment any) Descriptor {
	d.Attachment = attachment
	return d
}

// Dup returns a value copy of d. Since Descriptor holds no pointers that the
// caller should share, this is equivalent to an ordinary assignment; it
// exists so call sites can be explicit that they want an independent copy
// rather than an alias, matching the "copies rather than aliases" discipline
// spec.md §3 requires of the planner.
func (d Descriptor) Dup() Descriptor {
	return d
}

// Unique deduplicates a sequence of descriptors by Path, keeping the first
// occurrence of each path.
func Unique(descriptors []Descriptor) []Descriptor {
	seen := make(map[string]bool, len(descriptors))
	result := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if seen[d.Path] {
			continue
		}
		seen[d.Path] = true
		result = append(result, d)
	}
	return result
}

// Inventory is a mapping from canonical absolute path to Descriptor, closed
// under ancestors: if "/a/b/c" is present, so are "/a/b", "/a", and "/"
// (each as a folder).
type Inventory map[string]Descriptor

// NewInventory constructs an empty Inventory whose root is always present.
func NewInventory() Inventory {
	inv := make(Inventory)
	inv["/"] = New("/", true)
	return inv
}

// Add inserts d into the inventory and materializes any ancestors of d.Path
// that are not already present, as folders. It does not overwrite an
// existing entry at d.Path.
func (inv Inventory) Add(d Descriptor) {
	if _, exists := inv[d.Path]; !exists {
		inv[d.Path] = d
	}
	inv.closeAncestors(d.Path)
}

// closeAncestors ensures every proper ancestor of path is present in inv as
// a folder.
func (inv Inventory) closeAncestors(path string) {
	for _, ancestor := range pathutil.Ancestors(path) {
		if _, exists := inv[ancestor]; !exists {
			inv[ancestor] = New(ancestor, true)
		}
	}
}

// FromDescriptors builds an Inventory from a flat descriptor sequence,
// closing it under ancestors.
func FromDescriptors(descriptors []Descriptor) Inventory {
	inv := NewInventory()
	for _, d := range descriptors {
		inv.Add(d)
	}
	return inv
}

// Filter returns the descriptors in inv whose path equals prefix or begins
// with prefix + "/", sorted by path ascending. prefix == "/" returns
// everything.
func (inv Inventory) Filter(prefix string) []Descriptor {
	var result []Descriptor
	for path, d := range inv {
		if pathutil.HasPrefix(path, prefix) {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}

// Get looks up the descriptor at path.
func (inv Inventory) Get(path string) (Descriptor, bool) {
	d, ok := inv[path]
	return d, ok
}

// Paths returns every path stored in inv, sorted ascending.
func (inv Inventory) Paths() []string {
	paths := make([]string, 0, len(inv))
	for path := range inv {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

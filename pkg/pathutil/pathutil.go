// Package pathutil implements lexical, disk-free normalization of
// POSIX-style slash-separated paths. No function in this package touches
// the filesystem; normalization is a pure string transformation.
package pathutil

import (
	"os"
	"strings"
)

// segmentState drives the left-to-right append algorithm used by Normalize.
type segmentState int

const (
	stateStart segmentState = iota
	stateName
	stateDot
	stateDotDot
)

// Normalize collapses repeated slashes, removes "." segments, resolves ".."
// segments against preceding segments where possible, and drops a trailing
// slash (except for the root). It never consults the filesystem and never
// fails: even input that looks invalid (e.g. ".." escaping past the root of
// a relative path) is canonicalized, not rejected. An empty input resolves
// to ".".
func Normalize(path string) string {
	if path == "" {
		return "."
	}

	absolute := strings.HasPrefix(path, "/")

	var segments []string
	start := 0
	n := len(path)
	for i := 0; i <= n; i++ {
		if i < n && path[i] != '/' {
			continue
		}
		segment := path[start:i]
		start = i + 1
		segments = appendSegment(segments, segment, absolute)
	}

	return render(segments, absolute)
}

// appendSegment classifies one slash-delimited segment and folds it into the
// accumulated segment list per the state machine in spec.md §4.1.
func appendSegment(segments []string, segment string, absolute bool) []string {
	var state segmentState
	switch segment {
	case "":
		return segments
	case ".":
		state = stateDot
	case "..":
		state = stateDotDot
	default:
		state = stateName
	}

	switch state {
	case stateDot:
		return segments
	case stateDotDot:
		if len(segments) > 0 && segments[len(segments)-1] != ".." {
			return segments[:len(segments)-1]
		}
		if absolute {
			// ".." can never escape the root of an absolute path.
			return segments
		}
		return append(segments, "..")
	default:
		return append(segments, segment)
	}
}

// render reassembles normalized segments into a path string.
func render(segments []string, absolute bool) string {
	if absolute {
		if len(segments) == 0 {
			return "/"
		}
		return "/" + strings.Join(segments, "/")
	}
	if len(segments) == 0 {
		return "."
	}
	return strings.Join(segments, "/")
}

// ResolveCWD normalizes path, prepending base when path is relative, empty,
// or absent. base itself is assumed already absolute.
func ResolveCWD(base, path string) string {
	if path == "" || !strings.HasPrefix(path, "/") {
		return Normalize(Join(base, path))
	}
	return Normalize(path)
}

// Resolve normalizes path, prepending the process working directory when
// path is relative or empty.
func Resolve(path string) string {
	if path != "" && strings.HasPrefix(path, "/") {
		return Normalize(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}
	return ResolveCWD(cwd, path)
}

// Join normalizes the concatenation of a and b, seeding the normalization
// state machine with a the way a fresh call would seed it with the empty
// string. An empty b returns Normalize(a).
func Join(a, b string) string {
	if b == "" {
		return Normalize(a)
	}
	if a == "" || a == "." {
		return Normalize(b)
	}
	return Normalize(a + "/" + b)
}

// Dirname returns the portion of path before its final slash-delimited
// segment, matching POSIX dirname semantics on an already-normalized path.
func Dirname(path string) string {
	normalized := Normalize(path)
	if normalized == "/" {
		return "/"
	}
	idx := strings.LastIndexByte(normalized, '/')
	if idx <= 0 {
		if idx == 0 {
			return "/"
		}
		return "."
	}
	return normalized[:idx]
}

// Basename returns the final slash-delimited segment of path, matching
// POSIX basename semantics on an already-normalized path.
func Basename(path string) string {
	normalized := Normalize(path)
	if normalized == "/" {
		return "/"
	}
	idx := strings.LastIndexByte(normalized, '/')
	return normalized[idx+1:]
}

// StripPrefix removes prefix (and a following slash) from path. It assumes
// path equals prefix or begins with prefix + "/"; callers that haven't
// already verified this with HasPrefix will get path back unchanged.
func StripPrefix(path, prefix string) string {
	if prefix == "/" {
		return strings.TrimPrefix(path, "/")
	}
	if path == prefix {
		return ""
	}
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix)+1:]
	}
	return path
}

// HasPrefix reports whether path equals prefix or begins with prefix + "/".
// prefix == "/" matches every path.
func HasPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Ancestors returns the chain of proper ancestor paths of path, ordered from
// the root downward, not including path itself. The root "/" always comes
// first; Ancestors("/") returns nil.
func Ancestors(path string) []string {
	if path == "/" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	ancestors := make([]string, 0, len(parts))
	current := ""
	for _, part := range parts[:len(parts)-1] {
		current += "/" + part
		ancestors = append(ancestors, current)
	}
	return append([]string{"/"}, ancestors...)
}

// Package symbolpath assigns a qualified, hierarchical name_path to every
// symbol in a file using strict byte-range containment, as required by the
// code intelligence core's chunk identity invariants.
package symbolpath

import (
	"sort"
	"strings"
)

// Entry is one symbol candidate within a single file: a byte range and its
// own short (unqualified) name. StartByte/EndByte must come from the same
// coordinate space (a single parsed file).
type Entry struct {
	ID        string // caller-assigned identity, returned unchanged as a map key
	ShortName string
	StartByte uint32
	EndByte   uint32
}

// Separator joins path segments. Callers needing a language-idiomatic
// separator (e.g. "::" for Rust) should post-process the result; "/" is the
// default chosen to match the Chunk Store's name_path lookup contract.
const Separator = "/"

// Build assigns a name_path to every entry using strict byte-range
// containment: for chunk C, walk outer parent chunks in the same file whose
// range strictly contains C (parent.Start < C.Start && parent.End > C.End -
// never <=/>=, since inclusive bounds spuriously nest same-line siblings),
// outermost to innermost, concatenating their short names with Separator.
//
// Parents are emitted outermost first (module -> class -> method); getting
// this backwards silently corrupts every downstream symbol-path query, so
// callers with their own containment data should test ordering directly
// rather than trust this implementation by inspection.
func Build(entries []Entry) map[string]string {
	paths := make(map[string]string, len(entries))

	for _, e := range entries {
		containers := containersOf(e, entries)
		sort.SliceStable(containers, func(i, j int) bool {
			sizeI := containers[i].EndByte - containers[i].StartByte
			sizeJ := containers[j].EndByte - containers[j].StartByte
			return sizeI > sizeJ // largest range (outermost) first
		})

		segments := make([]string, 0, len(containers)+1)
		for _, c := range containers {
			segments = append(segments, c.ShortName)
		}
		segments = append(segments, e.ShortName)

		paths[e.ID] = strings.Join(segments, Separator)
	}

	return paths
}

// containersOf returns every entry whose range strictly contains e's range,
// excluding e itself.
func containersOf(e Entry, all []Entry) []Entry {
	var containers []Entry
	for _, other := range all {
		if other.ID == e.ID {
			continue
		}
		if other.StartByte < e.StartByte && other.EndByte > e.EndByte {
			containers = append(containers, other)
		}
	}
	return containers
}

package effects

import (
	"sort"
	"strings"
)

// Descriptor is an immutable finite set of effect labels (e.g. distinct
// exception identities). It forms a join-semilattice under Union with
// bottom = the empty set.
type Descriptor struct {
	labels []string // sorted, no duplicates; never mutated after construction
}

// NewDescriptor builds a descriptor from the given labels.
func NewDescriptor(labels ...string) Descriptor {
	if len(labels) == 0 {
		return Descriptor{}
	}
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return Descriptor{labels: out}
}

// Union returns the lattice join of d and other.
func (d Descriptor) Union(other Descriptor) Descriptor {
	if len(other.labels) == 0 {
		return d
	}
	if len(d.labels) == 0 {
		return other
	}
	merged := make([]string, 0, len(d.labels)+len(other.labels))
	i, j := 0, 0
	for i < len(d.labels) && j < len(other.labels) {
		switch {
		case d.labels[i] < other.labels[j]:
			merged = append(merged, d.labels[i])
			i++
		case d.labels[i] > other.labels[j]:
			merged = append(merged, other.labels[j])
			j++
		default:
			merged = append(merged, d.labels[i])
			i++
			j++
		}
	}
	merged = append(merged, d.labels[i:]...)
	merged = append(merged, other.labels[j:]...)
	return Descriptor{labels: merged}
}

// IsPure reports whether the descriptor is the empty set.
func (d Descriptor) IsPure() bool {
	return len(d.labels) == 0
}

// Equal is set equality.
func (d Descriptor) Equal(other Descriptor) bool {
	if len(d.labels) != len(other.labels) {
		return false
	}
	for i, l := range d.labels {
		if other.labels[i] != l {
			return false
		}
	}
	return true
}

// Contains reports whether every label of other is present in d.
func (d Descriptor) Contains(other Descriptor) bool {
	return d.Union(other).Equal(d)
}

// Labels returns a copy of the label set in sorted order.
func (d Descriptor) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

func (d Descriptor) String() string {
	return "[" + strings.Join(d.labels, ", ") + "]"
}

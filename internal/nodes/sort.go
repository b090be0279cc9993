package nodes

import (
	"slices"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/renato0307/nodedash/internal/k8s"
)

// SortField is the column the node table is sorted by
type SortField string

const (
	SortNone             SortField = ""
	SortByName           SortField = "name"
	SortByKubeletVersion SortField = "kubeletVersion"
	SortByCreationDate   SortField = "creationDate"
)

// SortDirection is the order of a sort
type SortDirection string

const (
	DirectionNone SortDirection = ""
	Ascending     SortDirection = "asc"
	Descending    SortDirection = "desc"
)

// SortState is the active sort of the table
type SortState struct {
	Field     SortField
	Direction SortDirection
}

// Active reports whether the state changes the input order
func (s SortState) Active() bool {
	return s.Field != SortNone && s.Direction != DirectionNone
}

// String renders the state for the table title, e.g. "name ↑"
func (s SortState) String() string {
	if !s.Active() {
		return "unsorted"
	}
	arrow := "↑"
	if s.Direction == Descending {
		arrow = "↓"
	}
	return string(s.Field) + " " + arrow
}

var fieldCycle = []SortField{SortByName, SortByKubeletVersion, SortByCreationDate, SortNone}

// NextField returns the state with the following sort field
func (s SortState) NextField() SortState {
	i := slices.Index(fieldCycle, s.Field)
	s.Field = fieldCycle[(i+1)%len(fieldCycle)]
	return s
}

var directionCycle = []SortDirection{Ascending, Descending, DirectionNone}

// NextDirection returns the state with the following direction
func (s SortState) NextDirection() SortState {
	i := slices.Index(directionCycle, s.Direction)
	s.Direction = directionCycle[(i+1)%len(directionCycle)]
	return s
}

// ApplySort returns nodes ordered by state. The input slice is never
// modified; an inactive state returns a copy in input order. The sort is
// stable, so nodes that compare equal keep their input order.
//
// creationDate ascending lists the oldest node first. Kubelet versions use
// semantic version precedence; versions that do not parse sort before all
// valid ones and compare as plain strings among themselves.
func ApplySort(nodes []k8s.Node, state SortState) []k8s.Node {
	sorted := slices.Clone(nodes)
	if !state.Active() {
		return sorted
	}

	cmp := comparator(state.Field)
	if state.Direction == Descending {
		asc := cmp
		cmp = func(a, b k8s.Node) int { return -asc(a, b) }
	}

	slices.SortStableFunc(sorted, cmp)
	return sorted
}

func comparator(field SortField) func(a, b k8s.Node) int {
	switch field {
	case SortByName:
		return func(a, b k8s.Node) int { return strings.Compare(a.Name, b.Name) }
	case SortByKubeletVersion:
		return func(a, b k8s.Node) int {
			return compareVersions(a.Spec.Versions.Kubelet, b.Spec.Versions.Kubelet)
		}
	case SortByCreationDate:
		return func(a, b k8s.Node) int { return a.CreationTimestamp.Compare(b.CreationTimestamp) }
	default:
		return func(a, b k8s.Node) int { return 0 }
	}
}

func compareVersions(a, b string) int {
	va, errA := semver.ParseTolerant(a)
	vb, errB := semver.ParseTolerant(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	default:
		return va.Compare(vb)
	}
}

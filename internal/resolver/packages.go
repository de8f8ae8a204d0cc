package resolver

import (
	"sort"
)

// Ecosystem identifies the package manager a package is installed with.
type Ecosystem string

// Supported ecosystems.
const (
	NPM Ecosystem = "npm"
	Pip Ecosystem = "pip"
	UV  Ecosystem = "uv"
)

// Ecosystems lists the supported ecosystems in install-plan output order.
var Ecosystems = []Ecosystem{NPM, Pip, UV}

// PackageRef identifies a package within an ecosystem.
type PackageRef struct {
	Ecosystem Ecosystem
	Name      string
}

// Set is a per-ecosystem deduplicated collection of package references.
type Set struct {
	refs map[Ecosystem]map[string]struct{}
}

// NewSet creates an empty package set.
func NewSet() *Set {
	return &Set{refs: make(map[Ecosystem]map[string]struct{})}
}

// Add inserts a package reference. Duplicates are ignored.
func (s *Set) Add(ref PackageRef) {
	if s.refs[ref.Ecosystem] == nil {
		s.refs[ref.Ecosystem] = make(map[string]struct{})
	}
	s.refs[ref.Ecosystem][ref.Name] = struct{}{}
}

// Len returns the total number of distinct packages across ecosystems.
func (s *Set) Len() int {
	n := 0
	for _, names := range s.refs {
		n += len(names)
	}
	return n
}

// Empty reports whether the set contains no packages.
func (s *Set) Empty() bool {
	return s.Len() == 0
}

// Sorted returns the package names for one ecosystem in lexicographic order.
func (s *Set) Sorted(eco Ecosystem) []string {
	names := make([]string, 0, len(s.refs[eco]))
	for name := range s.refs[eco] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every package reference, grouped by ecosystem in plan order
// and sorted by name within each group.
func (s *Set) All() []PackageRef {
	var refs []PackageRef
	for _, eco := range Ecosystems {
		for _, name := range s.Sorted(eco) {
			refs = append(refs, PackageRef{Ecosystem: eco, Name: name})
		}
	}
	return refs
}

// installCommands maps each ecosystem to its install command prefix.
// The pip flags match the container image the generated Dockerfile targets,
// where the system Python is externally managed.
var installCommands = map[Ecosystem]string{
	NPM: "npm install -g ",
	Pip: "pip3 install --no-cache-dir --break-system-packages ",
	UV:  "uv tool install ",
}

// InstallPlan returns the shell install commands for the set, one per
// package, grouped npm then pip then uv and sorted within each group.
// Each command carries the ` && ` prefix the Dockerfile placeholder expects.
func (s *Set) InstallPlan() []string {
	var lines []string
	for _, eco := range Ecosystems {
		for _, name := range s.Sorted(eco) {
			lines = append(lines, " && "+installCommands[eco]+name)
		}
	}
	return lines
}

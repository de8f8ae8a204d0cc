package resolver

import (
	"reflect"
	"testing"
)

func TestSetDeduplicates(t *testing.T) {
	set := NewSet()
	set.Add(PackageRef{Ecosystem: NPM, Name: "@scope/pkg"})
	set.Add(PackageRef{Ecosystem: NPM, Name: "@scope/pkg"})
	set.Add(PackageRef{Ecosystem: Pip, Name: "mypkg"})

	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}
}

func TestSetSorted(t *testing.T) {
	set := NewSet()
	set.Add(PackageRef{Ecosystem: NPM, Name: "zeta"})
	set.Add(PackageRef{Ecosystem: NPM, Name: "alpha"})
	set.Add(PackageRef{Ecosystem: NPM, Name: "@scope/mid"})

	want := []string{"@scope/mid", "alpha", "zeta"}
	if got := set.Sorted(NPM); !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted(NPM) = %v, want %v", got, want)
	}
}

func TestSetEmpty(t *testing.T) {
	set := NewSet()
	if !set.Empty() {
		t.Error("new set should be empty")
	}
	set.Add(PackageRef{Ecosystem: UV, Name: "x"})
	if set.Empty() {
		t.Error("set with one package should not be empty")
	}
}

func TestInstallPlanGroupingAndOrder(t *testing.T) {
	set := NewSet()
	set.Add(PackageRef{Ecosystem: UV, Name: "mcp-server-sqlite"})
	set.Add(PackageRef{Ecosystem: NPM, Name: "b-pkg"})
	set.Add(PackageRef{Ecosystem: Pip, Name: "mcp-server-fetch"})
	set.Add(PackageRef{Ecosystem: NPM, Name: "a-pkg"})

	want := []string{
		" && npm install -g a-pkg",
		" && npm install -g b-pkg",
		" && pip3 install --no-cache-dir --break-system-packages mcp-server-fetch",
		" && uv tool install mcp-server-sqlite",
	}
	if got := set.InstallPlan(); !reflect.DeepEqual(got, want) {
		t.Errorf("InstallPlan() = %v, want %v", got, want)
	}
}

func TestInstallPlanEmpty(t *testing.T) {
	if plan := NewSet().InstallPlan(); len(plan) != 0 {
		t.Errorf("InstallPlan() on empty set = %v, want none", plan)
	}
}

func TestAllGroupsByEcosystem(t *testing.T) {
	set := NewSet()
	set.Add(PackageRef{Ecosystem: Pip, Name: "p"})
	set.Add(PackageRef{Ecosystem: NPM, Name: "n"})

	want := []PackageRef{
		{Ecosystem: NPM, Name: "n"},
		{Ecosystem: Pip, Name: "p"},
	}
	if got := set.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

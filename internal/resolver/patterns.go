package resolver

import (
	"log/slog"
	"strings"

	"github.com/mcpdock/mcpdock/internal/mcp"
)

// moduleFlag is Python's module-invocation flag (python -m package).
const moduleFlag = "-m"

// Extractor derives the package set implied by a configuration.
// The two implementations, Patterns and Table, are alternative strategies
// for the same step and are never combined within one run.
type Extractor interface {
	Extract(cfg *mcp.Config) *Set
}

// Patterns extracts packages by recognizing the argument conventions of the
// npx and uvx runners and the `python -m` module invocation.
type Patterns struct {
	Log *slog.Logger
}

func (p *Patterns) log() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

// Extract scans every server entry and collects the packages its command
// implies. Commands outside the three recognized conventions are skipped;
// they are assumed to be pre-installed binaries.
func (p *Patterns) Extract(cfg *mcp.Config) *Set {
	set := NewSet()
	for _, name := range cfg.Names() {
		server := cfg.Servers[name]

		ref, ok := p.match(server)
		if !ok {
			p.log().Debug("skipping direct command, assumed pre-installed",
				"server", name, "command", server.Command)
			continue
		}

		set.Add(ref)
		p.log().Info("found package", "server", name,
			"ecosystem", string(ref.Ecosystem), "package", ref.Name)
	}
	return set
}

func (p *Patterns) match(server *mcp.Server) (PackageRef, bool) {
	args := server.Args
	switch server.Command {
	case DispatchNPX:
		if pkg, ok := npxPackage(args); ok {
			return PackageRef{Ecosystem: NPM, Name: pkg}, true
		}
	case DispatchUVX:
		for _, arg := range args {
			if !strings.HasPrefix(arg, "-") {
				return PackageRef{Ecosystem: UV, Name: arg}, true
			}
		}
	case "python", "python3":
		if len(args) >= 2 && args[0] == moduleFlag {
			return PackageRef{Ecosystem: Pip, Name: args[1]}, true
		}
	}
	return PackageRef{}, false
}

// npxPackage finds the package identifier in an npx argument list: a scoped
// (@-prefixed) argument at any index, or a non-flag argument at any index
// other than the first.
//
// A bare package name in first position is deliberately not matched, so this
// is narrower than the rewrite-path classification in SplitPackageArgs.
func npxPackage(args []string) (string, bool) {
	for i, arg := range args {
		if strings.HasPrefix(arg, "@") {
			return arg, true
		}
		if !strings.HasPrefix(arg, "-") && i > 0 {
			return arg, true
		}
	}
	return "", false
}

package resolver

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mcpdock/mcpdock/internal/mcp"
	"github.com/mcpdock/mcpdock/internal/npm"
)

// Dispatch tokens: commands whose argument list names a package invoked
// through an on-demand runner rather than a pre-installed binary.
const (
	// DispatchNPX is the npm package-runner command.
	DispatchNPX = "npx"

	// DispatchUVX is the uv tool-runner command.
	DispatchUVX = "uvx"

	// autoConfirmFlag is npx's auto-confirm-install flag. It is consumed
	// during argument classification and never passed through.
	autoConfirmFlag = "-y"
)

// ResolvedBinary is the result of dynamically resolving an npx dispatch to
// the binary the package installs.
type ResolvedBinary struct {
	// ServerName is the config entry the resolution belongs to.
	ServerName string

	// Binary is the resolved binary name that replaces the npx command.
	Binary string

	// Args are the pass-through arguments, with the package identifier and
	// auto-confirm flag removed.
	Args []string
}

// SplitPackageArgs classifies an npx argument list. The auto-confirm flag is
// discarded; the first unclaimed token that is @-scoped or does not look like
// a flag becomes the package identifier; every other token is kept in order
// as a pass-through argument.
func SplitPackageArgs(args []string) (pkg string, rest []string) {
	rest = make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case arg == autoConfirmFlag:
			// dropped
		case pkg == "" && !strings.HasPrefix(arg, "-"):
			pkg = arg
		default:
			rest = append(rest, arg)
		}
	}
	return pkg, rest
}

// Dynamic resolves npx dispatches to direct binary calls by querying the npm
// global root and reading the installed package's manifest.
type Dynamic struct {
	Root npm.RootResolver
	Log  *slog.Logger
}

// NewDynamic creates a Dynamic resolver backed by the real npm CLI.
func NewDynamic(log *slog.Logger) *Dynamic {
	return &Dynamic{Root: npm.CLI{}, Log: log}
}

func (d *Dynamic) log() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}

// Resolve attempts to rewrite a single server entry. The second return is
// false when the entry is not an npx dispatch or when any step of binary
// discovery fails; failures are logged and never abort the caller's run.
func (d *Dynamic) Resolve(server *mcp.Server) (*ResolvedBinary, bool) {
	if server.Command != DispatchNPX || len(server.Args) == 0 {
		return nil, false
	}

	pkg, rest := SplitPackageArgs(server.Args)
	if pkg == "" {
		d.log().Debug("no package identifier in npx args", "server", server.Name)
		return nil, false
	}

	binary, err := d.findBinary(pkg)
	if err != nil {
		d.log().Warn("could not resolve binary, keeping npx dispatch",
			"server", server.Name, "package", pkg, "error", err)
		return nil, false
	}

	return &ResolvedBinary{
		ServerName: server.Name,
		Binary:     binary,
		Args:       rest,
	}, true
}

// findBinary locates the installed package under the npm global root and
// derives its binary name from the manifest.
func (d *Dynamic) findBinary(pkg string) (string, error) {
	root, err := d.Root.GlobalRoot()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(root, filepath.FromSlash(pkg))
	if _, err := os.Stat(dir); err != nil {
		return "", errors.Wrapf(npm.ErrManifestNotFound, "package directory %s", dir)
	}

	manifest, err := npm.ReadManifest(dir)
	if err != nil {
		return "", err
	}

	return manifest.BinaryName(pkg)
}

// Rewrite returns a copy of cfg with every resolvable npx dispatch replaced
// by a direct binary call. Entries that are not npx dispatches, or whose
// resolution fails, are carried over untouched. A document without the
// mcpServers key is returned as-is (nothing to convert).
func (d *Dynamic) Rewrite(cfg *mcp.Config) *mcp.Config {
	if !cfg.HasServers {
		return cfg
	}

	out := mcp.NewConfig()
	for _, name := range cfg.Names() {
		server := cfg.Servers[name].Clone()
		server.Name = name

		if resolved, ok := d.Resolve(server); ok {
			server.Command = resolved.Binary
			server.Args = resolved.Args
			d.log().Info("converted npx dispatch to binary",
				"server", name, "binary", resolved.Binary)
		}

		out.Servers[name] = server
	}
	return out
}

package resolver

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/mcpdock/mcpdock/internal/logging"
	"github.com/mcpdock/mcpdock/internal/mcp"
)

// stubRoot is a RootResolver returning a fixed directory or error.
type stubRoot struct {
	root string
	err  error
}

func (s stubRoot) GlobalRoot() (string, error) {
	return s.root, s.err
}

// installPackage lays out <root>/<pkg>/package.json with the given manifest.
func installPackage(t *testing.T, root, pkg, manifest string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(pkg))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSplitPackageArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPkg  string
		wantRest []string
	}{
		{
			name:     "scoped package with trailing flags",
			args:     []string{"-y", "@scope/pkg", "--flag", "value"},
			wantPkg:  "@scope/pkg",
			wantRest: []string{"--flag", "value"},
		},
		{
			name:     "bare package name",
			args:     []string{"-y", "server-pkg"},
			wantPkg:  "server-pkg",
			wantRest: []string{},
		},
		{
			name:     "first non-flag wins, later args pass through",
			args:     []string{"pkg-a", "pkg-b"},
			wantPkg:  "pkg-a",
			wantRest: []string{"pkg-b"},
		},
		{
			name:     "only flags yields no package",
			args:     []string{"-y", "--quiet"},
			wantPkg:  "",
			wantRest: []string{"--quiet"},
		},
		{
			name:     "empty args",
			args:     []string{},
			wantPkg:  "",
			wantRest: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, rest := SplitPackageArgs(tt.args)
			if pkg != tt.wantPkg {
				t.Errorf("pkg = %q, want %q", pkg, tt.wantPkg)
			}
			if !reflect.DeepEqual(rest, tt.wantRest) {
				t.Errorf("rest = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

func TestResolveSingleBinaryManifest(t *testing.T) {
	root := t.TempDir()
	installPackage(t, root, "@modelcontextprotocol/server-github",
		`{"name": "@modelcontextprotocol/server-github", "bin": "./dist/index.js"}`)

	d := &Dynamic{Root: stubRoot{root: root}, Log: logging.ForTest(t)}
	server := &mcp.Server{
		Name:    "github",
		Command: "npx",
		Args:    []string{"-y", "@modelcontextprotocol/server-github", "--verbose"},
	}

	resolved, ok := d.Resolve(server)
	if !ok {
		t.Fatal("Resolve() should succeed")
	}
	if resolved.Binary != "server-github" {
		t.Errorf("Binary = %q, want server-github", resolved.Binary)
	}
	if !reflect.DeepEqual(resolved.Args, []string{"--verbose"}) {
		t.Errorf("Args = %v, want [--verbose]", resolved.Args)
	}
}

func TestResolveBinTableManifest(t *testing.T) {
	root := t.TempDir()
	installPackage(t, root, "multi-tool",
		`{"name": "multi-tool", "bin": {"mt-primary": "./a.js", "mt-secondary": "./b.js"}}`)

	d := &Dynamic{Root: stubRoot{root: root}, Log: logging.ForTest(t)}
	server := &mcp.Server{Name: "multi", Command: "npx", Args: []string{"-y", "multi-tool"}}

	resolved, ok := d.Resolve(server)
	if !ok {
		t.Fatal("Resolve() should succeed")
	}
	if resolved.Binary != "mt-primary" {
		t.Errorf("Binary = %q, want first declared name mt-primary", resolved.Binary)
	}
}

func TestResolveFailuresAreNonFatal(t *testing.T) {
	root := t.TempDir()
	installPackage(t, root, "no-bin-pkg", `{"name": "no-bin-pkg"}`)

	tests := []struct {
		name   string
		d      *Dynamic
		server *mcp.Server
	}{
		{
			name:   "root query failure",
			d:      &Dynamic{Root: stubRoot{err: errors.New("npm not installed")}},
			server: &mcp.Server{Name: "a", Command: "npx", Args: []string{"-y", "pkg"}},
		},
		{
			name:   "missing install directory",
			d:      &Dynamic{Root: stubRoot{root: root}},
			server: &mcp.Server{Name: "b", Command: "npx", Args: []string{"-y", "never-installed"}},
		},
		{
			name:   "manifest without binaries",
			d:      &Dynamic{Root: stubRoot{root: root}},
			server: &mcp.Server{Name: "c", Command: "npx", Args: []string{"-y", "no-bin-pkg"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.d.Log = logging.ForTest(t)
			if _, ok := tt.d.Resolve(tt.server); ok {
				t.Error("Resolve() should report not found")
			}
		})
	}
}

func TestResolveNonDispatchCommand(t *testing.T) {
	d := &Dynamic{Root: stubRoot{root: t.TempDir()}, Log: logging.ForTest(t)}

	// A direct binary does not match the dispatch precondition, which also
	// makes resolution idempotent on already-resolved entries.
	server := &mcp.Server{Name: "direct", Command: "server-github", Args: []string{"--verbose"}}
	if _, ok := d.Resolve(server); ok {
		t.Error("Resolve() should not match a direct binary command")
	}
}

func TestRewrite(t *testing.T) {
	root := t.TempDir()
	installPackage(t, root, "@scope/resolvable",
		`{"name": "@scope/resolvable", "bin": "./cli.js"}`)

	input := `{
		"mcpServers": {
			"resolvable": {"command": "npx", "args": ["-y", "@scope/resolvable", "--port", "8080"]},
			"unresolvable": {"command": "npx", "args": ["-y", "missing-pkg"]},
			"direct": {"command": "custom-binary", "args": ["--x"], "env": {"K": "v"}}
		}
	}`
	var cfg mcp.Config
	if err := json.Unmarshal([]byte(input), &cfg); err != nil {
		t.Fatal(err)
	}

	d := &Dynamic{Root: stubRoot{root: root}, Log: logging.ForTest(t)}
	out := d.Rewrite(&cfg)

	resolvable := out.Servers["resolvable"]
	if resolvable.Command != "resolvable" {
		t.Errorf("resolvable Command = %q, want resolvable", resolvable.Command)
	}
	if !reflect.DeepEqual(resolvable.Args, []string{"--port", "8080"}) {
		t.Errorf("resolvable Args = %v", resolvable.Args)
	}

	unresolvable := out.Servers["unresolvable"]
	if unresolvable.Command != "npx" {
		t.Errorf("unresolvable Command = %q, want npx kept", unresolvable.Command)
	}
	if !reflect.DeepEqual(unresolvable.Args, []string{"-y", "missing-pkg"}) {
		t.Errorf("unresolvable Args = %v, want original", unresolvable.Args)
	}

	direct := out.Servers["direct"]
	if direct.Command != "custom-binary" || direct.Env["K"] != "v" {
		t.Error("direct entry should be untouched")
	}

	// Input config must not be mutated
	if cfg.Servers["resolvable"].Command != "npx" {
		t.Error("Rewrite() mutated the input config")
	}
}

func TestRewriteIdempotent(t *testing.T) {
	root := t.TempDir()
	installPackage(t, root, "pkg", `{"name": "pkg", "bin": "./cli.js"}`)

	var cfg mcp.Config
	if err := json.Unmarshal([]byte(
		`{"mcpServers": {"s": {"command": "npx", "args": ["-y", "pkg"]}}}`), &cfg); err != nil {
		t.Fatal(err)
	}

	d := &Dynamic{Root: stubRoot{root: root}, Log: logging.ForTest(t)}
	once := d.Rewrite(&cfg)
	twice := d.Rewrite(once)

	if !reflect.DeepEqual(once.Servers["s"], twice.Servers["s"]) {
		t.Errorf("second rewrite changed the entry: %+v vs %+v",
			once.Servers["s"], twice.Servers["s"])
	}
}

func TestRewritePermissiveWithoutServersKey(t *testing.T) {
	var cfg mcp.Config
	if err := json.Unmarshal([]byte(`{"other": 1}`), &cfg); err != nil {
		t.Fatal(err)
	}

	d := &Dynamic{Root: stubRoot{root: t.TempDir()}, Log: logging.ForTest(t)}
	out := d.Rewrite(&cfg)

	if out != &cfg {
		t.Error("Rewrite() should pass through a config without mcpServers")
	}
}

package resolver

import (
	"log/slog"

	"github.com/mcpdock/mcpdock/internal/mcp"
)

// Table extracts packages with a fixed command-to-package mapping.
// It only understands direct binary commands; unknown commands are skipped
// with a warning and assumed to be pre-installed.
type Table struct {
	// Commands maps literal command strings to the package installing them.
	// When nil, DefaultCommandTable is used.
	Commands map[string]PackageRef

	Log *slog.Logger
}

// DefaultCommandTable maps well-known MCP server binaries to the packages
// that provide them.
func DefaultCommandTable() map[string]PackageRef {
	return map[string]PackageRef{
		"mcp-server-filesystem":   {Ecosystem: NPM, Name: "@modelcontextprotocol/server-filesystem"},
		"mcp-server-github":       {Ecosystem: NPM, Name: "@modelcontextprotocol/server-github"},
		"mcp-server-memory":       {Ecosystem: NPM, Name: "@modelcontextprotocol/server-memory"},
		"mcp-server-brave-search": {Ecosystem: NPM, Name: "@modelcontextprotocol/server-brave-search"},
		"mcp-server-fetch":        {Ecosystem: Pip, Name: "mcp-server-fetch"},
		"mcp-server-git":          {Ecosystem: Pip, Name: "mcp-server-git"},
		"mcp-server-time":         {Ecosystem: Pip, Name: "mcp-server-time"},
		"mcp-server-sqlite":       {Ecosystem: UV, Name: "mcp-server-sqlite"},
	}
}

func (t *Table) log() *slog.Logger {
	if t.Log != nil {
		return t.Log
	}
	return slog.Default()
}

func (t *Table) commands() map[string]PackageRef {
	if t.Commands != nil {
		return t.Commands
	}
	return DefaultCommandTable()
}

// Extract looks up each server's command verbatim in the table.
func (t *Table) Extract(cfg *mcp.Config) *Set {
	set := NewSet()
	table := t.commands()

	for _, name := range cfg.Names() {
		server := cfg.Servers[name]

		ref, ok := table[server.Command]
		if !ok {
			t.log().Warn("command not in package table, assumed pre-installed",
				"server", name, "command", server.Command)
			continue
		}

		set.Add(ref)
		t.log().Info("found package", "server", name,
			"ecosystem", string(ref.Ecosystem), "package", ref.Name)
	}
	return set
}

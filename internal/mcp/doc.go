// Package mcp defines the data model for MCP server configuration documents.
//
// The wire format is a JSON object with a single recognized top-level key,
// "mcpServers", mapping server names to launch specs:
//
//	{
//	  "mcpServers": {
//	    "github": {
//	      "command": "npx",
//	      "args": ["-y", "@modelcontextprotocol/server-github"]
//	    }
//	  }
//	}
//
// Both [Config] and [Server] preserve JSON fields they do not model, so a
// load/rewrite/write round-trip never drops data from entries it does not
// touch. [Config.HasServers] records whether the mcpServers key existed in
// the source document; the rewrite flow treats its absence as "nothing to
// convert" while extraction treats it as an empty package set.
package mcp

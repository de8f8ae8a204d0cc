package mcp

import (
	"encoding/json"
	"sort"
)

// ServersKey is the top-level JSON key holding the server entries.
const ServersKey = "mcpServers"

// Server represents a single MCP server launch spec: a command plus its
// argument list. The server's name is the map key in the enclosing Config
// and is not serialized inside the entry.
type Server struct {
	// Name is the server's unique identifier, taken from the config map key.
	Name string `json:"-"`

	// Command is the executable to launch.
	Command string `json:"command,omitempty"`

	// Args are command-line arguments passed to Command.
	Args []string `json:"args,omitempty"`

	// Env contains environment variables passed to the server process.
	Env map[string]string `json:"env,omitempty"`

	// unknownFields stores JSON fields not explicitly defined in this struct.
	// Entries that are not rewritten must round-trip without losing fields
	// like "url", "headers" or anything future clients add.
	unknownFields map[string]json.RawMessage
}

// Clone returns a deep copy of the server entry.
// The rewrite flow mutates the copy and leaves the loaded config untouched.
func (s *Server) Clone() *Server {
	c := &Server{
		Name:    s.Name,
		Command: s.Command,
	}
	if s.Args != nil {
		c.Args = make([]string, len(s.Args))
		copy(c.Args, s.Args)
	}
	if s.Env != nil {
		c.Env = make(map[string]string, len(s.Env))
		for k, v := range s.Env {
			c.Env[k] = v
		}
	}
	if s.unknownFields != nil {
		c.unknownFields = make(map[string]json.RawMessage, len(s.unknownFields))
		for k, v := range s.unknownFields {
			c.unknownFields[k] = v
		}
	}
	return c
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (s *Server) MarshalJSON() ([]byte, error) {
	// Build a map with all fields
	result := make(map[string]any)

	// Copy unknown fields first (so known fields take precedence)
	for k, v := range s.unknownFields {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		result[k] = val
	}

	// Add known fields (only if non-zero to match omitempty behavior)
	if s.Command != "" {
		result["command"] = s.Command
	}
	if len(s.Args) > 0 {
		result["args"] = s.Args
	}
	if len(s.Env) > 0 {
		result["env"] = s.Env
	}

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (s *Server) UnmarshalJSON(data []byte) error {
	// First, unmarshal into a generic map to capture all fields
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Extract known fields
	if v, ok := raw["command"]; ok {
		if err := json.Unmarshal(v, &s.Command); err != nil {
			return err
		}
		delete(raw, "command")
	}
	if v, ok := raw["args"]; ok {
		if err := json.Unmarshal(v, &s.Args); err != nil {
			return err
		}
		delete(raw, "args")
	}
	if v, ok := raw["env"]; ok {
		if err := json.Unmarshal(v, &s.Env); err != nil {
			return err
		}
		delete(raw, "env")
	}

	// Store remaining fields as unknown
	if len(raw) > 0 {
		s.unknownFields = raw
	}

	return nil
}

// Config represents a loaded MCP configuration document.
type Config struct {
	// Servers maps server names to their launch specs.
	Servers map[string]*Server `json:"-"`

	// HasServers records whether the top-level mcpServers key was present
	// in the source document. Callers choose whether its absence is an
	// error (strict) or means "nothing to convert" (permissive).
	HasServers bool `json:"-"`

	// unknownFields stores top-level JSON fields other than mcpServers.
	unknownFields map[string]json.RawMessage
}

// NewConfig creates a new Config with an initialized server map.
// The mcpServers key is considered present.
func NewConfig() *Config {
	return &Config{
		Servers:    make(map[string]*Server),
		HasServers: true,
	}
}

// Names returns the server names in sorted order for deterministic iteration.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Servers))
	for name := range c.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (c *Config) MarshalJSON() ([]byte, error) {
	// Build a map with all fields
	result := make(map[string]any)

	// Copy unknown fields first (so known fields take precedence)
	for k, v := range c.unknownFields {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		result[k] = val
	}

	if c.HasServers {
		servers := c.Servers
		if servers == nil {
			servers = make(map[string]*Server)
		}
		result[ServersKey] = servers
	}

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (c *Config) UnmarshalJSON(data []byte) error {
	// First, unmarshal into a generic map to capture all fields
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Extract the known field
	if serversData, ok := raw[ServersKey]; ok {
		if err := json.Unmarshal(serversData, &c.Servers); err != nil {
			return err
		}
		c.HasServers = true
		delete(raw, ServersKey)
	}

	if c.Servers == nil {
		c.Servers = make(map[string]*Server)
	}

	// Propagate map keys as server names
	for name, server := range c.Servers {
		if server != nil {
			server.Name = name
		}
	}

	// Store remaining fields as unknown
	if len(raw) > 0 {
		c.unknownFields = raw
	}

	return nil
}

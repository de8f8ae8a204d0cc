// Package parser provides JSON parsing and writing for MCP configuration
// documents. It handles loading config files from disk and writing them back
// with proper formatting and atomic file operations.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	mcperrors "github.com/mcpdock/mcpdock/internal/errors"
	"github.com/mcpdock/mcpdock/internal/mcp"
	"github.com/mcpdock/mcpdock/internal/paths"
	"github.com/mcpdock/mcpdock/pkg/fileutil"
)

// Sentinel errors for parser operations.
var (
	// ErrInvalidJSON indicates the input is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrMissingServers indicates the document has no top-level mcpServers key.
	// Only strict callers treat this as an error; see RequireServers.
	ErrMissingServers = errors.New("missing mcpServers key")
)

// ParseError wraps errors that occur during parsing with path context.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parsing MCP config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parsing MCP config: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads an MCP config from JSON bytes.
// Returns an error if the JSON is malformed. A document without the
// mcpServers key parses successfully with HasServers unset; callers that
// require the key use RequireServers.
func Parse(data []byte) (*mcp.Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidJSON)
	}

	var cfg mcp.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %v at offset %d", ErrInvalidJSON, err, syntaxErr.Offset)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return &cfg, nil
}

// ParseFile reads an MCP config from a file path.
// A missing file is fatal for every caller of this tool, so it surfaces as
// ErrInputMissing rather than an empty config.
func ParseFile(path string) (*mcp.Config, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ParseError{Path: path, Err: mcperrors.ErrInputMissing}
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return cfg, nil
}

// RequireServers enforces the strict loading mode: a config whose source
// document lacked the mcpServers key is rejected with ErrMissingServers.
func RequireServers(cfg *mcp.Config) error {
	if cfg == nil || !cfg.HasServers {
		return ErrMissingServers
	}
	return nil
}

// Write writes an MCP config to JSON bytes with indentation.
// The output is formatted with 2-space indentation for readability.
func Write(cfg *mcp.Config) ([]byte, error) {
	if cfg == nil {
		cfg = mcp.NewConfig()
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling MCP config: %w", err)
	}

	// Append newline for POSIX compliance
	data = append(data, '\n')
	return data, nil
}

// WriteFile writes an MCP config to a file using an atomic write.
// Creates parent directories if they don't exist.
func WriteFile(path string, cfg *mcp.Config) error {
	data, err := Write(cfg)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return &ParseError{Path: path, Err: fmt.Errorf("creating directory: %w", err)}
	}

	if err := fileutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}

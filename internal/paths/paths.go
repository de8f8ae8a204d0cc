package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Historical fixed paths the tool defaults to. They can be overridden via
// flags or the mcpdock config file.
const (
	// DefaultConvertInput is the default source config for the rewrite flow.
	DefaultConvertInput = "/app/config.json"

	// DefaultConvertOutput is the default target for the rewritten config.
	// It lives in a writable location because the source is often mounted
	// read-only inside a container.
	DefaultConvertOutput = "/tmp/config.json"

	// DefaultGenerateConfig is the default source config for Dockerfile generation.
	DefaultGenerateConfig = "config.json"

	// DefaultGenerateTemplate is the default Dockerfile template path.
	DefaultGenerateTemplate = "Dockerfile.template"

	// DefaultGenerateOutput is the default generated Dockerfile path.
	DefaultGenerateOutput = "Dockerfile"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// This is a thin wrapper around os.UserHomeDir for consistency.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WithSecondaryError(ErrHomeDirNotFound, err)
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// Falls back to ~/.config if XDG_CONFIG_HOME is not set.
func ConfigHome() string {
	if xdg.ConfigHome != "" {
		return xdg.ConfigHome
	}
	home, err := Home()
	if err != nil {
		// Last resort: relative path in CWD
		return ".config"
	}
	return filepath.Join(home, ".config")
}

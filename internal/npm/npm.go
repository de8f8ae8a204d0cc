// Package npm wraps the narrow slice of npm this tool depends on: locating
// the global installation root and reading an installed package's manifest.
package npm

import (
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrRootLookup indicates the npm global root could not be determined.
var ErrRootLookup = errors.New("npm global root lookup failed")

// RootResolver resolves the package manager's global installation root.
// It exists so resolution logic can be tested without a real npm install.
type RootResolver interface {
	// GlobalRoot returns the absolute path of the global node_modules
	// directory, as reported by the package manager.
	GlobalRoot() (string, error)
}

// CLI resolves the global root by invoking the npm binary.
type CLI struct{}

// GlobalRoot runs `npm root -g` and returns its trimmed standard output.
func (CLI) GlobalRoot() (string, error) {
	out, err := exec.Command("npm", "root", "-g").Output()
	if err != nil {
		return "", errors.Wrapf(ErrRootLookup, "running npm root -g: %v", err)
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.Wrap(ErrRootLookup, "npm root -g returned empty output")
	}
	return root, nil
}

// Package dockerfile renders a Dockerfile from a template by substituting
// the package-install placeholder line with a generated install plan.
package dockerfile

import (
	"io/fs"
	"strings"

	"github.com/cockroachdb/errors"

	mcperrors "github.com/mcpdock/mcpdock/internal/errors"
	"github.com/mcpdock/mcpdock/pkg/fileutil"
)

// Placeholder is the single recognized template marker. It is matched as an
// exact substring, not parsed; the template is otherwise opaque text.
const Placeholder = "{{range .MCPPackages}} && npm install -g {{.}}{{end}}"

// continuation joins consecutive install commands into one shell statement
// spread over multiple Dockerfile lines.
const continuation = " \\\n"

// Render substitutes the placeholder in a template.
//
// A line containing the placeholder is rewritten with the plan's commands
// joined as a line-continued shell sequence. With an empty plan the whole
// line is dropped, so the template never ends up with a dangling
// continuation. All other lines pass through byte-for-byte.
func Render(templateLines []string, plan []string) []string {
	out := make([]string, 0, len(templateLines))
	for _, line := range templateLines {
		if !strings.Contains(line, Placeholder) {
			out = append(out, line)
			continue
		}
		if len(plan) == 0 {
			continue
		}
		out = append(out, strings.Replace(line, Placeholder, strings.Join(plan, continuation), 1))
	}
	return out
}

// RenderFile reads the template at templatePath, renders it against plan and
// writes the result to outputPath atomically. A missing template surfaces as
// ErrInputMissing.
func RenderFile(templatePath, outputPath string, plan []string) error {
	data, err := fileutil.ReadFileWithLimit(templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(mcperrors.ErrInputMissing, "%s", templatePath)
		}
		return errors.Wrapf(err, "reading template %s", templatePath)
	}

	lines := Render(strings.Split(string(data), "\n"), plan)

	out := strings.Join(lines, "\n")
	if err := fileutil.AtomicWriteFile(outputPath, []byte(out), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", outputPath)
	}
	return nil
}

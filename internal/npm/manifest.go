package npm

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mcpdock/mcpdock/pkg/fileutil"
)

// ManifestFile is the package metadata file name inside an install directory.
const ManifestFile = "package.json"

// Sentinel errors for manifest handling.
var (
	// ErrManifestNotFound indicates the package directory or its manifest is absent.
	ErrManifestNotFound = errors.New("package manifest not found")

	// ErrNoBinaries indicates the manifest declares no binary entry points.
	ErrNoBinaries = errors.New("manifest declares no binaries")
)

// BinKind discriminates the two shapes the manifest's bin field can take.
type BinKind int

const (
	// BinNone means the manifest has no bin field (or an empty one).
	BinNone BinKind = iota
	// BinSingle means bin is a single script path string.
	BinSingle
	// BinTable means bin is an object mapping binary names to script paths.
	BinTable
)

// BinField is the manifest's binary declaration, discriminated once at parse
// time instead of type-switched at every use.
type BinField struct {
	// Kind identifies which shape the source document used.
	Kind BinKind

	// Path is the script path for the BinSingle shape.
	Path string

	// Names holds binary names in document order for the BinTable shape.
	// npm treats the first declared name as primary, so order matters here
	// even though Go maps would not preserve it.
	Names []string

	// Paths maps each binary name to its script path for the BinTable shape.
	Paths map[string]string
}

// UnmarshalJSON discriminates the string and object shapes of the bin field.
// Object keys are collected in document order with a token decoder because
// unmarshaling into a map would lose the declaration order.
func (b *BinField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*b = BinField{}
		return nil
	}

	if trimmed[0] == '"' {
		var path string
		if err := json.Unmarshal(trimmed, &path); err != nil {
			return err
		}
		*b = BinField{Kind: BinSingle, Path: path}
		return nil
	}

	if trimmed[0] != '{' {
		return errors.Newf("bin field must be a string or object, got %s", trimmed)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // consume '{'
		return err
	}

	out := BinField{Kind: BinTable, Paths: make(map[string]string)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.Newf("unexpected token %v in bin object", keyTok)
		}

		var path string
		if err := dec.Decode(&path); err != nil {
			return errors.Wrapf(err, "bin entry %q", key)
		}

		out.Names = append(out.Names, key)
		out.Paths[key] = path
	}

	if len(out.Names) == 0 {
		out = BinField{}
	}
	*b = out
	return nil
}

// Manifest models the subset of package.json this tool reads.
type Manifest struct {
	Name string   `json:"name"`
	Bin  BinField `json:"bin"`
}

// ReadManifest loads and parses the package.json inside dir.
// A missing directory or manifest surfaces as ErrManifestNotFound so callers
// can treat it as a non-fatal resolution failure.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrManifestNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &m, nil
}

// BinaryName derives the binary a package installs, given its manifest.
//
// For the single-path shape npm names the binary after the package, so the
// name is the last path segment of the package identifier with any @scope
// prefix stripped. For the table shape the first declared name wins.
func (m *Manifest) BinaryName(pkg string) (string, error) {
	switch m.Bin.Kind {
	case BinSingle:
		name := pkg
		if strings.HasPrefix(name, "@") {
			if idx := strings.LastIndex(name, "/"); idx >= 0 {
				name = name[idx+1:]
			}
		}
		name = filepath.Base(name)
		return name, nil
	case BinTable:
		return m.Bin.Names[0], nil
	default:
		return "", errors.Wrapf(ErrNoBinaries, "package %s", pkg)
	}
}

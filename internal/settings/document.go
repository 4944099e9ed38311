// internal/settings/document.go
//
// Two-layer YAML document backing config.yml.
//
// Context
// -------
// A Document holds two koanf trees:
//
//   - user      what was parsed from disk, and the only layer ever saved;
//   - defaults  compiled defaults seeded by EnsureDefault during a load.
//
// Reads prefer the user layer.  MergeDefaults copies every default the user
// has not set into the user layer, which is how a migration fills in new
// keys without touching anything the operator wrote.
//
// Notes
// -----
//   • Paths use “.” as the delimiter, so keys containing a dot cannot be
//     addressed.  None of the vocabularies contain one.
//   • The file is opened and closed inside each read and each write; the
//     Document never holds a handle.
//   • Save writes a temp file beside the target and renames it over, so a
//     crash mid-write leaves the previous document intact.
//   • Save refuses to replace a file whose identity, size, or mtime moved
//     since it was read; an operator's in-flight edit always wins.
//   • A null user value (a bare “key:” line) reads as unset.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	koanf "github.com/knadh/koanf/v2"
)

const delim = "."

// Document is a loaded config.yml plus its seeded defaults.
type Document struct {
	path     string
	user     *koanf.Koanf
	defaults *koanf.Koanf
	read     os.FileInfo // file state when parsed; nil if not from disk
}

// rawBytes feeds already-read file contents to koanf.Load.
type rawBytes []byte

func (b rawBytes) ReadBytes() ([]byte, error) { return b, nil }

func (b rawBytes) Read() (map[string]interface{}, error) {
	return nil, errors.New("rawBytes provider requires a parser")
}

/*──────────────────────────── open / parse ────────────────────────────────*/

// ensureFile creates path and its parent directories when missing.
func ensureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create directory for %s: %w", ErrIO, path, err)
	}
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}
	return f.Close()
}

// readDocument parses the file at path.  An empty or whitespace-only file
// yields an empty document.  The file is stat'ed before it is read, so a
// write racing the read always shows up as a change at Save time.
func readDocument(path string) (*Document, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	doc, err := parseDocument(path, b)
	if err != nil {
		return nil, err
	}
	doc.read = fi
	return doc, nil
}

func parseDocument(path string, b []byte) (*Document, error) {
	user := koanf.New(delim)
	if err := user.Load(rawBytes(b), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalidConfiguration, path, err)
	}
	return &Document{
		path:     path,
		user:     user,
		defaults: koanf.New(delim),
	}, nil
}

// OpenDocument ensures path exists, then reads and parses it.
func OpenDocument(path string) (*Document, error) {
	if err := ensureFile(path); err != nil {
		return nil, err
	}
	return readDocument(path)
}

/*──────────────────────────── accessors ───────────────────────────────────*/

// Path returns the backing file.
func (d *Document) Path() string { return d.path }

// EnsureDefault records v as the default for path unless one is already
// recorded.  It reports whether anything was written.  Calling it again
// with the same path is a no-op.
func (d *Document) EnsureDefault(path string, v any) bool {
	if d.defaults.Exists(path) {
		return false
	}
	_ = d.defaults.Set(path, v)
	return true
}

// Get returns the non-null user value at path, else the default, else
// false.
func (d *Document) Get(path string) (any, bool) {
	if d.user.Exists(path) {
		if v := d.user.Get(path); v != nil {
			return v, true
		}
	}
	if d.defaults.Exists(path) {
		return d.defaults.Get(path), true
	}
	return nil, false
}

// Default returns only the seeded default at path.
func (d *Document) Default(path string) (any, bool) {
	if !d.defaults.Exists(path) {
		return nil, false
	}
	return d.defaults.Get(path), true
}

// IsSet reports whether the user layer holds path.
func (d *Document) IsSet(path string) bool { return d.user.Exists(path) }

// IsSection reports whether the user layer holds a mapping at path.
func (d *Document) IsSection(path string) bool {
	_, ok := d.user.Get(path).(map[string]interface{})
	return ok
}

// IsScalar reports whether the user layer holds a non-null, non-mapping
// value at path.  A bare “key:” line is null and does not count.
func (d *Document) IsScalar(path string) bool {
	if !d.user.Exists(path) {
		return false
	}
	val := d.user.Get(path)
	if val == nil {
		return false
	}
	_, isMap := val.(map[string]interface{})
	return !isMap
}

// IsNull reports whether the user layer holds an explicit null at path.
func (d *Document) IsNull(path string) bool {
	return d.user.Exists(path) && d.user.Get(path) == nil
}

// ScalarAncestor returns the nearest path at or above path that the user
// set to a scalar, if any.
func (d *Document) ScalarAncestor(path string) (string, bool) {
	parts := strings.Split(path, delim)
	for i := 1; i <= len(parts); i++ {
		p := strings.Join(parts[:i], delim)
		if d.IsScalar(p) {
			return p, true
		}
	}
	return "", false
}

// Set writes v into the user layer.
func (d *Document) Set(path string, v any) error {
	return d.user.Set(path, v)
}

// SectionKeys lists the immediate child keys of path in the user layer.
func (d *Document) SectionKeys(path string) []string {
	return d.user.MapKeys(path)
}

/*──────────────────────────── merge / save ────────────────────────────────*/

// MergeDefaults copies every seeded default the user has not set into the
// user layer and returns how many leaves were added.  A null leaf counts as
// unset.  A default whose parent path the user set to a scalar is skipped
// so the scalar survives.
func (d *Document) MergeDefaults() int {
	var added int
	for _, key := range d.defaults.Keys() {
		if (d.user.Exists(key) && !d.IsNull(key)) || d.shadowed(key) {
			continue
		}
		if err := d.user.Set(key, d.defaults.Get(key)); err == nil {
			added++
		}
	}
	return added
}

func (d *Document) shadowed(key string) bool {
	i := strings.LastIndex(key, delim)
	if i < 0 {
		return false
	}
	_, ok := d.ScalarAncestor(key[:i])
	return ok
}

// Bytes renders the user layer as YAML preceded by header, one “# ” line
// per header line.
func (d *Document) Bytes(header string) ([]byte, error) {
	body, err := d.user.Marshal(yaml.Parser())
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if header != "" {
		for _, line := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
			if line == "" {
				sb.WriteString("#\n")
				continue
			}
			sb.WriteString("# ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.Write(body)
	return []byte(sb.String()), nil
}

// Save atomically replaces the backing file with Bytes(header).  A
// Document read from disk is only saved while the file is still the one
// it was read from; otherwise Save returns ErrFileChanged and leaves the
// file alone.
func (d *Document) Save(header string) error {
	b, err := d.Bytes(header)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrIO, d.path, err)
	}
	if err := d.unchanged(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".config-*.yml.tmp")
	if err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrIO, d.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: save %s: %w", ErrIO, d.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: save %s: %w", ErrIO, d.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrIO, d.path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrIO, d.path, err)
	}
	if err := d.unchanged(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrIO, d.path, err)
	}
	if fi, err := os.Stat(d.path); err == nil {
		d.read = fi
	}
	return nil
}

// unchanged compares the file on disk with the state recorded at read.
func (d *Document) unchanged() error {
	if d.read == nil {
		return nil
	}
	fi, err := os.Stat(d.path)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrIO, d.path, err)
	}
	if !os.SameFile(d.read, fi) || fi.Size() != d.read.Size() || !fi.ModTime().Equal(d.read.ModTime()) {
		return fmt.Errorf("%w: %s", ErrFileChanged, d.path)
	}
	return nil
}

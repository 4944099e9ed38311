// internal/settings/errors.go
//
// Failure kinds surfaced by the settings loader.
//
// Context
// -------
// Only two kinds abort a load: the file system refused us (ErrIO), or the
// document is not valid YAML mapping text (ErrInvalidConfiguration).  Both
// are sentinels wrapped together with their cause, so callers can test the
// kind with errors.Is and still see the underlying message.
//
// Everything else (an unknown enum key, a value of the wrong type, a scalar
// that fails validation) is recorded as a Warning on the Snapshot, logged
// once, and otherwise ignored.
package settings

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yanizio/ftop/internal/metrics"
)

var (
	// ErrInvalidConfiguration marks a document that failed to parse.  The
	// file on disk is left untouched.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrIO marks a directory or file operation that failed.
	ErrIO = errors.New("settings i/o")

	// ErrFileChanged marks a save abandoned because config.yml changed on
	// disk after it was read.  It is also an ErrIO.
	ErrFileChanged = fmt.Errorf("%w: file changed since it was read", ErrIO)
)

// Warning is one non-fatal problem found while loading.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string { return w.Path + ": " + w.Message }

// report collects warnings for one load and logs each as it arrives.
type report struct {
	log      *zap.SugaredLogger
	warnings []Warning
}

func (r *report) warn(path, msg string) {
	r.warnings = append(r.warnings, Warning{Path: path, Message: msg})
	metrics.SettingsWarningsTotal.Inc()
	r.log.Warnw(msg, "path", path)
}

// errorKind labels a load error for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidConfiguration):
		return "invalid"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "other"
	}
}

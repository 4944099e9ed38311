// internal/settings/scalars.go
//
// Scalar settings: read-or-seed-default, then validate.
//
// Context
// -------
// Each scalar goes through Document.EnsureDefault followed by Document.Get,
// so an absent key reads back its compiled default and a present key is
// never overwritten.  Values of the wrong type fall back to the default
// with a warning.  The coerced block is then checked with
// go-playground/validator; every failing field is reset to its default,
// again with one warning per field.
//
// Notes
// -----
//   • The `doc` tag names the document path and doubles as the field name
//     reported by the validator.
//   • Oxford commas, two spaces after periods.
package settings

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// scalars is the non-enum part of a Snapshot.
type scalars struct {
	CommandAliases         []string `doc:"settings.command-aliases"         validate:"dive,required"`
	FactionsPerPage        int      `doc:"settings.hook-per-page"           validate:"min=1"`
	MaxBatchSize           int      `doc:"settings.max-batch-size"          validate:"min=1"`
	MaxQueueSize           int      `doc:"settings.max-queue-size"          validate:"min=1"`
	ChunkRecalculateMillis int64    `doc:"settings.chunk-recalculate-millis" validate:"min=0"`
	BatchRecalculateMillis int64    `doc:"settings.batch-recalculate-millis" validate:"min=0"`
}

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("doc")
	})
	return val
}

//
// readers
//

func readInt(doc *Document, rep *report, path string, def int64) int64 {
	doc.EnsureDefault(path, def)
	raw, _ := doc.Get(path)
	n, ok := asInt(raw)
	if !ok {
		rep.warn(path, fmt.Sprintf("expected an integer, using default %d", def))
		return def
	}
	return n
}

func readStrings(doc *Document, rep *report, path string, def []string) []string {
	doc.EnsureDefault(path, slices.Clone(def))
	raw, _ := doc.Get(path)
	list, ok := asStrings(raw)
	if !ok {
		rep.warn(path, fmt.Sprintf("expected a list of strings, using default %q", def))
		return slices.Clone(def)
	}
	return list
}

// readScalars loads and validates every scalar setting.
func readScalars(doc *Document, rep *report) scalars {
	def := defaultScalars
	out := scalars{
		CommandAliases:         readStrings(doc, rep, pathCommandAliases, def.CommandAliases),
		FactionsPerPage:        int(readInt(doc, rep, pathFactionsPerPage, int64(def.FactionsPerPage))),
		MaxBatchSize:           int(readInt(doc, rep, pathMaxBatchSize, int64(def.MaxBatchSize))),
		MaxQueueSize:           int(readInt(doc, rep, pathMaxQueueSize, int64(def.MaxQueueSize))),
		ChunkRecalculateMillis: readInt(doc, rep, pathChunkRecalculateMillis, def.ChunkRecalculateMillis),
		BatchRecalculateMillis: readInt(doc, rep, pathBatchRecalculateMillis, def.BatchRecalculateMillis),
	}
	validateScalars(&out, rep)
	return out
}

// validateScalars resets every field that fails its rule.
func validateScalars(s *scalars, rep *report) {
	err := v.Struct(s)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}

	done := make(map[string]bool)
	for _, fe := range verrs {
		field := trimIndex(fe.StructField())
		if done[field] {
			continue
		}
		done[field] = true
		resetScalar(s, field)
		rep.warn(trimIndex(fe.Field()),
			fmt.Sprintf("value %v fails %q, using default", fe.Value(), fe.Tag()))
	}
}

func trimIndex(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}

func resetScalar(s *scalars, field string) {
	def := defaultScalars
	switch field {
	case "CommandAliases":
		s.CommandAliases = slices.Clone(def.CommandAliases)
	case "FactionsPerPage":
		s.FactionsPerPage = def.FactionsPerPage
	case "MaxBatchSize":
		s.MaxBatchSize = def.MaxBatchSize
	case "MaxQueueSize":
		s.MaxQueueSize = def.MaxQueueSize
	case "ChunkRecalculateMillis":
		s.ChunkRecalculateMillis = def.ChunkRecalculateMillis
	case "BatchRecalculateMillis":
		s.BatchRecalculateMillis = def.BatchRecalculateMillis
	}
}

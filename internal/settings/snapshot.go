// internal/settings/snapshot.go
//
// Immutable, typed projection of config.yml.
//
// A Snapshot is built once per load and published through Store with an
// atomic pointer swap.  Nothing mutates it afterwards; getters that return
// slices hand out copies.
package settings

import (
	"slices"
	"time"

	"github.com/yanizio/ftop/internal/worth"
)

// Snapshot is the loaded settings.
type Snapshot struct {
	version     int
	fromVersion int
	migrated    bool
	scalars     scalars

	enabled                map[worth.Type]bool
	detailed               map[worth.Type]bool
	performRecalculate     map[worth.RecalculateReason]bool
	bypassRecalculateDelay map[worth.RecalculateReason]bool
	spawnerPrices          map[worth.EntityKind]float64
	blockPrices            map[worth.MaterialKind]float64

	warnings []Warning
}

// Version is the config-version the document carries after the load.
func (s *Snapshot) Version() int { return s.version }

// FromVersion is the config-version read from disk, before any migration.
func (s *Snapshot) FromVersion() int { return s.fromVersion }

// Migrated reports whether this load rewrote the document.
func (s *Snapshot) Migrated() bool { return s.migrated }

// Warnings lists every non-fatal problem found during the load.
func (s *Snapshot) Warnings() []Warning { return slices.Clone(s.warnings) }

func (s *Snapshot) CommandAliases() []string { return slices.Clone(s.scalars.CommandAliases) }
func (s *Snapshot) FactionsPerPage() int     { return s.scalars.FactionsPerPage }
func (s *Snapshot) MaxBatchSize() int        { return s.scalars.MaxBatchSize }
func (s *Snapshot) MaxQueueSize() int        { return s.scalars.MaxQueueSize }

func (s *Snapshot) ChunkRecalculateMillis() int64 { return s.scalars.ChunkRecalculateMillis }
func (s *Snapshot) BatchRecalculateMillis() int64 { return s.scalars.BatchRecalculateMillis }

// ChunkRecalculateDelay is ChunkRecalculateMillis as a Duration.
func (s *Snapshot) ChunkRecalculateDelay() time.Duration {
	return time.Duration(s.scalars.ChunkRecalculateMillis) * time.Millisecond
}

// BatchRecalculateDelay is BatchRecalculateMillis as a Duration.
func (s *Snapshot) BatchRecalculateDelay() time.Duration {
	return time.Duration(s.scalars.BatchRecalculateMillis) * time.Millisecond
}

// IsEnabled reports whether t counts towards faction worth.  Unknown keys
// read as false.
func (s *Snapshot) IsEnabled(t worth.Type) bool { return s.enabled[t] }

// IsDetailed reports whether t is broken out in worth listings.
func (s *Snapshot) IsDetailed(t worth.Type) bool { return s.detailed[t] }

// ShouldRecalculate reports whether r triggers a recalculation.
func (s *Snapshot) ShouldRecalculate(r worth.RecalculateReason) bool {
	return s.performRecalculate[r]
}

// BypassesDelay reports whether r skips the recalculation delay.
func (s *Snapshot) BypassesDelay(r worth.RecalculateReason) bool {
	return s.bypassRecalculateDelay[r]
}

// SpawnerPrice is the worth of one spawner of e, or 0.
func (s *Snapshot) SpawnerPrice(e worth.EntityKind) float64 { return s.spawnerPrices[e] }

// BlockPrice is the worth of one block of m, or 0.
func (s *Snapshot) BlockPrice(m worth.MaterialKind) float64 { return s.blockPrices[m] }

/*──────────────────────────── view ────────────────────────────────────────*/

// View is a JSON-friendly copy of a Snapshot with maps keyed by name.
type View struct {
	ConfigVersion          int                `json:"config_version"`
	Migrated               bool               `json:"migrated"`
	CommandAliases         []string           `json:"command_aliases"`
	FactionsPerPage        int                `json:"hook_per_page"`
	MaxBatchSize           int                `json:"max_batch_size"`
	MaxQueueSize           int                `json:"max_queue_size"`
	ChunkRecalculateMillis int64              `json:"chunk_recalculate_millis"`
	BatchRecalculateMillis int64              `json:"batch_recalculate_millis"`
	Enabled                map[string]bool    `json:"enabled"`
	Detailed               map[string]bool    `json:"detailed"`
	PerformRecalculate     map[string]bool    `json:"perform_recalculate"`
	BypassRecalculateDelay map[string]bool    `json:"bypass_recalculate_delay"`
	SpawnerPrices          map[string]float64 `json:"spawner_prices"`
	BlockPrices            map[string]float64 `json:"block_prices"`
	Warnings               []string           `json:"warnings,omitempty"`
}

// View copies s into a View.
func (s *Snapshot) View() View {
	out := View{
		ConfigVersion:          s.version,
		Migrated:               s.migrated,
		CommandAliases:         s.CommandAliases(),
		FactionsPerPage:        s.scalars.FactionsPerPage,
		MaxBatchSize:           s.scalars.MaxBatchSize,
		MaxQueueSize:           s.scalars.MaxQueueSize,
		ChunkRecalculateMillis: s.scalars.ChunkRecalculateMillis,
		BatchRecalculateMillis: s.scalars.BatchRecalculateMillis,
		Enabled:                byName(s.enabled),
		Detailed:               byName(s.detailed),
		PerformRecalculate:     byName(s.performRecalculate),
		BypassRecalculateDelay: byName(s.bypassRecalculateDelay),
		SpawnerPrices:          byName(s.spawnerPrices),
		BlockPrices:            byName(s.blockPrices),
	}
	for _, w := range s.warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	return out
}

func byName[K interface {
	comparable
	String() string
}, V any](in map[K]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k.String()] = v
	}
	return out
}

// internal/settings/defaults.go
//
// Compiled-in schema: document paths, scalar defaults, exempt lists, and
// price seed tables.
package settings

import (
	"slices"

	"github.com/yanizio/ftop/internal/worth"
)

const (
	// LatestVersion is the schema version this build writes.
	LatestVersion = 1

	// Header is stamped at the top of config.yml on migration.
	Header = "FactionsTop configuration.\n"

	// FileName is the document's name inside the data directory.
	FileName = "config.yml"
)

// Document paths.
const (
	pathVersion                = "config-version"
	pathSettings               = "settings"
	pathCommandAliases         = "settings.command-aliases"
	pathFactionsPerPage        = "settings.hook-per-page"
	pathMaxBatchSize           = "settings.max-batch-size"
	pathMaxQueueSize           = "settings.max-queue-size"
	pathChunkRecalculateMillis = "settings.chunk-recalculate-millis"
	pathBatchRecalculateMillis = "settings.batch-recalculate-millis"
	pathEnabled                = "settings.enabled"
	pathDetailed               = "settings.detailed"
	pathPerformRecalculate     = "settings.perform-recalculate"
	pathBypassRecalculateDelay = "settings.bypass-recalculate-delay"
	pathSpawnerPrices          = "settings.spawner-prices"
	pathBlockPrices            = "settings.block-prices"
)

// defaultScalars is the scalar block every fresh document starts from.
var defaultScalars = scalars{
	CommandAliases:         []string{"f top"},
	FactionsPerPage:        8,
	MaxBatchSize:           10,
	MaxQueueSize:           200,
	ChunkRecalculateMillis: 120_000,
	BatchRecalculateMillis: 15_000,
}

// Exempt lists flip a section's default for their members.
var (
	enabledExempt = []worth.Type{worth.Chests}
	bypassExempt  = []worth.RecalculateReason{worth.ReasonUnload, worth.ReasonClaim}
)

var spawnerSeed = map[worth.EntityKind]float64{
	worth.Slime:    75_000,
	worth.Skeleton: 30_000,
	worth.Zombie:   25_000,
}

var blockSeed = map[worth.MaterialKind]float64{
	worth.EmeraldBlock: 1_250,
	worth.DiamondBlock: 1_000,
	worth.GoldBlock:    250,
	worth.IronBlock:    75,
	worth.CoalBlock:    25,
}

// exemptPolicy returns def for every key except members of exempt, which
// get !def.
func exemptPolicy[K comparable](def bool, exempt []K) func(K) bool {
	return func(k K) bool {
		return def != slices.Contains(exempt, k)
	}
}

// seedPolicy returns the seeded price for k, or zero.
func seedPolicy[K comparable](seed map[K]float64) func(K) float64 {
	return func(k K) float64 { return seed[k] }
}

var (
	enabledSection = section[worth.Type, bool]{
		path:   pathEnabled,
		vocab:  worth.Types,
		def:    exemptPolicy(true, enabledExempt),
		coerce: asBool,
		kind:   "boolean",
	}
	detailedSection = section[worth.Type, bool]{
		path:   pathDetailed,
		vocab:  worth.Types,
		def:    exemptPolicy[worth.Type](true, nil),
		coerce: asBool,
		kind:   "boolean",
	}
	performRecalculateSection = section[worth.RecalculateReason, bool]{
		path:   pathPerformRecalculate,
		vocab:  worth.Reasons,
		def:    exemptPolicy[worth.RecalculateReason](true, nil),
		coerce: asBool,
		kind:   "boolean",
	}
	bypassRecalculateDelaySection = section[worth.RecalculateReason, bool]{
		path:   pathBypassRecalculateDelay,
		vocab:  worth.Reasons,
		def:    exemptPolicy(false, bypassExempt),
		coerce: asBool,
		kind:   "boolean",
	}
	spawnerPriceSection = section[worth.EntityKind, float64]{
		path:   pathSpawnerPrices,
		vocab:  worth.Entities,
		def:    seedPolicy(spawnerSeed),
		coerce: asFloat,
		kind:   "number",
	}
	blockPriceSection = section[worth.MaterialKind, float64]{
		path:   pathBlockPrices,
		vocab:  worth.Materials,
		def:    seedPolicy(blockSeed),
		coerce: asFloat,
		kind:   "number",
	}
)

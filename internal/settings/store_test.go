// internal/settings/store_test.go
//
// Unit-tests for Store.Load.
//
// Context
// -------
// Every test writes a config.yml into t.TempDir(), loads it through a
// Store wired to a zap observer, and checks the Snapshot, the warnings, and
// what ended up on disk.  Behaviours covered:
//
//   • fresh document  → migrated, header written, exempt defaults applied
//   • second load     → byte-identical file, identical snapshot
//   • version-0 doc   → user overrides and unknown keys survive migration
//   • bad enum keys, bad value types, failed validation → warnings only
//   • malformed YAML  → ErrInvalidConfiguration, file untouched
//   • unusable dir    → ErrIO
//
// Run: go test ./internal/settings -v

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"

	"github.com/yanizio/ftop/internal/worth"
)

// fixture is a Store over a temp data dir with observed logs.
type fixture struct {
	store *Store
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T, doc string) *fixture {
	t.Helper()
	dir := t.TempDir()
	if doc != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(doc), 0o644))
	}
	core, logs := observer.New(zapcore.DebugLevel)
	return &fixture{
		store: NewStore(dir, zap.New(core).Sugar()),
		logs:  logs,
	}
}

func (f *fixture) read(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile(f.store.Path())
	require.NoError(t, err)
	return b
}

func (f *fixture) yaml(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, yaml.Unmarshal(f.read(t), &out))
	return out
}

func (f *fixture) warnings(msg string) int {
	return f.logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage(msg).Len()
}

func settingsSection(t *testing.T, doc map[string]any, name string) map[string]any {
	t.Helper()
	s, ok := doc["settings"].(map[string]any)
	require.True(t, ok, "settings section missing")
	sec, ok := s[name].(map[string]any)
	require.True(t, ok, "settings.%s missing", name)
	return sec
}

/*──────────────────────────── fresh document ──────────────────────────────*/

func TestLoadFreshDocument(t *testing.T) {
	f := newFixture(t, "")

	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.True(t, snap.Migrated())
	assert.Equal(t, 0, snap.FromVersion())
	assert.Equal(t, LatestVersion, snap.Version())
	assert.Empty(t, snap.Warnings())
	assert.Same(t, snap, f.store.Current())

	assert.Equal(t, []string{"f top"}, snap.CommandAliases())
	assert.Equal(t, 8, snap.FactionsPerPage())
	assert.Equal(t, 10, snap.MaxBatchSize())
	assert.Equal(t, 200, snap.MaxQueueSize())
	assert.EqualValues(t, 120_000, snap.ChunkRecalculateMillis())
	assert.EqualValues(t, 15_000, snap.BatchRecalculateMillis())
	assert.Equal(t, "2m0s", snap.ChunkRecalculateDelay().String())
	assert.Equal(t, "15s", snap.BatchRecalculateDelay().String())

	assert.Equal(t, 1, f.logs.FilterMessage("Configuration file has been successfully updated.").Len())

	doc := f.yaml(t)
	assert.Equal(t, LatestVersion, doc["config-version"])
	assert.True(t, strings.HasPrefix(string(f.read(t)), "# FactionsTop configuration."))
}

func TestLoadExemptDefaults(t *testing.T) {
	f := newFixture(t, "")
	snap, err := f.store.Load()
	require.NoError(t, err)

	for _, wt := range worth.Types.Values() {
		assert.Equal(t, wt != worth.Chests, snap.IsEnabled(wt), "enabled %s", wt)
		assert.True(t, snap.IsDetailed(wt), "detailed %s", wt)
	}
	for _, r := range worth.Reasons.Values() {
		want := r == worth.ReasonUnload || r == worth.ReasonClaim
		assert.Equal(t, want, snap.BypassesDelay(r), "bypass %s", r)
		assert.True(t, snap.ShouldRecalculate(r), "perform %s", r)
	}

	doc := f.yaml(t)
	assert.Equal(t, false, settingsSection(t, doc, "enabled")["CHESTS"])
	assert.Equal(t, true, settingsSection(t, doc, "bypass-recalculate-delay")["CLAIM"])
	assert.Equal(t, false, settingsSection(t, doc, "bypass-recalculate-delay")["BREAK"])
}

func TestLoadPriceDefaults(t *testing.T) {
	f := newFixture(t, "")
	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.Equal(t, 75_000.0, snap.SpawnerPrice(worth.Slime))
	assert.Equal(t, 30_000.0, snap.SpawnerPrice(worth.Skeleton))
	assert.Equal(t, 25_000.0, snap.SpawnerPrice(worth.Zombie))
	assert.Equal(t, 0.0, snap.SpawnerPrice(worth.Blaze))

	assert.Equal(t, 1_250.0, snap.BlockPrice(worth.EmeraldBlock))
	assert.Equal(t, 1_000.0, snap.BlockPrice(worth.DiamondBlock))
	assert.Equal(t, 250.0, snap.BlockPrice(worth.GoldBlock))
	assert.Equal(t, 75.0, snap.BlockPrice(worth.IronBlock))
	assert.Equal(t, 25.0, snap.BlockPrice(worth.CoalBlock))
	assert.Equal(t, 0.0, snap.BlockPrice(worth.Beacon))

	// outside the vocabulary entirely
	assert.Equal(t, 0.0, snap.BlockPrice(worth.MaterialKind(999)))
	assert.Equal(t, 0.0, snap.SpawnerPrice(worth.EntityKind(-1)))
	assert.False(t, snap.IsEnabled(worth.Type(999)))
}

func TestLoadCoversEveryConstant(t *testing.T) {
	f := newFixture(t, "")
	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.Len(t, snap.enabled, worth.Types.Len())
	assert.Len(t, snap.detailed, worth.Types.Len())
	assert.Len(t, snap.performRecalculate, worth.Reasons.Len())
	assert.Len(t, snap.bypassRecalculateDelay, worth.Reasons.Len())
	assert.Len(t, snap.spawnerPrices, worth.Entities.Len())
	assert.Len(t, snap.blockPrices, worth.Materials.Len())
}

/*──────────────────────────── idempotence ─────────────────────────────────*/

func TestLoadTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t, "")

	first, err := f.store.Load()
	require.NoError(t, err)
	afterFirst := f.read(t)

	second, err := f.store.Load()
	require.NoError(t, err)
	afterSecond := f.read(t)

	assert.Equal(t, string(afterFirst), string(afterSecond))
	assert.False(t, second.Migrated())
	assert.Equal(t, LatestVersion, second.FromVersion())

	v1, v2 := first.View(), second.View()
	v1.Migrated = false
	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, f.logs.FilterMessage("Configuration file has been successfully updated.").Len())
}

func TestLoadCurrentDocumentIsNotRewritten(t *testing.T) {
	src := "config-version: 1\nsettings:\n  max-batch-size: 25\n"
	f := newFixture(t, src)

	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.False(t, snap.Migrated())
	assert.Equal(t, src, string(f.read(t)))
	assert.Equal(t, 25, snap.MaxBatchSize())
	assert.Equal(t, 200, snap.MaxQueueSize())
	assert.False(t, snap.IsEnabled(worth.Chests))
	assert.True(t, snap.IsEnabled(worth.Blocks))
}

/*──────────────────────────── migration ───────────────────────────────────*/

func TestMigrationKeepsUserValues(t *testing.T) {
	src := `motd: keep me
settings:
  max-batch-size: 25
  command-aliases:
    - ftop
    - f worth
  enabled:
    BLOCKS: false
    CHESTS: true
  block-prices:
    iron block: 80
  custom-thing: 7
`
	f := newFixture(t, src)

	snap, err := f.store.Load()
	require.NoError(t, err)
	require.True(t, snap.Migrated())

	assert.Equal(t, 25, snap.MaxBatchSize())
	assert.Equal(t, []string{"ftop", "f worth"}, snap.CommandAliases())
	assert.False(t, snap.IsEnabled(worth.Blocks))
	assert.True(t, snap.IsEnabled(worth.Chests))
	assert.Equal(t, 80.0, snap.BlockPrice(worth.IronBlock))

	doc := f.yaml(t)
	assert.Equal(t, LatestVersion, doc["config-version"])
	assert.Equal(t, "keep me", doc["motd"])

	s := doc["settings"].(map[string]any)
	assert.Equal(t, 25, s["max-batch-size"])
	assert.Equal(t, 7, s["custom-thing"])
	assert.Equal(t, 200, s["max-queue-size"])

	enabled := settingsSection(t, doc, "enabled")
	assert.Equal(t, false, enabled["BLOCKS"])
	assert.Equal(t, true, enabled["CHESTS"])
	assert.Equal(t, true, enabled["SPAWNERS"])

	blocks := settingsSection(t, doc, "block-prices")
	assert.Equal(t, 80, blocks["iron block"])
	assert.NotContains(t, blocks, "IRON_BLOCK")
	assert.Equal(t, 1000, blocks["DIAMOND_BLOCK"])
}

func TestMigrationKeepsScalarWhereSectionExpected(t *testing.T) {
	f := newFixture(t, "settings:\n  enabled: true\n")

	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.Equal(t, 1, f.warnings("expected a section of WorthType keys, using defaults"))
	assert.True(t, snap.IsEnabled(worth.Blocks))
	assert.False(t, snap.IsEnabled(worth.Chests))

	s := f.yaml(t)["settings"].(map[string]any)
	assert.Equal(t, true, s["enabled"])
}

func TestScalarSettingsRootWarnsOnce(t *testing.T) {
	f := newFixture(t, "settings: 5\n")

	snap, err := f.store.Load()
	require.NoError(t, err)

	require.Len(t, snap.Warnings(), 1)
	assert.Equal(t, Warning{Path: "settings", Message: "expected a section, using defaults"}, snap.Warnings()[0])
	assert.Equal(t, 10, snap.MaxBatchSize())
	assert.True(t, snap.IsEnabled(worth.Blocks))
	assert.Equal(t, 1_000.0, snap.BlockPrice(worth.DiamondBlock))

	doc := f.yaml(t)
	assert.Equal(t, 5, doc["settings"])
	assert.Equal(t, LatestVersion, doc["config-version"])
}

func TestMigrationFillsNullEntries(t *testing.T) {
	f := newFixture(t, `settings:
  max-batch-size:
  enabled:
    BLOCKS:
    chests:
  block-prices:
`)

	snap, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, snap.Warnings())
	assert.Equal(t, 10, snap.MaxBatchSize())
	assert.True(t, snap.IsEnabled(worth.Blocks))
	assert.False(t, snap.IsEnabled(worth.Chests))
	assert.Equal(t, 75.0, snap.BlockPrice(worth.IronBlock))

	doc := f.yaml(t)
	assert.Equal(t, 10, doc["settings"].(map[string]any)["max-batch-size"])
	enabled := settingsSection(t, doc, "enabled")
	assert.Equal(t, true, enabled["BLOCKS"])
	assert.Equal(t, false, enabled["chests"], "null key is filled under its own spelling")
	assert.NotContains(t, enabled, "CHESTS")
	assert.EqualValues(t, 75, settingsSection(t, doc, "block-prices")["IRON_BLOCK"])

	again, err := f.store.Load()
	require.NoError(t, err)
	assert.Empty(t, again.Warnings())
	assert.False(t, again.Migrated())
}

func TestNewerVersionIsLoadedAsIs(t *testing.T) {
	src := "config-version: 7\n"
	f := newFixture(t, src)

	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.False(t, snap.Migrated())
	assert.Equal(t, 7, snap.Version())
	assert.Equal(t, src, string(f.read(t)))
	require.Len(t, snap.Warnings(), 1)
	assert.Equal(t, pathVersion, snap.Warnings()[0].Path)
}

/*──────────────────────────── fault tolerance ─────────────────────────────*/

func TestUnknownEnumKeyIsSkipped(t *testing.T) {
	src := `config-version: 1
settings:
  enabled:
    NOT_A_REAL_TYPE: true
    blocks: false
  spawner-prices:
    dragon: 1000000
    zombie: 30000
`
	f := newFixture(t, src)

	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.False(t, snap.IsEnabled(worth.Blocks))
	assert.True(t, snap.IsEnabled(worth.Spawners))
	assert.Equal(t, 30_000.0, snap.SpawnerPrice(worth.Zombie))
	assert.Equal(t, 75_000.0, snap.SpawnerPrice(worth.Slime))

	assert.Equal(t, 1, f.warnings("invalid WorthType: NOT_A_REAL_TYPE"))
	assert.Equal(t, 1, f.warnings("invalid EntityType: dragon"))

	bad := f.logs.FilterMessage("invalid WorthType: NOT_A_REAL_TYPE").All()
	require.Len(t, bad, 1)
	assert.Equal(t, "settings.enabled.NOT_A_REAL_TYPE", bad[0].ContextMap()["path"])

	paths := make([]string, 0, len(snap.Warnings()))
	for _, w := range snap.Warnings() {
		paths = append(paths, w.Path)
	}
	assert.ElementsMatch(t, []string{
		"settings.enabled.NOT_A_REAL_TYPE",
		"settings.spawner-prices.dragon",
	}, paths)
}

func TestWrongValueTypesFallBackToDefaults(t *testing.T) {
	src := `config-version: 1
settings:
  max-batch-size: lots
  command-aliases: [1, 2]
  enabled:
    BLOCKS: maybe
    SPAWNERS: "false"
  block-prices:
    GOLD_BLOCK: cheap
    IRON_BLOCK: "90.5"
`
	f := newFixture(t, src)

	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.Equal(t, 10, snap.MaxBatchSize())
	assert.Equal(t, []string{"f top"}, snap.CommandAliases())
	assert.True(t, snap.IsEnabled(worth.Blocks))
	assert.False(t, snap.IsEnabled(worth.Spawners))
	assert.Equal(t, 250.0, snap.BlockPrice(worth.GoldBlock))
	assert.Equal(t, 90.5, snap.BlockPrice(worth.IronBlock))
	assert.Len(t, snap.Warnings(), 4)
}

func TestValidationResetsOutOfRangeScalars(t *testing.T) {
	src := `config-version: 1
settings:
  hook-per-page: 0
  max-queue-size: -5
  chunk-recalculate-millis: -1
  command-aliases: ["f top", ""]
`
	f := newFixture(t, src)

	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.Equal(t, 8, snap.FactionsPerPage())
	assert.Equal(t, 200, snap.MaxQueueSize())
	assert.EqualValues(t, 120_000, snap.ChunkRecalculateMillis())
	assert.Equal(t, []string{"f top"}, snap.CommandAliases())

	paths := make([]string, 0, len(snap.Warnings()))
	for _, w := range snap.Warnings() {
		paths = append(paths, w.Path)
	}
	assert.ElementsMatch(t, []string{
		"settings.hook-per-page",
		"settings.max-queue-size",
		"settings.chunk-recalculate-millis",
		"settings.command-aliases",
	}, paths)
}

func TestDuplicateKeysLastWins(t *testing.T) {
	src := `config-version: 1
settings:
  block-prices:
    IRON_BLOCK: 10
    iron block: 20
`
	f := newFixture(t, src)

	snap, err := f.store.Load()
	require.NoError(t, err)

	assert.Equal(t, 20.0, snap.BlockPrice(worth.IronBlock))
	require.Len(t, snap.Warnings(), 1)
	assert.Equal(t, "settings.block-prices.iron block", snap.Warnings()[0].Path)
}

func TestScalarRoundTrip(t *testing.T) {
	f := newFixture(t, "settings:\n  max-batch-size: 25\n")

	snap, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, 25, snap.MaxBatchSize())

	again, err := f.store.Load()
	require.NoError(t, err)
	assert.Equal(t, 25, again.MaxBatchSize())
}

/*──────────────────────────── fatal errors ────────────────────────────────*/

func TestMalformedDocumentIsFatalAndUntouched(t *testing.T) {
	src := "settings:\n  enabled: [unclosed\n"
	f := newFixture(t, src)

	snap, err := f.store.Load()
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.NotErrorIs(t, err, ErrIO)
	assert.True(t, strings.HasPrefix(err.Error(), "settings parse: "), err.Error())
	assert.Nil(t, f.store.Current())
	assert.Equal(t, src, string(f.read(t)))
}

func TestUnusableDataDirIsIOError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewStore(filepath.Join(blocker, "data"), nil)
	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
}

func TestFailedReloadKeepsPreviousSnapshot(t *testing.T) {
	f := newFixture(t, "")
	first, err := f.store.Load()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(f.store.Path(), []byte("{broken"), 0o644))
	err = f.store.Reload()
	require.Error(t, err)
	assert.Same(t, first, f.store.Current())

	require.NoError(t, os.WriteFile(f.store.Path(), []byte("config-version: 1\nsettings:\n  max-queue-size: 50\n"), 0o644))
	require.NoError(t, f.store.Reload())
	assert.NotSame(t, first, f.store.Current())
	assert.Equal(t, 50, f.store.Current().MaxQueueSize())
}

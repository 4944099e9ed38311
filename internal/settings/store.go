// internal/settings/store.go
//
// Settings loader, migrator, and hot-reloader.
//
/*
Context
--------
`Load()` turns whatever sits at `<data-dir>/config.yml` (including nothing
at all) into one immutable `Snapshot`:

  1. Ensure the file and its parent directories exist.
  2. Parse it.  Broken YAML aborts with ErrInvalidConfiguration and the file
     is left as it was.
  3. Read `config-version`, defaulting to 0.
  4. Read every scalar through EnsureDefault + Get, then validate.
  5. Seed and parse the six enum-keyed sections.
  6. When the version is behind LatestVersion, merge every outstanding
     default into the document, stamp the header and version, and save.
     Reloads triggered by Watch skip this step and leave the file alone.
  7. Swap the new Snapshot into the store.

The snapshot lives in an `atomic.Pointer` for lock-free reads.  `Reload()`
simply calls `Load()` again; a failed reload leaves the previous snapshot
in place.

Instrumentation
---------------
  • DEBUG spans: one per load stage.
  • WARN  spans: one per ignored or defaulted entry.
  • INFO  spans: migration written, load finished.
  • ERROR spans: load aborted.

Notes
-----
  • Loads are serialised with a mutex; readers never take it.
  • An up-to-date document is never rewritten.
  • A save is abandoned with ErrFileChanged if the file moved under us.
  • Oxford commas, two spaces after periods.
*/
package settings

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/ftop/internal/metrics"
)

// Store owns config.yml and the current Snapshot.
type Store struct {
	path     string
	log      *zap.SugaredLogger
	debounce time.Duration // quiet period before a watch reload

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewStore returns a Store for <dataDir>/config.yml.  Nothing is read
// until Load.
func NewStore(dataDir string, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{
		path:     filepath.Join(dataDir, FileName),
		log:      log,
		debounce: WatchDebounce,
	}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Current returns the last successfully loaded Snapshot, or nil.
func (s *Store) Current() *Snapshot { return s.current.Load() }

// Reload re-runs Load.  On failure the previous Snapshot stays current.
func (s *Store) Reload() error { _, err := s.Load(); return err }

// refresh is the reload used by Watch.  It publishes a new Snapshot but
// never writes the file: the change that woke us may be half written.
func (s *Store) refresh() error { _, err := s.publish(false); return err }

/*─────────────────────────────── loader ───────────────────────────────────*/

// stage names a step of one load, for debug logs.
type stage int

const (
	stageUnloaded stage = iota
	stageFileEnsured
	stageParsed
	stageVersionChecked
	stageDefaultsSeeded
	stageEnumMapsParsed
	stageMigrated
	stagePersisted
	stageNotMigrated
	stageReady
)

var stageNames = [...]string{
	stageUnloaded:       "unloaded",
	stageFileEnsured:    "file-ensured",
	stageParsed:         "parsed",
	stageVersionChecked: "version-checked",
	stageDefaultsSeeded: "defaults-seeded",
	stageEnumMapsParsed: "enum-maps-parsed",
	stageMigrated:       "migrated",
	stagePersisted:      "persisted",
	stageNotMigrated:    "not-migrated",
	stageReady:          "ready",
}

func (st stage) String() string { return stageNames[st] }

// Load reads, reconciles, migrates, and publishes config.yml.
func (s *Store) Load() (*Snapshot, error) { return s.publish(true) }

func (s *Store) publish(persist bool) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(persist)
	if err != nil {
		metrics.SettingsLoadErrorsTotal.WithLabelValues(errorKind(err)).Inc()
		s.log.Errorw("settings load failed", "file", s.path, "err", err)
		return nil, err
	}

	s.current.Store(snap)
	metrics.SettingsLoadsTotal.Inc()
	metrics.SettingsVersion.Set(float64(snap.version))
	s.log.Infow("settings loaded",
		"file", s.path,
		"version", snap.version,
		"migrated", snap.migrated,
		"warnings", len(snap.warnings),
	)
	return snap, nil
}

func (s *Store) load(persist bool) (*Snapshot, error) {
	advance := func(next stage) {
		s.log.Debugw("settings load stage", "stage", next.String(), "file", s.path)
	}
	rep := &report{log: s.log}

	if err := ensureFile(s.path); err != nil {
		return nil, fmt.Errorf("settings ensure: %w", err)
	}
	advance(stageFileEnsured)

	doc, err := readDocument(s.path)
	if err != nil {
		return nil, fmt.Errorf("settings parse: %w", err)
	}
	advance(stageParsed)

	if doc.IsScalar(pathSettings) {
		rep.warn(pathSettings, "expected a section, using defaults")
	}

	version := int(readInt(doc, rep, pathVersion, 0))
	if version > LatestVersion {
		rep.warn(pathVersion, fmt.Sprintf("version %d is newer than supported version %d, loading as-is",
			version, LatestVersion))
	}
	advance(stageVersionChecked)

	snap := &Snapshot{
		version:     version,
		fromVersion: version,
		scalars:     readScalars(doc, rep),
	}
	enabledSection.seed(doc)
	detailedSection.seed(doc)
	performRecalculateSection.seed(doc)
	bypassRecalculateDelaySection.seed(doc)
	spawnerPriceSection.seed(doc)
	blockPriceSection.seed(doc)
	advance(stageDefaultsSeeded)

	snap.enabled = enabledSection.parse(doc, rep)
	snap.detailed = detailedSection.parse(doc, rep)
	snap.performRecalculate = performRecalculateSection.parse(doc, rep)
	snap.bypassRecalculateDelay = bypassRecalculateDelaySection.parse(doc, rep)
	snap.spawnerPrices = spawnerPriceSection.parse(doc, rep)
	snap.blockPrices = blockPriceSection.parse(doc, rep)
	advance(stageEnumMapsParsed)

	switch {
	case version >= LatestVersion:
		advance(stageNotMigrated)
	case !persist:
		s.log.Infow("settings migration deferred to the next load",
			"file", s.path,
			"from", version,
			"to", LatestVersion,
		)
		advance(stageNotMigrated)
	default:
		added, err := migrate(doc)
		if err != nil {
			return nil, fmt.Errorf("settings migrate: %w", err)
		}
		advance(stageMigrated)

		if err := doc.Save(Header); err != nil {
			return nil, fmt.Errorf("settings save: %w", err)
		}
		advance(stagePersisted)

		snap.version = LatestVersion
		snap.migrated = true
		metrics.SettingsMigrationsTotal.Inc()
		s.log.Infow("Configuration file has been successfully updated.",
			"file", s.path,
			"from", version,
			"to", LatestVersion,
			"defaults_added", added,
		)
	}

	snap.warnings = rep.warnings
	advance(stageReady)
	return snap, nil
}

// migrate brings doc up to LatestVersion.  Migration only ever adds: every
// default the user has not set is merged in and the version is stamped.
func migrate(doc *Document) (int, error) {
	added := doc.MergeDefaults()
	if err := doc.Set(pathVersion, LatestVersion); err != nil {
		return added, fmt.Errorf("%w: stamp %s: %w", ErrIO, pathVersion, err)
	}
	return added, nil
}

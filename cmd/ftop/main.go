// cmd/ftop/main.go
//
// FactionsTop settings daemon – entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load host config (optional .env, then FTOP_* environment).
//
//  2. Start the rotating logger under <data-dir>/logs (tees to console when
//     running in a TTY or when FTOP_LOG__TEE is set).
//
//  3. Load <data-dir>/config.yml, migrating and saving it when it is behind
//     the current schema.  A malformed document or an I/O failure is fatal.
//
//  4. Run, under one errgroup until SIGINT or SIGTERM:
//
//     • file watcher   – reloads on every edit (FTOP_WATCH=true)
//     • admin API      – /settings, /settings/reload, /metrics
//     (FTOP_ADMIN__LISTEN_ADDR set)
//
// With neither enabled the process validates config.yml, logs the result,
// and exits, which makes it usable as a pre-start check.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/yanizio/ftop/internal/api"
	"github.com/yanizio/ftop/internal/config"
	"github.com/yanizio/ftop/internal/logger"
	"github.com/yanizio/ftop/internal/server"
	"github.com/yanizio/ftop/internal/settings"
)

const envFile = ".env"

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	cfg, err := config.Load(envFile)
	if err != nil {
		log.Fatalf("host config: %v", err)
	}

	logOut, err := logger.New(cfg.DataDir, cfg.Log.Level, cfg.Log.Tee || runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Settings load (migrates config.yml if needed) ──────────────
	//
	store := settings.NewStore(cfg.DataDir, logOut)
	snap, err := store.Load()
	if err != nil {
		logOut.Fatalw("settings load failed", "file", store.Path(), "err", err)
	}
	for _, w := range snap.Warnings() {
		logOut.Debugw("settings warning", "path", w.Path, "msg", w.Message)
	}

	if !cfg.Watch && cfg.Admin.ListenAddr == "" {
		logOut.Infow("settings check complete, nothing to serve", "file", store.Path())
		return
	}

	//
	// ── 2.  Long-running workers ───────────────────────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Watch {
		g.Go(func() error { return store.Watch(gctx) })
	}
	if cfg.Admin.ListenAddr != "" {
		srv := server.New(cfg.Admin.ListenAddr, api.NewRouter(store, logOut))
		g.Go(func() error { return server.Run(gctx, srv, logOut) })
	}

	if err := g.Wait(); err != nil {
		logOut.Errorw("ftop stopped with error", "err", err)
		os.Exit(1)
	}
	logOut.Infow("ftop stopped")
}

// internal/config/loader.go
//
// Host configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` from two layers (highest precedence
last):

  1. Compiled defaults (data dir `./data`, level `info`, admin API off).
  2. Environment variables prefixed `FTOP_`, where `__` maps to “.”
     (e.g., `FTOP_ADMIN__LISTEN_ADDR → admin.listen_addr`).  An optional
     `.env` file is loaded into the environment first; real environment
     variables win over it.

After merging, the tree is unmarshalled into strongly-typed structs and
validated.

Instrumentation
---------------
  • Logs use the global *sugared* logger (`zap.S()`), which is a no-op
    until the file logger is installed.  Host config is read before the
    logger exists, so errors are returned and reported by main.

Notes
-----
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix is stripped from every variable Load reads.
const EnvPrefix = "FTOP_"

var defaults = map[string]any{
	"data_dir":          "data",
	"watch":             false,
	"log.level":         "info",
	"log.tee":           false,
	"admin.listen_addr": "",
}

// envKey maps FTOP_ADMIN__LISTEN_ADDR to admin.listen_addr.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads envFile (optional, missing is fine), the FTOP_ environment,
// and returns the validated Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("config default %s: %w", key, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	if err := validateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	zap.S().Debugw("host config loaded",
		"data_dir", cfg.DataDir,
		"watch", cfg.Watch,
		"admin_addr", cfg.Admin.ListenAddr,
	)
	return &cfg, nil
}

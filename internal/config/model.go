// internal/config/model.go
//
// Typed host configuration for the ftop daemon.
//
// Context
// -------
// These structs describe the process, not the game settings.  Game
// settings live in `<data-dir>/config.yml` and are owned by
// internal/settings.  Host values come from two layers:
//
//   • compiled defaults                       – see defaults in loader.go,
//   • `FTOP_`-prefixed environment variables  – highest precedence, with an
//     optional `.env` file loaded into the environment first.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`.  Koanf ignores `yaml` tags unless
//     configured otherwise.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

//
// Log section
//

// Log holds logger tunables.
type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	Tee   bool   `koanf:"tee"`
}

//
// Admin section
//

// Admin holds the admin HTTP listener.  An empty ListenAddr disables the
// admin API entirely.
type Admin struct {
	ListenAddr string `koanf:"listen_addr" validate:"omitempty,hostname_port"`
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load().
type Config struct {
	DataDir string `koanf:"data_dir" validate:"required"`
	Watch   bool   `koanf:"watch"`
	Log     Log    `koanf:"log"`
	Admin   Admin  `koanf:"admin"`
}

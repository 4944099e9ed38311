// Package metrics holds Prometheus instruments for the settings store.  All
// collectors are registered with the global registry, so mounting
// promhttp.Handler() is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SettingsLoadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ftop_settings_loads_total",
			Help: "Cumulative number of successful settings loads, reloads included.",
		})

	SettingsLoadErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ftop_settings_load_errors_total",
			Help: "Cumulative number of aborted settings loads by failure kind.",
		}, []string{"kind"})

	SettingsMigrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ftop_settings_migrations_total",
			Help: "Cumulative number of loads that migrated and rewrote config.yml.",
		})

	SettingsWarningsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ftop_settings_warnings_total",
			Help: "Cumulative number of settings entries ignored or defaulted during loads.",
		})

	SettingsVersion = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ftop_settings_version",
			Help: "config-version of the currently loaded settings document.",
		})
)

func init() {
	prometheus.MustRegister(
		SettingsLoadsTotal,
		SettingsLoadErrorsTotal,
		SettingsMigrationsTotal,
		SettingsWarningsTotal,
		SettingsVersion,
	)
}

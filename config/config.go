package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/angas/gridhost-go/logging"
	"github.com/angas/gridhost-go/sim"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
}

type AppConfigDatabase struct {
	Path string
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	if d.BackupRetentionDays == nil {
		return 90
	}
	return *d.BackupRetentionDays
}

type AppConfigData struct {
	// CSV file with hourly substation net load in MW, negative = export
	NetLoadCsv string `mapstructure:"net_load_csv"`
	// CSV file with hourly solar AC output per unit of DC nameplate
	SolarProfileCsv string `mapstructure:"solar_profile_csv"`
	// Cron expression for re-reading the data files, default: daily at 03:15
	RefreshAt *string `mapstructure:"refresh_at"`
}

func (d AppConfigData) GetRefreshAt() string {
	if d.RefreshAt == nil {
		return "15 3 * * *"
	}
	return *d.RefreshAt
}

type AppConfigSimulation struct {
	PlantSizeMW    float64 `mapstructure:"plant_size_mw"`    // Installed DC nameplate capacity in MW
	ThermalLimitMW float64 `mapstructure:"thermal_limit_mw"` // Signed like net load, e.g. -10 allows 10 MW of export
	// Plant sizes in MW evaluated by the sweep view, besides the worst-hour size
	SweepSizesMW []float64 `mapstructure:"sweep_sizes_mw"`
	// Alignment policy: "first" or "nearest", default: "first"
	Alignment *string `mapstructure:"alignment"`
}

func (s AppConfigSimulation) GetAlignment() sim.AlignPolicy {
	if s.Alignment != nil && strings.EqualFold(*s.Alignment, "nearest") {
		return sim.PolicyNearestWithinTolerance
	}
	return sim.PolicyFirstWithinTolerance
}

func (s AppConfigSimulation) PlantConfig() sim.PlantConfig {
	return sim.PlantConfig{
		PlantSizeMW:    s.PlantSizeMW,
		ThermalLimitMW: s.ThermalLimitMW,
	}
}

type AppConfigAnnounce struct {
	// MQTT broker host; announcements are disabled when empty
	Broker   string
	Port     int16
	Username string
	Password string
	Topic    *string
}

func (a AppConfigAnnounce) Enabled() bool {
	return a.Broker != ""
}

func (a AppConfigAnnounce) GetTopic() string {
	if a.Topic == nil {
		return "gridhost/summary"
	}
	return *a.Topic
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: UTC
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	if g.Timezone == nil {
		return "UTC"
	}
	return *g.Timezone
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return "JSON"
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return "TEXT"
	}
	return "JSON"
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api        AppConfigApi
	Database   AppConfigDatabase
	Data       AppConfigData
	Simulation AppConfigSimulation
	Announce   AppConfigAnnounce
	Gui        AppConfigGui
	Logging    AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}

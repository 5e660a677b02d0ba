package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	OSMDB     DatabaseConfig
	Overpass  OverpassConfig
	OSRM      OSRMConfig
	Geoportal GeoportalConfig
	Analyzer  AnalyzerConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type OverpassConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

type OSRMConfig struct {
	BaseURL        string
	Profile        string
	RequestTimeout time.Duration
}

type GeoportalConfig struct {
	NoiseWMSURL    string
	LandslideURL   string
	RequestTimeout time.Duration
}

type AnalyzerConfig struct {
	// FeatureBackend selects the feature source: "overpass" (default) or
	// "postgres" for deployments with a local planet_osm import.
	FeatureBackend string
	DefaultRadiusM float64
	Voivodeship    string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		OSMDB: DatabaseConfig{
			Host:            viper.GetString("OSMDB_HOST"),
			Port:            viper.GetInt("OSMDB_PORT"),
			User:            viper.GetString("OSMDB_USER"),
			Password:        viper.GetString("OSMDB_PASSWORD"),
			DBName:          viper.GetString("OSMDB_NAME"),
			SSLMode:         viper.GetString("OSMDB_SSLMODE"),
			MaxConns:        viper.GetInt("OSMDB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("OSMDB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("OSMDB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("OSMDB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Overpass: OverpassConfig{
			BaseURL:        viper.GetString("OVERPASS_URL"),
			RequestTimeout: time.Duration(viper.GetInt("OVERPASS_TIMEOUT")) * time.Second,
		},
		OSRM: OSRMConfig{
			BaseURL:        viper.GetString("OSRM_URL"),
			Profile:        viper.GetString("OSRM_PROFILE"),
			RequestTimeout: time.Duration(viper.GetInt("OSRM_TIMEOUT")) * time.Second,
		},
		Geoportal: GeoportalConfig{
			NoiseWMSURL:    viper.GetString("GEOPORTAL_NOISE_WMS_URL"),
			LandslideURL:   viper.GetString("GEOPORTAL_LANDSLIDE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("GEOPORTAL_TIMEOUT")) * time.Second,
		},
		Analyzer: AnalyzerConfig{
			FeatureBackend: viper.GetString("ANALYZER_FEATURE_BACKEND"),
			DefaultRadiusM: viper.GetFloat64("ANALYZER_DEFAULT_RADIUS"),
			Voivodeship:    viper.GetString("ANALYZER_VOIVODESHIP"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Overpass.BaseURL == "" {
		cfg.Overpass.BaseURL = "https://overpass-api.de/api/interpreter"
	}
	if cfg.Overpass.RequestTimeout == 0 {
		cfg.Overpass.RequestTimeout = 90 * time.Second
	}
	if cfg.OSRM.BaseURL == "" {
		cfg.OSRM.BaseURL = "https://router.project-osrm.org"
	}
	if cfg.OSRM.Profile == "" {
		cfg.OSRM.Profile = "driving"
	}
	if cfg.OSRM.RequestTimeout == 0 {
		cfg.OSRM.RequestTimeout = 10 * time.Second
	}
	if cfg.Geoportal.RequestTimeout == 0 {
		cfg.Geoportal.RequestTimeout = 15 * time.Second
	}
	if cfg.Analyzer.FeatureBackend == "" {
		cfg.Analyzer.FeatureBackend = "overpass"
	}
	if cfg.Analyzer.DefaultRadiusM == 0 {
		cfg.Analyzer.DefaultRadiusM = 1000
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetOSMDBDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.OSMDB.Host,
		c.OSMDB.Port,
		c.OSMDB.User,
		c.OSMDB.Password,
		c.OSMDB.DBName,
		c.OSMDB.SSLMode,
	)
}

package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Immich     ImmichConfig
	Storage    StorageConfig
	Scan       ScanConfig
	Trajectory TrajectoryConfig
	Cluster    ClusterConfig
	Web        WebConfig
}

type ImmichConfig struct {
	URL    string
	APIKey string
}

type StorageConfig struct {
	Driver      string // "sqlite" (default) or "postgres"
	Path        string // SQLite database file
	DatabaseURL string // PostgreSQL connection URL
}

type ScanConfig struct {
	BatchSize   int `yaml:"batchSize"`
	MaxMedia    int `yaml:"maxMedia"`
	Concurrency int `yaml:"concurrency"`
}

type TrajectoryConfig struct {
	ThresholdMeters float64 `yaml:"thresholdMeters"`
}

type ClusterConfig struct {
	RadiusMeters float64 `yaml:"radiusMeters"`
	MinPoints    int     `yaml:"minPoints"`
	MaxClusters  int     `yaml:"maxClusters"`
}

type WebConfig struct {
	Listen string
}

// defaults mirrors the embedded defaults.yaml layout.
type defaults struct {
	Scan       ScanConfig       `yaml:"scan"`
	Trajectory TrajectoryConfig `yaml:"trajectory"`
	Cluster    ClusterConfig    `yaml:"cluster"`
}

// envInt reads an environment variable and parses it as a positive
// integer. Returns the default value if the env var is unset, empty, or
// invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive
// float. Returns the default value if the env var is unset, empty, or
// invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envStr reads an environment variable, falling back to a default.
func envStr(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var def defaults
	if err := yaml.Unmarshal(defaultsYAML, &def); err != nil {
		// Embedded file, should never happen in practice.
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Immich: ImmichConfig{
			URL:    os.Getenv("IMMICH_URL"),
			APIKey: os.Getenv("IMMICH_API_KEY"),
		},
		Storage: StorageConfig{
			Driver:      envStr("STORAGE_DRIVER", "sqlite"),
			Path:        envStr("STORAGE_PATH", "photo-atlas.db"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Scan: ScanConfig{
			BatchSize:   envInt("SCAN_BATCH_SIZE", def.Scan.BatchSize),
			MaxMedia:    envInt("SCAN_MAX_MEDIA", def.Scan.MaxMedia),
			Concurrency: envInt("SCAN_CONCURRENCY", def.Scan.Concurrency),
		},
		Trajectory: TrajectoryConfig{
			ThresholdMeters: envFloat("TRAJECTORY_THRESHOLD_METERS", def.Trajectory.ThresholdMeters),
		},
		Cluster: ClusterConfig{
			RadiusMeters: envFloat("CLUSTER_RADIUS_METERS", def.Cluster.RadiusMeters),
			MinPoints:    envInt("CLUSTER_MIN_POINTS", def.Cluster.MinPoints),
			MaxClusters:  envInt("CLUSTER_MAX_CLUSTERS", def.Cluster.MaxClusters),
		},
		Web: WebConfig{
			Listen: envStr("LISTEN_ADDR", ":8080"),
		},
	}
}

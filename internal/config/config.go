package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from a YAML file with
// environment-variable overrides.
type Config struct {
	Database struct {
		Host            string `yaml:"host"`
		Port            string `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		DBName          string `yaml:"dbname"`
		SSLMode         string `yaml:"sslmode"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	Graph struct {
		// ConfidenceThreshold is the cutoff below which prerequisite
		// edges are reclassified as UNSURE at graph-construction time.
		// A tunable business parameter, not a derived constant.
		ConfidenceThreshold float64 `yaml:"confidence_threshold"`
		// MetadataTTL bounds how long a fetched graph snapshot and its
		// metadata are served from memory before re-reading the store.
		MetadataTTL string `yaml:"metadata_ttl"`
	} `yaml:"graph"`

	Planner struct {
		MaxAlternatives       int `yaml:"max_alternatives"`
		MaxSemesters          int `yaml:"max_semesters"`
		MaxCreditsPerSemester int `yaml:"max_credits_per_semester"`
		MaxTargetCourses      int `yaml:"max_target_courses"`
		MaxCompletedCourses   int `yaml:"max_completed_courses"`
	} `yaml:"planner"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults plus the environment apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "gradpath"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Graph.ConfidenceThreshold = 0.35
	config.Graph.MetadataTTL = "300s"

	config.Planner.MaxAlternatives = 10
	config.Planner.MaxSemesters = 20
	config.Planner.MaxCreditsPerSemester = 30
	config.Planner.MaxTargetCourses = 50
	config.Planner.MaxCompletedCourses = 1000
}

func loadFromEnv(config *Config) {
	config.Database.Host = GetEnv("DB_HOST", config.Database.Host)
	config.Database.Port = GetEnv("DB_PORT", config.Database.Port)
	config.Database.User = GetEnv("DB_USER", config.Database.User)
	config.Database.Password = GetEnv("DB_PASSWORD", config.Database.Password)
	config.Database.DBName = GetEnv("DB_NAME", config.Database.DBName)
	config.Database.SSLMode = GetEnv("DB_SSLMODE", config.Database.SSLMode)
	config.Database.MaxIdleConns = GetEnvAsInt("DB_MAX_IDLE_CONNS", config.Database.MaxIdleConns)
	config.Database.MaxOpenConns = GetEnvAsInt("DB_MAX_OPEN_CONNS", config.Database.MaxOpenConns)
	config.Database.ConnMaxLifetime = GetEnv("DB_CONN_MAX_LIFETIME", config.Database.ConnMaxLifetime)

	config.Logging.Level = GetEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = GetEnv("LOG_FORMAT", config.Logging.Format)

	config.Graph.ConfidenceThreshold = GetEnvAsFloat("GRAPH_CONFIDENCE_THRESHOLD", config.Graph.ConfidenceThreshold)
	config.Graph.MetadataTTL = GetEnv("GRAPH_METADATA_TTL", config.Graph.MetadataTTL)

	config.Planner.MaxAlternatives = GetEnvAsInt("PLANNER_MAX_ALTERNATIVES", config.Planner.MaxAlternatives)
	config.Planner.MaxSemesters = GetEnvAsInt("PLANNER_MAX_SEMESTERS", config.Planner.MaxSemesters)
	config.Planner.MaxCreditsPerSemester = GetEnvAsInt("PLANNER_MAX_CREDITS", config.Planner.MaxCreditsPerSemester)
	config.Planner.MaxTargetCourses = GetEnvAsInt("PLANNER_MAX_TARGETS", config.Planner.MaxTargetCourses)
	config.Planner.MaxCompletedCourses = GetEnvAsInt("PLANNER_MAX_COMPLETED", config.Planner.MaxCompletedCourses)
}

func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Graph.ConfidenceThreshold < 0 || config.Graph.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be in [0,1], got %v", config.Graph.ConfidenceThreshold)
	}
	if _, err := time.ParseDuration(config.Graph.MetadataTTL); err != nil {
		return fmt.Errorf("invalid metadata TTL format: %w", err)
	}
	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime format: %w", err)
	}
	return nil
}

// MetadataTTL returns the parsed snapshot TTL.
func (c *Config) MetadataTTL() time.Duration {
	d, err := time.ParseDuration(c.Graph.MetadataTTL)
	if err != nil {
		return 300 * time.Second
	}
	return d
}

// GetPostgresConnectionString returns the postgres connection string.
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value.
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value.
func GetEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsFloat gets an environment variable as a float or returns a default value.
func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(GetEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

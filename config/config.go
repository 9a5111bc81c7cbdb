package config

import (
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

// Config is the admin site configuration. Values come from a YAML file,
// the environment (GORMADMIN_* variables, including a .env file), or both;
// the environment wins.
type Config struct {
	Title    string `yaml:"title"`
	BasePath string `yaml:"base_path"`

	DatabaseURL     string `yaml:"database_url"`
	PageSize        int    `yaml:"page_size"`
	DebugSQL        bool   `yaml:"debug_sql"`
	GenerateSchemas bool   `yaml:"generate_schemas"`

	Auth  AuthConfig  `yaml:"auth"`
	Files FilesConfig `yaml:"files"`
}

// AuthConfig enables single-user basic authentication.
type AuthConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// FilesConfig selects and configures the file storage backend.
type FilesConfig struct {
	// Driver is "local", "minio", or "" for no file serving.
	Driver string `yaml:"driver"`

	// Root is the local driver's directory.
	Root string `yaml:"root"`

	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

func defaults() Config {
	return Config{
		Title:    "Admin",
		BasePath: "/admin",
		PageSize: 20,
	}
}

// Load builds the configuration from the environment alone.
func Load() Config {
	cfg := defaults()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML configuration file and overlays the environment on
// top of it.
func LoadFile(path string) (Config, error) {
	cfg := defaults()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Title, "GORMADMIN_TITLE")
	setString(&c.BasePath, "GORMADMIN_BASE_PATH")
	setString(&c.DatabaseURL, "GORMADMIN_DATABASE_URL")
	setInt(&c.PageSize, "GORMADMIN_PAGE_SIZE")
	setBool(&c.DebugSQL, "GORMADMIN_DEBUG_SQL")
	setBool(&c.GenerateSchemas, "GORMADMIN_GENERATE_SCHEMAS")

	setBool(&c.Auth.Enabled, "GORMADMIN_AUTH_ENABLED")
	setString(&c.Auth.Username, "GORMADMIN_AUTH_USERNAME")
	setString(&c.Auth.Password, "GORMADMIN_AUTH_PASSWORD")

	setString(&c.Files.Driver, "GORMADMIN_FILES_DRIVER")
	setString(&c.Files.Root, "GORMADMIN_FILES_ROOT")
	setString(&c.Files.Endpoint, "GORMADMIN_FILES_ENDPOINT")
	setString(&c.Files.AccessKey, "GORMADMIN_FILES_ACCESS_KEY")
	setString(&c.Files.SecretKey, "GORMADMIN_FILES_SECRET_KEY")
	setString(&c.Files.Bucket, "GORMADMIN_FILES_BUCKET")
	setBool(&c.Files.UseSSL, "GORMADMIN_FILES_USE_SSL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvGoogleAPIKey         = "GOOGLE_API_KEY"
	EnvAstraEndpoint        = "ASTRA_DB_API_ENDPOINT"
	EnvAstraToken           = "ASTRA_DB_APPLICATION_TOKEN"
	EnvAstraKeyspace        = "ASTRA_DB_KEYSPACE"
	EnvDBConnectionString   = "DB_CONNECTION_STRING"
	defaultSettingsFilePath = "config/config.yaml"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Tracing  TracingConfig
	Settings *Settings
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SettingsPath       string
	ProductDataPath    string
	FrontendDir        string
}

type DatabaseConfig struct {
	Connection string
}

// APIKeys holds the secrets read from the environment. Components check the
// ones they need at construction time through Require.
type APIKeys struct {
	GoogleAPIKey          string
	AstraAPIEndpoint      string
	AstraApplicationToken string
	AstraKeyspace         string
	DBConnectionString    string
}

type AIConfig struct {
	OllamaBaseURL string
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

// MissingEnvError names every required environment variable that was unset or empty.
type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing environment variables: %s", strings.Join(e.Names, ", "))
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			SettingsPath:       getEnv("CONFIG_PATH", defaultSettingsFilePath),
			ProductDataPath:    getEnv("PRODUCT_DATA_PATH", "data/flipkart_product_review.csv"),
			FrontendDir:        getEnv("FRONTEND_DIR", "frontend"),
		},
		Database: DatabaseConfig{
			Connection: getEnv(EnvDBConnectionString, ""),
		},
		Keys: APIKeys{
			GoogleAPIKey:          getEnv(EnvGoogleAPIKey, ""),
			AstraAPIEndpoint:      getEnv(EnvAstraEndpoint, ""),
			AstraApplicationToken: getEnv(EnvAstraToken, ""),
			AstraKeyspace:         getEnv(EnvAstraKeyspace, ""),
			DBConnectionString:    getEnv(EnvDBConnectionString, ""),
		},
		Ai: AIConfig{
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Tracing: TracingConfig{
			Enabled:      getEnv("OTEL_ENABLED", "false") == "true",
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}

	settings, err := LoadSettings(cfg.App.SettingsPath)
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings

	return cfg, nil
}

// RequiredEnv lists the environment variables the configured providers need,
// model provider credentials first.
func (c *Config) RequiredEnv() []string {
	var names []string
	if c.Settings.UsesProvider(ProviderGoogle) {
		names = append(names, EnvGoogleAPIKey)
	}
	return append(names, c.Settings.VectorStore.RequiredEnv()...)
}

// Require returns a MissingEnvError listing, in the given order, each name
// whose value is empty.
func (k APIKeys) Require(names ...string) error {
	var missing []string
	for _, name := range names {
		if k.Value(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingEnvError{Names: missing}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (k APIKeys) Value(name string) string {
	switch name {
	case EnvGoogleAPIKey:
		return k.GoogleAPIKey
	case EnvAstraEndpoint:
		return k.AstraAPIEndpoint
	case EnvAstraToken:
		return k.AstraApplicationToken
	case EnvAstraKeyspace:
		return k.AstraKeyspace
	case EnvDBConnectionString:
		return k.DBConnectionString
	default:
		return os.Getenv(name)
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

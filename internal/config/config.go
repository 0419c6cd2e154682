// backend-go/internal/config/config.go
package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Store         StoreConfig
	Cache         CacheConfig
	ObjectStorage ObjectStorageConfig
	Auth          AuthConfig
	LogLevel      string
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the libpq connection string
func (c DatabaseConfig) DSN() string {
	return "host=" + c.Host + " port=" + c.Port + " user=" + c.User +
		" password=" + c.Password + " dbname=" + c.DBName + " sslmode=" + c.SSLMode
}

// Store drivers
const (
	StorePostgres = "postgres"
	StoreFile     = "file"
	StoreMemory   = "memory"
)

type StoreConfig struct {
	Driver   string
	FilePath string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	ForecastTTLSeconds int
}

type ObjectStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

// Enabled reports whether snapshot export is configured
func (c ObjectStorageConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

type AuthConfig struct {
	AdminUsername   string
	AdminPassword   string
	JWTSecret       string
	TokenTTLMinutes int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "supplychain")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("STORE_DRIVER", StoreFile)
		viper.SetDefault("STORE_FILE_PATH", "./data/companies.json")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_FORECAST_TTL_SECONDS", 300)
		viper.SetDefault("OBJECT_STORAGE_ENDPOINT", "")
		viper.SetDefault("OBJECT_STORAGE_BUCKET", "")
		viper.SetDefault("OBJECT_STORAGE_REGION", "us-east-1")
		viper.SetDefault("OBJECT_STORAGE_USE_SSL", true)
		viper.SetDefault("OBJECT_STORAGE_PREFIX", "snapshots")
		viper.SetDefault("AUTH_ADMIN_USERNAME", "admin")
		viper.SetDefault("AUTH_ADMIN_PASSWORD", "admin123")
		viper.SetDefault("AUTH_JWT_SECRET", "change-me")
		viper.SetDefault("AUTH_TOKEN_TTL_MINUTES", 480)
		viper.SetDefault("LOG_LEVEL", "info")

		// Read from environment variables
		viper.AutomaticEnv()

		if viper.GetString("STORE_DRIVER") == StoreFile {
			ensureDir(filepath.Dir(viper.GetString("STORE_FILE_PATH")))
		}

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Store: StoreConfig{
				Driver:   viper.GetString("STORE_DRIVER"),
				FilePath: viper.GetString("STORE_FILE_PATH"),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				ForecastTTLSeconds: viper.GetInt("CACHE_FORECAST_TTL_SECONDS"),
			},
			ObjectStorage: ObjectStorageConfig{
				Endpoint:  viper.GetString("OBJECT_STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("OBJECT_STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("OBJECT_STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("OBJECT_STORAGE_BUCKET"),
				Region:    viper.GetString("OBJECT_STORAGE_REGION"),
				UseSSL:    viper.GetBool("OBJECT_STORAGE_USE_SSL"),
				Prefix:    viper.GetString("OBJECT_STORAGE_PREFIX"),
			},
			Auth: AuthConfig{
				AdminUsername:   viper.GetString("AUTH_ADMIN_USERNAME"),
				AdminPassword:   viper.GetString("AUTH_ADMIN_PASSWORD"),
				JWTSecret:       viper.GetString("AUTH_JWT_SECRET"),
				TokenTTLMinutes: viper.GetInt("AUTH_TOKEN_TTL_MINUTES"),
			},
			LogLevel: viper.GetString("LOG_LEVEL"),
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}

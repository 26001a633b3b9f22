package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type (
	AppConfig struct {
		Name           string `mapstructure:"name"`
		Version        string `mapstructure:"version"`
		Port           int    `mapstructure:"port"            validate:"min=1,max=65535"`
		Environment    string `mapstructure:"environment"`
		RequestTimeout int    `mapstructure:"request_timeout" validate:"min=1"` // seconds
	}

	AuthConfig struct {
		AccessTokenSecret string `mapstructure:"access_token_secret" validate:"required"`
		// StrictRoutes puts the auth gate in front of every item and recovery route,
		// including the ones the web client calls without a session.
		StrictRoutes bool `mapstructure:"strict_routes"`
	}

	LoggerConfig struct {
		Level       string `mapstructure:"level"`
		Format      string `mapstructure:"format"`
		FilePath    string `mapstructure:"filepath"`
		MaxSize     int    `mapstructure:"max_size"`
		MaxAge      int    `mapstructure:"max_age"`
		MaxBackups  int    `mapstructure:"max_backups"`
		Compress    bool   `mapstructure:"compress"`
		LocalTime   bool   `mapstructure:"localTime"`
		Environment string
	}

	DatabaseConfig struct {
		Type string `mapstructure:"type" validate:"oneof=mongodb postgres memory"`
	}

	MongoConfig struct {
		URI                  string `mapstructure:"uri"`
		Scheme               string `mapstructure:"scheme"`
		Host                 string `mapstructure:"host"`
		AppName              string `mapstructure:"app_name"`
		Database             string `mapstructure:"database"              validate:"required_if=Enabled true"`
		AuthSource           string `mapstructure:"authSource"`
		Username             string `mapstructure:"username"`
		Password             string `mapstructure:"password"`
		ItemsCollection      string `mapstructure:"items_collection"`
		RecoveriesCollection string `mapstructure:"recoveries_collection"`
		ConnectTimeout       int    `mapstructure:"connect_timeout"`
		MaxPoolSize          uint64 `mapstructure:"max_pool_size"`
		MinPoolSize          uint64 `mapstructure:"min_pool_size"`
		Enabled              bool   `mapstructure:"-"`
	}

	PostgresConfig struct {
		Host              string `mapstructure:"host"`
		Port              int    `mapstructure:"port"`
		User              string `mapstructure:"user"`
		Password          string `mapstructure:"password"`
		Database          string `mapstructure:"database"`
		SSLMode           string `mapstructure:"sslmode"`
		ConnectionString  string `mapstructure:"connection_string"`
		ConnectionTimeout int    `mapstructure:"connection_timeout"`
		MaxConns          int32  `mapstructure:"max_conns"`
		MinConns          int32  `mapstructure:"min_conns"`
		ConnMaxLifetime   int    `mapstructure:"conn_max_lifetime"`  // hours
		ConnMaxIdleTime   int    `mapstructure:"conn_max_idle_time"` // minutes
	}

	RedisConfig struct {
		Enabled    bool   `mapstructure:"enabled"`
		Type       string `mapstructure:"type"`
		Addrs      string `mapstructure:"addrs"`
		MasterName string `mapstructure:"master_name"`
		Password   string `mapstructure:"password"`
		DB         int    `mapstructure:"db"`
	}

	CacheConfig struct {
		Enabled    bool `mapstructure:"enabled"`
		Capacity   int  `mapstructure:"capacity"    validate:"min=1"`
		DefaultTTL int  `mapstructure:"default_ttl" validate:"min=1"`
		RedisTTL   int  `mapstructure:"redis_ttl"`
	}

	CORSConfig struct {
		Enabled          bool     `mapstructure:"enabled"`
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	}

	MetricsConfig struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	}

	SwaggerConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	GRPCConfig struct {
		Enabled        bool `mapstructure:"enabled"`
		Port           int  `mapstructure:"port"            validate:"required_if=Enabled true,max=65535"`
		HealthInterval int  `mapstructure:"health_interval"` // seconds
	}

	RecoveryConfig struct {
		Consistency string `mapstructure:"consistency" validate:"oneof=best_effort transaction"`
	}
)

type Env struct {
	AppConfig      AppConfig      `mapstructure:"app"`
	AuthConfig     AuthConfig     `mapstructure:"auth"`
	LoggerConfig   LoggerConfig   `mapstructure:"logging"`
	DatabaseConfig DatabaseConfig `mapstructure:"database"`
	MongoConfig    MongoConfig    `mapstructure:"mongo"`
	PostgresConfig PostgresConfig `mapstructure:"postgres"`
	RedisConfig    RedisConfig    `mapstructure:"redis"`
	CacheConfig    CacheConfig    `mapstructure:"cache"`
	CORSConfig     CORSConfig     `mapstructure:"cors"`
	MetricsConfig  MetricsConfig  `mapstructure:"metrics"`
	SwaggerConfig  SwaggerConfig  `mapstructure:"swagger"`
	GRPCConfig     GRPCConfig     `mapstructure:"grpc"`
	RecoveryConfig RecoveryConfig `mapstructure:"recovery"`
}

const defaultConfigDir = "./config"

// envBindings maps config keys to the variable names the deployment already uses.
var envBindings = map[string]string{
	"app.port":                   "PORT",
	"app.environment":            "NODE_ENV",
	"mongo.username":             "DB_USER",
	"mongo.password":             "DB_PASS",
	"mongo.uri":                  "MONGO_URI",
	"auth.access_token_secret":   "ACCESS_TOKEN_SECRET",
	"postgres.connection_string": "DATABASE_URL",
	"redis.addrs":                "REDIS_ADDR",
	"redis.password":             "REDIS_PASSWORD",
	"database.type":              "DATABASE_TYPE",
	"recovery.consistency":       "RECOVERY_CONSISTENCY",
	"auth.strict_routes":         "AUTH_STRICT_ROUTES",
	"logging.level":              "LOG_LEVEL",
	"cache.enabled":              "CACHE_ENABLED",
	"metrics.enabled":            "METRICS_ENABLED",
	"grpc.enabled":               "GRPC_ENABLED",
	"grpc.port":                  "GRPC_PORT",
	"app.request_timeout":        "REQUEST_TIMEOUT",
	"logging.filepath":           "LOG_FILE",
	"mongo.database":             "DB_NAME",
	"postgres.max_conns":         "PG_MAX_CONNS",
	"swagger.enabled":            "SWAGGER_ENABLED",
	"cors.allowed_origins":       "CORS_ALLOWED_ORIGINS",
	"mongo.host":                 "DB_HOST",
}

// RegisterFlags declares the command line flags understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config-dir", defaultConfigDir, "directory containing config.yaml")
	fs.Int("port", 0, "listen port (overrides PORT and config.yaml)")
	fs.String("env-file", ".env", "dotenv file loaded before reading the environment")
}

// Load reads config.yaml, the process environment and the given flags, in increasing
// order of precedence. fs may be nil.
func Load(fs *pflag.FlagSet) (*Env, error) {
	configDir := defaultConfigDir
	envFile := ".env"
	if fs != nil {
		if dir, err := fs.GetString("config-dir"); err == nil && dir != "" {
			configDir = dir
		}
		if file, err := fs.GetString("env-file"); err == nil {
			envFile = file
		}
	}

	if envFile != "" {
		// Missing .env is normal outside local development.
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, name := range envBindings {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if fs != nil && fs.Changed("port") {
		if err := v.BindPFlag("app.port", fs.Lookup("port")); err != nil {
			return nil, fmt.Errorf("bind flag port: %w", err)
		}
	}

	var env Env
	if err := v.Unmarshal(&env); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	env.LoggerConfig.Environment = env.AppConfig.Environment
	if env.IsProduction() && env.LoggerConfig.Level == "debug" {
		env.LoggerConfig.Level = "info"
	}
	env.MongoConfig.Enabled = env.DatabaseConfig.Type == "mongodb"

	if err := validator.New().Struct(env); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &env, nil
}

// IsProduction reports whether the service runs with the production cookie and logging profile.
func (e *Env) IsProduction() bool {
	return e.AppConfig.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "whereisit")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.port", 5000)
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.request_timeout", 10)

	v.SetDefault("auth.access_token_secret", "")
	v.SetDefault("auth.strict_routes", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.filepath", "")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_age", 7)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.compress", true)
	v.SetDefault("logging.localTime", true)

	v.SetDefault("database.type", "mongodb")

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.scheme", "mongodb+srv")
	v.SetDefault("mongo.host", "cluster0.jrarr.mongodb.net")
	v.SetDefault("mongo.app_name", "Cluster0")
	v.SetDefault("mongo.database", "whereIsIt")
	v.SetDefault("mongo.authSource", "")
	v.SetDefault("mongo.username", "")
	v.SetDefault("mongo.password", "")
	v.SetDefault("mongo.items_collection", "lost")
	v.SetDefault("mongo.recoveries_collection", "recoveries")
	v.SetDefault("mongo.connect_timeout", 30)
	v.SetDefault("mongo.max_pool_size", 0)
	v.SetDefault("mongo.min_pool_size", 0)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.database", "whereisit")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.connection_string", "")
	v.SetDefault("postgres.connection_timeout", 30)
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 0)
	v.SetDefault("postgres.conn_max_lifetime", 1)
	v.SetDefault("postgres.conn_max_idle_time", 10)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.type", "NORMAL")
	v.SetDefault("redis.addrs", "localhost:6379")
	v.SetDefault("redis.master_name", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.capacity", 1000)
	v.SetDefault("cache.default_ttl", 30)
	v.SetDefault("cache.redis_ttl", 120)

	v.SetDefault("cors.enabled", true)
	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:5173",
		"https://got-it-7ccaa.web.app",
		"https://got-it-7ccaa.firebaseapp.com",
	})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept"})
	v.SetDefault("cors.exposed_headers", []string{"X-Correlation-ID", "ETag"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 43200)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("swagger.enabled", true)

	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.port", 9090)
	v.SetDefault("grpc.health_interval", 15)

	v.SetDefault("recovery.consistency", "best_effort")
}

// PrintStartupConfig writes a short banner with the non-secret settings.
func PrintStartupConfig(env *Env) {
	line := strings.Repeat("=", 40)
	fmt.Println(line)
	fmt.Println("🚀 Application Configuration")
	fmt.Println(line)

	fmt.Printf("%-15s: %s\n", "App Name", env.AppConfig.Name)
	fmt.Printf("%-15s: %s\n", "Version", env.AppConfig.Version)
	fmt.Printf("%-15s: %s\n", "Environment", env.AppConfig.Environment)
	fmt.Printf("%-15s: %d\n", "Port", env.AppConfig.Port)
	fmt.Printf("%-15s: %s\n", "Log Level", env.LoggerConfig.Level)
	fmt.Printf("%-15s: %s\n", "Database", env.DatabaseConfig.Type)
	fmt.Printf("%-15s: %s\n", "Recovery Mode", env.RecoveryConfig.Consistency)

	fmt.Println(line)
}

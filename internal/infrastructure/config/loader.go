package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is prepended to every environment override, e.g. TL_SERVER_PORT
const EnvPrefix = "TL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// LoadConfig loads configs/<env>.yaml, then applies TL_ environment overrides.
// A missing config file is not an error; defaults and the environment are used instead.
func LoadConfig() (*Config, error) {
	_ = loadDotEnvFile()

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env

	return &config, nil
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}
	if c.Database.Host == "" {
		problems = append(problems, "database host is required")
	}
	if c.Database.Database == "" {
		problems = append(problems, "database name is required")
	}
	if c.Remote.AccountURL == "" {
		problems = append(problems, "account service url is required")
	}
	if c.Remote.PaymentURL == "" {
		problems = append(problems, "payment service url is required")
	}
	if c.Broker.Enabled && c.Broker.Addr == "" {
		problems = append(problems, "broker address is required when the broker is enabled")
	}
	if c.Broker.BroadcastBuffer <= 0 {
		problems = append(problems, "broadcast buffer must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// loadDotEnvFile loads the first .env file found in the search paths
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			return godotenv.Load(path)
		}
	}
	return os.ErrNotExist
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "15s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "10s")
	v.SetDefault("server.shutdownTimeout", "10s")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", "30m")
	v.SetDefault("database.connMaxIdleTime", "15m")
	v.SetDefault("database.queryTimeout", "5s")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", "1s")
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("broker.enabled", true)
	v.SetDefault("broker.addr", "localhost:6379")
	v.SetDefault("broker.poolSize", 10)
	v.SetDefault("broker.group", "transaction-ledger")
	v.SetDefault("broker.consumer", "")
	v.SetDefault("broker.batchSize", 10)
	v.SetDefault("broker.blockDuration", "5s")
	v.SetDefault("broker.claimMinIdle", "30s")
	v.SetDefault("broker.streamMaxLen", 100000)
	v.SetDefault("broker.publishRetries", 3)
	v.SetDefault("broker.publishRetryInterval", "200ms")
	v.SetDefault("broker.broadcastBuffer", 256)
	v.SetDefault("broker.subscriberBuffer", 32)
	v.SetDefault("broker.maxInFlight", 16)

	v.SetDefault("remote.accountUrl", "http://localhost:4001")
	v.SetDefault("remote.paymentUrl", "http://localhost:4003")
	v.SetDefault("remote.timeout", "5s")
	v.SetDefault("remote.failureThreshold", 5)
	v.SetDefault("remote.openTimeout", "30s")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "transaction_ledger")
	v.SetDefault("metrics.path", "/metrics")
}

// bindEnv maps the flat environment names operators use onto nested keys.
// AutomaticEnv alone only resolves keys viper already knows, e.g. TL_DATABASE_HOST.
func bindEnv(v *viper.Viper) {
	bindings := map[string]string{
		"database.host":     "TL_DB_HOST",
		"database.port":     "TL_DB_PORT",
		"database.username": "TL_DB_USERNAME",
		"database.password": "TL_DB_PASSWORD",
		"database.database": "TL_DB_NAME",
		"database.sslMode":  "TL_DB_SSL_MODE",
		"broker.addr":       "TL_REDIS_ADDR",
		"broker.password":   "TL_REDIS_PASSWORD",
		"remote.accountUrl": "TL_ACCOUNT_URL",
		"remote.paymentUrl": "TL_PAYMENT_URL",
		"logger.level":      "TL_LOG_LEVEL",
	}
	for key, env := range bindings {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
}

// getEnvironment determines the environment from TL_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

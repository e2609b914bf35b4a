package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Logger      LoggerConfig   `mapstructure:"logger"`
	Broker      BrokerConfig   `mapstructure:"broker"`
	Remote      RemoteConfig   `mapstructure:"remote"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`
	LogLevel        string        `mapstructure:"logLevel"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// BrokerConfig contains Redis Streams and in-process broadcast settings
type BrokerConfig struct {
	Enabled              bool          `mapstructure:"enabled"`
	Addr                 string        `mapstructure:"addr"`
	Password             string        `mapstructure:"password"`
	DB                   int           `mapstructure:"db"`
	PoolSize             int           `mapstructure:"poolSize"`
	Group                string        `mapstructure:"group"`
	Consumer             string        `mapstructure:"consumer"`
	BatchSize            int64         `mapstructure:"batchSize"`
	BlockDuration        time.Duration `mapstructure:"blockDuration"`
	ClaimMinIdle         time.Duration `mapstructure:"claimMinIdle"`
	StreamMaxLen         int64         `mapstructure:"streamMaxLen"`
	PublishRetries       int           `mapstructure:"publishRetries"`
	PublishRetryInterval time.Duration `mapstructure:"publishRetryInterval"`
	BroadcastBuffer      int           `mapstructure:"broadcastBuffer"`
	SubscriberBuffer     int           `mapstructure:"subscriberBuffer"`
	MaxInFlight          int           `mapstructure:"maxInFlight"`
}

// RemoteConfig contains account and payment service settings
type RemoteConfig struct {
	AccountURL       string        `mapstructure:"accountUrl"`
	PaymentURL       string        `mapstructure:"paymentUrl"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failureThreshold"`
	OpenTimeout      time.Duration `mapstructure:"openTimeout"`
}

// MetricsConfig contains Prometheus exposition settings
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB          DBConfig
	Server      ServerConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Admin       AdminConfig
	Auth        AuthConfig
	GoogleOAuth GoogleOAuthConfig
	Site        SiteConfig
	LLM         LLMConfig
	Cache       CacheConfig
	Logger      LoggerConfig
	Tracing     TracingConfig
}

type DBConfig struct {
	Driver   string // "sqlite" or "oracle"
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey  string
	SessionTTL time.Duration
}

// AdminConfig holds the single operator credential. PasswordHash (bcrypt) wins over Password.
type AdminConfig struct {
	Password     string
	PasswordHash string
	OpenID       string
	Name         string
}

type AuthConfig struct {
	OwnerOpenID  string
	CookieName   string
	CookieSecure bool
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type SiteConfig struct {
	BaseURL string
}

type LLMConfig struct {
	Server  string
	Model   string
	Timeout time.Duration
}

type CacheConfig struct {
	FiltersTTL  time.Duration
	GuestLogTTL time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type TracingConfig struct {
	Enabled     bool
	Exporter    string // "stdout" or "otlp"
	Endpoint    string
	SampleRatio float64
	ServiceName string
}

func setDefaults() {
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.dsn", "file:provafoco.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	viper.SetDefault("db.port", 1521)
	viper.SetDefault("server.port", 8090)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.allow_origins", "*")
	viper.SetDefault("jwt.session_ttl", "8760h")
	viper.SetDefault("admin.open_id", "admin-user")
	viper.SetDefault("admin.name", "Administrador")
	viper.SetDefault("auth.cookie_name", "session_token")
	viper.SetDefault("site.base_url", "https://provafoco.com.br")
	viper.SetDefault("llm.model", "qwen3:0.6b")
	viper.SetDefault("llm.timeout", "20s")
	viper.SetDefault("cache.filters_ttl", "10m")
	viper.SetDefault("cache.guest_log_ttl", "720h")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("tracing.exporter", "stdout")
	viper.SetDefault("tracing.sample_ratio", 0.1)
	viper.SetDefault("tracing.service_name", "provafoco")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		DB: DBConfig{
			Driver:   viper.GetString("db.driver"),
			DSN:      viper.GetString("db.dsn"),
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			AllowOrigins: viper.GetString("server.allow_origins"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:  viper.GetString("jwt.secret_key"),
			SessionTTL: viper.GetDuration("jwt.session_ttl"),
		},
		Admin: AdminConfig{
			Password:     viper.GetString("admin.password"),
			PasswordHash: viper.GetString("admin.password_hash"),
			OpenID:       viper.GetString("admin.open_id"),
			Name:         viper.GetString("admin.name"),
		},
		Auth: AuthConfig{
			OwnerOpenID:  viper.GetString("auth.owner_open_id"),
			CookieName:   viper.GetString("auth.cookie_name"),
			CookieSecure: viper.GetBool("auth.cookie_secure"),
		},
		GoogleOAuth: GoogleOAuthConfig{
			ClientID:     viper.GetString("google_oauth.client_id"),
			ClientSecret: viper.GetString("google_oauth.client_secret"),
			RedirectURL:  viper.GetString("google_oauth.redirect_url"),
		},
		Site: SiteConfig{
			BaseURL: viper.GetString("site.base_url"),
		},
		LLM: LLMConfig{
			Server:  viper.GetString("llm.server"),
			Model:   viper.GetString("llm.model"),
			Timeout: viper.GetDuration("llm.timeout"),
		},
		Cache: CacheConfig{
			FiltersTTL:  viper.GetDuration("cache.filters_ttl"),
			GuestLogTTL: viper.GetDuration("cache.guest_log_ttl"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Tracing: TracingConfig{
			Enabled:     viper.GetBool("tracing.enabled"),
			Exporter:    viper.GetString("tracing.exporter"),
			Endpoint:    viper.GetString("tracing.endpoint"),
			SampleRatio: viper.GetFloat64("tracing.sample_ratio"),
			ServiceName: viper.GetString("tracing.service_name"),
		},
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides lets flat environment variables win over config.yaml.
func applyEnvOverrides(config *Config) {
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		config.DB.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		config.DB.DSN = dsn
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		config.Admin.Password = password
	}
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		config.Admin.PasswordHash = hash
	}
	if owner := os.Getenv("OWNER_OPEN_ID"); owner != "" {
		config.Auth.OwnerOpenID = owner
	}
	if appURL := os.Getenv("APP_URL"); appURL != "" {
		config.Site.BaseURL = appURL
	}
	if llmServer := os.Getenv("LLM_SERVER"); llmServer != "" {
		config.LLM.Server = llmServer
	}
	if otelEnabled := os.Getenv("OTEL_ENABLED"); otelEnabled == "1" || otelEnabled == "true" {
		config.Tracing.Enabled = true
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		config.Tracing.Endpoint = endpoint
	}
}

// GetDSN returns the connection string for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.DSN != "" && (c.DB.Driver != "oracle" || c.DB.Host == "") {
		return c.DB.DSN
	}
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}

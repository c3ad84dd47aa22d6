package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB           DBConfig
	Server       ServerConfig
	JWT          JWTConfig
	Redis        RedisConfig
	Storage      StorageConfig
	Notification NotificationConfig
	Logger       LoggerConfig
	Cache        CacheConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// StorageConfig describes where uploaded chapter videos live and how their
// public URLs are built. PublicBaseURL is prepended to stored file keys at
// read time, so moving the files only requires a config change.
type StorageConfig struct {
	BasePath      string
	PublicBaseURL string
}

type NotificationConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	RecipientEmail string
}

type LoggerConfig struct {
	Level string
	Env   string
}

type CacheConfig struct {
	ActiveInductionsTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()

	viper.SetDefault("db.ssl_mode", "disable")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("jwt.access_token_ttl", 15)
	viper.SetDefault("jwt.refresh_token_ttl", 10080)
	viper.SetDefault("storage.base_path", "./storage")
	viper.SetDefault("storage.public_base_url", "http://localhost:8080/media")
	viper.SetDefault("cache.active_inductions_ttl", 300)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			DBName:   viper.GetString("db.name"),
			SSLMode:  viper.GetString("db.ssl_mode"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl") * time.Minute,
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl") * time.Minute,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			BasePath:      viper.GetString("storage.base_path"),
			PublicBaseURL: viper.GetString("storage.public_base_url"),
		},
		Notification: NotificationConfig{
			SendGridAPIKey: viper.GetString("notification.sendgrid_api_key"),
			FromEmail:      viper.GetString("notification.from_email"),
			FromName:       viper.GetString("notification.from_name"),
			RecipientEmail: viper.GetString("notification.recipient_email"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		Cache: CacheConfig{
			ActiveInductionsTTL: viper.GetDuration("cache.active_inductions_ttl") * time.Second,
		},
	}

	// Environment overrides for deployments without a config file edit.
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
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if sgKey := os.Getenv("SENDGRID_API_KEY"); sgKey != "" {
		config.Notification.SendGridAPIKey = sgKey
	}
	if recipient := os.Getenv("SUBMISSION_NOTIFICATION_EMAIL"); recipient != "" {
		config.Notification.RecipientEmail = recipient
	}

	return config, nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}

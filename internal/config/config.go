package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Postgres   Postgres   `yaml:"postgres"`
	JWT        JWT        `yaml:"jwt"`
}

type JWT struct {
	// SecretKey may legitimately be empty: every token operation then fails
	// with an explicit server error instead of the process refusing to start.
	SecretKey  string        `yaml:"secret_key" env:"TOKEN_SECRET"`
	AccessTTL  time.Duration `yaml:"access_token_ttl" env:"TOKEN_EXPIRES" env-default:"1h"`
	RefreshTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_EXPIRES" env-default:"168h"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"PG_USER"`
	Password string `yaml:"password" env:"PG_PASSWORD"`
	DBName   string `yaml:"dbname" env:"PG_DBNAME"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:3000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Can not read config file %s", err)
	}

	return &cfg
}

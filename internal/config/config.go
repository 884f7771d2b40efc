package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Env     string
	Port    string
	BaseURL string
}

type DataBaseConfig struct {
	URL string
}

type RedisConfig struct {
	URI string
}

type AuthConfig struct {
	JWTSecret string
}

type MediaConfig struct {
	Dir string
}

type EmailConfig struct {
	Password string
}

type Config struct {
	Server   ServerConfig
	Database DataBaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Media    MediaConfig
	Email    EmailConfig
	IsDev    bool
}

func validateEnv() {
	environmentVariables := []string{
		// server
		"ENV",
		"PORT",
		"BASE_URL",
		// database
		"DB_URL",
		// redis
		"REDIS_URI",
		// auth
		"JWT_SECRET",
		// media
		"MEDIA_DIR",
		// email
		"EMAIL_PASSWORD",
	}
	for _, env := range environmentVariables {
		if os.Getenv(env) == "" {
			log.Fatalf("Environment variable %s is not set", env)
		}
	}

}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	validateEnv()

	return &Config{
		Server: ServerConfig{
			Env:     os.Getenv("ENV"),
			Port:    os.Getenv("PORT"),
			BaseURL: os.Getenv("BASE_URL"),
		},
		Database: DataBaseConfig{
			URL: os.Getenv("DB_URL"),
		},
		Redis: RedisConfig{
			URI: os.Getenv("REDIS_URI"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Media: MediaConfig{
			Dir: os.Getenv("MEDIA_DIR"),
		},
		Email: EmailConfig{
			Password: os.Getenv("EMAIL_PASSWORD"),
		},

		IsDev: os.Getenv("ENV") == "development",
	}
}

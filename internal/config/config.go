package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDSN     string
	MediaDir  string
	JWTSecret string
	JWTTTL    time.Duration
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "petsupplies.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./media"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		log.Println("[config] JWT_SECRET not set, using dev default")
	}
	ttl := 24 * time.Hour
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			ttl = d
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, JWTSecret: secret, JWTTTL: ttl}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s JWT_TTL=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.JWTTTL)
	return cfg
}

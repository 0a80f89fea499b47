package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	PostgresDSN    string // empty selects the in-memory repositories
	ActiveUserID   string
	ActiveUserName string
	ActiveUserRole string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		Addr:           getenv("CANTEEN_ADDR", ":8080"),
		PostgresDSN:    getenv("POSTGRES_DSN", ""),
		ActiveUserID:   getenv("ACTIVE_USER_ID", "u1"),
		ActiveUserName: getenv("ACTIVE_USER_NAME", "Alex"),
		ActiveUserRole: getenv("ACTIVE_USER_ROLE", "STUDENT"),
	}
	log.Printf("[config] CANTEEN_ADDR=%s", cfg.Addr)
	if cfg.PostgresDSN != "" {
		log.Printf("[config] POSTGRES_DSN set, using postgres repositories")
	} else {
		log.Printf("[config] POSTGRES_DSN empty, using in-memory repositories")
	}
	log.Printf("[config] ACTIVE_USER_ID=%s role=%s", cfg.ActiveUserID, cfg.ActiveUserRole)
	return cfg
}

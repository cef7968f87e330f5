package main

import (
	"github.com/joho/godotenv"

	"connecta_backend/internal/app"
)

func main() {
	// Missing .env is fine, config falls back to config.yaml.
	_ = godotenv.Load()

	app.Run()
}

package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/climux/climux/internal/cmd"
)

func main() {
	if homeDir, err := os.UserHomeDir(); err == nil {
		_ = godotenv.Load(filepath.Join(homeDir, ".climux", ".env.local"))
	}
	_ = godotenv.Load(".env.local")

	cmd.Execute()
}

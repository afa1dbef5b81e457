package main

import (
	"os"

	"github.com/joho/godotenv"
)

// config is loaded once at startup from a .env file, if present, and
// from the process environment otherwise.
type config struct {
	StorePath string
}

const (
	defaultStorePath = "walletcored.store"
	envStorePath     = "WALLETCORED_STORE_PATH"
)

func loadConfig() config {
	_ = godotenv.Load() // optional .env in the working directory

	path := os.Getenv(envStorePath)
	if path == "" {
		path = defaultStorePath
	}
	return config{StorePath: path}
}

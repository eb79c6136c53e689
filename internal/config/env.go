package config

import "github.com/joho/godotenv"

// envFiles are loaded in order when present. Variables already set in the
// process environment win, so .env.local must not be relied on to override
// .env.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every env file that exists. Missing files are ignored.
func loadEnvFiles() {
	for _, path := range envFiles {
		_ = godotenv.Load(path)
	}
}

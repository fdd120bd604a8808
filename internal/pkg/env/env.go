package env

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var Env map[string]string

func GetEnv(key, def string) string {
	// First check our loaded Env map
	if val, ok := Env[key]; ok {
		return val
	}
	// Fallback to OS environment variables (for Docker/tests)
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the first .env file found. Without one the process
// relies on the OS environment only.
func SetupEnvFile() {
	envFiles := []string{
		".env",          // Current directory
		"../../.env",    // From cmd/treido to project root
		"../../../.env", // Fallback for deeper nesting
	}

	for _, envFile := range envFiles {
		m, err := godotenv.Read(envFile)
		if err == nil {
			Env = m
			log.Debug().Str("file", envFile).Msg("loaded env file")
			return
		}
	}

	Env = map[string]string{}
	log.Warn().Msg("no .env file found, using process environment")
}

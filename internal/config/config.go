package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	ServerPort     int
	MongoURI       string
	DBName         string
	StorageBackend string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// LoadConfig reads .env plus the environment. MONGODB_URI and DB_NAME are
// required for the mongo backend, but their absence is not fatal here: the
// database layer reports a ConfigurationError on first use so every
// operation fails with a clear message instead of the process crashing.
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:     getEnvAsInt("SERVER_PORT", 8080),
		MongoURI:       getEnv("MONGODB_URI", ""),
		DBName:         getEnv("DB_NAME", ""),
		StorageBackend: getEnv("STORAGE_BACKEND", BackendMongo),
	}
}

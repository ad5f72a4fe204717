package config

import "os"

// Server captures process-level configuration.
type Server struct {
	Addr          string
	LogLevel      string
	UsersSeedPath string
	CardsSeedPath string
	SnapshotPath  string
}

// FromEnv builds a Server config from environment variables so main stays
// lean. The snapshot defaults to the users seed file, so a restart reloads
// whatever the last insert persisted.
func FromEnv() Server {
	usersSeed := getenv("SMARTCOMMUTE_USERS_FILE", "data/users.json")

	return Server{
		Addr:          getenv("SMARTCOMMUTE_ADDR", ":8080"),
		LogLevel:      getenv("SMARTCOMMUTE_LOG_LEVEL", "info"),
		UsersSeedPath: usersSeed,
		CardsSeedPath: getenv("SMARTCOMMUTE_CARDS_FILE", "data/cards.json"),
		SnapshotPath:  getenv("SMARTCOMMUTE_SNAPSHOT_FILE", usersSeed),
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

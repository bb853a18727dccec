package config

// DefaultFallbackPath is the embedded SQLite database used when no primary
// database is configured or reachable.
const DefaultFallbackPath = "./librarium.db"

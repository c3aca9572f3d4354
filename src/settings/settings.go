package settings

import "sync"

type Arguments struct {
	// The MongoDB connection string, including the default database
	URI string

	// Overrides the database encoded in the URI when non-empty
	DatabaseName string

	// Bounds connection establishment, in seconds
	ConnectTimeout int

	// Strongly verbose logging
	Verbose bool

	Debug bool // Enable per-operation debug logging
}

var (
	instance *Arguments
	once     sync.Once
)

// GetSettings returns the global settings instance.
func GetSettings() *Arguments {
	once.Do(func() {
		instance = &Arguments{
			URI:            "mongodb://localhost:27017/docstore",
			ConnectTimeout: 10,
		}
	})
	return instance
}

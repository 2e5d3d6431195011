package config_test

import (
	"fmt"

	"github.com/wonny/quickrate/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	// Access configuration values
	fmt.Printf("Server running on port: %s\n", cfg.Port)
	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("Persistence enabled: %v\n", cfg.Database.Enabled())
	fmt.Printf("Rate limit: %.0f req/s\n", cfg.API.RateLimit)
}

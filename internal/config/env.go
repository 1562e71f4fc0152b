package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. All variables share the VERICRED_ prefix; nested groups add their
// own envPrefix segment (see the tags on [ClientConfig]).
func parseEnv(cfg *ClientConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "VERICRED_"}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

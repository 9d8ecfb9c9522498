// Package config loads the runtime's process-wide configuration.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the runtime's single process-wide configuration record.
type Config struct {
	// VerboseExceptions mirrors the original NOISY_ACTORS toggle: when
	// true, an actor's abnormal termination is also logged, not just
	// delivered to its alinks.
	VerboseExceptions bool
}

// Load reads Config from the environment, under the PYACT prefix (e.g.
// PYACT_VERBOSE_EXCEPTIONS=1). Unset variables fall back to the defaults
// below.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("pyact")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("verbose_exceptions", false)

	return Config{
		VerboseExceptions: v.GetBool("verbose_exceptions"),
	}, nil
}
